package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/campuscore/campuscore-api/internal/dto"
	"github.com/campuscore/campuscore-api/internal/service"
	"github.com/campuscore/campuscore-api/internal/utils"
)

// StudentPortalHandler exposes the read-mostly self-service endpoints for
// logged-in students. Every route derives the student from the principal.
type StudentPortalHandler struct {
	portal service.StudentPortalService
	logger zerolog.Logger
}

func NewStudentPortalHandler(portal service.StudentPortalService, logger zerolog.Logger) *StudentPortalHandler {
	return &StudentPortalHandler{
		portal: portal,
		logger: logger.With().Str("component", "student_portal_handler").Logger(),
	}
}

func (h *StudentPortalHandler) Register(router fiber.Router) {
	router.Get("/profile", h.profile)
	router.Patch("/profile", h.updateProfile)
	router.Get("/subjects", h.subjects)
	router.Get("/materials", h.materials)
	router.Get("/routine", h.routine)
	router.Get("/notices", h.notices)
	router.Get("/assignments", h.assignments)
	router.Post("/assignments/:id/submission", h.submitAssignment)
	router.Get("/assignments/:id/submission", h.submission)
	router.Get("/results", h.results)
}

func (h *StudentPortalHandler) profile(c *fiber.Ctx) error {
	response, err := h.portal.Profile(c.UserContext(), principal(c).ID)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "", response)
}

func (h *StudentPortalHandler) updateProfile(c *fiber.Ctx) error {
	var payload dto.ProfileUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	response, err := h.portal.UpdateProfile(c.UserContext(), principal(c).ID, payload)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "profile updated", response)
}

func (h *StudentPortalHandler) materials(c *fiber.Ctx) error {
	response, err := h.portal.Materials(c.UserContext(), principal(c).ID, uint(c.QueryInt("subject_id")))
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "", response)
}

func (h *StudentPortalHandler) subjects(c *fiber.Ctx) error {
	response, err := h.portal.Subjects(c.UserContext(), principal(c).ID)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "", response)
}

func (h *StudentPortalHandler) routine(c *fiber.Ctx) error {
	response, err := h.portal.Routine(c.UserContext(), principal(c).ID)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "", response)
}

func (h *StudentPortalHandler) notices(c *fiber.Ctx) error {
	response, err := h.portal.Notices(c.UserContext(), principal(c).ID)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "", response)
}

func (h *StudentPortalHandler) assignments(c *fiber.Ctx) error {
	response, err := h.portal.Assignments(c.UserContext(), principal(c).ID)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "", response)
}

func (h *StudentPortalHandler) submitAssignment(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	file, err := c.FormFile("file")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "submission file is required")
	}

	response, err := h.portal.SubmitAssignment(c.UserContext(), principal(c).ID, id, file)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendCreated(c, "assignment submitted", response)
}

func (h *StudentPortalHandler) submission(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	response, err := h.portal.Submission(c.UserContext(), principal(c).ID, id)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "", response)
}

func (h *StudentPortalHandler) results(c *fiber.Ctx) error {
	response, err := h.portal.Results(c.UserContext(), principal(c).ID)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "", response)
}
