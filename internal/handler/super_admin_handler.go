package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/campuscore/campuscore-api/internal/dto"
	"github.com/campuscore/campuscore-api/internal/service"
	"github.com/campuscore/campuscore-api/internal/utils"
)

// SuperAdminHandler exposes the super admin login and the admin account
// lifecycle endpoints.
type SuperAdminHandler struct {
	admins service.SuperAdminService
	logger zerolog.Logger
}

func NewSuperAdminHandler(admins service.SuperAdminService, logger zerolog.Logger) *SuperAdminHandler {
	return &SuperAdminHandler{
		admins: admins,
		logger: logger.With().Str("component", "super_admin_handler").Logger(),
	}
}

// RegisterPublic mounts the login route, which is guarded only by the
// configured credential triple.
func (h *SuperAdminHandler) RegisterPublic(router fiber.Router) {
	router.Post("/login", h.login)
}

// RegisterProtected mounts the admin lifecycle routes behind the super admin
// token gate.
func (h *SuperAdminHandler) RegisterProtected(router fiber.Router) {
	router.Post("/admins", h.create)
	router.Get("/admins", h.list)
	router.Get("/admins/:id", h.get)
	router.Patch("/admins/:id", h.update)
	router.Put("/admins/:id/access", h.updateAccess)
	router.Patch("/admins/:id/activity", h.setActivity)
	router.Post("/admins/:id/reset-password", h.resetPassword)
}

func (h *SuperAdminHandler) login(c *fiber.Ctx) error {
	var payload dto.SuperAdminLoginRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	response, err := h.admins.Login(c.UserContext(), payload)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "logged in", response)
}

func (h *SuperAdminHandler) create(c *fiber.Ctx) error {
	var payload dto.AdminCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	response, err := h.admins.CreateAdmin(c.UserContext(), payload)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendCreated(c, "admin created", response)
}

func (h *SuperAdminHandler) list(c *fiber.Ctx) error {
	var query dto.ListQuery
	if err := c.QueryParser(&query); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid query parameters")
	}

	response, err := h.admins.ListAdmins(c.UserContext(), query)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "", response)
}

func (h *SuperAdminHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	response, err := h.admins.GetAdmin(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "", response)
}

func (h *SuperAdminHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.AdminUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	response, err := h.admins.UpdateAdmin(c.UserContext(), id, payload)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "admin updated", response)
}

func (h *SuperAdminHandler) updateAccess(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.AdminAccessUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	response, err := h.admins.UpdateAdminAccess(c.UserContext(), id, payload)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "admin access updated", response)
}

func (h *SuperAdminHandler) setActivity(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.ActivityUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	response, err := h.admins.SetActivity(c.UserContext(), id, payload)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "admin activity updated", response)
}

func (h *SuperAdminHandler) resetPassword(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.admins.ResetPassword(c.UserContext(), id); err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "password reset", nil)
}
