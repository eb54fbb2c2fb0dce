package handler

import (
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/campuscore/campuscore-api/internal/dto"
	"github.com/campuscore/campuscore-api/internal/service"
	"github.com/campuscore/campuscore-api/internal/utils"
)

// NoticeHandler exposes the notice board endpoints. Creation takes a
// multipart form so attachments can travel with the notice body.
type NoticeHandler struct {
	notices service.NoticeService
	logger  zerolog.Logger
}

func NewNoticeHandler(notices service.NoticeService, logger zerolog.Logger) *NoticeHandler {
	return &NoticeHandler{
		notices: notices,
		logger:  logger.With().Str("component", "notice_handler").Logger(),
	}
}

func (h *NoticeHandler) Register(router fiber.Router) {
	router.Post("/", h.create)
	router.Get("/", h.list)
	router.Get("/:id", h.get)
	router.Patch("/:id", h.update)
	router.Delete("/:id", h.delete)
}

func (h *NoticeHandler) create(c *fiber.Ctx) error {
	var payload dto.NoticeCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	var attachments []*multipart.FileHeader
	if form, err := c.MultipartForm(); err == nil && form != nil {
		attachments = form.File["attachments"]
	}

	response, err := h.notices.Create(c.UserContext(), payload, attachments, principal(c).ID)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendCreated(c, "notice published", response)
}

func (h *NoticeHandler) list(c *fiber.Ctx) error {
	var query dto.NoticeListQuery
	if err := c.QueryParser(&query); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid query parameters")
	}

	response, err := h.notices.List(c.UserContext(), query)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "", response)
}

func (h *NoticeHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	response, err := h.notices.Get(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "", response)
}

func (h *NoticeHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.NoticeUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	response, err := h.notices.Update(c.UserContext(), id, payload)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "notice updated", response)
}

func (h *NoticeHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.notices.Delete(c.UserContext(), id); err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "notice deleted", nil)
}
