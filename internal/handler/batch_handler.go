package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/campuscore/campuscore-api/internal/dto"
	"github.com/campuscore/campuscore-api/internal/service"
	"github.com/campuscore/campuscore-api/internal/utils"
)

// BatchHandler exposes the batch lifecycle endpoints.
type BatchHandler struct {
	batches service.BatchService
	logger  zerolog.Logger
}

func NewBatchHandler(batches service.BatchService, logger zerolog.Logger) *BatchHandler {
	return &BatchHandler{
		batches: batches,
		logger:  logger.With().Str("component", "batch_handler").Logger(),
	}
}

func (h *BatchHandler) Register(router fiber.Router) {
	router.Post("/", h.create)
	router.Get("/", h.list)
	router.Get("/:id", h.get)
	router.Patch("/:id", h.update)
	router.Post("/:id/promote", h.promote)
	router.Post("/:id/complete", h.complete)
}

func (h *BatchHandler) create(c *fiber.Ctx) error {
	var payload dto.BatchCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	response, err := h.batches.Create(c.UserContext(), payload, principal(c).ID)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendCreated(c, "batches created", response)
}

func (h *BatchHandler) list(c *fiber.Ctx) error {
	var query dto.BatchListQuery
	if err := c.QueryParser(&query); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid query parameters")
	}

	response, err := h.batches.List(c.UserContext(), query)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "", response)
}

func (h *BatchHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	response, err := h.batches.Get(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "", response)
}

func (h *BatchHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.BatchUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	response, err := h.batches.Update(c.UserContext(), id, payload)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "batch updated", response)
}

func (h *BatchHandler) promote(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	response, err := h.batches.Promote(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "batch promoted", response)
}

func (h *BatchHandler) complete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	response, err := h.batches.Complete(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "batch completed", response)
}
