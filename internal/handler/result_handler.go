package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/campuscore/campuscore-api/internal/dto"
	"github.com/campuscore/campuscore-api/internal/service"
	"github.com/campuscore/campuscore-api/internal/utils"
)

// ResultHandler exposes the semester result endpoints.
type ResultHandler struct {
	results service.ResultService
	logger  zerolog.Logger
}

func NewResultHandler(results service.ResultService, logger zerolog.Logger) *ResultHandler {
	return &ResultHandler{
		results: results,
		logger:  logger.With().Str("component", "result_handler").Logger(),
	}
}

func (h *ResultHandler) Register(router fiber.Router) {
	router.Post("/", h.create)
	router.Get("/", h.list)
	router.Get("/:id", h.get)
	router.Patch("/:id", h.update)
}

func (h *ResultHandler) create(c *fiber.Ctx) error {
	var payload dto.ResultCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	response, err := h.results.Create(c.UserContext(), payload, principal(c).ID)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendCreated(c, "result recorded", response)
}

func (h *ResultHandler) list(c *fiber.Ctx) error {
	var query dto.ResultListQuery
	if err := c.QueryParser(&query); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid query parameters")
	}

	response, err := h.results.List(c.UserContext(), query)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "", response)
}

func (h *ResultHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	response, err := h.results.Get(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "", response)
}

func (h *ResultHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.ResultUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	response, err := h.results.Update(c.UserContext(), id, payload)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "result updated", response)
}
