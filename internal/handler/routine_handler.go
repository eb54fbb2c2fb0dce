package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/campuscore/campuscore-api/internal/dto"
	"github.com/campuscore/campuscore-api/internal/service"
	"github.com/campuscore/campuscore-api/internal/utils"
)

// RoutineHandler exposes the class routine endpoints.
type RoutineHandler struct {
	routines service.RoutineService
	logger   zerolog.Logger
}

func NewRoutineHandler(routines service.RoutineService, logger zerolog.Logger) *RoutineHandler {
	return &RoutineHandler{
		routines: routines,
		logger:   logger.With().Str("component", "routine_handler").Logger(),
	}
}

func (h *RoutineHandler) Register(router fiber.Router) {
	router.Post("/", h.create)
	router.Get("/", h.list)
	router.Patch("/:id", h.update)
	router.Delete("/:id", h.delete)
}

func (h *RoutineHandler) create(c *fiber.Ctx) error {
	var payload dto.RoutineCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	response, err := h.routines.Create(c.UserContext(), payload, principal(c).ID)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendCreated(c, "routine entry created", response)
}

func (h *RoutineHandler) list(c *fiber.Ctx) error {
	var query dto.RoutineListQuery
	if err := c.QueryParser(&query); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid query parameters")
	}

	response, err := h.routines.List(c.UserContext(), query)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "", response)
}

func (h *RoutineHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.RoutineUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	response, err := h.routines.Update(c.UserContext(), id, payload)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "routine entry updated", response)
}

func (h *RoutineHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.routines.Delete(c.UserContext(), id); err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "routine entry deleted", nil)
}
