package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campuscore/campuscore-api/internal/config"
	"github.com/campuscore/campuscore-api/internal/utils"
)

// HealthHandler reports service liveness.
type HealthHandler struct {
	cfg config.Config
}

func NewHealthHandler(cfg config.Config) *HealthHandler {
	return &HealthHandler{cfg: cfg}
}

func (h *HealthHandler) Register(router fiber.Router) {
	router.Get("/health", h.health)
}

func (h *HealthHandler) health(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "ok", fiber.Map{
		"name": h.cfg.AppName,
		"env":  h.cfg.AppEnv,
	})
}
