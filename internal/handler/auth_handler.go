package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/campuscore/campuscore-api/internal/config"
	"github.com/campuscore/campuscore-api/internal/dto"
	"github.com/campuscore/campuscore-api/internal/middleware"
	"github.com/campuscore/campuscore-api/internal/service"
	"github.com/campuscore/campuscore-api/internal/utils"
)

// AuthHandler exposes login, logout and self-service account endpoints.
type AuthHandler struct {
	auth   service.AuthService
	cfg    config.Config
	logger zerolog.Logger
}

func NewAuthHandler(auth service.AuthService, cfg config.Config, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		auth:   auth,
		cfg:    cfg,
		logger: logger.With().Str("component", "auth_handler").Logger(),
	}
}

// RegisterPublic mounts the routes that do not require an authenticated user.
func (h *AuthHandler) RegisterPublic(router fiber.Router) {
	router.Post("/login", h.login)
}

// RegisterLogout mounts logout behind the tolerant principal attach, so a
// caller without a usable token still gets its cookies cleared.
func (h *AuthHandler) RegisterLogout(router fiber.Router) {
	router.Post("/logout", h.logout)
}

// RegisterProtected mounts the routes that run behind the auth middleware.
func (h *AuthHandler) RegisterProtected(router fiber.Router) {
	router.Get("/me", h.me)
	router.Patch("/change-password", h.changePassword)
	router.Patch("/profile-image", h.profileImage)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	var payload dto.LoginRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	response, err := h.auth.Login(c.UserContext(), payload)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	h.setTokenCookie(c, middleware.CookieAccessToken, response.Tokens.AccessToken, h.cfg.AccessTokenTTL)
	h.setTokenCookie(c, middleware.CookieRefreshToken, response.Tokens.RefreshToken, h.cfg.RefreshTokenTTL)

	return utils.SendSuccess(c, "logged in", response)
}

// logout is idempotent. Without a principal there is no session to drop and
// the cookies are cleared anyway.
func (h *AuthHandler) logout(c *fiber.Ctx) error {
	p := principal(c)

	if err := h.auth.Logout(c.UserContext(), p.ID, c.Cookies(middleware.CookieRefreshToken)); err != nil {
		return respondServiceError(c, h.logger, err)
	}

	h.clearTokenCookie(c, middleware.CookieAccessToken)
	h.clearTokenCookie(c, middleware.CookieRefreshToken)

	return utils.SendSuccess(c, "logged out", nil)
}

func (h *AuthHandler) me(c *fiber.Ctx) error {
	response, err := h.auth.Me(c.UserContext(), principal(c).ID)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "", response)
}

func (h *AuthHandler) changePassword(c *fiber.Ctx) error {
	var payload dto.ChangePasswordRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.auth.ChangePassword(c.UserContext(), principal(c).ID, payload); err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "password changed", nil)
}

func (h *AuthHandler) profileImage(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "image file is required")
	}

	response, err := h.auth.UpdateProfileImage(c.UserContext(), principal(c).ID, file)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "profile image updated", response)
}

func (h *AuthHandler) setTokenCookie(c *fiber.Ctx, name, value string, ttl time.Duration) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		HTTPOnly: true,
		Secure:   h.cfg.AppEnv == "production",
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func (h *AuthHandler) clearTokenCookie(c *fiber.Ctx, name string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   h.cfg.AppEnv == "production",
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
