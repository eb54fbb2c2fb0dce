package middleware

import (
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/campuscore/campuscore-api/internal/config"
	"github.com/campuscore/campuscore-api/internal/models"
	"github.com/campuscore/campuscore-api/internal/repository"
	"github.com/campuscore/campuscore-api/internal/token"
	"github.com/campuscore/campuscore-api/internal/utils"
)

// Authenticate validates the caller's access token, loads the referenced
// user and attaches a Principal to the request. The token may arrive as the
// access-token cookie or as an Authorization bearer header. Must run before
// any role or capability gate.
func Authenticate(cfg config.Config, users repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Cookies(CookieAccessToken)
		if tokenString == "" {
			tokenString = bearerToken(c)
		}
		if tokenString == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "you are not authorized to access this")
		}

		claims, err := token.VerifyUser(tokenString, cfg.AccessTokenSecret)
		if err != nil {
			if errors.Is(err, token.ErrExpired) {
				return utils.SendError(c, fiber.StatusUnauthorized, "session expired")
			}
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
		}

		user, err := users.GetByID(c.Context(), claims.UserID)
		if err != nil {
			return utils.SendError(c, fiber.StatusUnauthorized, "you are not authorized to access this")
		}

		SetPrincipal(c, newPrincipal(user))

		return c.Next()
	}
}

// AttachPrincipal is the tolerant variant of Authenticate: it attaches a
// Principal when a verifiable token is present and lets the request through
// either way. Logout runs behind it so a caller whose cookies are stale or
// already gone can still clear them.
func AttachPrincipal(cfg config.Config, users repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Cookies(CookieAccessToken)
		if tokenString == "" {
			tokenString = bearerToken(c)
		}
		if tokenString == "" {
			return c.Next()
		}

		claims, err := token.VerifyUser(tokenString, cfg.AccessTokenSecret)
		if err != nil {
			return c.Next()
		}

		user, err := users.GetByID(c.Context(), claims.UserID)
		if err != nil {
			return c.Next()
		}

		SetPrincipal(c, newPrincipal(user))

		return c.Next()
	}
}

func newPrincipal(user models.User) Principal {
	return Principal{
		ID:          user.ID,
		SecretID:    user.SecretID,
		Role:        user.Role,
		Name:        user.Name,
		Email:       user.Email,
		PhoneNumber: user.PhoneNumber,
		AdminAccess: user.AdminAccess,
	}
}

// SuperAdminProtected validates the super-admin token carried in the
// Authorization header. Trust requires both a valid signature under the
// dedicated secret and equality of the embedded credential triple with the
// statically configured values.
func SuperAdminProtected(cfg config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := bearerToken(c)
		if tokenString == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "you are not authorized to access this")
		}

		claims, err := token.VerifySuperAdmin(tokenString, cfg.SuperAdminTokenSecret)
		if err != nil {
			if errors.Is(err, token.ErrExpired) {
				return utils.SendError(c, fiber.StatusUnauthorized, "session expired")
			}
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
		}

		if !constantEquals(claims.Username, cfg.SuperAdminUsername) ||
			!constantEquals(claims.Password, cfg.SuperAdminPassword) ||
			!constantEquals(claims.SessionSecret, cfg.SuperAdminSessionSecret) {
			return utils.SendError(c, fiber.StatusForbidden, "you are not authorized to access this")
		}

		c.Locals(superAdminKey, true)

		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx) string {
	authorization := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if authorization == "" {
		return ""
	}

	const bearer = "bearer "
	if strings.HasPrefix(strings.ToLower(authorization), bearer) {
		return strings.TrimSpace(authorization[len(bearer):])
	}

	return authorization
}

func constantEquals(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
