package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campuscore/campuscore-api/internal/models"
	"github.com/campuscore/campuscore-api/internal/repository"
	"github.com/campuscore/campuscore-api/internal/utils"
)

// RequireRole ensures the authenticated principal holds one of the allowed
// roles. It reads only the already-attached principal and never touches the
// stores.
func RequireRole(roles ...models.Role) fiber.Handler {
	allowed := make(map[models.Role]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromCtx(c)
		if !ok {
			return utils.SendError(c, fiber.StatusForbidden, "you are not authorized to access this")
		}
		if _, ok := allowed[principal.Role]; !ok {
			return utils.SendError(c, fiber.StatusForbidden, "you are not authorized to access this")
		}

		return c.Next()
	}
}

// RequireAdminAccess ensures the principal is an admin holding the named
// capability. Capabilities are independent; holding one never implies
// another.
func RequireAdminAccess(capability models.Capability) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromCtx(c)
		if !ok || !principal.HasCapability(capability) {
			return utils.SendError(c, fiber.StatusForbidden, "you are not authorized to access this")
		}

		return c.Next()
	}
}

// RequireActive rejects authenticated principals whose account has been
// soft-disabled, even when their token is otherwise valid.
func RequireActive(users repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromCtx(c)
		if !ok {
			return utils.SendError(c, fiber.StatusForbidden, "you are not authorized to access this")
		}

		user, err := users.GetByID(c.Context(), principal.ID)
		if err != nil || !user.IsActive {
			return utils.SendError(c, fiber.StatusForbidden, "you are not authorized to access this")
		}

		return c.Next()
	}
}
