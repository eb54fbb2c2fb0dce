package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campuscore/campuscore-api/internal/models"
)

// Cookie names the token pair travels in for regular users.
const (
	CookieAccessToken  = "access-token"
	CookieRefreshToken = "refresh-token"
)

const (
	principalKey  = "principal"
	superAdminKey = "super_admin"
)

// Principal is the authenticated identity attached to a request after the
// authentication middleware ran. Credential fields are never carried here.
type Principal struct {
	ID          uint
	SecretID    string
	Role        models.Role
	Name        string
	Email       string
	PhoneNumber string
	AdminAccess []models.Capability
}

// HasCapability reports whether the principal may use an admin capability.
// Only ADMIN principals carry capabilities.
func (p Principal) HasCapability(capability models.Capability) bool {
	if p.Role != models.RoleAdmin {
		return false
	}
	for _, granted := range p.AdminAccess {
		if granted == capability {
			return true
		}
	}
	return false
}

// SetPrincipal binds the principal to the request. Exposed for tests.
func SetPrincipal(c *fiber.Ctx, principal Principal) {
	c.Locals(principalKey, principal)
}

// PrincipalFromCtx extracts the authenticated principal, if any.
func PrincipalFromCtx(c *fiber.Ctx) (Principal, bool) {
	principal, ok := c.Locals(principalKey).(Principal)
	return principal, ok
}

// IsSuperAdmin reports whether the super-admin middleware validated this request.
func IsSuperAdmin(c *fiber.Ctx) bool {
	flagged, ok := c.Locals(superAdminKey).(bool)
	return ok && flagged
}
