package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/campuscore/campuscore-api/internal/middleware"
	"github.com/campuscore/campuscore-api/internal/models"
	"github.com/campuscore/campuscore-api/internal/repository"
)

func TestRequireRole(t *testing.T) {
	cfg := middlewareConfig()
	db := openMiddlewareDB(t, "role")
	student := seedMiddlewareUser(t, db, models.RoleStudent, true)
	admin := seedMiddlewareUser(t, db, models.RoleAdmin, true)

	app := authTestApp(t, cfg, db, middleware.RequireRole(models.RoleAdmin))

	req := httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "access-token", Value: issueAccessToken(t, cfg, student, time.Hour)})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	req = httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "access-token", Value: issueAccessToken(t, cfg, admin, time.Hour)})
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireAdminAccessIgnoresCapabilitiesOnOtherRoles(t *testing.T) {
	cfg := middlewareConfig()
	db := openMiddlewareDB(t, "capability")

	// A student carrying capabilities in storage still gets refused.
	student := seedMiddlewareUser(t, db, models.RoleStudent, true)
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", student.ID).
		Update("admin_access", datatypes.NewJSONSlice([]models.Capability{models.CapabilityBatchAccess})).Error)

	admin := seedMiddlewareUser(t, db, models.RoleAdmin, true)
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", admin.ID).
		Update("admin_access", datatypes.NewJSONSlice([]models.Capability{models.CapabilityBatchAccess})).Error)

	app := authTestApp(t, cfg, db, middleware.RequireAdminAccess(models.CapabilityBatchAccess))

	req := httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "access-token", Value: issueAccessToken(t, cfg, student, time.Hour)})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	req = httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "access-token", Value: issueAccessToken(t, cfg, admin, time.Hour)})
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Holding one capability never implies another.
	other := authTestApp(t, cfg, db, middleware.RequireAdminAccess(models.CapabilityResultAccess))
	req = httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "access-token", Value: issueAccessToken(t, cfg, admin, time.Hour)})
	resp, err = other.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRequireActiveRereadsTheStore(t *testing.T) {
	cfg := middlewareConfig()
	db := openMiddlewareDB(t, "active")
	user := seedMiddlewareUser(t, db, models.RoleAdmin, true)

	users := repository.NewUserRepository(db)
	app := authTestApp(t, cfg, db, middleware.RequireActive(users))

	signed := issueAccessToken(t, cfg, user, time.Hour)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "access-token", Value: signed})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Deactivation takes effect immediately, even for an unexpired token.
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", user.ID).Update("is_active", false).Error)

	req = httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "access-token", Value: signed})
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
