package handler_test

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/campuscore/campuscore-api/internal/dto"
	"github.com/campuscore/campuscore-api/internal/models"
	"github.com/campuscore/campuscore-api/internal/token"
)

func superAdminToken(t *testing.T, f appFixture) string {
	t.Helper()

	resp := f.postJSON(t, "/api/v1/super-admin/login", "", map[string]string{
		"username":       f.cfg.SuperAdminUsername,
		"password":       f.cfg.SuperAdminPassword,
		"session_secret": f.cfg.SuperAdminSessionSecret,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Data dto.SuperAdminLoginResponse `json:"data"`
	}
	decodeResponse(t, resp, &body)
	require.NotEmpty(t, body.Data.Token)

	return body.Data.Token
}

func adminPayload(secretID string) map[string]any {
	return map[string]any{
		"name":          "Admin " + secretID,
		"secret_id":     secretID,
		"email":         secretID + "@campus.test",
		"phone_number":  "0171111" + secretID[len(secretID)-3:],
		"date_of_birth": "1990-05-20",
		"gender":        "MALE",
		"admin_access":  []string{"STUDENT_ACCESS", "BATCH_ACCESS"},
	}
}

func TestSuperAdminLoginRejectsWrongTriple(t *testing.T) {
	f := setupApp(t, "sa_login")

	resp := f.postJSON(t, "/api/v1/super-admin/login", "", map[string]string{
		"username":       f.cfg.SuperAdminUsername,
		"password":       "bad-pass",
		"session_secret": f.cfg.SuperAdminSessionSecret,
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestSuperAdminCreatesAndListsAdmins(t *testing.T) {
	f := setupApp(t, "sa_admins")
	bearer := superAdminToken(t, f)

	resp := f.requestBearer(t, "POST", "/api/v1/super-admin/admins", bearer, adminPayload("ADM-100"))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created struct {
		Data dto.UserResponse `json:"data"`
	}
	decodeResponse(t, resp, &created)
	require.Equal(t, models.RoleAdmin, created.Data.Role)
	require.True(t, created.Data.IsFirstLogin)
	require.False(t, created.Data.IsActive)

	resp = f.requestBearer(t, "GET", "/api/v1/super-admin/admins", bearer, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var list struct {
		Data dto.Page[dto.UserResponse] `json:"data"`
	}
	decodeResponse(t, resp, &list)
	require.Len(t, list.Data.Items, 1)
	require.Equal(t, "ADM-100", list.Data.Items[0].SecretID)

	// A fresh account cannot log in until it is activated, even with the
	// correct date-of-birth default password.
	resp = f.postJSON(t, "/api/v1/auth/login", "", map[string]string{
		"secret_id": "ADM-100",
		"password":  "2015",
	})
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = f.requestBearer(t, "PATCH", fmt.Sprintf("/api/v1/super-admin/admins/%d/activity", created.Data.ID), bearer, map[string]any{
		"is_active": true,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	f.login(t, "ADM-100", "2015")
}

func TestSuperAdminGateRejectsBadTokens(t *testing.T) {
	f := setupApp(t, "sa_gate")

	resp := f.requestBearer(t, "GET", "/api/v1/super-admin/admins", "", nil)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = f.requestBearer(t, "GET", "/api/v1/super-admin/admins", "not-a-token", nil)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// A well-signed token whose triple no longer matches the configured
	// credentials is refused outright.
	stale, err := token.IssueSuperAdmin(token.SuperAdminClaims{
		Username:      f.cfg.SuperAdminUsername,
		Password:      "rotated-away",
		SessionSecret: f.cfg.SuperAdminSessionSecret,
	}, f.cfg.SuperAdminTokenSecret)
	require.NoError(t, err)

	resp = f.requestBearer(t, "GET", "/api/v1/super-admin/admins", stale, nil)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestSuperAdminAccessAndActivityLifecycle(t *testing.T) {
	f := setupApp(t, "sa_lifecycle")
	bearer := superAdminToken(t, f)

	resp := f.requestBearer(t, "POST", "/api/v1/super-admin/admins", bearer, adminPayload("ADM-101"))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created struct {
		Data dto.UserResponse `json:"data"`
	}
	decodeResponse(t, resp, &created)
	id := created.Data.ID

	resp = f.requestBearer(t, "PUT", fmt.Sprintf("/api/v1/super-admin/admins/%d/access", id), bearer, map[string]any{
		"admin_access": []string{"NOTICE_ACCESS"},
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var updated struct {
		Data dto.UserResponse `json:"data"`
	}
	decodeResponse(t, resp, &updated)
	require.Equal(t, []models.Capability{models.CapabilityNoticeAccess}, updated.Data.AdminAccess)

	resp = f.requestBearer(t, "PATCH", fmt.Sprintf("/api/v1/super-admin/admins/%d/activity", id), bearer, map[string]any{
		"is_active": false,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	decodeResponse(t, resp, &updated)
	require.False(t, updated.Data.IsActive)
}
