package handler_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/campuscore/campuscore-api/internal/dto"
	"github.com/campuscore/campuscore-api/internal/models"
)

func TestAuthLoginSetsCookiesAndReturnsTokens(t *testing.T) {
	f := setupApp(t, "auth_login")
	f.seedUser(t, "STU-100", "secret-pass", models.RoleStudent)

	resp := f.postJSON(t, "/api/v1/auth/login", "", map[string]string{
		"secret_id": "STU-100",
		"password":  "secret-pass",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	cookies := map[string]*http.Cookie{}
	for _, cookie := range resp.Cookies() {
		cookies[cookie.Name] = cookie
	}
	require.Contains(t, cookies, "access-token")
	require.Contains(t, cookies, "refresh-token")
	require.NotEmpty(t, cookies["access-token"].Value)
	require.True(t, cookies["access-token"].HttpOnly)

	var body struct {
		Success bool              `json:"success"`
		Data    dto.LoginResponse `json:"data"`
	}
	decodeResponse(t, resp, &body)
	require.True(t, body.Success)
	require.Equal(t, "STU-100", body.Data.User.SecretID)
	require.Equal(t, cookies["access-token"].Value, body.Data.Tokens.AccessToken)
	require.Equal(t, cookies["refresh-token"].Value, body.Data.Tokens.RefreshToken)
}

func TestAuthLoginWrongCredentials(t *testing.T) {
	f := setupApp(t, "auth_wrong")
	f.seedUser(t, "STU-101", "secret-pass", models.RoleStudent)

	for _, payload := range []map[string]string{
		{"secret_id": "STU-101", "password": "bad-pass"},
		{"secret_id": "NO-SUCH", "password": "secret-pass"},
	} {
		resp := f.postJSON(t, "/api/v1/auth/login", "", payload)
		require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

		var body struct {
			Success bool   `json:"success"`
			Message string `json:"message"`
		}
		decodeResponse(t, resp, &body)
		require.False(t, body.Success)
		require.Equal(t, "wrong credentials", body.Message)
	}
}

func TestAuthMeRequiresToken(t *testing.T) {
	f := setupApp(t, "auth_me")
	f.seedUser(t, "STU-102", "secret-pass", models.RoleStudent)

	resp := f.get(t, "/api/v1/auth/me", "")
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	token := f.login(t, "STU-102", "secret-pass")
	resp = f.get(t, "/api/v1/auth/me", token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Data dto.UserResponse `json:"data"`
	}
	decodeResponse(t, resp, &body)
	require.Equal(t, "STU-102", body.Data.SecretID)
}

func TestAuthChangePassword(t *testing.T) {
	f := setupApp(t, "auth_change")
	f.seedUser(t, "STU-103", "secret-pass", models.RoleStudent)
	token := f.login(t, "STU-103", "secret-pass")

	resp := f.patchJSON(t, "/api/v1/auth/change-password", token, map[string]string{
		"old_password": "bad-pass",
		"new_password": "brand-new-pass",
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = f.patchJSON(t, "/api/v1/auth/change-password", token, map[string]string{
		"old_password": "secret-pass",
		"new_password": "brand-new-pass",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	f.login(t, "STU-103", "brand-new-pass")
}

func TestAuthLogoutClearsCookies(t *testing.T) {
	f := setupApp(t, "auth_logout")
	f.seedUser(t, "STU-104", "secret-pass", models.RoleStudent)
	token := f.login(t, "STU-104", "secret-pass")

	resp := f.postJSON(t, "/api/v1/auth/logout", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	for _, cookie := range resp.Cookies() {
		if cookie.Name == "access-token" || cookie.Name == "refresh-token" {
			require.Empty(t, cookie.Value)
		}
	}
}

func TestAuthLogoutIsIdempotentWithoutCookies(t *testing.T) {
	f := setupApp(t, "auth_logout_idem")
	f.seedUser(t, "STU-105", "secret-pass", models.RoleStudent)
	token := f.login(t, "STU-105", "secret-pass")

	resp := f.postJSON(t, "/api/v1/auth/logout", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// A second logout with no cookies at all still succeeds and clears them.
	resp = f.postJSON(t, "/api/v1/auth/logout", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	cleared := 0
	for _, cookie := range resp.Cookies() {
		if cookie.Name == "access-token" || cookie.Name == "refresh-token" {
			require.Empty(t, cookie.Value)
			cleared++
		}
	}
	require.Equal(t, 2, cleared)

	// So does one carrying a token that no longer verifies.
	resp = f.postJSON(t, "/api/v1/auth/logout", "not-a-token", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}
