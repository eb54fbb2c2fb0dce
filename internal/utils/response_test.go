package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func performRequest(t *testing.T, handler fiber.Handler) APIResponse {
	t.Helper()

	app := fiber.New()
	app.Get("/", handler)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	var body APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestSendSuccessEnvelope(t *testing.T) {
	body := performRequest(t, func(c *fiber.Ctx) error {
		return SendSuccess(c, "fetched", fiber.Map{"id": 1})
	})

	require.Equal(t, fiber.StatusOK, body.StatusCode)
	require.True(t, body.Success)
	require.Equal(t, "fetched", body.Message)
	require.NotNil(t, body.Data)
}

func TestSendErrorEnvelope(t *testing.T) {
	body := performRequest(t, func(c *fiber.Ctx) error {
		return SendError(c, fiber.StatusForbidden, "nope")
	})

	require.Equal(t, fiber.StatusForbidden, body.StatusCode)
	require.False(t, body.Success)
	require.Equal(t, "nope", body.Message)
	require.Nil(t, body.Data)
}

func TestSuccessTracksStatusCode(t *testing.T) {
	body := performRequest(t, func(c *fiber.Ctx) error {
		return Send(c, fiber.StatusCreated, "", nil)
	})

	require.Equal(t, fiber.StatusCreated, body.StatusCode)
	require.True(t, body.Success)
	require.Equal(t, "success", body.Message)
}
