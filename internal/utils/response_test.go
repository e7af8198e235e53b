package utils

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func TestSendSuccessEnvelope(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return SendSuccess(c, "all good", fiber.Map{"value": 1})
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var envelope APIResponse
	require.NoError(t, json.Unmarshal(raw, &envelope))
	require.True(t, envelope.Success)
	require.Equal(t, "all good", envelope.Message)
	require.NotNil(t, envelope.Data)
}

func TestSendSuccessWithStatusDefaults(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return SendSuccessWithStatus(c, 0, "", nil)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var envelope APIResponse
	require.NoError(t, json.Unmarshal(raw, &envelope))
	require.Equal(t, "success", envelope.Message)
}

func TestSendErrorEnvelope(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return SendError(c, fiber.StatusConflict, "already processed")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var envelope APIResponse
	require.NoError(t, json.Unmarshal(raw, &envelope))
	require.False(t, envelope.Success)
	require.Equal(t, "already processed", envelope.Message)
}
