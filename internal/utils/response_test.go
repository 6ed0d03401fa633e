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

func performRequest(t *testing.T, handler fiber.Handler) (int, APIResponse) {
	t.Helper()
	app := fiber.New()
	app.Get("/", handler)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var envelope APIResponse
	require.NoError(t, json.Unmarshal(body, &envelope))
	return resp.StatusCode, envelope
}

func TestSendSuccess(t *testing.T) {
	status, envelope := performRequest(t, func(c *fiber.Ctx) error {
		return SendSuccess(c, "record retrieved", map[string]string{"name": "CS"})
	})

	require.Equal(t, http.StatusOK, status)
	require.True(t, envelope.Success)
	require.Equal(t, "record retrieved", envelope.Message)
	require.NotNil(t, envelope.Data)
	require.Nil(t, envelope.Pagination)
}

func TestSendSuccessWithStatusDefaultsMessage(t *testing.T) {
	status, envelope := performRequest(t, func(c *fiber.Ctx) error {
		return SendSuccessWithStatus(c, fiber.StatusCreated, "", nil)
	})

	require.Equal(t, http.StatusCreated, status)
	require.Equal(t, "success", envelope.Message)
}

func TestSendPage(t *testing.T) {
	status, envelope := performRequest(t, func(c *fiber.Ctx) error {
		return SendPage(c, "items retrieved", []int{1, 2}, Pagination{Page: 2, Limit: 20, Total: 45, TotalPages: 3})
	})

	require.Equal(t, http.StatusOK, status)
	require.True(t, envelope.Success)
	require.NotNil(t, envelope.Pagination)
	require.Equal(t, 2, envelope.Pagination.Page)
	require.Equal(t, int64(45), envelope.Pagination.Total)
	require.Equal(t, 3, envelope.Pagination.TotalPages)
}

func TestSendError(t *testing.T) {
	status, envelope := performRequest(t, func(c *fiber.Ctx) error {
		return SendError(c, fiber.StatusNotFound, "record not found")
	})

	require.Equal(t, http.StatusNotFound, status)
	require.False(t, envelope.Success)
	require.Equal(t, "record not found", envelope.Message)
	require.Empty(t, envelope.Errors)
}

func TestSendFieldErrors(t *testing.T) {
	status, envelope := performRequest(t, func(c *fiber.Ctx) error {
		return SendFieldErrors(c, fiber.StatusBadRequest, "", map[string]string{"email": "already in use"})
	})

	require.Equal(t, http.StatusBadRequest, status)
	require.False(t, envelope.Success)
	require.Equal(t, "validation failed", envelope.Message)
	require.Equal(t, "already in use", envelope.Errors["email"])
}
