package utils_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/learnify-app/learnify-api/internal/utils"
)

func performRequest(t *testing.T, app *fiber.App) (int, utils.APIResponse) {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var payload utils.APIResponse
	require.NoError(t, json.Unmarshal(body, &payload))

	return resp.StatusCode, payload
}

func TestSendSuccessDefaultsMessage(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return utils.SendSuccess(c, "", map[string]string{"hello": "world"})
	})

	status, payload := performRequest(t, app)
	require.Equal(t, http.StatusOK, status)
	require.True(t, payload.Success)
	require.Equal(t, "success", payload.Message)
}

func TestSendErrorPopulatesErrorField(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return utils.SendError(c, fiber.StatusNotFound, "Submission not found")
	})

	status, payload := performRequest(t, app)
	require.Equal(t, http.StatusNotFound, status)
	require.False(t, payload.Success)
	require.Equal(t, "Submission not found", payload.Error)
}

func TestSendValidationErrorCarriesDetails(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return utils.SendValidationError(c, []utils.FieldError{
			{Field: "title", Rule: "required", Message: "title is required"},
		})
	})

	status, payload := performRequest(t, app)
	require.Equal(t, http.StatusBadRequest, status)
	require.False(t, payload.Success)
	require.Len(t, payload.Details, 1)
	require.Equal(t, "title", payload.Details[0].Field)
}
