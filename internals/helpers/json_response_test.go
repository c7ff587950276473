// file: internals/helpers/json_response_test.go
package helper

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeErrorBody(t *testing.T, r io.Reader) ErrorResponse {
	t.Helper()
	var body ErrorResponse
	require.NoError(t, json.NewDecoder(r).Decode(&body))
	return body
}

// FromFiberError dipasang sebagai fiber.Config.ErrorHandler, jadi error
// yang lolos dari middleware (fiber.NewError) harus tetap keluar sebagai
// envelope JSON, bukan text/plain bawaan fiber.
func TestFromFiberErrorAsAppErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: FromFiberError})
	app.Get("/protected", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Missing token")
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/protected", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON)

	body := decodeErrorBody(t, resp.Body)
	assert.False(t, body.Success)
	assert.Equal(t, "UNAUTHORIZED", body.ErrorCode)
	assert.Equal(t, "Unauthorized - Missing token", body.Message)
}

func TestFromFiberErrorAsAppErrorHandlerFallback500(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: FromFiberError})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return errors.New("koneksi database putus")
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/boom", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	body := decodeErrorBody(t, resp.Body)
	assert.False(t, body.Success)
	assert.Equal(t, "INTERNAL_ERROR", body.ErrorCode)
}

func TestStatusToErrorCode(t *testing.T) {
	cases := map[int]string{
		fiber.StatusBadRequest:          "BAD_REQUEST",
		fiber.StatusUnauthorized:        "UNAUTHORIZED",
		fiber.StatusForbidden:           "FORBIDDEN",
		fiber.StatusNotFound:            "NOT_FOUND",
		fiber.StatusConflict:            "CONFLICT",
		fiber.StatusUnprocessableEntity: "VALIDATION_ERROR",
		fiber.StatusBadGateway:          "INTERNAL_ERROR",
		fiber.StatusTeapot:              "ERROR",
	}
	for status, want := range cases {
		assert.Equal(t, want, statusToErrorCode(status), "status %d", status)
	}
}
