// internals/middlewares/auth/role_middleware_test.go
package auth

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sekolahku_backend/internals/constants"
	helper "sekolahku_backend/internals/helpers"
)

func newRoleTestApp(role string) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: helper.FromFiberError})
	if role != "" {
		app.Use(func(c *fiber.Ctx) error {
			c.Locals("user_role", role)
			return c.Next()
		})
	}
	app.Get("/users",
		OnlyRoles(constants.RoleErrorAdmin("manajemen user"), constants.AdminOnly...),
		func(c *fiber.Ctx) error {
			return helper.JsonOK(c, "ok", nil)
		})
	return app
}

func doRoleRequest(t *testing.T, role string) (int, helper.ErrorResponse) {
	t.Helper()
	app := newRoleTestApp(role)
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/users", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	var body helper.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestOnlyRolesAllowsListedRole(t *testing.T) {
	status, body := doRoleRequest(t, constants.RoleAdmin)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Empty(t, body.ErrorCode)
}

// Role di luar daftar harus ditolak 403 dengan envelope yang sama
// seperti error dari controller (success=false + error_code).
func TestOnlyRolesRejectsOtherRoleWithEnvelope(t *testing.T) {
	status, body := doRoleRequest(t, constants.RoleGuru)
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.False(t, body.Success)
	assert.Equal(t, "FORBIDDEN", body.ErrorCode)
	assert.Equal(t, constants.RoleErrorAdmin("manajemen user"), body.Message)
}

func TestOnlyRolesMissingRoleReturns401Envelope(t *testing.T) {
	status, body := doRoleRequest(t, "")
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.False(t, body.Success)
	assert.Equal(t, "UNAUTHORIZED", body.ErrorCode)
}
