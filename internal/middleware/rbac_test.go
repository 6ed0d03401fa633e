package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/acadsuite/campus-api/internal/models"
)

func requireRoleApp(role string, guard fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Get("/guarded", func(c *fiber.Ctx) error {
		if role != "" {
			c.Locals("user_role", role)
		}
		return c.Next()
	}, guard, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestRequireRole(t *testing.T) {
	guard := RequireRole(models.RoleDeptAdmin, models.RoleSuperAdmin)

	cases := []struct {
		role string
		want int
	}{
		{"super_admin", http.StatusOK},
		{"dept_admin", http.StatusOK},
		{"Dept_Admin", http.StatusOK},
		{"faculty", http.StatusForbidden},
		{"student", http.StatusForbidden},
		{"", http.StatusForbidden},
		{"made_up", http.StatusForbidden},
	}

	for _, tc := range cases {
		app := requireRoleApp(tc.role, guard)
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/guarded", nil))
		require.NoError(t, err)
		require.Equal(t, tc.want, resp.StatusCode, "role=%q", tc.role)
	}
}
