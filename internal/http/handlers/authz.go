package handlers

import (
	applog "lumina/internal/log"
	"lumina/internal/services"

	"github.com/gofiber/fiber/v2"
)

func RequireAdmin(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return c.Redirect("/admin-login")
		}
		u, err := auth.CurrentUser(sid)
		if err != nil || u == nil || !u.IsAdmin() {
			applog.Security(c, "access.denied.admin", map[string]any{"sid": sid})
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Access denied"})
		}
		c.Locals("user", u)
		return c.Next()
	}
}

// RequireB2B enforces an approved wholesale account; others are sent to the
// B2B login page.
func RequireB2B(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return c.Redirect("/b2b-login")
		}
		u, err := auth.CurrentUser(sid)
		if err != nil || !u.Wholesale() {
			applog.Security(c, "access.denied.b2b", map[string]any{"sid": sid})
			return c.Redirect("/b2b-login")
		}
		c.Locals("user", u)
		return c.Next()
	}
}
