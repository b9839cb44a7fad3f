package handlers

import (
	"time"

	"lumina/internal/log"
	"lumina/internal/services"
	"lumina/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Auth *services.AuthService
}

func (h *AuthHandler) B2BLoginForm(c *fiber.Ctx) error {
	return render(c, "b2b_login", fiber.Map{"Err": ""})
}

// B2BLogin signs a wholesale account in. Unapproved accounts are rejected
// the same way bad credentials are, without saying which.
func (h *AuthHandler) B2BLogin(c *fiber.Ctx) error {
	sid := ensureSID(c)
	email := c.FormValue("email")
	pass := c.FormValue("password")
	if _, ok := validate.Email(email); !ok {
		log.Security(c, "auth.b2b.fail", map[string]any{"email": email, "reason": "bad_format"})
		return c.Status(401).Render("b2b_login", fiber.Map{"Err": "Invalid B2B credentials or account not approved", "CSRFToken": c.Cookies("csrf_")})
	}

	u, err := h.Auth.Login(sid, email, pass)
	if err != nil || !u.Wholesale() {
		if err == nil {
			// Signed in but not an approved reseller; drop the session again.
			_ = h.Auth.Logout(sid)
		}
		log.Security(c, "auth.b2b.fail", map[string]any{"email": email})
		return c.Status(401).Render("b2b_login", fiber.Map{"Err": "Invalid B2B credentials or account not approved", "CSRFToken": c.Cookies("csrf_")})
	}

	log.Audit(c, "auth.b2b.success", map[string]any{"email": email})
	return c.Redirect("/b2b-dashboard")
}

func (h *AuthHandler) AdminLoginForm(c *fiber.Ctx) error {
	return render(c, "admin_login", fiber.Map{"Err": ""})
}

func (h *AuthHandler) AdminLogin(c *fiber.Ctx) error {
	sid := ensureSID(c)
	email := c.FormValue("email")
	pass := c.FormValue("password")
	if _, ok := validate.Email(email); !ok {
		log.Security(c, "auth.admin.fail", map[string]any{"email": email, "reason": "bad_format"})
		return c.Status(401).Render("admin_login", fiber.Map{"Err": "Invalid admin credentials", "CSRFToken": c.Cookies("csrf_")})
	}

	u, err := h.Auth.Login(sid, email, pass)
	if err != nil || !u.IsAdmin() {
		if err == nil {
			_ = h.Auth.Logout(sid)
		}
		log.Security(c, "auth.admin.fail", map[string]any{"email": email})
		return c.Status(401).Render("admin_login", fiber.Map{"Err": "Invalid admin credentials", "CSRFToken": c.Cookies("csrf_")})
	}

	log.Audit(c, "auth.admin.success", map[string]any{"email": email})
	return c.Redirect("/admin")
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := ensureSID(c)
	_ = h.Auth.Logout(sid)
	// Expire cookie
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   false,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	log.Audit(c, "auth.logout", map[string]any{"sid": sid})
	return c.Redirect("/")
}
