package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	"github.com/jmoiron/sqlx"

	"lumina/internal/config"
	"lumina/internal/http/handlers"
	applog "lumina/internal/log"
	"lumina/internal/repos"
	"lumina/internal/services"
)

// newApp builds the storefront the way main wires it, on a seeded in-memory
// database, minus the rate limiters.
func newApp(t *testing.T) (*fiber.App, *sqlx.DB) {
	t.Helper()
	cfg := config.Config{
		DBDSN:          ":memory:",
		MediaDir:       "../../web/media",
		StoreName:      "Lumina Jewelry",
		WhatsAppNumber: "15551234567",
	}
	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	userRepo := repos.NewUserRepo(db)
	authSvc := &services.AuthService{Users: userRepo}
	authH := &handlers.AuthHandler{Auth: authSvc}

	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			if rerr := c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{
				"Message": "Something went wrong. Please try again.",
			}); rerr != nil {
				return c.Status(fiber.StatusInternalServerError).SendString("Something went wrong. Please try again.")
			}
			return nil
		},
	})
	app.Use(requestid.New())
	app.Use(func(c *fiber.Ctx) error {
		if sid := c.Cookies("sid"); sid != "" {
			if u, err := authSvc.CurrentUser(sid); err == nil && u != nil {
				c.Locals("user", u)
			}
		}
		return c.Next()
	})
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", map[string]any{"form": c.FormValue("csrf")})
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Security check failed. Please refresh and try again."})
		},
	}))

	deps := handlers.NewDeps(db, cfg, authSvc)

	app.Get("/", deps.CatalogHandler.Home)
	app.Get("/products", deps.CatalogHandler.Products)
	app.Get("/cart", deps.CartHandler.View)
	app.Post("/cart", deps.CartHandler.Add)
	app.Get("/checkout", deps.OrderHandler.Checkout)
	app.Post("/orders", deps.OrderHandler.Place)
	app.Get("/order/:id", deps.OrderHandler.View)
	app.Get("/order/:id/invoice", deps.OrderHandler.Invoice)
	app.Get("/reseller-application", deps.ResellerHandler.Form)
	app.Post("/reseller-application", deps.ResellerHandler.Submit)
	app.Get("/b2b-login", authH.B2BLoginForm)
	app.Post("/b2b-login", authH.B2BLogin)
	app.Get("/b2b-dashboard", handlers.RequireB2B(authSvc), deps.B2BHandler.Dashboard)

	admin := app.Group("/admin", handlers.RequireAdmin(authSvc))
	admin.Get("/", deps.AdminHandler.Dashboard)
	admin.Get("/applications", deps.AdminHandler.ApplicationsPage)
	admin.Post("/applications/:id/approve", deps.AdminHandler.ApproveApplication)

	return app, db
}

func cookieValue(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

// csrfToken primes a csrf cookie by fetching a form page.
func csrfToken(t *testing.T, app *fiber.App, page string) string {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", page, nil))
	if err != nil {
		t.Fatal(err)
	}
	tok := cookieValue(resp, "csrf_")
	if tok == "" {
		t.Fatal("csrf token missing")
	}
	return tok
}

func postForm(app *fiber.App, path, tok string, form string, cookies ...*http.Cookie) (*http.Response, error) {
	req := httptest.NewRequest("POST", path, strings.NewReader("csrf="+tok+"&"+form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "csrf_", Value: tok})
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return app.Test(req)
}
