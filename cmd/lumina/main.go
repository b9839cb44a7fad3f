package main

import (
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"lumina/internal/config"
	"lumina/internal/http/handlers"
	applog "lumina/internal/log"
	"lumina/internal/metrics"
	"lumina/internal/repos"
	"lumina/internal/services"
)

func main() {
	cfg := config.Load()
	applog.Setup(cfg.LogFile)

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	// Auth wiring
	userRepo := repos.NewUserRepo(db)
	authSvc := &services.AuthService{Users: userRepo}
	authH := &handlers.AuthHandler{Auth: authSvc}

	// Templates & app
	engine := html.New("./web/templates", ".html")
	engine.Reload(true)

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Log and show a friendly message
			applog.Error(c, "server.error", err, nil)
			// Avoid leaking internals; best-effort render
			if rerr := c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{
				"Message": "Something went wrong. Please try again.",
			}); rerr != nil {
				return c.Status(fiber.StatusInternalServerError).SendString("Something went wrong. Please try again.")
			}
			return nil
		},
	})
	// Global body size guard; image uploads need more headroom than forms
	app.Server().MaxRequestBodySize = 5 << 20 // 5 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(metrics.Middleware())
	// Attach user to context if logged in (for templates/headers)
	app.Use(func(c *fiber.Ctx) error {
		if sid := c.Cookies("sid"); sid != "" {
			if u, err := authSvc.CurrentUser(sid); err == nil && u != nil {
				c.Locals("user", u)
			}
		}
		return c.Next()
	})
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			p := string(c.Request().URI().Path())
			return strings.HasPrefix(p, "/static/") || strings.HasPrefix(p, "/media/")
		},
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   false, // set true behind HTTPS
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			formTok := c.FormValue("csrf")
			applog.Security(c, "csrf.fail", map[string]any{"form": formTok})
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Security check failed. Please refresh and try again."})
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok := c.Locals("csrf"); tok != nil {
			c.Locals("CSRFToken", tok.(string))
		}
		return c.Next()
	})

	// ---------- Static assets ----------
	mediaDir := cfg.MediaDir
	if !filepath.IsAbs(mediaDir) {
		if abs, err := filepath.Abs(mediaDir); err == nil {
			mediaDir = abs
		}
	}
	log.Printf("[static] /static -> ./web/static")
	log.Printf("[static] /media  -> %s", mediaDir)

	app.Static("/static", "./web/static")
	// Guarded media to avoid traversal
	app.Get("/media/*", func(c *fiber.Ctx) error {
		path := c.Params("*")
		rawLower := strings.ToLower(path)
		// Block encoded traversal attempts as well as raw .. or null bytes
		if strings.Contains(rawLower, "..") || strings.Contains(rawLower, "%2e") || strings.Contains(rawLower, "\x00") {
			applog.Security(c, "media.traversal.block", map[string]any{"path": path})
			return c.SendStatus(fiber.StatusNotFound)
		}
		clean := filepath.Clean(path)
		if clean == "." || strings.Contains(clean, "..") || filepath.IsAbs(clean) {
			applog.Security(c, "media.traversal.block", map[string]any{"path": path})
			return c.SendStatus(fiber.StatusNotFound)
		}
		full := filepath.Join(mediaDir, clean)
		return c.SendFile(full, true)
	})

	// ---------- App handlers ----------
	deps := handlers.NewDeps(db, cfg, authSvc)

	// Storefront
	app.Get("/", deps.CatalogHandler.Home)
	app.Get("/products", limiter.New(limiter.Config{Max: 30, Expiration: time.Minute}), deps.CatalogHandler.Products)

	// Cart & checkout
	app.Get("/cart", deps.CartHandler.View)
	app.Post("/cart", deps.CartHandler.Add)
	app.Post("/cart/update", deps.CartHandler.Update)
	app.Post("/cart/remove", deps.CartHandler.Remove)
	app.Post("/cart/clear", deps.CartHandler.Clear)
	app.Get("/checkout", deps.OrderHandler.Checkout)
	app.Post("/orders", deps.OrderHandler.Place)
	app.Get("/order/:id", deps.OrderHandler.View)
	app.Get("/order/:id/invoice", deps.OrderHandler.Invoice)

	// Reseller applications
	app.Get("/reseller-application", deps.ResellerHandler.Form)
	app.Post("/reseller-application", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.reseller.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).Render("reseller_application", fiber.Map{"Err": "Too many submissions. Please try again later."})
		},
	}), deps.ResellerHandler.Submit)

	// Auth routes (logins throttled)
	loginLimiter := func(view string) fiber.Handler {
		return limiter.New(limiter.Config{
			Max:        5,
			Expiration: 10 * time.Minute,
			LimitReached: func(c *fiber.Ctx) error {
				applog.Security(c, "rate.login.hit", nil)
				return c.Status(fiber.StatusTooManyRequests).Render(view, fiber.Map{"Err": "Too many attempts. Please try again later."})
			},
		})
	}
	app.Get("/b2b-login", authH.B2BLoginForm)
	app.Post("/b2b-login", loginLimiter("b2b_login"), authH.B2BLogin)
	app.Get("/admin-login", authH.AdminLoginForm)
	app.Post("/admin-login", loginLimiter("admin_login"), authH.AdminLogin)
	app.Post("/logout", authH.Logout)

	// Wholesale portal
	app.Get("/b2b-dashboard", handlers.RequireB2B(authSvc), deps.B2BHandler.Dashboard)

	// Admin
	adminH := deps.AdminHandler
	admin := app.Group("/admin", handlers.RequireAdmin(authSvc))
	admin.Get("/", adminH.Dashboard)
	admin.Get("/products", adminH.ProductsPage)
	admin.Post("/products", adminH.CreateProduct)
	admin.Post("/products/:id", adminH.UpdateProduct)
	admin.Post("/products/:id/delete", adminH.DeleteProduct)
	admin.Get("/categories", adminH.CategoriesPage)
	admin.Post("/categories", adminH.CreateCategory)
	admin.Post("/categories/:id", adminH.UpdateCategory)
	admin.Post("/categories/:id/delete", adminH.DeleteCategory)
	admin.Get("/applications", adminH.ApplicationsPage)
	admin.Post("/applications/:id/approve", adminH.ApproveApplication)
	admin.Post("/applications/:id/reject", adminH.RejectApplication)
	admin.Get("/orders", adminH.OrdersPage)
	admin.Post("/orders/:id/status", adminH.UpdateOrderStatus)
	admin.Post("/upload", adminH.Upload)

	// Health, metrics & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Page not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
