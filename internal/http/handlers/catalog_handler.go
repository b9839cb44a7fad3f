package handlers

import (
	"strings"

	applog "lumina/internal/log"
	"lumina/internal/services"
	"lumina/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CatalogHandler struct {
	Catalog *services.CatalogService
	Cart    *services.CartService
}

func (h *CatalogHandler) Home(c *fiber.Ctx) error {
	cats, err := h.Catalog.ListCategories()
	if err != nil {
		applog.Error(c, "home.load", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load the store"})
	}
	featured, err := h.Catalog.ListProducts("", "", currentUser(c), 1, 4)
	if err != nil {
		applog.Error(c, "home.load", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load the store"})
	}
	return render(c, "home", fiber.Map{"Categories": cats, "Featured": featured})
}

// Products lists the catalog with category and keyword filters. Prices are
// resolved per viewer: approved wholesale accounts see the B2B price and
// minimum quantity.
func (h *CatalogHandler) Products(c *fiber.Ctx) error {
	u := currentUser(c)

	catID := strings.TrimSpace(c.Query("category"))
	if catID != "" {
		if _, ok := validate.ID(catID); !ok {
			applog.Security(c, "validation.fail", map[string]any{"field": "category"})
			catID = ""
		}
	}
	q := ""
	if rawQ := strings.TrimSpace(c.Query("q")); rawQ != "" {
		valid, ok := validate.Q(rawQ)
		if !ok {
			applog.Security(c, "validation.fail", map[string]any{"field": "q", "value": rawQ})
			return c.Status(fiber.StatusBadRequest).Render("products", fiber.Map{
				"Products": []any{}, "Err": "Enter a valid keyword (letters/numbers only)",
			})
		}
		q = strings.ToLower(valid)
	}

	products, err := h.Catalog.ListProducts(catID, q, u, 1, 24)
	if err != nil {
		applog.Error(c, "products.load", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load products. Please retry."})
	}
	cats, _ := h.Catalog.ListCategories()

	return render(c, "products", fiber.Map{
		"Products": products, "Categories": cats,
		"CategoryID": catID, "Q": q,
		"Wholesale": u.Wholesale(),
	})
}
