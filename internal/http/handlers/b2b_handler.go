package handlers

import (
	applog "lumina/internal/log"
	"lumina/internal/repos"
	"lumina/internal/services"

	"github.com/gofiber/fiber/v2"
)

type B2BHandler struct {
	Orders *repos.OrderRepo
	Cart   *services.CartService
}

// Dashboard shows the wholesale account overview: order history, totals and
// the current cart. Reached only through RequireB2B.
func (h *B2BHandler) Dashboard(c *fiber.Ctx) error {
	u := currentUser(c)
	orders, err := h.Orders.ListByUser(u.ID)
	if err != nil {
		applog.Error(c, "b2b.dashboard.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load your dashboard"})
	}

	var orderValue float64
	for _, o := range orders {
		orderValue += o.Total
	}
	cv, _ := h.Cart.View(ensureSID(c))

	return render(c, "b2b_dashboard", fiber.Map{
		"Orders":     orders,
		"OrderValue": orderValue,
		"Cart":       cv,
	})
}
