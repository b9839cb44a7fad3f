package handlers

import (
	"errors"

	applog "lumina/internal/log"
	"lumina/internal/services"
	"lumina/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CartHandler struct {
	Cart *services.CartService
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	sid := ensureSID(c)
	cv, err := h.Cart.View(sid)
	if err != nil {
		applog.Error(c, "cart.view.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load your cart"})
	}
	return render(c, "cart", fiber.Map{"Cart": cv})
}

func (h *CartHandler) Add(c *fiber.Ctx) error {
	sid := ensureSID(c)
	productID, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(400).SendString("missing productId")
	}
	qty := validate.Qty(c.FormValue("qty"))

	if err := h.Cart.Add(sid, productID, qty, currentUser(c)); err != nil {
		var below *services.BelowMinimumError
		if errors.As(err, &below) || errors.Is(err, services.ErrOutOfStock) {
			applog.Security(c, "cart.add.reject", map[string]any{"product": productID, "qty": qty, "reason": err.Error()})
			cv, _ := h.Cart.View(sid)
			return c.Status(fiber.StatusBadRequest).Render("cart", fiber.Map{"Cart": cv, "Err": err.Error()})
		}
		applog.Error(c, "cart.add.fail", err, map[string]any{"product": productID})
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not add the item. Please try again."})
	}
	return c.Redirect("/cart")
}

func (h *CartHandler) Update(c *fiber.Ctx) error {
	sid := ensureSID(c)
	productID, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(400).SendString("missing productId")
	}
	qty := validate.Qty(c.FormValue("qty"))

	if err := h.Cart.Update(sid, productID, qty, currentUser(c)); err != nil {
		var below *services.BelowMinimumError
		if errors.As(err, &below) {
			cv, _ := h.Cart.View(sid)
			return c.Status(fiber.StatusBadRequest).Render("cart", fiber.Map{"Cart": cv, "Err": err.Error()})
		}
		applog.Error(c, "cart.update.fail", err, map[string]any{"product": productID})
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not update the cart"})
	}
	return c.Redirect("/cart")
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	sid := ensureSID(c)
	productID, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(400).SendString("missing productId")
	}
	if err := h.Cart.Remove(sid, productID); err != nil {
		applog.Error(c, "cart.remove.fail", err, map[string]any{"product": productID})
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not update the cart"})
	}
	return c.Redirect("/cart")
}

func (h *CartHandler) Clear(c *fiber.Ctx) error {
	sid := ensureSID(c)
	if err := h.Cart.Clear(sid); err != nil {
		applog.Error(c, "cart.clear.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not update the cart"})
	}
	return c.Redirect("/cart")
}
