package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"lumina/internal/invoice"
	applog "lumina/internal/log"
	"lumina/internal/metrics"
	"lumina/internal/repos"
	"lumina/internal/services"
	"lumina/internal/validate"
)

type OrderHandler struct {
	Cart      *services.CartService
	Order     *services.OrderService
	Repo      *repos.OrderRepo
	StoreName string
}

func (h *OrderHandler) Checkout(c *fiber.Ctx) error {
	cv, err := h.Cart.View(ensureSID(c))
	if err != nil {
		applog.Error(c, "checkout.load", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load your cart"})
	}
	if len(cv.Items) == 0 {
		return c.Redirect("/cart")
	}
	return render(c, "checkout", fiber.Map{"Cart": cv})
}

// Place records the order and shows the confirmation page with the WhatsApp
// handoff link and invoice download.
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	sid := ensureSID(c)

	name, ok := validate.Name(c.FormValue("name"))
	if !ok {
		return h.formErr(c, "Enter your full name")
	}
	email, ok := validate.Email(c.FormValue("email"))
	if !ok {
		return h.formErr(c, "Enter a valid email address")
	}
	phone, ok := validate.Phone(c.FormValue("phone"))
	if !ok {
		return h.formErr(c, "Enter a valid phone number")
	}
	zip, ok := validate.Zip(c.FormValue("zipCode"))
	if !ok {
		return h.formErr(c, "Enter a valid ZIP code")
	}
	contact := services.Contact{
		Name:    name,
		Email:   email,
		Phone:   phone,
		Address: c.FormValue("address"),
		City:    c.FormValue("city"),
		State:   c.FormValue("state"),
		ZipCode: zip,
		Notes:   c.FormValue("notes"),
	}
	if contact.Address == "" || contact.City == "" || contact.State == "" {
		return h.formErr(c, "Enter your full shipping address")
	}

	placed, err := h.Order.Place(sid, contact, currentUser(c))
	if err != nil {
		if errors.Is(err, services.ErrEmptyCart) {
			return c.Redirect("/cart")
		}
		applog.Error(c, "order.place.fail", err, nil)
		return c.Status(fiber.StatusBadRequest).SendString("Could not place order. Please review your cart and try again.")
	}
	metrics.OrdersPlacedTotal.WithLabelValues(placed.Channel).Inc()
	applog.Audit(c, "order.place", map[string]any{
		"order_id": placed.ID,
		"total":    placed.Total,
		"channel":  placed.Channel,
	})

	return c.Redirect("/order/" + placed.ID)
}

func (h *OrderHandler) View(c *fiber.Ctx) error {
	oid, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Order not found"})
	}

	o, items, err := h.Repo.Get(oid)
	if err != nil {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Order not found"})
	}
	if !h.mayView(c, o) {
		applog.Security(c, "access.denied.order", map[string]any{"order_id": oid})
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Order not found"})
	}

	return render(c, "order", fiber.Map{
		"Order": o, "Items": items,
		"WhatsAppURL": h.Order.WhatsAppURLFor(o, items),
	})
}

// Invoice streams the printable PDF for an order the viewer owns.
func (h *OrderHandler) Invoice(c *fiber.Ctx) error {
	oid, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.SendStatus(fiber.StatusNotFound)
	}
	o, items, err := h.Repo.Get(oid)
	if err != nil {
		return c.SendStatus(fiber.StatusNotFound)
	}
	if !h.mayView(c, o) {
		applog.Security(c, "access.denied.invoice", map[string]any{"order_id": oid})
		return c.SendStatus(fiber.StatusNotFound)
	}

	pdf, err := invoice.Render(h.StoreName, o, items)
	if err != nil {
		applog.Error(c, "order.invoice.fail", err, map[string]any{"order_id": oid})
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="invoice-`+oid+`.pdf"`)
	return c.Send(pdf)
}

// mayView allows the placing session and admins.
func (h *OrderHandler) mayView(c *fiber.Ctx, o repos.OrderRow) bool {
	if sid := c.Cookies("sid"); sid != "" && sid == o.SessionID {
		return true
	}
	return currentUser(c).IsAdmin()
}

func (h *OrderHandler) formErr(c *fiber.Ctx, msg string) error {
	applog.Security(c, "validation.fail", map[string]any{"form": "checkout", "error": msg})
	cv, _ := h.Cart.View(ensureSID(c))
	return c.Status(fiber.StatusBadRequest).Render("checkout", fiber.Map{"Cart": cv, "Err": msg, "CSRFToken": c.Cookies("csrf_")})
}
