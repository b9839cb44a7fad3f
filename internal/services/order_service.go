package services

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"lumina/internal/domain"
	"lumina/internal/repos"

	"github.com/google/uuid"
)

var ErrEmptyCart = errors.New("cart empty")

type Contact struct {
	Name    string
	Email   string
	Phone   string
	Address string
	City    string
	State   string
	ZipCode string
	Notes   string
}

type OrderService struct {
	Carts  *repos.CartRepo
	Orders *repos.OrderRepo
	// Seller number for the wa.me handoff, digits only.
	WhatsAppNumber string
}

func NewOrderService(carts *repos.CartRepo, orders *repos.OrderRepo, waNumber string) *OrderService {
	return &OrderService{Carts: carts, Orders: orders, WhatsAppNumber: waNumber}
}

// PlacedOrder is the checkout result handed to the confirmation page.
type PlacedOrder struct {
	ID          string
	Total       float64
	Channel     string
	WhatsAppURL string
}

// Place records the order from the session's cart, builds the WhatsApp
// handoff link and clears the cart. There is no payment step and no
// idempotency guard: submitting twice records two orders.
func (s *OrderService) Place(sessionID string, contact Contact, u *domain.User) (PlacedOrder, error) {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return PlacedOrder{}, err
	}
	items, err := s.Carts.Items(cartID)
	if err != nil {
		return PlacedOrder{}, err
	}
	if len(items) == 0 {
		return PlacedOrder{}, ErrEmptyCart
	}

	total := 0.0
	for _, it := range items {
		total += it.UnitPrice * float64(it.Qty)
	}

	channel := domain.ChannelB2C
	company := ""
	if u.Wholesale() {
		channel = domain.ChannelB2B
		company = u.Company
	}

	o := repos.OrderRow{
		ID:          uuid.NewString(),
		SessionID:   sessionID,
		Channel:     channel,
		CompanyName: company,
		Customer:    contact.Name,
		Email:       contact.Email,
		Phone:       contact.Phone,
		Address:     contact.Address,
		City:        contact.City,
		State:       contact.State,
		ZipCode:     contact.ZipCode,
		Notes:       contact.Notes,
		Total:       total,
	}
	if err := s.Orders.Create(o); err != nil {
		return PlacedOrder{}, err
	}
	lines := make([]repos.OrderItemRow, 0, len(items))
	for _, it := range items {
		if err := s.Orders.InsertItem(o.ID, it.ProductID, it.Name, it.Qty, it.UnitPrice); err != nil {
			return PlacedOrder{}, err
		}
		lines = append(lines, repos.OrderItemRow{
			ProductID: it.ProductID, Name: it.Name, Qty: it.Qty,
			UnitPrice: it.UnitPrice, Subtotal: it.Subtotal,
		})
	}
	_ = s.Carts.Clear(cartID)

	return PlacedOrder{
		ID:          o.ID,
		Total:       total,
		Channel:     channel,
		WhatsAppURL: s.WhatsAppURLFor(o, lines),
	}, nil
}

// WhatsAppURLFor builds the pre-filled wa.me message that is the entire order
// submission transport. Fire and forget: nothing confirms delivery.
func (s *OrderService) WhatsAppURLFor(o repos.OrderRow, items []repos.OrderItemRow) string {
	var b strings.Builder
	b.WriteString("*NEW JEWELRY ORDER*\n\n")
	fmt.Fprintf(&b, "*Customer:* %s\n", o.Customer)
	fmt.Fprintf(&b, "*Email:* %s\n", o.Email)
	fmt.Fprintf(&b, "*Phone:* %s\n", o.Phone)
	fmt.Fprintf(&b, "*Address:* %s, %s, %s %s\n\n", o.Address, o.City, o.State, o.ZipCode)
	if o.CompanyName != "" {
		fmt.Fprintf(&b, "*B2B Customer:* %s\n\n", o.CompanyName)
	}
	b.WriteString("*Items Ordered:*\n")
	for _, it := range items {
		fmt.Fprintf(&b, "- %s - Qty: %d - $%.2f each\n", it.Name, it.Qty, it.UnitPrice)
	}
	fmt.Fprintf(&b, "\n*Total Amount: $%.2f*\n", o.Total)
	if o.Notes != "" {
		fmt.Fprintf(&b, "\n*Notes:* %s\n", o.Notes)
	}
	b.WriteString("\nDetailed invoice PDF will be shared separately")

	return "https://wa.me/" + s.WhatsAppNumber + "?text=" + url.QueryEscape(b.String())
}
