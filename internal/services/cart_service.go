package services

import (
	"errors"
	"fmt"

	"lumina/internal/domain"
	"lumina/internal/repos"
)

var ErrOutOfStock = errors.New("product is out of stock")

// BelowMinimumError rejects a wholesale add/update under the product's B2B
// quantity floor. The message names the minimum so the form can surface it.
type BelowMinimumError struct {
	Min int
}

func (e *BelowMinimumError) Error() string {
	return fmt.Sprintf("minimum quantity for B2B customers is %d", e.Min)
}

type CartService struct {
	Carts *repos.CartRepo
	Prods *repos.ProductRepo
}

func NewCartService(carts *repos.CartRepo, prods *repos.ProductRepo) *CartService {
	return &CartService{Carts: carts, Prods: prods}
}

// Add puts qty units in the session's cart at the price the viewer currently
// sees. The resolved price sticks to the line even if the role changes later.
func (s *CartService) Add(sessionID, productID string, qty int, u *domain.User) error {
	if qty < 1 {
		qty = 1
	}
	p, err := s.Prods.Get(productID)
	if err != nil {
		return err
	}
	if !p.InStock {
		return ErrOutOfStock
	}
	priced := PriceFor(p, u)
	if qty < priced.MinQty {
		return &BelowMinimumError{Min: priced.MinQty}
	}
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return err
	}
	channel := domain.ChannelB2C
	if priced.Wholesale {
		channel = domain.ChannelB2B
	}
	return s.Carts.UpsertItem(cartID, productID, qty, priced.Price, channel)
}

// Update sets a line's quantity, enforcing the same floor as Add. Zero removes
// the line.
func (s *CartService) Update(sessionID, productID string, qty int, u *domain.User) error {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return err
	}
	if qty <= 0 {
		return s.Carts.RemoveItem(cartID, productID)
	}
	p, err := s.Prods.Get(productID)
	if err != nil {
		return err
	}
	if min := PriceFor(p, u).MinQty; qty < min {
		return &BelowMinimumError{Min: min}
	}
	return s.Carts.SetQty(cartID, productID, qty)
}

func (s *CartService) Remove(sessionID, productID string) error {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return err
	}
	return s.Carts.RemoveItem(cartID, productID)
}

func (s *CartService) Clear(sessionID string) error {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return err
	}
	return s.Carts.Clear(cartID)
}

type CartView struct {
	Items []repos.CartItemRow
	Total float64
	Count int
}

func (s *CartService) View(sessionID string) (CartView, error) {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return CartView{}, err
	}
	items, err := s.Carts.Items(cartID)
	if err != nil {
		return CartView{}, err
	}
	cv := CartView{Items: items}
	for _, it := range items {
		cv.Total += it.Subtotal
		cv.Count += it.Qty
	}
	return cv, nil
}
