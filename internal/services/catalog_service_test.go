package services_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"lumina/internal/domain"
	"lumina/internal/services"
)

func TestPriceForResolvesChannel(t *testing.T) {
	p := domain.Product{ID: "p1", B2CPrice: 450, B2BPrice: 320, MinQtyB2B: 5}

	// Anonymous and retail accounts see the B2C price with no floor.
	got := services.PriceFor(p, nil)
	require.Equal(t, 450.0, got.Price)
	require.Equal(t, 1, got.MinQty)
	require.False(t, got.Wholesale)

	customer := &domain.User{Role: domain.RoleCustomer}
	require.Equal(t, 450.0, services.PriceFor(p, customer).Price)

	// A B2B account only gets wholesale pricing once approved.
	pending := &domain.User{Role: domain.RoleB2B, Approved: false}
	require.Equal(t, 450.0, services.PriceFor(p, pending).Price)

	approved := &domain.User{Role: domain.RoleB2B, Approved: true}
	got = services.PriceFor(p, approved)
	require.Equal(t, 320.0, got.Price)
	require.Equal(t, 5, got.MinQty)
	require.True(t, got.Wholesale)
}
