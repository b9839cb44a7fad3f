package invoice_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"lumina/internal/invoice"
	"lumina/internal/repos"
)

func TestRenderProducesPDF(t *testing.T) {
	o := repos.OrderRow{
		ID:       "ord-123",
		Channel:  "B2C",
		Customer: "Jane Doe",
		Email:    "jane@example.com",
		Phone:    "+1 555 0100",
		Address:  "1 Main St",
		City:     "Springfield",
		State:    "IL",
		ZipCode:  "62701",
		Total:    900,
		Notes:    "Gift wrap please",
	}
	items := []repos.OrderItemRow{
		{ProductID: "necklace-pearl", Name: "Pearl Necklace", Qty: 2, UnitPrice: 450, Subtotal: 900},
	}

	pdf, err := invoice.Render("Lumina Jewelry", o, items)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(pdf[:5]), "%PDF-"), "output is not a PDF")
	require.Greater(t, len(pdf), 1000)
}

func TestRenderLongOrderSpansPages(t *testing.T) {
	o := repos.OrderRow{ID: "ord-bulk", Channel: "B2B", CompanyName: "ABC Jewelry Store", Customer: "ABC Buyer"}
	items := make([]repos.OrderItemRow, 0, 60)
	for i := 0; i < 60; i++ {
		items = append(items, repos.OrderItemRow{
			ProductID: "earrings-hoop", Name: "Gold Hoop Earrings",
			Qty: 10, UnitPrice: 130, Subtotal: 1300,
		})
		o.Total += 1300
	}

	short, err := invoice.Render("Lumina Jewelry", o, items[:1])
	require.NoError(t, err)
	long, err := invoice.Render("Lumina Jewelry", o, items)
	require.NoError(t, err)
	// 60 lines cannot fit one A4 page; the renderer must have added pages.
	require.Greater(t, pageCount(long), pageCount(short))
}

func pageCount(pdf []byte) int {
	s := string(pdf)
	return strings.Count(s, "/Type /Page") - strings.Count(s, "/Type /Pages")
}

func TestRenderTruncatesNameOnRunes(t *testing.T) {
	// 50 multi-byte runes; a byte-wise cut would split one in half.
	name := strings.Repeat("é", 50)
	o := repos.OrderRow{ID: "ord-utf8", Channel: "B2C", Customer: "Jane Doe", Total: 10}
	items := []repos.OrderItemRow{{ProductID: "p", Name: name, Qty: 1, UnitPrice: 10, Subtotal: 10}}

	pdf, err := invoice.Render("Lumina Jewelry", o, items)
	require.NoError(t, err)
	require.NotEmpty(t, pdf)
}

func TestRenderWholesaleOrder(t *testing.T) {
	o := repos.OrderRow{
		ID: "ord-456", Channel: "B2B", CompanyName: "ABC Jewelry Store",
		Customer: "ABC Buyer", Email: "buyer@abcjewelry.test",
		Total: 1600,
	}
	items := []repos.OrderItemRow{
		{ProductID: "necklace-pearl", Name: "Pearl Necklace", Qty: 5, UnitPrice: 320, Subtotal: 1600},
	}

	pdf, err := invoice.Render("Lumina Jewelry", o, items)
	require.NoError(t, err)
	require.NotEmpty(t, pdf)
}
