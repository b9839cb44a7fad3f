// Package invoice renders the printable order summary handed to the customer
// alongside the WhatsApp message.
package invoice

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"lumina/internal/repos"
)

// Render produces the invoice PDF for a recorded order: store header,
// customer block, channel line, item table and total.
func Render(storeName string, o repos.OrderRow, items []repos.OrderItemRow) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.AddPage()
	pageW, _ := doc.GetPageSize()

	doc.SetFont("Helvetica", "B", 20)
	doc.SetTextColor(40, 40, 40)
	doc.CellFormat(pageW-20, 10, storeName, "", 1, "C", false, 0, "")
	doc.SetFont("Helvetica", "", 14)
	doc.CellFormat(pageW-20, 8, "Order Invoice", "", 1, "C", false, 0, "")
	doc.Ln(8)

	doc.SetTextColor(0, 0, 0)
	doc.SetFont("Helvetica", "B", 12)
	doc.Cell(0, 8, "CUSTOMER INFORMATION:")
	doc.Ln(8)
	doc.SetFont("Helvetica", "", 10)
	line := func(s string) {
		doc.Cell(0, 6, s)
		doc.Ln(6)
	}
	line("Name: " + o.Customer)
	line("Email: " + o.Email)
	line("Phone: " + o.Phone)
	line("Address: " + o.Address)
	line(fmt.Sprintf("City: %s, %s %s", o.City, o.State, o.ZipCode))
	doc.Ln(6)

	doc.SetFont("Helvetica", "B", 12)
	doc.Cell(0, 8, "ORDER DETAILS:")
	doc.Ln(8)
	doc.SetFont("Helvetica", "", 10)
	if o.Channel == "B2B" {
		line("Customer Type: B2B Wholesale (" + o.CompanyName + ")")
	} else {
		line("Customer Type: B2C Retail")
	}
	created := o.CreatedAt
	if created == "" {
		created = time.Now().Format("2006-01-02")
	}
	line("Order: " + o.ID)
	line("Date: " + created)
	doc.Ln(6)

	// Item table
	tableHeader := func(y float64) float64 {
		doc.SetFont("Helvetica", "B", 10)
		doc.Text(20, y, "Item")
		doc.Text(120, y, "Qty")
		doc.Text(140, y, "Price")
		doc.Text(170, y, "Total")
		y += 3
		doc.Line(20, y, 190, y)
		doc.SetFont("Helvetica", "", 10)
		return y + 6
	}
	y := tableHeader(doc.GetY())

	_, pageH := doc.GetPageSize()
	for _, it := range items {
		if y > pageH-25 {
			doc.AddPage()
			y = tableHeader(20)
		}
		name := []rune(it.Name)
		if len(name) > 40 {
			name = name[:40]
		}
		doc.Text(20, y, string(name))
		doc.Text(120, y, fmt.Sprintf("%d", it.Qty))
		doc.Text(140, y, fmt.Sprintf("$%.2f", it.UnitPrice))
		doc.Text(170, y, fmt.Sprintf("$%.2f", it.Subtotal))
		y += 6
	}

	if y > pageH-40 {
		doc.AddPage()
		y = 20
	}
	y += 4
	doc.Line(20, y, 190, y)
	y += 8
	doc.SetFont("Helvetica", "B", 12)
	doc.Text(20, y, fmt.Sprintf("TOTAL AMOUNT: $%.2f", o.Total))

	if o.Notes != "" {
		y += 14
		doc.SetFont("Helvetica", "B", 10)
		doc.Text(20, y, "NOTES:")
		y += 6
		doc.SetFont("Helvetica", "", 10)
		doc.Text(20, y, o.Notes)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
