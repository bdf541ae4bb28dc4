// Package pdf renders order invoices. It consumes pre-authorized display data
// only: no persistence, no ownership checks, callers round and format first.
package pdf

import (
	"fmt"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

type LineItem struct {
	Name       string
	Quantity   int
	BasePrice  float64
	FinalPrice float64
}

type InvoiceData struct {
	Number          string // short order id
	Date            string // already formatted YYYY-MM-DD
	Status          string
	PaymentMethod   string
	Notes           string
	Currency        string
	Items           []LineItem
	TotalTax        float64
	TotalCommission float64
	TotalAmount     float64
}

type BusinessData struct {
	Name         string
	ContactEmail string
	LogoURL      string
}

type ClientData struct {
	Name     string
	LastName string
	Email    string
	Address  string
}

// OrderInvoice renders the invoice document and returns its bytes.
func OrderInvoice(data InvoiceData, business BusinessData, client ClientData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithLeftMargin(15).
		WithRightMargin(15).
		WithTopMargin(15).
		Build()
	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(8, business.Name, props.Text{Size: 16, Style: fontstyle.Bold}),
		text.NewCol(4, "INVOICE #"+data.Number, props.Text{Size: 12, Align: align.Right}),
	)
	if business.ContactEmail != "" {
		m.AddRow(6, text.NewCol(12, business.ContactEmail, props.Text{Size: 9}))
	}
	m.AddRow(4, line.NewCol(12))

	m.AddRow(6, text.NewCol(12, "Billed to", props.Text{Size: 10, Style: fontstyle.Bold}))
	m.AddRow(5, text.NewCol(12, strings.TrimSpace(client.Name+" "+client.LastName), props.Text{Size: 10}))
	if client.Email != "" {
		m.AddRow(5, text.NewCol(12, client.Email, props.Text{Size: 9}))
	}
	if client.Address != "" {
		m.AddRow(5, text.NewCol(12, client.Address, props.Text{Size: 9}))
	}

	m.AddRow(8,
		text.NewCol(4, "Date: "+data.Date, props.Text{Size: 9}),
		text.NewCol(4, "Status: "+data.Status, props.Text{Size: 9}),
		text.NewCol(4, "Payment: "+data.PaymentMethod, props.Text{Size: 9}),
	)
	m.AddRow(4, line.NewCol(12))

	m.AddRow(7,
		text.NewCol(6, "Item", props.Text{Size: 9, Style: fontstyle.Bold}),
		text.NewCol(2, "Qty", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(2, "Unit price", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(2, "Total", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
	)
	rows := make([]core.Row, 0, len(data.Items))
	for _, it := range data.Items {
		rows = append(rows, row.New(6).Add(
			text.NewCol(6, it.Name, props.Text{Size: 9}),
			text.NewCol(2, fmt.Sprintf("%d", it.Quantity), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, money(it.BasePrice, data.Currency), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, money(it.FinalPrice, data.Currency), props.Text{Size: 9, Align: align.Right}),
		))
	}
	m.AddRows(rows...)
	m.AddRow(4, line.NewCol(12))

	m.AddRow(6,
		col.New(8),
		text.NewCol(2, "Tax", props.Text{Size: 9, Align: align.Right}),
		text.NewCol(2, money(data.TotalTax, data.Currency), props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(6,
		col.New(8),
		text.NewCol(2, "Commission", props.Text{Size: 9, Align: align.Right}),
		text.NewCol(2, money(data.TotalCommission, data.Currency), props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(8,
		col.New(8),
		text.NewCol(2, "Total", props.Text{Size: 11, Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(2, money(data.TotalAmount, data.Currency), props.Text{Size: 11, Style: fontstyle.Bold, Align: align.Right}),
	)

	if data.Notes != "" {
		m.AddRow(4, line.NewCol(12))
		m.AddRow(6, text.NewCol(12, "Notes: "+data.Notes, props.Text{Size: 8}))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}

func money(v float64, currency string) string {
	if currency == "" {
		return fmt.Sprintf("%.2f", v)
	}
	return fmt.Sprintf("%.2f %s", v, currency)
}
