package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// ReceiptData is a fully formatted receipt; amounts are already rendered as strings.
type ReceiptData struct {
	StoreName    string
	StoreAddress string
	StorePhone   string
	StoreGSTIN   string

	OrderNumber  string
	OrderDate    string
	CustomerName string
	Aggregator   string

	Items   []ReceiptItem
	Charges []ReceiptCharge

	Subtotal          string
	TaxableCharges    string
	TaxableAmount     string
	CGST              string
	SGST              string
	NonTaxableCharges string
	Total             string

	PaymentMethod  string
	PaymentStatus  string
	AmountReceived string
	ChangeGiven    string
	Notes          string
}

type ReceiptItem struct {
	Description string
	Qty         int
	UnitPrice   string
	Amount      string
}

type ReceiptCharge struct {
	Name    string
	Taxable bool
	Amount  string
}

type PDFProvider struct{}

func New() Provider {
	return &PDFProvider{}
}

func (p *PDFProvider) GenerateReceipt(ctx context.Context, receipt ReceiptData) (io.Reader, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	// Store header
	m.AddRow(12,
		text.NewCol(12, receipt.StoreName, props.Text{
			Size:  18,
			Style: fontstyle.Bold,
			Align: align.Center,
		}),
	)
	header := col.New(12)
	top := 0.0
	for _, v := range []string{receipt.StoreAddress, phoneLine(receipt.StorePhone), gstinLine(receipt.StoreGSTIN)} {
		if v == "" {
			continue
		}
		header.Add(text.New(v, props.Text{Top: top, Size: 9, Align: align.Center}))
		top += 4
	}
	m.AddRow(top+4, header)
	m.AddRow(2, line.NewCol(12))

	// Order meta
	meta := col.New(6).Add(
		text.New("Order: "+receipt.OrderNumber, props.Text{Size: 9}),
		text.New("Date: "+receipt.OrderDate, props.Text{Top: 4, Size: 9}),
	)
	customer := col.New(6)
	if receipt.CustomerName != "" {
		customer.Add(text.New("Customer: "+receipt.CustomerName, props.Text{Size: 9, Align: align.Right}))
	}
	if receipt.Aggregator != "" {
		customer.Add(text.New("Ref: "+receipt.Aggregator, props.Text{Top: 4, Size: 9, Align: align.Right}))
	}
	m.AddRow(12, meta, customer)

	// Table Header
	m.AddRow(8,
		text.NewCol(6, "Item", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Qty", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Price", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Amount", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	for _, item := range receipt.Items {
		m.AddRow(7,
			text.NewCol(6, item.Description, props.Text{Size: 9}),
			text.NewCol(2, fmt.Sprintf("%d", item.Qty), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, item.UnitPrice, props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, item.Amount, props.Text{Size: 9, Align: align.Right}),
		)
	}
	m.AddRow(2, line.NewCol(12))

	totalRow(m, "Subtotal", receipt.Subtotal, false)
	for _, charge := range receipt.Charges {
		if charge.Taxable {
			totalRow(m, charge.Name, charge.Amount, false)
		}
	}
	totalRow(m, "Taxable amount", receipt.TaxableAmount, false)
	totalRow(m, "CGST", receipt.CGST, false)
	totalRow(m, "SGST", receipt.SGST, false)
	for _, charge := range receipt.Charges {
		if !charge.Taxable {
			totalRow(m, charge.Name, charge.Amount, false)
		}
	}
	totalRow(m, "Total", receipt.Total, true)

	m.AddRow(2, line.NewCol(12))
	totalRow(m, "Paid by", receipt.PaymentMethod+" ("+receipt.PaymentStatus+")", false)
	if receipt.AmountReceived != "" {
		totalRow(m, "Received", receipt.AmountReceived, false)
	}
	if receipt.ChangeGiven != "" {
		totalRow(m, "Change", receipt.ChangeGiven, false)
	}
	if receipt.Notes != "" {
		m.AddRow(10, text.NewCol(12, "Notes: "+receipt.Notes, props.Text{Size: 8, Top: 3}))
	}

	m.AddRow(12,
		text.NewCol(12, "Thank you!", props.Text{Size: 10, Style: fontstyle.Italic, Align: align.Center, Top: 4}),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}

	return bytes.NewReader(doc.GetBytes()), nil
}

func totalRow(m core.Maroto, label, value string, bold bool) {
	style := fontstyle.Normal
	if bold {
		style = fontstyle.Bold
	}
	m.AddRow(6,
		col.New(6),
		text.NewCol(3, label, props.Text{Size: 9, Style: style}),
		text.NewCol(3, value, props.Text{Size: 9, Style: style, Align: align.Right}),
	)
}

func phoneLine(v string) string {
	if v == "" {
		return ""
	}
	return "Phone: " + v
}

func gstinLine(v string) string {
	if v == "" {
		return ""
	}
	return "GSTIN: " + v
}
