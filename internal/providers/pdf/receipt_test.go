package pdf

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateReceiptProducesPDF(t *testing.T) {
	p := New()
	r, err := p.GenerateReceipt(context.Background(), ReceiptData{
		StoreName:     "Kunafa Kingdom - Kompally",
		StoreAddress:  "Kompally, Hyderabad",
		StoreGSTIN:    "36ABCDE1234F1Z5",
		OrderNumber:   "1790001",
		OrderDate:     "2024-03-01 09:30",
		Items:         []ReceiptItem{{Description: "Baklava 250g", Qty: 2, UnitPrice: "250.00", Amount: "500.00"}},
		Charges:       []ReceiptCharge{{Name: "Packaging", Amount: "20.00"}},
		Subtotal:      "500.00",
		TaxableAmount: "500.00",
		CGST:          "45.00",
		SGST:          "45.00",
		Total:         "610.00",
		PaymentMethod: "Cash",
		PaymentStatus: "Paid",
		ChangeGiven:   "0.00",
	})
	require.NoError(t, err)

	body, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.True(t, len(body) > 4)
	assert.Equal(t, "%PDF", string(body[:4]))
}

func TestGenerateReceiptHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New().GenerateReceipt(ctx, ReceiptData{})
	assert.ErrorIs(t, err, context.Canceled)
}
