package receipt

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	catalogdomain "github.com/smallbiznis/pos/internal/catalog/domain"
	orderdomain "github.com/smallbiznis/pos/internal/order/domain"
	"github.com/smallbiznis/pos/internal/providers/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockOrders struct {
	mock.Mock
}

func (m *mockOrders) Create(ctx context.Context, req orderdomain.CreateRequest) (*orderdomain.Order, error) {
	args := m.Called(ctx, req)
	order, _ := args.Get(0).(*orderdomain.Order)
	return order, args.Error(1)
}

func (m *mockOrders) Get(ctx context.Context, id string) (*orderdomain.Order, error) {
	args := m.Called(ctx, id)
	order, _ := args.Get(0).(*orderdomain.Order)
	return order, args.Error(1)
}

type capturingRenderer struct {
	got pdf.ReceiptData
	err error
}

func (r *capturingRenderer) GenerateReceipt(_ context.Context, data pdf.ReceiptData) (io.Reader, error) {
	r.got = data
	if r.err != nil {
		return nil, r.err
	}
	return bytes.NewReader([]byte("%PDF-1.3 test")), nil
}

func strPtr(s string) *string { return &s }

func sampleOrder() *orderdomain.Order {
	chargeID := uuid.New()
	return &orderdomain.Order{
		ID:                             uuid.New(),
		OrderNumber:                    "1789012345678901234",
		CustomerName:                   strPtr("Ayesha"),
		AggregatorID:                   strPtr("ZMT-88"),
		Subtotal:                       decimal.NewFromInt(500),
		AppliedChargesAmountTaxable:    decimal.Zero,
		AppliedChargesAmountNontaxable: decimal.NewFromInt(20),
		TaxableAmount:                  decimal.NewFromInt(500),
		CGSTAmount:                     decimal.NewFromInt(45),
		SGSTAmount:                     decimal.NewFromInt(45),
		TotalAmount:                    decimal.NewFromInt(610),
		PaymentMethod:                  orderdomain.PaymentZomato,
		PaymentStatus:                  orderdomain.PaymentPaid,
		CreatedAt:                      time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		Store: &catalogdomain.Store{
			Name:        "Kompally Branch",
			PhoneNumber: strPtr("+91 40 0000 0001"),
		},
		Items: []orderdomain.OrderItem{{
			Quantity:   2,
			UnitPrice:  decimal.NewFromInt(250),
			TotalPrice: decimal.NewFromInt(500),
			Variant: &catalogdomain.ProductVariant{
				Name:    "Regular",
				Product: &catalogdomain.Product{Name: "Classic Cheese Kunafa"},
			},
		}},
		AppliedCharges: []orderdomain.OrderAppliedCharge{{
			ChargeID:      chargeID,
			AmountCharged: decimal.NewFromInt(20),
			Charge:        &catalogdomain.Charge{ID: chargeID, Name: "Packaging Charge"},
		}},
	}
}

func TestBuildDataFormatsOrder(t *testing.T) {
	data := BuildData(sampleOrder())

	assert.Equal(t, "Kompally Branch", data.StoreName)
	assert.Equal(t, "+91 40 0000 0001", data.StorePhone)
	assert.Equal(t, "14 Mar 2026 09:30 UTC", data.OrderDate)
	assert.Equal(t, "Zomato ZMT-88", data.Aggregator)
	assert.Equal(t, "500.00", data.Subtotal)
	assert.Equal(t, "45.00", data.CGST)
	assert.Equal(t, "20.00", data.NonTaxableCharges)
	assert.Equal(t, "610.00", data.Total)
	assert.Empty(t, data.AmountReceived)
	assert.Empty(t, data.ChangeGiven)

	require.Len(t, data.Items, 1)
	assert.Equal(t, "Classic Cheese Kunafa (Regular)", data.Items[0].Description)
	assert.Equal(t, "250.00", data.Items[0].UnitPrice)
	require.Len(t, data.Charges, 1)
	assert.Equal(t, "Packaging Charge", data.Charges[0].Name)
	assert.False(t, data.Charges[0].Taxable)
}

func TestBuildDataCashShowsChange(t *testing.T) {
	order := sampleOrder()
	order.PaymentMethod = orderdomain.PaymentCash
	order.AmountReceived = decimal.NewNullDecimal(decimal.NewFromInt(700))
	order.ChangeGiven = decimal.NewNullDecimal(decimal.NewFromInt(90))

	data := BuildData(order)
	assert.Empty(t, data.Aggregator)
	assert.Equal(t, "700.00", data.AmountReceived)
	assert.Equal(t, "90.00", data.ChangeGiven)
}

func TestRenderReturnsPDF(t *testing.T) {
	order := sampleOrder()
	orders := &mockOrders{}
	orders.On("Get", mock.Anything, order.ID.String()).Return(order, nil)
	renderer := &capturingRenderer{}

	svc := New(Params{Log: zap.NewNop(), Orders: orders, Renderer: renderer})
	got, err := svc.Render(context.Background(), order.ID.String())
	require.NoError(t, err)

	assert.Equal(t, "receipt-1789012345678901234.pdf", got.Filename)
	assert.True(t, bytes.HasPrefix(got.Body, []byte("%PDF")))
	assert.Equal(t, order.OrderNumber, renderer.got.OrderNumber)
	orders.AssertExpectations(t)
}

func TestRenderPropagatesLookupErrors(t *testing.T) {
	orders := &mockOrders{}
	orders.On("Get", mock.Anything, "missing").Return(nil, orderdomain.ErrInvalidID)

	svc := New(Params{Log: zap.NewNop(), Orders: orders, Renderer: &capturingRenderer{}})
	_, err := svc.Render(context.Background(), "missing")
	assert.ErrorIs(t, err, orderdomain.ErrInvalidID)
}

func TestRenderWrapsRendererFailure(t *testing.T) {
	order := sampleOrder()
	orders := &mockOrders{}
	orders.On("Get", mock.Anything, order.ID.String()).Return(order, nil)
	boom := errors.New("font missing")

	svc := New(Params{Log: zap.NewNop(), Orders: orders, Renderer: &capturingRenderer{err: boom}})
	_, err := svc.Render(context.Background(), order.ID.String())
	assert.ErrorIs(t, err, boom)
}

func TestRenderWithNoOpRenderer(t *testing.T) {
	order := sampleOrder()
	orders := &mockOrders{}
	orders.On("Get", mock.Anything, order.ID.String()).Return(order, nil)

	svc := New(Params{Log: zap.NewNop(), Orders: orders, Renderer: &pdf.NoOpProvider{}})
	_, err := svc.Render(context.Background(), order.ID.String())
	assert.ErrorIs(t, err, ErrRendererUnavailable)
}
