package receipt

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/pos/internal/observability/logger"
	orderdomain "github.com/smallbiznis/pos/internal/order/domain"
	"github.com/smallbiznis/pos/internal/providers/pdf"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var ErrRendererUnavailable = errors.New("receipt_renderer_unavailable")

const dateLayout = "02 Jan 2006 15:04 MST"

// Receipt is a rendered PDF ready to stream.
type Receipt struct {
	Filename string
	Body     []byte
}

type Params struct {
	fx.In

	Log      *zap.Logger
	Orders   orderdomain.Service
	Renderer pdf.Provider
}

type Service struct {
	log      *zap.Logger
	orders   orderdomain.Service
	renderer pdf.Provider
}

func New(p Params) *Service {
	return &Service{
		log:      p.Log.Named("receipt.service"),
		orders:   p.Orders,
		renderer: p.Renderer,
	}
}

// Render loads a committed order and renders its receipt.
func (s *Service) Render(ctx context.Context, orderID string) (*Receipt, error) {
	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	out, err := s.renderer.GenerateReceipt(ctx, BuildData(order))
	if err != nil {
		logger.WithContext(ctx, s.log).Error("render receipt",
			zap.String("order_id", order.ID.String()),
			zap.Error(err),
		)
		return nil, fmt.Errorf("render receipt: %w", err)
	}
	if out == nil {
		return nil, ErrRendererUnavailable
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, out); err != nil {
		return nil, fmt.Errorf("read receipt: %w", err)
	}
	return &Receipt{
		Filename: "receipt-" + order.OrderNumber + ".pdf",
		Body:     buf.Bytes(),
	}, nil
}

// BuildData flattens an order with its preloaded associations into printable receipt fields.
func BuildData(order *orderdomain.Order) pdf.ReceiptData {
	data := pdf.ReceiptData{
		OrderNumber:       order.OrderNumber,
		OrderDate:         order.CreatedAt.Format(dateLayout),
		CustomerName:      deref(order.CustomerName),
		Subtotal:          amount(order.Subtotal),
		TaxableCharges:    amount(order.AppliedChargesAmountTaxable),
		TaxableAmount:     amount(order.TaxableAmount),
		CGST:              amount(order.CGSTAmount),
		SGST:              amount(order.SGSTAmount),
		NonTaxableCharges: amount(order.AppliedChargesAmountNontaxable),
		Total:             amount(order.TotalAmount),
		PaymentMethod:     string(order.PaymentMethod),
		PaymentStatus:     string(order.PaymentStatus),
		Notes:             deref(order.Notes),
	}
	if order.PaymentMethod.IsAggregator() {
		data.Aggregator = strings.TrimSpace(string(order.PaymentMethod) + " " + deref(order.AggregatorID))
	}
	if order.AmountReceived.Valid {
		data.AmountReceived = amount(order.AmountReceived.Decimal)
	}
	if order.ChangeGiven.Valid {
		data.ChangeGiven = amount(order.ChangeGiven.Decimal)
	}
	if order.Store != nil {
		data.StoreName = order.Store.Name
		data.StoreAddress = deref(order.Store.Address)
		data.StorePhone = deref(order.Store.PhoneNumber)
		data.StoreGSTIN = deref(order.Store.GSTIN)
	}

	for _, item := range order.Items {
		desc := item.VariantID.String()
		if item.Variant != nil {
			desc = item.Variant.Name
			if item.Variant.Product != nil {
				desc = item.Variant.Product.Name + " (" + item.Variant.Name + ")"
			}
		}
		data.Items = append(data.Items, pdf.ReceiptItem{
			Description: desc,
			Qty:         item.Quantity,
			UnitPrice:   amount(item.UnitPrice),
			Amount:      amount(item.TotalPrice),
		})
	}

	for _, applied := range order.AppliedCharges {
		line := pdf.ReceiptCharge{
			Name:   applied.ChargeID.String(),
			Amount: amount(applied.AmountCharged),
		}
		if applied.Charge != nil {
			line.Name = applied.Charge.Name
			line.Taxable = applied.Charge.IsTaxable
		}
		data.Charges = append(data.Charges, line)
	}

	return data
}

func amount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
