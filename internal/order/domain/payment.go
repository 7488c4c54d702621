package domain

import "github.com/shopspring/decimal"

// PaymentResolution is the settled payment state for a computed grand total.
type PaymentResolution struct {
	Status      PaymentStatus
	ChangeGiven decimal.NullDecimal
}

// ResolvePayment settles a payment method against the order total.
// Cash must cover the total and yields change; electronic and aggregator
// methods are paid on submission; anything else stays pending.
func ResolvePayment(method PaymentMethod, total decimal.Decimal, received *decimal.Decimal) (PaymentResolution, error) {
	switch method {
	case PaymentCash:
		if received == nil {
			return PaymentResolution{}, ErrMissingAmountReceived
		}
		if received.LessThan(total) {
			return PaymentResolution{}, ErrInsufficientAmount
		}
		return PaymentResolution{
			Status:      PaymentPaid,
			ChangeGiven: decimal.NewNullDecimal(received.Sub(total).Round(2)),
		}, nil
	case PaymentCard, PaymentUPI, PaymentSwiggy, PaymentZomato, PaymentOther:
		return PaymentResolution{Status: PaymentPaid}, nil
	default:
		return PaymentResolution{Status: PaymentPending}, nil
	}
}
