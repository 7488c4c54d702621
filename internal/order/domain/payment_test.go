package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func TestResolvePayment(t *testing.T) {
	total := decimal.RequireFromString("590.00")

	cases := []struct {
		name       string
		method     PaymentMethod
		received   *decimal.Decimal
		wantStatus PaymentStatus
		wantChange string
		wantErr    error
	}{
		{name: "cash with change", method: PaymentCash, received: dec("600"), wantStatus: PaymentPaid, wantChange: "10"},
		{name: "cash exact", method: PaymentCash, received: dec("590"), wantStatus: PaymentPaid, wantChange: "0"},
		{name: "cash short", method: PaymentCash, received: dec("500"), wantErr: ErrInsufficientAmount},
		{name: "cash missing", method: PaymentCash, wantErr: ErrMissingAmountReceived},
		{name: "card", method: PaymentCard, wantStatus: PaymentPaid},
		{name: "upi ignores received", method: PaymentUPI, received: dec("1"), wantStatus: PaymentPaid},
		{name: "swiggy", method: PaymentSwiggy, wantStatus: PaymentPaid},
		{name: "zomato", method: PaymentZomato, wantStatus: PaymentPaid},
		{name: "other", method: PaymentOther, wantStatus: PaymentPaid},
		{name: "unknown stays pending", method: PaymentMethod("Cheque"), wantStatus: PaymentPending},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ResolvePayment(tc.method, total, tc.received)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantStatus, got.Status)
			if tc.wantChange == "" {
				assert.False(t, got.ChangeGiven.Valid)
				return
			}
			require.True(t, got.ChangeGiven.Valid)
			assert.True(t, decimal.RequireFromString(tc.wantChange).Equal(got.ChangeGiven.Decimal), got.ChangeGiven.Decimal.String())
		})
	}
}

func TestResolvePaymentRoundsChange(t *testing.T) {
	got, err := ResolvePayment(PaymentCash, decimal.RequireFromString("649.004"), dec("700"))
	require.NoError(t, err)
	assert.Equal(t, "51", got.ChangeGiven.Decimal.String())
}

func TestPaymentMethodValid(t *testing.T) {
	for _, m := range PaymentMethods {
		assert.True(t, m.Valid(), m)
	}
	assert.False(t, PaymentMethod("cash").Valid())
	assert.False(t, PaymentMethod("").Valid())
	assert.True(t, PaymentSwiggy.IsAggregator())
	assert.False(t, PaymentCard.IsAggregator())
}

func TestReferenceErrorsUnwrap(t *testing.T) {
	err := ChargeNotFound(uuidFixture)
	assert.ErrorIs(t, err, ErrChargeNotFound)
	assert.ErrorIs(t, err, ErrReferenceNotFound)
	assert.NotErrorIs(t, err, ErrStoreNotFound)
	assert.Equal(t, "Charge with ID "+uuidFixture.String()+" not found", err.Error())
}
