package service

import (
	"encoding/json"
	"testing"

	"github.com/smallbiznis/pos/internal/order/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeErrorReportsTypeMismatch(t *testing.T) {
	var req domain.CreateRequest
	err := json.Unmarshal([]byte(`{"storeId":"x","items":[{"quantity":"two"}]}`), &req)
	require.Error(t, err)

	var validationErr *domain.ValidationError
	require.ErrorAs(t, DecodeError(err), &validationErr)
	require.Len(t, validationErr.Fields, 1)
	assert.Equal(t, "type", validationErr.Fields[0].Code)
	assert.Equal(t, "items.quantity", validationErr.Fields[0].Field)
}

func TestDecodeErrorReportsMalformedBody(t *testing.T) {
	var req domain.CreateRequest
	err := json.Unmarshal([]byte(`{"storeId":`), &req)
	require.Error(t, err)

	var validationErr *domain.ValidationError
	require.ErrorAs(t, DecodeError(err), &validationErr)
	assert.Equal(t, "body", validationErr.Fields[0].Field)
	assert.Equal(t, "malformed", validationErr.Fields[0].Code)
}

func TestValidateRequestAcceptsMinimalOrder(t *testing.T) {
	price := money("250")
	req := domain.CreateRequest{
		StoreID:       "0b7f5a52-3c1f-4c7e-9a55-0f5f4f3f2e11",
		PaymentMethod: domain.PaymentCard,
		Items: []domain.CreateItem{{
			VariantID: "5d2c1e0a-8f7b-4a6c-9e3d-2b1a0f9e8d7c",
			Quantity:  1,
			UnitPrice: &price,
		}},
	}
	assert.NoError(t, validateRequest(newValidator(), req))
}

func TestValidateRequestChargeFields(t *testing.T) {
	price := money("250")
	req := domain.CreateRequest{
		StoreID:       "0b7f5a52-3c1f-4c7e-9a55-0f5f4f3f2e11",
		PaymentMethod: domain.PaymentCash,
		Items: []domain.CreateItem{{
			VariantID: "5d2c1e0a-8f7b-4a6c-9e3d-2b1a0f9e8d7c",
			Quantity:  1,
			UnitPrice: &price,
		}},
		AppliedCharges: []domain.CreateCharge{{ChargeID: "packaging"}},
	}

	err := validateRequest(newValidator(), req)
	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)

	fields := map[string]string{}
	for _, fe := range validationErr.Fields {
		fields[fe.Field] = fe.Message
	}
	assert.Equal(t, "must be a valid UUID", fields["applied_charges[0].chargeId"])
	assert.Equal(t, "is required", fields["applied_charges[0].amount_charged"])
}

func TestFieldPath(t *testing.T) {
	assert.Equal(t, "items[0].quantity", fieldPath("CreateRequest.items[0].quantity"))
	assert.Equal(t, "storeId", fieldPath("CreateRequest.storeId"))
	assert.Equal(t, "body", fieldPath("body"))
}

func TestValidateRequestRejectsSubCentAmounts(t *testing.T) {
	price := money("0.333")
	charged := money("1.005")
	received := money("10.001")
	req := domain.CreateRequest{
		StoreID:        "0b7f5a52-3c1f-4c7e-9a55-0f5f4f3f2e11",
		PaymentMethod:  domain.PaymentCash,
		AmountReceived: &received,
		Items: []domain.CreateItem{{
			VariantID: "5d2c1e0a-8f7b-4a6c-9e3d-2b1a0f9e8d7c",
			Quantity:  3,
			UnitPrice: &price,
		}},
		AppliedCharges: []domain.CreateCharge{{
			ChargeID:      "9c8b7a6f-5e4d-4c3b-8a29-1f0e9d8c7b6a",
			AmountCharged: &charged,
		}},
	}

	err := validateRequest(newValidator(), req)
	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)

	codes := map[string]string{}
	for _, fe := range validationErr.Fields {
		codes[fe.Field] = fe.Code
		assert.Equal(t, "must have at most 2 decimal places", fe.Message)
	}
	assert.Equal(t, map[string]string{
		"items[0].unit_price":               "money",
		"applied_charges[0].amount_charged": "money",
		"amount_received":                   "money",
	}, codes)
}

func TestValidateRequestAcceptsTwoDecimalAmounts(t *testing.T) {
	for _, amount := range []string{"0", "0.5", "19.99", "1.500", "99999999.99"} {
		price := money(amount)
		req := domain.CreateRequest{
			StoreID:       "0b7f5a52-3c1f-4c7e-9a55-0f5f4f3f2e11",
			PaymentMethod: domain.PaymentCard,
			Items: []domain.CreateItem{{
				VariantID: "5d2c1e0a-8f7b-4a6c-9e3d-2b1a0f9e8d7c",
				Quantity:  1,
				UnitPrice: &price,
			}},
		}
		assert.NoError(t, validateRequest(newValidator(), req), amount)
	}
}
