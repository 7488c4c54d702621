package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrReferenceNotFound     = errors.New("reference_not_found")
	ErrStoreNotFound         = fmt.Errorf("store_not_found: %w", ErrReferenceNotFound)
	ErrVariantNotFound       = fmt.Errorf("variant_not_found: %w", ErrReferenceNotFound)
	ErrChargeNotFound        = fmt.Errorf("charge_not_found: %w", ErrReferenceNotFound)
	ErrMissingAmountReceived = errors.New("missing_amount_received")
	ErrInsufficientAmount    = errors.New("insufficient_amount")
	ErrTransactionTimeout    = errors.New("transaction_timeout")
	ErrInvalidID             = errors.New("invalid_id")
	ErrNotFound              = errors.New("not_found")
)

// ReferenceError names the referenced entity that does not exist.
type ReferenceError struct {
	Kind string
	ID   uuid.UUID
	err  error
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Kind, e.ID)
}

func (e *ReferenceError) Unwrap() error { return e.err }

func StoreNotFound(id uuid.UUID) error {
	return &ReferenceError{Kind: "Store", ID: id, err: ErrStoreNotFound}
}

func VariantNotFound(id uuid.UUID) error {
	return &ReferenceError{Kind: "Variant", ID: id, err: ErrVariantNotFound}
}

func ChargeNotFound(id uuid.UUID) error {
	return &ReferenceError{Kind: "Charge", ID: id, err: ErrChargeNotFound}
}

type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationError carries every field that failed validation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "invalid order"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Code)
	}
	return "invalid order: " + strings.Join(parts, "; ")
}
