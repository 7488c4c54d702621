package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	inventorydomain "github.com/smallbiznis/pos/internal/inventory/domain"
	orderdomain "github.com/smallbiznis/pos/internal/order/domain"
	"github.com/smallbiznis/pos/internal/receipt"
	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("not_found")
	ErrInternal = errors.New("internal_error")
)

type errorResponse struct {
	Error   string                   `json:"error"`
	Code    string                   `json:"code,omitempty"`
	Details []orderdomain.FieldError `json:"details,omitempty"`
}

// requestError carries the message shown when err has no client-facing mapping.
type requestError struct {
	fallback string
	err      error
}

func (e *requestError) Error() string { return e.fallback + ": " + e.err.Error() }

func (e *requestError) Unwrap() error { return e.err }

func failedTo(message string, err error) error {
	return &requestError{fallback: message, err: err}
}

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, payload)
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, errorResponse) {
	var (
		validationErr *orderdomain.ValidationError
		referenceErr  *orderdomain.ReferenceError
		stockErr      *inventorydomain.InsufficientStockError
	)

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, errorResponse{
			Error:   "Invalid order data provided.",
			Code:    "validation_error",
			Details: validationErr.Fields,
		}
	case errors.As(err, &referenceErr):
		return http.StatusBadRequest, errorResponse{Error: referenceErr.Error() + "."}
	case errors.Is(err, orderdomain.ErrReferenceNotFound),
		errors.Is(err, gorm.ErrForeignKeyViolated):
		return http.StatusBadRequest, errorResponse{Error: "Invalid reference ID."}
	case errors.As(err, &stockErr):
		return http.StatusBadRequest, errorResponse{Error: fmt.Sprintf(
			"Insufficient stock for Variant ID %s. Available: %d, Needed: %d",
			stockErr.VariantID, stockErr.Available, stockErr.Requested,
		)}
	case errors.Is(err, orderdomain.ErrMissingAmountReceived):
		return http.StatusBadRequest, errorResponse{Error: "Amount received must be provided."}
	case errors.Is(err, orderdomain.ErrInsufficientAmount):
		return http.StatusBadRequest, errorResponse{Error: "Amount received is less than total amount."}
	case errors.Is(err, orderdomain.ErrTransactionTimeout):
		return http.StatusInternalServerError, errorResponse{Error: "Transaction failed or timed out."}
	case errors.Is(err, orderdomain.ErrNotFound),
		errors.Is(err, orderdomain.ErrInvalidID):
		return http.StatusNotFound, errorResponse{Error: "Order not found."}
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, errorResponse{Error: "Not Found"}
	case errors.Is(err, receipt.ErrRendererUnavailable):
		return http.StatusServiceUnavailable, errorResponse{Error: "Receipt rendering is unavailable."}
	}

	var reqErr *requestError
	if errors.As(err, &reqErr) {
		return http.StatusInternalServerError, errorResponse{Error: reqErr.fallback}
	}
	return http.StatusInternalServerError, errorResponse{Error: "Internal Server Error"}
}

// classifyErrorForLog returns the error type and code recorded on the request log line.
func classifyErrorForLog(err error) (string, string) {
	var (
		validationErr *orderdomain.ValidationError
		stockErr      *inventorydomain.InsufficientStockError
	)
	switch {
	case errors.As(err, &validationErr):
		return "validation_error", "invalid_request"
	case errors.As(err, &stockErr):
		return "insufficient_stock", "conflict"
	case errors.Is(err, orderdomain.ErrReferenceNotFound),
		errors.Is(err, gorm.ErrForeignKeyViolated):
		return "reference_not_found", "invalid_request"
	case errors.Is(err, orderdomain.ErrMissingAmountReceived),
		errors.Is(err, orderdomain.ErrInsufficientAmount):
		return "payment_rejected", "invalid_request"
	case errors.Is(err, orderdomain.ErrTransactionTimeout):
		return "transaction_timeout", "timeout"
	case errors.Is(err, orderdomain.ErrNotFound),
		errors.Is(err, orderdomain.ErrInvalidID),
		errors.Is(err, ErrNotFound):
		return "not_found", "not_found"
	default:
		return ErrInternal.Error(), "internal"
	}
}
