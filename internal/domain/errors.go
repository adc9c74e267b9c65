package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrValidation          = errors.New("validation failed")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrExceedsStock        = errors.New("quantity exceeds stock")
	ErrProductNotFound     = errors.New("product not found")
	ErrNotFound            = errors.New("not found")
	ErrDuplicate           = errors.New("already exists")
	ErrUnauthenticated     = errors.New("unauthenticated")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrTransactionConflict = errors.New("transaction conflict")
	ErrPersistence         = errors.New("persistence failure")
)

type ValidationError struct {
	Field  string
	Reason string
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Field + ": " + e.Reason
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Shortfall describes one line that cannot be served from current stock.
type Shortfall struct {
	ProductID uuid.UUID
	Available int32
	Requested int32
}

type InsufficientStockError struct {
	Shortfalls []Shortfall
}

func (e *InsufficientStockError) Error() string {
	parts := make([]string, 0, len(e.Shortfalls))
	for _, s := range e.Shortfalls {
		parts = append(parts, fmt.Sprintf("product[%s] available %d requested %d", s.ProductID, s.Available, s.Requested))
	}
	return "insufficient stock: " + strings.Join(parts, "; ")
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

type ProductNotFoundError struct {
	ProductIDs []uuid.UUID
}

func (e *ProductNotFoundError) Error() string {
	ids := make([]string, 0, len(e.ProductIDs))
	for _, id := range e.ProductIDs {
		ids = append(ids, id.String())
	}
	return "product not found: " + strings.Join(ids, ", ")
}

func (e *ProductNotFoundError) Unwrap() error { return ErrProductNotFound }

// ExceedsStockError is the advisory add-to-cart check failure.
type ExceedsStockError struct {
	ProductID uuid.UUID
	Available int32
	InCart    int32
	Requested int32
}

func (e *ExceedsStockError) Error() string {
	return fmt.Sprintf("product[%s]: only %d more can be added", e.ProductID, e.Remaining())
}

func (e *ExceedsStockError) Unwrap() error { return ErrExceedsStock }

// Remaining is how many more units fit into the cart.
func (e *ExceedsStockError) Remaining() int32 {
	return max(e.Available-e.InCart, 0)
}

// IsRejection reports whether err is a business rejection rather than an infrastructure failure.
func IsRejection(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInsufficientStock) ||
		errors.Is(err, ErrProductNotFound)
}
