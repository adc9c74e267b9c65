package domain

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID           uuid.UUID
	CategoryID   int64
	CategoryName string
	Name         string
	Description  string
	ImageURL     string
	Price        Money
	Stock        int32

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p Product) Validate() error {
	if p.Name == "" {
		return NewValidationError("name", "is empty")
	}
	if p.CategoryID <= 0 {
		return NewValidationError("category_id", "is required")
	}
	if p.Price.Amount.IsNegative() {
		return NewValidationError("price", "must not be negative")
	}
	if p.Stock < 0 {
		return NewValidationError("stock", "must not be negative")
	}
	return nil
}

// StockLevel is a product row as seen under a reservation lock.
type StockLevel struct {
	ProductID uuid.UUID
	Name      string
	Price     Money
	Stock     int32
}
