package domain

import (
	"bytes"
	"slices"
	"time"

	"github.com/google/uuid"
)

// Cart is a user's server-side cart. At most one line exists per product.
// Callers serialize mutations of the same cart; the repository does it with a row lock.
type Cart struct {
	ID     int64
	UserID int64
	Lines  []CartLine
}

type CartLine struct {
	ProductID uuid.UUID
	Quantity  int32

	CreatedAt time.Time
}

// AddLine merges delta into the line for productID, creating it if absent.
// available is the product's current stock; the merged quantity may not exceed it.
func (c *Cart) AddLine(productID uuid.UUID, delta, available int32) error {
	if productID == uuid.Nil {
		return NewValidationError("product_id", "is empty")
	}
	if delta < 1 {
		return NewValidationError("quantity", "must be at least 1")
	}

	i := c.indexOf(productID)

	var inCart int32
	if i >= 0 {
		inCart = c.Lines[i].Quantity
	}

	if delta > available-inCart {
		return &ExceedsStockError{
			ProductID: productID,
			Available: available,
			InCart:    inCart,
			Requested: delta,
		}
	}

	if i >= 0 {
		c.Lines[i].Quantity += delta
		return nil
	}

	c.Lines = append(c.Lines, CartLine{ProductID: productID, Quantity: delta})
	return nil
}

// RemoveLine deletes the line for productID. It reports whether a line was removed.
func (c *Cart) RemoveLine(productID uuid.UUID) bool {
	i := c.indexOf(productID)
	if i < 0 {
		return false
	}
	c.Lines = slices.Delete(c.Lines, i, i+1)
	return true
}

func (c *Cart) Clear() {
	c.Lines = nil
}

func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Quantity returns the quantity held for productID, zero when absent.
func (c *Cart) Quantity(productID uuid.UUID) int32 {
	if i := c.indexOf(productID); i >= 0 {
		return c.Lines[i].Quantity
	}
	return 0
}

// Snapshot returns a copy of the lines ordered by product id.
func (c *Cart) Snapshot() []CartLine {
	lines := slices.Clone(c.Lines)
	slices.SortFunc(lines, func(a, b CartLine) int {
		return bytes.Compare(a.ProductID[:], b.ProductID[:])
	})
	return lines
}

func (c *Cart) indexOf(productID uuid.UUID) int {
	return slices.IndexFunc(c.Lines, func(l CartLine) bool {
		return l.ProductID == productID
	})
}
