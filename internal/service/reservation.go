package service

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"slices"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
)

// ReserveStock validates every line against locked stock and decrements all of them, or none.
// It must run inside the transaction that records the resulting order.
// The returned items carry the unit price and name read under the lock.
func ReserveStock(ctx context.Context, products port.ProductRepository, lines []domain.CartLine) ([]domain.OrderItem, error) {
	merged := make(map[uuid.UUID]int64, len(lines))
	for _, line := range lines {
		if line.Quantity < 1 {
			return nil, domain.NewValidationError("quantity", "must be at least 1")
		}
		merged[line.ProductID] += int64(line.Quantity)
	}

	requested := make(map[uuid.UUID]int32, len(merged))
	for productID, qty := range merged {
		if qty > math.MaxInt32 {
			return nil, domain.NewValidationError("quantity", fmt.Sprintf("product[%s]: total exceeds %d", productID, math.MaxInt32))
		}
		requested[productID] = int32(qty)
	}

	productIDs := make([]uuid.UUID, 0, len(requested))
	for productID := range requested {
		productIDs = append(productIDs, productID)
	}
	slices.SortFunc(productIDs, func(a, b uuid.UUID) int {
		return bytes.Compare(a[:], b[:])
	})

	levels, err := products.LockForUpdate(ctx, productIDs)
	if err != nil {
		return nil, fmt.Errorf("products.LockForUpdate: %w", err)
	}

	byID := make(map[uuid.UUID]domain.StockLevel, len(levels))
	for _, level := range levels {
		byID[level.ProductID] = level
	}

	var missing []uuid.UUID
	var shortfalls []domain.Shortfall
	for _, productID := range productIDs {
		level, ok := byID[productID]
		if !ok {
			missing = append(missing, productID)
			continue
		}
		if level.Stock < requested[productID] {
			shortfalls = append(shortfalls, domain.Shortfall{
				ProductID: productID,
				Available: level.Stock,
				Requested: requested[productID],
			})
		}
	}

	if len(missing) > 0 {
		return nil, &domain.ProductNotFoundError{ProductIDs: missing}
	}
	if len(shortfalls) > 0 {
		return nil, &domain.InsufficientStockError{Shortfalls: shortfalls}
	}

	items := make([]domain.OrderItem, 0, len(productIDs))
	for _, productID := range productIDs {
		level, qty := byID[productID], requested[productID]

		ok, err := products.DecrementStock(ctx, productID, qty)
		if err != nil {
			return nil, fmt.Errorf("products.DecrementStock: %w", err)
		}
		if !ok {
			// unreachable while the row lock is held
			return nil, &domain.InsufficientStockError{Shortfalls: []domain.Shortfall{{
				ProductID: productID,
				Available: level.Stock,
				Requested: qty,
			}}}
		}

		items = append(items, domain.OrderItem{
			ProductID:   productID,
			ProductName: level.Name,
			Quantity:    qty,
			UnitPrice:   level.Price,
		})
	}

	return items, nil
}
