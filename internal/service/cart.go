package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
)

type Carts struct {
	tx    port.Transactor
	carts port.CartRepository
	users port.UserRepository
}

func NewCarts(tx port.Transactor, carts port.CartRepository, users port.UserRepository) *Carts {
	return &Carts{tx: tx, carts: carts, users: users}
}

// Get prices the user's cart and applies the personal discount.
func (s *Carts) Get(ctx context.Context, userID int64) (domain.CartView, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return domain.CartView{}, fmt.Errorf("users.GetUser: %w", err)
	}

	lines, err := s.carts.GetCartView(ctx, userID)
	if err != nil {
		return domain.CartView{}, fmt.Errorf("carts.GetCartView: %w", err)
	}

	return domain.NewCartView(userID, lines, user.Discount)
}

// AddLine merges qty into the cart. The stock check is advisory; checkout re-validates under lock.
func (s *Carts) AddLine(ctx context.Context, userID int64, productID uuid.UUID, qty int32) error {
	return s.tx.WithinTx(ctx, func(ctx context.Context, store port.TxStore) error {
		cart, err := store.Carts().LockCart(ctx, userID)
		if err != nil {
			return fmt.Errorf("carts.LockCart: %w", err)
		}

		stock, err := store.Products().GetStock(ctx, productID)
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.ProductNotFoundError{ProductIDs: []uuid.UUID{productID}}
		}
		if err != nil {
			return fmt.Errorf("products.GetStock: %w", err)
		}

		if err := cart.AddLine(productID, qty, stock); err != nil {
			return err
		}

		line := domain.CartLine{ProductID: productID, Quantity: cart.Quantity(productID)}
		if err := store.Carts().SetItem(ctx, cart.ID, line); err != nil {
			return fmt.Errorf("carts.SetItem: %w", err)
		}

		return nil
	})
}

// RemoveLine reports whether the product was in the cart. Removing an absent product is a no-op.
func (s *Carts) RemoveLine(ctx context.Context, userID int64, productID uuid.UUID) (bool, error) {
	var removed bool

	err := s.tx.WithinTx(ctx, func(ctx context.Context, store port.TxStore) error {
		cart, err := store.Carts().LockCart(ctx, userID)
		if err != nil {
			return fmt.Errorf("carts.LockCart: %w", err)
		}

		if !cart.RemoveLine(productID) {
			return nil
		}

		removed, err = store.Carts().DeleteItem(ctx, cart.ID, productID)
		if err != nil {
			return fmt.Errorf("carts.DeleteItem: %w", err)
		}
		return nil
	})

	return removed, err
}

func (s *Carts) Clear(ctx context.Context, userID int64) error {
	return s.tx.WithinTx(ctx, func(ctx context.Context, store port.TxStore) error {
		cart, err := store.Carts().LockCart(ctx, userID)
		if err != nil {
			return fmt.Errorf("carts.LockCart: %w", err)
		}

		if cart.IsEmpty() {
			return nil
		}

		if _, err := store.Carts().ClearCart(ctx, cart.ID); err != nil {
			return fmt.Errorf("carts.ClearCart: %w", err)
		}
		return nil
	})
}
