package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/db"
	"github.com/nikolayk812/storefront/internal/port"
)

// withTx runs fn in a new transaction, or directly on q when the repository is already tx-bound (pool is nil).
func withTx[T any](ctx context.Context, pool *pgxpool.Pool, q *db.Queries, fn func(q *db.Queries) (T, error)) (_ T, txErr error) {
	var zero T

	if pool == nil {
		return fn(q)
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return zero, fmt.Errorf("pool.Begin: %w", err)
	}

	defer func() {
		if txErr != nil {
			txErr = rollback(ctx, tx, txErr)
		}
	}()

	result, err := fn(q.WithTx(tx))
	if err != nil {
		return zero, err
	}

	if err := tx.Commit(ctx); err != nil {
		return zero, fmt.Errorf("tx.Commit: %w", err)
	}

	return result, nil
}

// rollback uses a context detached from cancellation so a cancelled caller still releases its locks.
func rollback(ctx context.Context, tx pgx.Tx, cause error) error {
	rollbackErr := tx.Rollback(context.WithoutCancel(ctx))
	if rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
		return errors.Join(cause, fmt.Errorf("tx.Rollback: %w", rollbackErr))
	}
	return cause
}

type TxManager struct {
	pool        *pgxpool.Pool
	timeout     time.Duration
	lockTimeout time.Duration
}

type TxOption func(*TxManager)

// WithTimeout bounds the whole transaction. Exceeding it is reported as a transaction conflict.
func WithTimeout(d time.Duration) TxOption {
	return func(m *TxManager) { m.timeout = d }
}

// WithLockTimeout bounds how long a single statement waits for a row lock.
func WithLockTimeout(d time.Duration) TxOption {
	return func(m *TxManager) { m.lockTimeout = d }
}

func NewTxManager(pool *pgxpool.Pool, opts ...TxOption) *TxManager {
	m := &TxManager{pool: pool}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// WithinTx commits only when fn returns nil. Errors, panics and context cancellation roll back.
func (m *TxManager) WithinTx(ctx context.Context, fn func(ctx context.Context, store port.TxStore) error) (txErr error) {
	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeoutCause(ctx, m.timeout, errTxTimeout)
		defer cancel()
	}

	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return classifyTxErr(ctx, wrapErr("pool.Begin", err))
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(context.WithoutCancel(ctx))
			panic(p)
		}
		if txErr != nil {
			txErr = rollback(ctx, tx, txErr)
		}
	}()

	if m.lockTimeout > 0 {
		if _, err := tx.Exec(ctx, "SELECT set_config('lock_timeout', $1, true)", fmt.Sprintf("%dms", m.lockTimeout.Milliseconds())); err != nil {
			return classifyTxErr(ctx, wrapErr("set lock_timeout", err))
		}
	}

	if err := fn(ctx, txStore{tx: tx}); err != nil {
		return classifyTxErr(ctx, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return classifyTxErr(ctx, wrapErr("tx.Commit", err))
	}

	return nil
}

type txStore struct {
	tx pgx.Tx
}

func (s txStore) Carts() port.CartRepository       { return NewCartWithTx(s.tx) }
func (s txStore) Products() port.ProductRepository { return NewProductWithTx(s.tx) }
func (s txStore) Orders() port.OrderRepository     { return NewOrderWithTx(s.tx) }
func (s txStore) Outbox() port.OutboxRepository    { return NewOutboxWithTx(s.tx) }
