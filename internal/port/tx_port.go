package port

import "context"

// TxStore exposes repositories bound to one transaction.
type TxStore interface {
	Carts() CartRepository
	Products() ProductRepository
	Orders() OrderRepository
	Outbox() OutboxRepository
}

// Transactor runs fn in a transaction that commits only if fn returns nil.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, store TxStore) error) error
}
