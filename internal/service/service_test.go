package service_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/metrics"
	"github.com/nikolayk812/storefront/internal/pgtest"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/nikolayk812/storefront/internal/repository"
	"github.com/nikolayk812/storefront/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"go.uber.org/zap"
)

// serviceSuite wires the services to a migrated Postgres container.
type serviceSuite struct {
	suite.Suite

	container testcontainers.Container
	pool      *pgxpool.Pool

	tx      *repository.TxManager
	metrics *metrics.Metrics

	checkout *service.Checkout
	carts    *service.Carts
	orders   *service.Orders
}

// before all tests in the suite
func (suite *serviceSuite) SetupSuite() {
	ctx := suite.T().Context()

	container, connStr, err := pgtest.Start(ctx)
	suite.Require().NoError(err)
	suite.container = container

	suite.pool, err = pgxpool.New(ctx, connStr)
	suite.Require().NoError(err)

	suite.tx = repository.NewTxManager(suite.pool,
		repository.WithTimeout(10*time.Second),
		repository.WithLockTimeout(5*time.Second),
	)
	suite.metrics = metrics.New(prometheus.NewRegistry())

	suite.checkout = suite.newCheckout(suite.tx)
	suite.carts = service.NewCarts(suite.tx, repository.NewCart(suite.pool), repository.NewUser(suite.pool))
	suite.orders = service.NewOrders(repository.NewOrder(suite.pool))
}

// after all tests in the suite
func (suite *serviceSuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
	if suite.container != nil {
		suite.NoError(testcontainers.TerminateContainer(suite.container))
	}
}

func (suite *serviceSuite) newCheckout(tx port.Transactor, opts ...service.CheckoutOption) *service.Checkout {
	return service.NewCheckout(tx, zap.NewNop(), suite.metrics, opts...)
}

func (suite *serviceSuite) deleteAll() {
	suite.NoError(pgtest.Truncate(suite.T().Context(), suite.pool))
}

func (suite *serviceSuite) newUser() int64 {
	userID, err := pgtest.InsertUser(suite.T().Context(), suite.pool)
	suite.Require().NoError(err)
	return userID
}

func (suite *serviceSuite) newProduct(price string, stock int32) uuid.UUID {
	productID, err := pgtest.InsertProduct(suite.T().Context(), suite.pool, decimal.RequireFromString(price), stock)
	suite.Require().NoError(err)
	return productID
}

// putInCart writes the line without the advisory stock check.
func (suite *serviceSuite) putInCart(userID int64, productID uuid.UUID, qty int32) {
	ctx := suite.T().Context()
	carts := repository.NewCart(suite.pool)

	cart, err := carts.LockCart(ctx, userID)
	suite.Require().NoError(err)

	err = carts.SetItem(ctx, cart.ID, domain.CartLine{ProductID: productID, Quantity: qty})
	suite.Require().NoError(err)
}

func (suite *serviceSuite) cartLines(userID int64) []domain.CartLine {
	cart, err := repository.NewCart(suite.pool).GetCart(suite.T().Context(), userID)
	suite.Require().NoError(err)
	return cart.Snapshot()
}

func (suite *serviceSuite) stock(productID uuid.UUID) int32 {
	stock, err := pgtest.Stock(suite.T().Context(), suite.pool, productID)
	suite.Require().NoError(err)
	return stock
}

func (suite *serviceSuite) orderCount(userID int64) int {
	orders, err := suite.orders.ListByUser(suite.T().Context(), userID)
	suite.Require().NoError(err)
	return len(orders)
}

// flakyTransactor reports a conflict for the first failures calls.
type flakyTransactor struct {
	port.Transactor

	failures int
	calls    int
}

func (f *flakyTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context, store port.TxStore) error) error {
	f.calls++
	if f.calls <= f.failures {
		return domain.ErrTransactionConflict
	}
	return f.Transactor.WithinTx(ctx, fn)
}

// brokenOutboxTransactor runs the real transaction but fails the outbox write.
type brokenOutboxTransactor struct {
	port.Transactor

	err error
}

func (b brokenOutboxTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context, store port.TxStore) error) error {
	return b.Transactor.WithinTx(ctx, func(ctx context.Context, store port.TxStore) error {
		return fn(ctx, brokenOutboxStore{TxStore: store, err: b.err})
	})
}

type brokenOutboxStore struct {
	port.TxStore

	err error
}

func (s brokenOutboxStore) Outbox() port.OutboxRepository {
	return brokenOutbox{err: s.err}
}

type brokenOutbox struct {
	err error
}

func (b brokenOutbox) InsertEvent(context.Context, domain.OutboxEvent) error {
	return b.err
}

func (b brokenOutbox) FetchPending(context.Context, int32) ([]domain.OutboxEvent, error) {
	return nil, b.err
}

func (b brokenOutbox) MarkSent(context.Context, []int64) error {
	return b.err
}
