package service_test

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/shopspring/decimal"
)

// memProducts is an in-memory ProductRepository. Locking is a no-op.
type memProducts struct {
	mu       sync.Mutex
	products map[uuid.UUID]domain.Product
	lists    atomic.Int32
}

func newMemProducts(products ...domain.Product) *memProducts {
	m := &memProducts{products: make(map[uuid.UUID]domain.Product)}
	for _, p := range products {
		m.products[p.ID] = p
	}
	return m
}

func (m *memProducts) GetProduct(_ context.Context, productID uuid.UUID) (domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.products[productID]
	if !ok {
		return domain.Product{}, domain.ErrNotFound
	}
	return p, nil
}

func (m *memProducts) ListProducts(context.Context) ([]domain.Product, error) {
	m.lists.Add(1)

	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, p)
	}
	return out, nil
}

func (m *memProducts) CreateProduct(_ context.Context, product domain.Product) (uuid.UUID, error) {
	if err := product.Validate(); err != nil {
		return uuid.Nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	m.products[product.ID] = product
	return product.ID, nil
}

func (m *memProducts) UpdateProduct(_ context.Context, product domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.products[product.ID]; !ok {
		return domain.ErrNotFound
	}
	m.products[product.ID] = product
	return nil
}

func (m *memProducts) DeleteProduct(_ context.Context, productID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.products[productID]
	delete(m.products, productID)
	return ok, nil
}

func (m *memProducts) GetStock(_ context.Context, productID uuid.UUID) (int32, error) {
	p, err := m.GetProduct(context.Background(), productID)
	return p.Stock, err
}

func (m *memProducts) LockForUpdate(_ context.Context, productIDs []uuid.UUID) ([]domain.StockLevel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []domain.StockLevel
	for _, id := range productIDs {
		if p, ok := m.products[id]; ok {
			out = append(out, domain.StockLevel{ProductID: p.ID, Name: p.Name, Price: p.Price, Stock: p.Stock})
		}
	}
	return out, nil
}

func (m *memProducts) DecrementStock(_ context.Context, productID uuid.UUID, qty int32) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.products[productID]
	if !ok || p.Stock < qty {
		return false, nil
	}
	p.Stock -= qty
	m.products[productID] = p
	return true, nil
}

func (m *memProducts) stock(productID uuid.UUID) int32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.products[productID].Stock
}

type memCategories struct {
	mu         sync.Mutex
	nextID     int64
	categories map[int64]domain.Category
}

func newMemCategories() *memCategories {
	return &memCategories{categories: make(map[int64]domain.Category)}
}

func (m *memCategories) ListCategories(context.Context) ([]domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.Category, 0, len(m.categories))
	for _, c := range m.categories {
		out = append(out, c)
	}
	return out, nil
}

func (m *memCategories) CreateCategory(_ context.Context, name string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, c := range m.categories {
		if c.Name == name {
			return 0, domain.ErrDuplicate
		}
	}
	m.nextID++
	m.categories[m.nextID] = domain.Category{ID: m.nextID, Name: name}
	return m.nextID, nil
}

func (m *memCategories) UpdateCategory(_ context.Context, category domain.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.categories[category.ID]; !ok {
		return domain.ErrNotFound
	}
	m.categories[category.ID] = category
	return nil
}

func (m *memCategories) DeleteCategory(_ context.Context, categoryID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.categories[categoryID]
	delete(m.categories, categoryID)
	return ok, nil
}

// memCache is a ProductCache held in memory.
type memCache struct {
	mu          sync.Mutex
	products    []domain.Product
	filled      bool
	invalidated int
}

func (c *memCache) GetProducts(context.Context) ([]domain.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.filled {
		return nil, port.ErrCacheMiss
	}
	return c.products, nil
}

func (c *memCache) SetProducts(_ context.Context, products []domain.Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.products, c.filled = products, true
	return nil
}

func (c *memCache) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.products, c.filled = nil, false
	c.invalidated++
	return nil
}

type memUsers struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]domain.User
}

func newMemUsers() *memUsers {
	return &memUsers{users: make(map[int64]domain.User)}
}

func (m *memUsers) CreateUser(_ context.Context, user domain.User) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == user.Email {
			return 0, domain.ErrDuplicate
		}
	}
	m.nextID++
	user.ID = m.nextID
	m.users[user.ID] = user
	return user.ID, nil
}

func (m *memUsers) GetUser(_ context.Context, userID int64) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[userID]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return u, nil
}

func (m *memUsers) GetUserByEmail(_ context.Context, email string) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrNotFound
}

func (m *memUsers) ListUsers(context.Context) ([]domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

func (m *memUsers) SetDiscount(_ context.Context, userID int64, percent decimal.Decimal) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[userID]
	if !ok {
		return domain.ErrNotFound
	}
	u.Discount = percent
	m.users[userID] = u
	return nil
}

var (
	_ port.ProductRepository  = (*memProducts)(nil)
	_ port.CategoryRepository = (*memCategories)(nil)
	_ port.ProductCache       = (*memCache)(nil)
	_ port.UserRepository     = (*memUsers)(nil)
)
