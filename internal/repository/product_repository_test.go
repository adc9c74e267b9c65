package repository_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/nikolayk812/storefront/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/text/currency"
)

type productRepositorySuite struct {
	pgSuite

	repo       port.ProductRepository
	categories port.CategoryRepository
}

func TestProductRepositorySuite(t *testing.T) {
	suite.Run(t, new(productRepositorySuite))
}

func (suite *productRepositorySuite) SetupSuite() {
	suite.pgSuite.SetupSuite()

	suite.repo = repository.NewProduct(suite.pool)
	suite.categories = repository.NewCategory(suite.pool)
}

func (suite *productRepositorySuite) TestCreateProduct() {
	defer suite.deleteAll()

	tests := []struct {
		name      string
		product   func(categoryID int64) domain.Product
		wantError string
	}{
		{
			name: "create product: ok",
			product: func(categoryID int64) domain.Product {
				return suite.randomProduct(categoryID)
			},
		},
		{
			name: "create product with zero price: ok",
			product: func(categoryID int64) domain.Product {
				p := suite.randomProduct(categoryID)
				p.Price.Amount = decimal.Zero
				return p
			},
		},
		{
			name: "create product without name: error",
			product: func(categoryID int64) domain.Product {
				p := suite.randomProduct(categoryID)
				p.Name = ""
				return p
			},
			wantError: "name: is empty",
		},
		{
			name: "create product with negative stock: error",
			product: func(categoryID int64) domain.Product {
				p := suite.randomProduct(categoryID)
				p.Stock = -1
				return p
			},
			wantError: "stock: must not be negative",
		},
		{
			name: "create product in missing category: error",
			product: func(int64) domain.Product {
				return suite.randomProduct(999_999)
			},
			wantError: "q.CreateProduct: referenced record is missing or still in use",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			categoryID, err := suite.categories.CreateCategory(ctx, gofakeit.UUID())
			require.NoError(t, err)

			product := tt.product(categoryID)

			productID, err := suite.repo.CreateProduct(ctx, product)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)

			got, err := suite.repo.GetProduct(ctx, productID)
			require.NoError(t, err)

			product.ID = productID
			assertProduct(t, product, got)
		})
	}
}

func (suite *productRepositorySuite) TestUpdateAndDeleteProduct() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	categoryID, err := suite.categories.CreateCategory(ctx, gofakeit.UUID())
	require.NoError(t, err)

	product := suite.randomProduct(categoryID)
	product.ID, err = suite.repo.CreateProduct(ctx, product)
	require.NoError(t, err)

	product.Name = "renamed"
	product.Stock = 42
	require.NoError(t, suite.repo.UpdateProduct(ctx, product))

	got, err := suite.repo.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assertProduct(t, product, got)

	deleted, err := suite.repo.DeleteProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = suite.repo.GetProduct(ctx, product.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	err = suite.repo.UpdateProduct(ctx, product)
	require.ErrorIs(t, err, domain.ErrNotFound)

	deleted, err = suite.repo.DeleteProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func (suite *productRepositorySuite) TestListProducts() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	want := []uuid.UUID{suite.newProduct(1, 1).ProductID, suite.newProduct(2, 2).ProductID}

	products, err := suite.repo.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)

	var got []uuid.UUID
	for _, p := range products {
		got = append(got, p.ID)
		assert.NotEmpty(t, p.CategoryName)
	}
	assert.ElementsMatch(t, want, got)
}

func (suite *productRepositorySuite) TestLockForUpdate() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	p1 := suite.newProduct(10, 5)
	p2 := suite.newProduct(5, 4)

	tx, err := suite.pool.Begin(ctx)
	require.NoError(t, err)
	defer func() { _ = tx.Rollback(ctx) }()

	levels, err := repository.NewProductWithTx(tx).LockForUpdate(ctx, []uuid.UUID{p2.ProductID, uuid.New(), p1.ProductID})
	require.NoError(t, err)
	require.Len(t, levels, 2)

	// rows come back in product id order
	assert.Negative(t, compareUUID(levels[0].ProductID, levels[1].ProductID))

	byID := map[uuid.UUID]domain.StockLevel{levels[0].ProductID: levels[0], levels[1].ProductID: levels[1]}
	assert.Equal(t, int32(5), byID[p1.ProductID].Stock)
	assert.Equal(t, int32(4), byID[p2.ProductID].Stock)
	assert.True(t, p1.Price.Amount.Equal(byID[p1.ProductID].Price.Amount))
}

func (suite *productRepositorySuite) TestDecrementStock() {
	defer suite.deleteAll()

	tests := []struct {
		name      string
		stock     int32
		qty       int32
		wantOK    bool
		wantStock int32
		wantError string
	}{
		{
			name:      "decrement within stock: ok",
			stock:     5,
			qty:       2,
			wantOK:    true,
			wantStock: 3,
		},
		{
			name:      "decrement whole stock: ok",
			stock:     3,
			qty:       3,
			wantOK:    true,
			wantStock: 0,
		},
		{
			name:      "decrement beyond stock: refused",
			stock:     3,
			qty:       10,
			wantOK:    false,
			wantStock: 3,
		},
		{
			name:      "decrement zero: error",
			stock:     3,
			qty:       0,
			wantStock: 3,
			wantError: "quantity: must be at least 1",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			product := suite.newProduct(10, tt.stock)

			ok, err := suite.repo.DecrementStock(ctx, product.ProductID, tt.qty)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantOK, ok)
			}

			stock, err := suite.repo.GetStock(ctx, product.ProductID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStock, stock)
		})
	}
}

func (suite *productRepositorySuite) TestCategories() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	categoryID, err := suite.categories.CreateCategory(ctx, "Books")
	require.NoError(t, err)

	_, err = suite.categories.CreateCategory(ctx, "Books")
	require.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = suite.categories.CreateCategory(ctx, "")
	require.EqualError(t, err, "category name is empty")

	require.NoError(t, suite.categories.UpdateCategory(ctx, domain.Category{ID: categoryID, Name: "Magazines"}))

	err = suite.categories.UpdateCategory(ctx, domain.Category{ID: categoryID + 100, Name: "Other"})
	require.ErrorIs(t, err, domain.ErrNotFound)

	categories, err := suite.categories.ListCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Category{{ID: categoryID, Name: "Magazines"}}, categories)

	deleted, err := suite.categories.DeleteCategory(ctx, categoryID)
	require.NoError(t, err)
	assert.True(t, deleted)
}

func (suite *productRepositorySuite) randomProduct(categoryID int64) domain.Product {
	return domain.Product{
		CategoryID:  categoryID,
		Name:        gofakeit.ProductName(),
		Description: gofakeit.ProductDescription(),
		ImageURL:    gofakeit.URL(),
		Price:       randomMoney(),
		Stock:       int32(gofakeit.IntRange(0, 100)),
	}
}

func assertProduct(t *testing.T, expected, actual domain.Product) {
	t.Helper()

	currencyComparer := cmp.Comparer(func(x, y currency.Unit) bool {
		return x.String() == y.String()
	})
	decimalComparer := cmp.Comparer(func(x, y decimal.Decimal) bool {
		return x.Equal(y)
	})

	opts := cmp.Options{
		cmpopts.IgnoreFields(domain.Product{}, "CategoryName", "CreatedAt", "UpdatedAt"),
		currencyComparer,
		decimalComparer,
	}

	diff := cmp.Diff(expected, actual, opts)
	assert.Empty(t, diff)

	assert.False(t, actual.CreatedAt.IsZero())
	assert.NotEmpty(t, actual.CategoryName)
}

func compareUUID(a, b uuid.UUID) int {
	for i := range a {
		if a[i] != b[i] {
			return int(a[i]) - int(b[i])
		}
	}
	return 0
}
