package service_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type cartsSuite struct {
	serviceSuite
}

func TestCartsSuite(t *testing.T) {
	suite.Run(t, new(cartsSuite))
}

func (suite *cartsSuite) TestAddLine() {
	defer suite.deleteAll()

	tests := []struct {
		name      string
		stock     int32
		adds      []int32
		wantQty   int32
		wantError string
	}{
		{
			name:    "single add: ok",
			stock:   5,
			adds:    []int32{2},
			wantQty: 2,
		},
		{
			name:    "repeated add merges: ok",
			stock:   5,
			adds:    []int32{2, 3},
			wantQty: 5,
		},
		{
			name:      "merged quantity exceeds stock: error",
			stock:     5,
			adds:      []int32{4, 2},
			wantQty:   4,
			wantError: "only 1 more can be added",
		},
		{
			name:      "zero quantity: error",
			stock:     5,
			adds:      []int32{0},
			wantError: "quantity: must be at least 1",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			userID := suite.newUser()
			productID := suite.newProduct("3.00", tt.stock)

			var err error
			for _, qty := range tt.adds {
				if err = suite.carts.AddLine(ctx, userID, productID, qty); err != nil {
					break
				}
			}

			if tt.wantError != "" {
				require.ErrorContains(t, err, tt.wantError)
			} else {
				require.NoError(t, err)
			}

			lines := stripTimes(suite.cartLines(userID))
			if tt.wantQty == 0 {
				assert.Empty(t, lines)
				return
			}
			assert.Equal(t, []domain.CartLine{{ProductID: productID, Quantity: tt.wantQty}}, lines)
			assert.Equal(t, tt.stock, suite.stock(productID))
		})
	}
}

func (suite *cartsSuite) TestAddLine_ExceedsStockDetails() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	userID := suite.newUser()
	productID := suite.newProduct("3.00", 3)
	require.NoError(t, suite.carts.AddLine(ctx, userID, productID, 2))

	err := suite.carts.AddLine(ctx, userID, productID, 5)
	require.ErrorIs(t, err, domain.ErrExceedsStock)

	var exceeds *domain.ExceedsStockError
	require.ErrorAs(t, err, &exceeds)
	assert.Equal(t, int32(3), exceeds.Available)
	assert.Equal(t, int32(2), exceeds.InCart)
	assert.Equal(t, int32(1), exceeds.Remaining())
}

func (suite *cartsSuite) TestAddLine_ProductNotFound() {
	defer suite.deleteAll()

	t := suite.T()

	err := suite.carts.AddLine(t.Context(), suite.newUser(), uuid.New(), 1)
	require.ErrorIs(t, err, domain.ErrProductNotFound)
}

func (suite *cartsSuite) TestRemoveLine() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	userID := suite.newUser()
	kept := suite.newProduct("1.00", 5)
	removed := suite.newProduct("1.00", 5)
	require.NoError(t, suite.carts.AddLine(ctx, userID, kept, 1))
	require.NoError(t, suite.carts.AddLine(ctx, userID, removed, 1))

	ok, err := suite.carts.RemoveLine(ctx, userID, removed)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = suite.carts.RemoveLine(ctx, userID, uuid.New())
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Equal(t, []domain.CartLine{{ProductID: kept, Quantity: 1}}, stripTimes(suite.cartLines(userID)))
}

func (suite *cartsSuite) TestClear() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	userID := suite.newUser()

	// clearing a cart that was never filled
	require.NoError(t, suite.carts.Clear(ctx, userID))
	assert.Empty(t, suite.cartLines(userID))

	productID := suite.newProduct("1.00", 5)
	require.NoError(t, suite.carts.AddLine(ctx, userID, productID, 2))

	require.NoError(t, suite.carts.Clear(ctx, userID))
	require.NoError(t, suite.carts.Clear(ctx, userID))
	assert.Empty(t, suite.cartLines(userID))
	assert.Equal(t, int32(5), suite.stock(productID))
}

func (suite *cartsSuite) TestGet() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	userID := suite.newUser()
	p1 := suite.newProduct("10.00", 1)
	p2 := suite.newProduct("5.00", 5)
	suite.putInCart(userID, p1, 2)
	suite.putInCart(userID, p2, 3)

	view, err := suite.carts.Get(ctx, userID)
	require.NoError(t, err)

	assert.Equal(t, userID, view.UserID)
	assert.Equal(t, "35.00 RUB", view.Subtotal.String())
	assert.Equal(t, "35.00 RUB", view.Total.String())
	require.Len(t, view.Lines, 2)

	inStock := map[uuid.UUID]bool{}
	for _, line := range view.Lines {
		inStock[line.ProductID] = line.InStock
	}
	assert.False(t, inStock[p1])
	assert.True(t, inStock[p2])
}
