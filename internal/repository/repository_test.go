package repository_test

import (
	"github.com/brianvoe/gofakeit/v7"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/pgtest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"golang.org/x/text/currency"
)

// pgSuite owns one migrated Postgres container per suite.
type pgSuite struct {
	suite.Suite

	container testcontainers.Container
	pool      *pgxpool.Pool
}

// before all tests in the suite
func (suite *pgSuite) SetupSuite() {
	ctx := suite.T().Context()

	container, connStr, err := pgtest.Start(ctx)
	suite.Require().NoError(err)
	suite.container = container

	suite.pool, err = pgxpool.New(ctx, connStr)
	suite.Require().NoError(err)
}

// after all tests in the suite
func (suite *pgSuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
	if suite.container != nil {
		suite.NoError(testcontainers.TerminateContainer(suite.container))
	}
}

func (suite *pgSuite) deleteAll() {
	suite.NoError(pgtest.Truncate(suite.T().Context(), suite.pool))
}

func (suite *pgSuite) newUser() int64 {
	userID, err := pgtest.InsertUser(suite.T().Context(), suite.pool)
	suite.Require().NoError(err)
	return userID
}

func (suite *pgSuite) newProduct(price int64, stock int32) domain.StockLevel {
	amount := decimal.NewFromInt(price)

	productID, err := pgtest.InsertProduct(suite.T().Context(), suite.pool, amount, stock)
	suite.Require().NoError(err)

	return domain.StockLevel{
		ProductID: productID,
		Price:     domain.Money{Amount: amount, Currency: currency.RUB},
		Stock:     stock,
	}
}

func randomMoney() domain.Money {
	return domain.Money{
		Amount:   decimal.NewFromFloat(gofakeit.Price(1, 100)).Round(2),
		Currency: randomCurrency(),
	}
}

func randomCurrency() currency.Unit {
	var (
		result currency.Unit
		err    error
	)

	for {
		// tag is not a recognized currency
		result, err = currency.ParseISO(gofakeit.CurrencyShort())
		if err == nil {
			break
		}
	}

	return result
}
