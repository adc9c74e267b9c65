package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

func NewMoney(amount decimal.Decimal, cur currency.Unit) Money {
	return Money{Amount: amount, Currency: cur}
}

// Mul returns the amount multiplied by a line quantity.
func (m Money) Mul(qty int32) Money {
	return Money{Amount: m.Amount.Mul(decimal.NewFromInt32(qty)), Currency: m.Currency}
}

// Add sums two amounts of the same currency. A zero Money adopts the other currency.
func (m Money) Add(other Money) (Money, error) {
	if m.Currency == (currency.Unit{}) {
		return Money{Amount: m.Amount.Add(other.Amount), Currency: other.Currency}, nil
	}
	if other.Currency != (currency.Unit{}) && m.Currency != other.Currency {
		return Money{}, NewValidationError("currency", fmt.Sprintf("cannot add %s to %s", other.Currency, m.Currency))
	}
	return Money{Amount: m.Amount.Add(other.Amount), Currency: m.Currency}, nil
}

// ApplyDiscount reduces the amount by percent and rounds to cents.
func (m Money) ApplyDiscount(percent decimal.Decimal) Money {
	factor := decimal.NewFromInt(100).Sub(percent).Div(decimal.NewFromInt(100))
	return Money{Amount: m.Amount.Mul(factor).Round(2), Currency: m.Currency}
}

func (m Money) String() string {
	return m.Amount.StringFixed(2) + " " + m.Currency.String()
}
