package repository

import (
	"fmt"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

func mapMoney(amount decimal.Decimal, code string) (domain.Money, error) {
	parsedCurrency, err := currency.ParseISO(code)
	if err != nil {
		return domain.Money{}, fmt.Errorf("currency[%s] is not valid: %w", code, err)
	}

	return domain.Money{Amount: amount, Currency: parsedCurrency}, nil
}

func mapRows[R, T any](rows []R, fn func(R) (T, error)) ([]T, error) {
	items := make([]T, 0, len(rows))

	for _, row := range rows {
		item, err := fn(row)
		if err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	return items, nil
}
