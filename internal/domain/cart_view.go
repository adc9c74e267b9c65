package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartView is a priced cart as shown to its owner.
type CartView struct {
	UserID   int64
	Lines    []CartViewLine
	Subtotal Money
	Discount decimal.Decimal
	Total    Money
}

type CartViewLine struct {
	ProductID uuid.UUID
	Name      string
	ImageURL  string
	UnitPrice Money
	Quantity  int32
	Stock     int32
	InStock   bool
	LineTotal Money
}

// NewCartView prices lines and applies the discount percentage to the subtotal.
func NewCartView(userID int64, lines []CartViewLine, discount decimal.Decimal) (CartView, error) {
	view := CartView{UserID: userID, Discount: discount, Lines: make([]CartViewLine, 0, len(lines))}

	for _, l := range lines {
		l.LineTotal = l.UnitPrice.Mul(l.Quantity)
		l.InStock = l.Quantity <= l.Stock

		subtotal, err := view.Subtotal.Add(l.LineTotal)
		if err != nil {
			return CartView{}, err
		}
		view.Subtotal = subtotal
		view.Lines = append(view.Lines, l)
	}

	view.Total = view.Subtotal.ApplyDiscount(discount)
	return view, nil
}
