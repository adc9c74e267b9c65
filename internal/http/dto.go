package http

import (
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/shopspring/decimal"
)

type userDTO struct {
	ID        int64           `json:"id"`
	Email     string          `json:"email"`
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	Role      string          `json:"role"`
	Discount  decimal.Decimal `json:"discount"`
}

func toUserDTO(u domain.User) userDTO {
	return userDTO{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      string(u.Role),
		Discount:  u.Discount,
	}
}

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type discountRequest struct {
	Discount decimal.Decimal `json:"discount"`
}

type categoryRequest struct {
	Name string `json:"name"`
}

type categoryDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func toCategoryDTO(c domain.Category) categoryDTO {
	return categoryDTO{ID: c.ID, Name: c.Name}
}

type productDTO struct {
	ID           uuid.UUID `json:"id"`
	CategoryID   int64     `json:"category_id"`
	CategoryName string    `json:"category_name"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	ImageURL     string    `json:"image_url"`
	Price        string    `json:"price"`
	Currency     string    `json:"currency"`
	Stock        int32     `json:"stock"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toProductDTO(p domain.Product) productDTO {
	return productDTO{
		ID:           p.ID,
		CategoryID:   p.CategoryID,
		CategoryName: p.CategoryName,
		Name:         p.Name,
		Description:  p.Description,
		ImageURL:     p.ImageURL,
		Price:        p.Price.Amount.StringFixed(2),
		Currency:     p.Price.Currency.String(),
		Stock:        p.Stock,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

type productRequest struct {
	CategoryID  int64           `json:"category_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	ImageURL    string          `json:"image_url"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency"`
	Stock       int32           `json:"stock"`
}

type addItemRequest struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int32     `json:"quantity"`
}

type cartLineDTO struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	ImageURL  string    `json:"image_url"`
	UnitPrice string    `json:"unit_price"`
	Quantity  int32     `json:"quantity"`
	Stock     int32     `json:"stock"`
	InStock   bool      `json:"in_stock"`
	LineTotal string    `json:"line_total"`
}

type cartDTO struct {
	UserID   int64         `json:"user_id"`
	Items    []cartLineDTO `json:"items"`
	Subtotal string        `json:"subtotal"`
	Discount string        `json:"discount"`
	Total    string        `json:"total"`
	Currency string        `json:"currency,omitempty"`
}

func toCartDTO(v domain.CartView) cartDTO {
	dto := cartDTO{
		UserID:   v.UserID,
		Items:    make([]cartLineDTO, 0, len(v.Lines)),
		Subtotal: v.Subtotal.Amount.StringFixed(2),
		Discount: v.Discount.String(),
		Total:    v.Total.Amount.StringFixed(2),
	}
	if len(v.Lines) > 0 {
		dto.Currency = v.Total.Currency.String()
	}

	for _, l := range v.Lines {
		dto.Items = append(dto.Items, cartLineDTO{
			ProductID: l.ProductID,
			Name:      l.Name,
			ImageURL:  l.ImageURL,
			UnitPrice: l.UnitPrice.Amount.StringFixed(2),
			Quantity:  l.Quantity,
			Stock:     l.Stock,
			InStock:   l.InStock,
			LineTotal: l.LineTotal.Amount.StringFixed(2),
		})
	}
	return dto
}

type orderLineRequest struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int32     `json:"quantity"`
}

// placeOrderRequest is optional. Without items the caller's cart is checked out.
type placeOrderRequest struct {
	Items []orderLineRequest `json:"items"`
}

type orderItemDTO struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int32     `json:"quantity"`
	UnitPrice   string    `json:"unit_price"`
	LineTotal   string    `json:"line_total"`
}

func toOrderItemDTOs(items []domain.OrderItem) []orderItemDTO {
	out := make([]orderItemDTO, 0, len(items))
	for _, item := range items {
		out = append(out, orderItemDTO{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.Amount.StringFixed(2),
			LineTotal:   item.LineTotal().Amount.StringFixed(2),
		})
	}
	return out
}

type orderDTO struct {
	ID        int64          `json:"id"`
	UserID    int64          `json:"user_id,omitempty"`
	Total     string         `json:"total"`
	Currency  string         `json:"currency"`
	Status    string         `json:"status"`
	Items     []orderItemDTO `json:"items"`
	CreatedAt time.Time      `json:"created_at"`
}

func toOrderDTO(o domain.Order) orderDTO {
	return orderDTO{
		ID:        o.ID,
		UserID:    o.UserID,
		Total:     o.Total.Amount.StringFixed(2),
		Currency:  o.Total.Currency.String(),
		Status:    string(o.Status),
		Items:     toOrderItemDTOs(o.Items),
		CreatedAt: o.CreatedAt,
	}
}

func receiptToOrderDTO(userID int64, r domain.Receipt) orderDTO {
	return toOrderDTO(domain.Order{
		ID:        r.OrderID,
		UserID:    userID,
		Total:     r.Total,
		Status:    r.Status,
		Items:     r.Items,
		CreatedAt: r.CreatedAt,
	})
}
