package port

import (
	"context"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/shopspring/decimal"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user domain.User) (int64, error)
	GetUser(ctx context.Context, userID int64) (domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	SetDiscount(ctx context.Context, userID int64, percent decimal.Decimal) error
}
