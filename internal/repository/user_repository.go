package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/db"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/shopspring/decimal"
)

type userRepository struct {
	q *db.Queries
}

func NewUser(pool *pgxpool.Pool) port.UserRepository {
	return &userRepository{q: db.New(pool)}
}

func (r *userRepository) CreateUser(ctx context.Context, user domain.User) (int64, error) {
	if user.Email == "" {
		return 0, domain.NewValidationError("", "email is empty")
	}

	role := user.Role
	if role == "" {
		role = domain.RoleCustomer
	}

	userID, err := r.q.CreateUser(ctx, db.CreateUserParams{
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Role:         string(role),
	})
	if err != nil {
		return 0, wrapErr("q.CreateUser", err)
	}

	return userID, nil
}

func (r *userRepository) GetUser(ctx context.Context, userID int64) (domain.User, error) {
	row, err := r.q.GetUser(ctx, userID)
	if err != nil {
		return domain.User{}, wrapErr("q.GetUser", err)
	}

	return mapUserRowToDomain(db.ListUsersRow(row)), nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	if email == "" {
		return domain.User{}, domain.NewValidationError("", "email is empty")
	}

	row, err := r.q.GetUserByEmail(ctx, email)
	if err != nil {
		return domain.User{}, wrapErr("q.GetUserByEmail", err)
	}

	return mapUserRowToDomain(db.ListUsersRow(row)), nil
}

func (r *userRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.q.ListUsers(ctx)
	if err != nil {
		return nil, wrapErr("q.ListUsers", err)
	}

	users := make([]domain.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, mapUserRowToDomain(row))
	}

	return users, nil
}

func (r *userRepository) SetDiscount(ctx context.Context, userID int64, percent decimal.Decimal) error {
	if err := domain.ValidateDiscount(percent); err != nil {
		return err
	}

	rowsAffected, err := r.q.SetUserDiscount(ctx, db.SetUserDiscountParams{
		UserID:   userID,
		Discount: percent,
	})
	if err != nil {
		return wrapErr("q.SetUserDiscount", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("user[%d]: %w", userID, domain.ErrNotFound)
	}

	return nil
}

func mapUserRowToDomain(row db.ListUsersRow) domain.User {
	return domain.User{
		ID:           row.UserID,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		FirstName:    row.FirstName,
		LastName:     row.LastName,
		Role:         domain.Role(row.Role),
		Discount:     row.Discount,
	}
}
