package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

type Accounts struct {
	users port.UserRepository
	cost  int
}

func NewAccounts(users port.UserRepository) *Accounts {
	return &Accounts{users: users, cost: bcrypt.DefaultCost}
}

// NewAccountsWithCost lowers the bcrypt cost, for tests.
func NewAccountsWithCost(users port.UserRepository, cost int) *Accounts {
	return &Accounts{users: users, cost: cost}
}

func (s *Accounts) Register(ctx context.Context, reg domain.Registration) (domain.User, error) {
	reg.Email = strings.TrimSpace(strings.ToLower(reg.Email))
	if err := reg.Validate(); err != nil {
		return domain.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), s.cost)
	if err != nil {
		return domain.User{}, fmt.Errorf("bcrypt.GenerateFromPassword: %w", err)
	}

	user := domain.User{
		Email:        reg.Email,
		PasswordHash: string(hash),
		FirstName:    reg.FirstName,
		LastName:     reg.LastName,
		Role:         domain.RoleCustomer,
		Discount:     decimal.Zero,
	}

	user.ID, err = s.users.CreateUser(ctx, user)
	if err != nil {
		return domain.User{}, fmt.Errorf("users.CreateUser: %w", err)
	}

	return user, nil
}

func (s *Accounts) Login(ctx context.Context, email, password string) (domain.User, error) {
	if email == "" || password == "" {
		return domain.User{}, domain.NewValidationError("", "email and password are required")
	}

	user, err := s.users.GetUserByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if errors.Is(err, domain.ErrNotFound) {
		return domain.User{}, domain.ErrInvalidCredentials
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("users.GetUserByEmail: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return domain.User{}, domain.ErrInvalidCredentials
	}

	return user, nil
}

// Resolve maps the identity header value onto a user.
func (s *Accounts) Resolve(ctx context.Context, email string) (domain.Identity, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return domain.Identity{Status: domain.IdentityAnonymous}, nil
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Identity{Status: domain.IdentityInvalid}, nil
	}
	if err != nil {
		return domain.Identity{}, fmt.Errorf("users.GetUserByEmail: %w", err)
	}

	return domain.Identity{Status: domain.IdentityAuthenticated, User: user}, nil
}

func (s *Accounts) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.ListUsers(ctx)
}

func (s *Accounts) SetDiscount(ctx context.Context, userID int64, percent decimal.Decimal) error {
	if err := domain.ValidateDiscount(percent); err != nil {
		return err
	}
	return s.users.SetDiscount(ctx, userID, percent)
}
