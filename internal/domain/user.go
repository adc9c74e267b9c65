package domain

import (
	"net/mail"

	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

const MinPasswordLength = 6

type User struct {
	ID           int64
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Role         Role
	// Discount is a percentage in [0, 100].
	Discount decimal.Decimal
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

type Registration struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

func (r Registration) Validate() error {
	if r.Email == "" || r.Password == "" {
		return NewValidationError("", "email and password are required")
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return NewValidationError("email", "is not valid")
	}
	if len(r.Password) < MinPasswordLength {
		return NewValidationError("password", "must be at least 6 characters")
	}
	return nil
}

func ValidateDiscount(percent decimal.Decimal) error {
	if percent.IsNegative() || percent.GreaterThan(decimal.NewFromInt(100)) {
		return NewValidationError("discount", "must be between 0 and 100")
	}
	return nil
}

type IdentityStatus int

const (
	IdentityAnonymous IdentityStatus = iota
	IdentityAuthenticated
	IdentityInvalid
)

// Identity is the resolved caller of a request.
type Identity struct {
	Status IdentityStatus
	User   User
}
