package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/nikolayk812/storefront/internal/domain"
)

// https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	codeUniqueViolation      = "23505"
	codeForeignKeyViolation  = "23503"
	codeCheckViolation       = "23514"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeLockNotAvailable     = "55P03"
	codeQueryCanceled        = "57014"
)

var errTxTimeout = errors.New("transaction timeout")

// wrapErr prefixes err with op and attaches the matching domain sentinel.
func wrapErr(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return fmt.Errorf("%s: %w: %s", op, domain.ErrDuplicate, pgErr.ConstraintName)
		case codeForeignKeyViolation:
			return fmt.Errorf("%s: %w", op, domain.NewValidationError("", "referenced record is missing or still in use"))
		case codeCheckViolation:
			return fmt.Errorf("%s: %w", op, domain.NewValidationError("", "constraint "+pgErr.ConstraintName+" violated"))
		case codeSerializationFailure, codeDeadlockDetected, codeLockNotAvailable, codeQueryCanceled:
			return fmt.Errorf("%s: %w: %w", op, domain.ErrTransactionConflict, err)
		}
	}

	return fmt.Errorf("%s: %w", op, err)
}

// classifyTxErr maps an error that aborted a transaction onto the domain taxonomy.
// Errors that already carry a domain sentinel pass through unchanged.
func classifyTxErr(ctx context.Context, err error) error {
	if err == nil || isDomainErr(err) {
		return err
	}

	if errors.Is(context.Cause(ctx), errTxTimeout) {
		return fmt.Errorf("%w: %w: %w", domain.ErrTransactionConflict, errTxTimeout, err)
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	return fmt.Errorf("%w: %w", domain.ErrPersistence, err)
}

func isDomainErr(err error) bool {
	for _, target := range []error{
		domain.ErrValidation,
		domain.ErrInsufficientStock,
		domain.ErrExceedsStock,
		domain.ErrProductNotFound,
		domain.ErrNotFound,
		domain.ErrDuplicate,
		domain.ErrForbidden,
		domain.ErrTransactionConflict,
		domain.ErrPersistence,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
