package repositories

import (
	"context"

	"github.com/SscSPs/bank_dashboard/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	// Returns apperrors.ErrAccountNotFound when no row exists.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccountsByUser retrieves all accounts owned by a user, newest first.
	ListAccountsByUser(ctx context.Context, userID string) ([]domain.Account, error)
}
