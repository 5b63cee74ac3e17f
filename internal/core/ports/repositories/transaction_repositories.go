package repositories

import (
	"context"

	"github.com/SscSPs/bank_dashboard/internal/core/domain"
)

// DefaultPageSize is the page length stores use when limit is not positive.
const DefaultPageSize = 20

// TransactionReader defines read operations over the transaction log.
type TransactionReader interface {
	// ListTransactionsByAccount returns one page of an account's history,
	// transaction date descending. The returned token is nil on the last page.
	ListTransactionsByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// ListRecentTransactionsByUser returns the latest rows across all of a user's accounts.
	ListRecentTransactionsByUser(ctx context.Context, userID string, limit int) ([]domain.Transaction, error)
}
