package services

import (
	"context"

	"github.com/SscSPs/bank_dashboard/internal/core/domain"
)

// AccountReaderSvc defines read operations over the actor's accounts.
// Accounts the actor does not own are reported as not found.
type AccountReaderSvc interface {
	// ListAccounts retrieves every account owned by the actor, newest first.
	ListAccounts(ctx context.Context, actor domain.Actor) ([]domain.Account, error)

	// GetAccount retrieves one of the actor's accounts.
	GetAccount(ctx context.Context, actor domain.Actor, accountID string) (*domain.Account, error)
}

// AccountHistorySvc defines read operations over the transaction log.
type AccountHistorySvc interface {
	// ListAccountTransactions returns one page of an account's history.
	ListAccountTransactions(ctx context.Context, actor domain.Actor, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// ListRecentTransactions returns the latest rows across the actor's accounts.
	ListRecentTransactions(ctx context.Context, actor domain.Actor, limit int) ([]domain.Transaction, error)
}

// UpcomingPaymentsSvc lists bills that have not been paid yet.
type UpcomingPaymentsSvc interface {
	ListUpcomingPayments(ctx context.Context, actor domain.Actor) ([]domain.ScheduledPayment, error)
}

// AccountSvcFacade combines all account-related service interfaces
// This is a facade for clients that need access to all operations
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountHistorySvc
	UpcomingPaymentsSvc
}
