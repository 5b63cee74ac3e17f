package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/bank_dashboard/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TxRepositories are the writers and locking readers bound to one unit of work.
// None of them opens or commits a transaction of its own.
type TxRepositories interface {
	// FindAccountsByIDsForUpdate loads and locks accounts in ascending id order.
	// Missing ids are simply absent from the result.
	FindAccountsByIDsForUpdate(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// UpdateAccountBalances adds each delta to the matching account balance.
	UpdateAccountBalances(ctx context.Context, balanceChanges map[string]decimal.Decimal) error

	// InsertTransactions appends rows to the transaction log.
	InsertTransactions(ctx context.Context, txns []domain.Transaction) error

	// FindScheduledPaymentByIDForUpdate loads and locks a scheduled payment.
	// Returns apperrors.ErrPaymentNotFound when no row exists.
	FindScheduledPaymentByIDForUpdate(ctx context.Context, paymentID string) (*domain.ScheduledPayment, error)

	// MarkScheduledPaymentPaid flips is_paid from false to true.
	// Returns apperrors.ErrAlreadyPaid if the payment was already paid.
	MarkScheduledPaymentPaid(ctx context.Context, paymentID string, paidAt time.Time) error
}

// UnitOfWork runs fn atomically: every write made through repos is committed
// if fn returns nil and discarded otherwise.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context, repos TxRepositories) error) error
}
