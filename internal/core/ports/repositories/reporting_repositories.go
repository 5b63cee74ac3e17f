package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/bank_dashboard/internal/core/domain"
)

// ReportingRepository defines aggregate queries over a user's transaction log.
// Rows in the transfer category are excluded from every aggregate.
type ReportingRepository interface {
	// GetMonthlyCashFlow sums credits and debits per calendar month in [from, to).
	// Months without rows are omitted.
	GetMonthlyCashFlow(ctx context.Context, userID string, from, to time.Time) ([]domain.MonthlyCashFlow, error)

	// GetSpendingByCategory sums debits per category in [from, to), largest first.
	// Percentage is left zero.
	GetSpendingByCategory(ctx context.Context, userID string, from, to time.Time) ([]domain.CategoryAmount, error)
}
