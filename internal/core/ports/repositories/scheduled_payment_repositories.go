package repositories

import (
	"context"

	"github.com/SscSPs/bank_dashboard/internal/core/domain"
)

// ScheduledPaymentReader defines read operations for upcoming bills.
type ScheduledPaymentReader interface {
	// FindScheduledPaymentByID returns apperrors.ErrPaymentNotFound when no row exists.
	FindScheduledPaymentByID(ctx context.Context, paymentID string) (*domain.ScheduledPayment, error)

	// ListUnpaidScheduledPaymentsByUser returns unpaid bills, earliest due date first.
	ListUnpaidScheduledPaymentsByUser(ctx context.Context, userID string) ([]domain.ScheduledPayment, error)
}
