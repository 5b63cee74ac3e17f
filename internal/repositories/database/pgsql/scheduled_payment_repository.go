package pgsql

import (
	"context"
	"errors"

	"github.com/SscSPs/bank_dashboard/internal/apperrors"
	"github.com/SscSPs/bank_dashboard/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_dashboard/internal/core/ports/repositories"
	"github.com/SscSPs/bank_dashboard/internal/models"
	"github.com/SscSPs/bank_dashboard/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const scheduledPaymentColumns = `payment_id, user_id, account_id, payee, amount, due_date, category, is_automatic, is_paid, paid_at, created_at`

type PgxScheduledPaymentRepository struct {
	BaseRepository
}

func newPgxScheduledPaymentRepository(pool *pgxpool.Pool) *PgxScheduledPaymentRepository {
	return &PgxScheduledPaymentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ScheduledPaymentReader = (*PgxScheduledPaymentRepository)(nil)

func findScheduledPayment(ctx context.Context, q querier, paymentID string, forUpdate bool) (*domain.ScheduledPayment, error) {
	query := `SELECT ` + scheduledPaymentColumns + ` FROM scheduled_payments WHERE payment_id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	rows, err := q.Query(ctx, query, paymentID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query scheduled payment "+paymentID, err)
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.ScheduledPayment])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPaymentNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan scheduled payment "+paymentID, err)
	}
	p := mapping.ToDomainScheduledPayment(m)
	return &p, nil
}

func (r *PgxScheduledPaymentRepository) FindScheduledPaymentByID(ctx context.Context, paymentID string) (*domain.ScheduledPayment, error) {
	return findScheduledPayment(ctx, r.Pool, paymentID, false)
}

// ListUnpaidScheduledPaymentsByUser returns unpaid bills, earliest due date first.
func (r *PgxScheduledPaymentRepository) ListUnpaidScheduledPaymentsByUser(ctx context.Context, userID string) ([]domain.ScheduledPayment, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT `+scheduledPaymentColumns+`
		FROM scheduled_payments
		WHERE user_id = $1 AND is_paid = FALSE
		ORDER BY due_date ASC, payment_id`, userID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list scheduled payments for user "+userID, err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.ScheduledPayment])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan scheduled payments for user "+userID, err)
	}
	return mapping.ToDomainScheduledPaymentSlice(ms), nil
}
