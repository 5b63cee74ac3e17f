package pgsql

import (
	"context"
	"strconv"

	"github.com/SscSPs/bank_dashboard/internal/apperrors"
	"github.com/SscSPs/bank_dashboard/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_dashboard/internal/core/ports/repositories"
	"github.com/SscSPs/bank_dashboard/internal/models"
	"github.com/SscSPs/bank_dashboard/internal/utils/mapping"
	"github.com/SscSPs/bank_dashboard/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const transactionColumns = `t.transaction_id, t.account_id, t.amount, t.transaction_type, t.category, t.description, t.merchant, t.transaction_date, t.created_at`

// Ordering must be stable across pages; transaction_id breaks ties.
const transactionOrder = `ORDER BY t.transaction_date DESC, t.created_at DESC, t.transaction_id DESC`

type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(pool *pgxpool.Pool) *PgxTransactionRepository {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionReader = (*PgxTransactionRepository)(nil)

// ListTransactionsByAccount retrieves a page of an account's transactions using keyset pagination.
// It returns the transactions, a token for the next page, and an error.
func (r *PgxTransactionRepository) ListTransactionsByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = portsrepo.DefaultPageSize
	}
	// One extra row tells us whether a next page exists.
	fetchLimit := limit + 1

	query := `SELECT ` + transactionColumns + ` FROM transactions t WHERE t.account_id = $1`
	args := []any{accountID}

	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeCursor(*nextToken)
		if err != nil {
			return nil, nil, apperrors.Invalid("%v", err)
		}
		query += ` AND (t.transaction_date, t.created_at, t.transaction_id) < ($2, $3, $4)`
		args = append(args, cursor.TransactionDate, cursor.CreatedAt, cursor.ID)
	}
	query += " " + transactionOrder + " LIMIT $" + strconv.Itoa(len(args)+1)
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query transactions for account "+accountID, err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Transaction])
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to scan transactions for account "+accountID, err)
	}

	var next *string
	if len(ms) > limit {
		ms = ms[:limit]
		last := ms[limit-1]
		token := pagination.EncodeCursor(pagination.Cursor{
			TransactionDate: last.TransactionDate,
			CreatedAt:       last.CreatedAt,
			ID:              last.TransactionID,
		})
		next = &token
	}
	return mapping.ToDomainTransactionSlice(ms), next, nil
}

// ListRecentTransactionsByUser returns the latest rows across all of the user's accounts.
func (r *PgxTransactionRepository) ListRecentTransactionsByUser(ctx context.Context, userID string, limit int) ([]domain.Transaction, error) {
	if limit <= 0 {
		limit = portsrepo.DefaultPageSize
	}
	rows, err := r.Pool.Query(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions t
		JOIN accounts a ON a.account_id = t.account_id
		WHERE a.user_id = $1
		`+transactionOrder+`
		LIMIT $2`, userID, limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query recent transactions for user "+userID, err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Transaction])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan recent transactions for user "+userID, err)
	}
	return mapping.ToDomainTransactionSlice(ms), nil
}
