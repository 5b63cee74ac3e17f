package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/bank_dashboard/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_dashboard/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// GetMonthlyCashFlow sums income and expenses per calendar month.
// Internal transfer legs cancel out and are left out; external transfers count as expenses.
func (r *reportingRepository) GetMonthlyCashFlow(ctx context.Context, userID string, from, to time.Time) ([]domain.MonthlyCashFlow, error) {
	query := `
		SELECT
			date_trunc('month', t.transaction_date AT TIME ZONE 'UTC') AS month,
			COALESCE(SUM(CASE WHEN t.transaction_type = 'credit' THEN t.amount ELSE 0 END), 0) AS income,
			COALESCE(SUM(CASE WHEN t.transaction_type = 'debit' THEN t.amount ELSE 0 END), 0) AS expenses
		FROM transactions t
		JOIN accounts a ON t.account_id = a.account_id
		WHERE a.user_id = $1
			AND NOT (t.category = 'transfer' AND t.merchant IS NOT DISTINCT FROM 'Internal Transfer')
			AND t.transaction_date >= $2
			AND t.transaction_date < $3
		GROUP BY month
		ORDER BY month
	`

	rows, err := r.Pool.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("error querying monthly cash flow: %w", err)
	}
	defer rows.Close()

	result := []domain.MonthlyCashFlow{}
	for rows.Next() {
		var row domain.MonthlyCashFlow
		var month time.Time
		if err := rows.Scan(&month, &row.Income, &row.Expenses); err != nil {
			return nil, fmt.Errorf("error scanning monthly cash flow row: %w", err)
		}
		// date_trunc on a timestamp without zone scans back as UTC wall time.
		row.Month = time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating monthly cash flow rows: %w", err)
	}
	return result, nil
}

// GetSpendingByCategory sums debits per category, largest first.
func (r *reportingRepository) GetSpendingByCategory(ctx context.Context, userID string, from, to time.Time) ([]domain.CategoryAmount, error) {
	query := `
		SELECT t.category, SUM(t.amount) AS amount
		FROM transactions t
		JOIN accounts a ON t.account_id = a.account_id
		WHERE a.user_id = $1
			AND t.transaction_type = 'debit'
			AND NOT (t.category = 'transfer' AND t.merchant IS NOT DISTINCT FROM 'Internal Transfer')
			AND t.transaction_date >= $2
			AND t.transaction_date < $3
		GROUP BY t.category
		ORDER BY amount DESC, t.category
	`

	rows, err := r.Pool.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("error querying spending by category: %w", err)
	}
	defer rows.Close()

	result := []domain.CategoryAmount{}
	for rows.Next() {
		row := domain.CategoryAmount{Percentage: decimal.Zero}
		if err := rows.Scan(&row.Category, &row.Amount); err != nil {
			return nil, fmt.Errorf("error scanning spending row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating spending rows: %w", err)
	}
	return result, nil
}
