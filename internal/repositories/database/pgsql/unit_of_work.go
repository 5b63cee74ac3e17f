package pgsql

import (
	"context"
	"sort"
	"time"

	"github.com/SscSPs/bank_dashboard/internal/apperrors"
	"github.com/SscSPs/bank_dashboard/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_dashboard/internal/core/ports/repositories"
	"github.com/SscSPs/bank_dashboard/internal/models"
	"github.com/SscSPs/bank_dashboard/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PgxUnitOfWork runs movement engines inside one database transaction.
type PgxUnitOfWork struct {
	BaseRepository
}

func newPgxUnitOfWork(pool *pgxpool.Pool) *PgxUnitOfWork {
	return &PgxUnitOfWork{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.UnitOfWork = (*PgxUnitOfWork)(nil)

// Do commits only when fn returns nil. Row locks taken by fn are held until then.
func (u *PgxUnitOfWork) Do(ctx context.Context, fn func(ctx context.Context, repos portsrepo.TxRepositories) error) error {
	tx, err := u.Begin(ctx)
	if err != nil {
		return err
	}
	defer u.Rollback(ctx, tx) // no-op after a successful commit

	if err := fn(ctx, &txRepositories{tx: tx}); err != nil {
		return err
	}
	return u.Commit(ctx, tx)
}

// txRepositories binds every statement to one pgx.Tx.
type txRepositories struct {
	tx pgx.Tx
}

var _ portsrepo.TxRepositories = (*txRepositories)(nil)

// FindAccountsByIDsForUpdate locks the rows in account_id order so that
// concurrent movements over the same pair cannot deadlock.
func (r *txRepositories) FindAccountsByIDsForUpdate(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	out := make(map[string]domain.Account, len(accountIDs))
	if len(accountIDs) == 0 {
		return out, nil
	}
	ids := append([]string(nil), accountIDs...)
	sort.Strings(ids)

	rows, err := r.tx.Query(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE account_id = ANY($1)
		ORDER BY account_id
		FOR UPDATE`, ids)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to lock accounts for update", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan locked accounts", err)
	}
	for _, m := range ms {
		out[m.AccountID] = mapping.ToDomainAccount(m)
	}
	return out, nil
}

// UpdateAccountBalances applies every delta in one batch. The balance CHECK
// constraint rejects an update that would overdraw an account.
func (r *txRepositories) UpdateAccountBalances(ctx context.Context, balanceChanges map[string]decimal.Decimal) error {
	if len(balanceChanges) == 0 {
		return nil
	}
	ids := make([]string, 0, len(balanceChanges))
	for id := range balanceChanges {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	batch := &pgx.Batch{}
	for _, id := range ids {
		batch.Queue(`UPDATE accounts SET balance = balance + $1 WHERE account_id = $2`, balanceChanges[id], id)
	}
	br := r.tx.SendBatch(ctx, batch)
	defer br.Close()

	for _, id := range ids {
		tag, err := br.Exec()
		if err != nil {
			return constraintError("failed to update balance of account "+id, err)
		}
		if tag.RowsAffected() != 1 {
			return apperrors.NewAppError(500, "balance update matched no row for account "+id, nil)
		}
	}
	return nil
}

func (r *txRepositories) InsertTransactions(ctx context.Context, txns []domain.Transaction) error {
	if len(txns) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, t := range txns {
		m := mapping.ToModelTransaction(t)
		batch.Queue(`
			INSERT INTO transactions (transaction_id, account_id, amount, transaction_type, category, description, merchant, transaction_date, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			m.TransactionID, m.AccountID, m.Amount, m.TransactionType, m.Category, m.Description, m.Merchant, m.TransactionDate, m.CreatedAt)
	}
	br := r.tx.SendBatch(ctx, batch)
	defer br.Close()

	for _, t := range txns {
		if _, err := br.Exec(); err != nil {
			return constraintError("failed to insert transaction "+t.TransactionID, err)
		}
	}
	return nil
}

func (r *txRepositories) FindScheduledPaymentByIDForUpdate(ctx context.Context, paymentID string) (*domain.ScheduledPayment, error) {
	return findScheduledPayment(ctx, r.tx, paymentID, true)
}

// MarkScheduledPaymentPaid only matches an unpaid row, so a second caller
// that got past the lock still cannot pay twice.
func (r *txRepositories) MarkScheduledPaymentPaid(ctx context.Context, paymentID string, paidAt time.Time) error {
	tag, err := r.tx.Exec(ctx, `
		UPDATE scheduled_payments
		SET is_paid = TRUE, paid_at = $2
		WHERE payment_id = $1 AND is_paid = FALSE`, paymentID, paidAt)
	if err != nil {
		return constraintError("failed to mark scheduled payment "+paymentID+" paid", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAlreadyPaid
	}
	return nil
}
