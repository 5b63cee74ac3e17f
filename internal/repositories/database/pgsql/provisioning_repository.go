package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/bank_dashboard/internal/apperrors"
	portsrepo "github.com/SscSPs/bank_dashboard/internal/core/ports/repositories"
	"github.com/SscSPs/bank_dashboard/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxProvisioner loads demo data in a single transaction.
type PgxProvisioner struct {
	BaseRepository
}

func newPgxProvisioner(pool *pgxpool.Pool) *PgxProvisioner {
	return &PgxProvisioner{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.Provisioner = (*PgxProvisioner)(nil)

func (p *PgxProvisioner) CountUsers(ctx context.Context) (int, error) {
	var n int
	if err := p.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count users", err)
	}
	return n, nil
}

// Provision inserts users, then accounts, then transactions and scheduled
// payments, so foreign keys always point at rows already written.
func (p *PgxProvisioner) Provision(ctx context.Context, batch portsrepo.ProvisionBatch) error {
	tx, err := p.Begin(ctx)
	if err != nil {
		return err
	}
	defer p.Rollback(ctx, tx)

	b := &pgx.Batch{}
	for _, u := range batch.Users {
		m := mapping.ToModelUser(u)
		b.Queue(`INSERT INTO users (user_id, username, password_hash, name, email, avatar_url, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			m.UserID, m.Username, m.PasswordHash, m.Name, m.Email, m.AvatarURL, m.CreatedAt)
	}
	for _, a := range batch.Accounts {
		m := mapping.ToModelAccount(a)
		b.Queue(`INSERT INTO accounts (account_id, user_id, account_number, account_type, balance, currency_code, is_active, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			m.AccountID, m.UserID, m.AccountNumber, m.AccountType, m.Balance, m.CurrencyCode, m.IsActive, m.CreatedAt)
	}
	for _, t := range batch.Transactions {
		m := mapping.ToModelTransaction(t)
		b.Queue(`INSERT INTO transactions (transaction_id, account_id, amount, transaction_type, category, description, merchant, transaction_date, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			m.TransactionID, m.AccountID, m.Amount, m.TransactionType, m.Category, m.Description, m.Merchant, m.TransactionDate, m.CreatedAt)
	}
	for _, sp := range batch.ScheduledPayments {
		m := mapping.ToModelScheduledPayment(sp)
		b.Queue(`INSERT INTO scheduled_payments (payment_id, user_id, account_id, payee, amount, due_date, category, is_automatic, is_paid, paid_at, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			m.PaymentID, m.UserID, m.AccountID, m.Payee, m.Amount, m.DueDate, m.Category, m.IsAutomatic, m.IsPaid, m.PaidAt, m.CreatedAt)
	}

	br := tx.SendBatch(ctx, b)
	for i := 0; i < b.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return provisionError(err)
		}
	}
	if err := br.Close(); err != nil {
		return provisionError(err)
	}
	return p.Commit(ctx, tx)
}

func provisionError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s", apperrors.ErrDuplicate, pgErr.ConstraintName)
		case pgFKViolation, pgCheckViolation:
			return fmt.Errorf("%w: %s", apperrors.ErrValidation, pgErr.ConstraintName)
		}
	}
	return apperrors.NewAppError(500, "failed to provision data", err)
}
