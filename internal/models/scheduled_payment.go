package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ScheduledPayment is a row of the scheduled_payments table.
type ScheduledPayment struct {
	PaymentID   string          `db:"payment_id"`
	UserID      string          `db:"user_id"`
	AccountID   string          `db:"account_id"`
	Payee       string          `db:"payee"`
	Amount      decimal.Decimal `db:"amount"`
	DueDate     time.Time       `db:"due_date"`
	Category    string          `db:"category"`
	IsAutomatic bool            `db:"is_automatic"`
	IsPaid      bool            `db:"is_paid"`
	PaidAt      *time.Time      `db:"paid_at"` // Set together with is_paid
	CreatedAt   time.Time       `db:"created_at"`
}
