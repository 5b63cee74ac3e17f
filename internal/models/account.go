package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is a row of the accounts table.
type Account struct {
	AccountID     string          `db:"account_id"`
	UserID        string          `db:"user_id"`
	AccountNumber string          `db:"account_number"`
	AccountType   string          `db:"account_type"`
	Balance       decimal.Decimal `db:"balance"`
	CurrencyCode  string          `db:"currency_code"`
	IsActive      bool            `db:"is_active"`
	CreatedAt     time.Time       `db:"created_at"`
}
