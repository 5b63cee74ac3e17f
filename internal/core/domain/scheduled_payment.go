package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ScheduledPayment is an upcoming bill owed by a user and drawn from one account.
type ScheduledPayment struct {
	PaymentID   string          `json:"paymentID"`
	UserID      string          `json:"userID"`
	AccountID   string          `json:"accountID"`
	Payee       string          `json:"payee"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     time.Time       `json:"dueDate"`
	Category    string          `json:"category"`
	IsAutomatic bool            `json:"isAutomatic"`
	IsPaid      bool            `json:"isPaid"`
	PaidAt      *time.Time      `json:"paidAt,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// OwnedBy reports whether the payment belongs to the given user.
func (p ScheduledPayment) OwnedBy(userID string) bool {
	return p.UserID == userID
}
