package dto

import (
	"time"

	"github.com/SscSPs/bank_dashboard/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ScheduledPaymentResponse defines the data returned for an upcoming bill.
type ScheduledPaymentResponse struct {
	PaymentID   string          `json:"paymentID"`
	AccountID   string          `json:"accountID"`
	Payee       string          `json:"payee"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     time.Time       `json:"dueDate"`
	Category    string          `json:"category"`
	IsAutomatic bool            `json:"isAutomatic"`
	IsPaid      bool            `json:"isPaid"`
}

// ListUpcomingPaymentsResponse wraps the actor's unpaid bills.
type ListUpcomingPaymentsResponse struct {
	Payments []ScheduledPaymentResponse `json:"payments"`
}

func ToScheduledPaymentResponse(p domain.ScheduledPayment) ScheduledPaymentResponse {
	return ScheduledPaymentResponse{
		PaymentID:   p.PaymentID,
		AccountID:   p.AccountID,
		Payee:       p.Payee,
		Amount:      p.Amount,
		DueDate:     p.DueDate,
		Category:    p.Category,
		IsAutomatic: p.IsAutomatic,
		IsPaid:      p.IsPaid,
	}
}

func ToListUpcomingPaymentsResponse(payments []domain.ScheduledPayment) ListUpcomingPaymentsResponse {
	out := make([]ScheduledPaymentResponse, len(payments))
	for i, p := range payments {
		out[i] = ToScheduledPaymentResponse(p)
	}
	return ListUpcomingPaymentsResponse{Payments: out}
}
