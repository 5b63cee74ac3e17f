package mapping

import (
	"github.com/SscSPs/bank_dashboard/internal/core/domain"
	"github.com/SscSPs/bank_dashboard/internal/models"
)

// ToModelScheduledPayment converts a domain ScheduledPayment to its row
func ToModelScheduledPayment(d domain.ScheduledPayment) models.ScheduledPayment {
	return models.ScheduledPayment{
		PaymentID:   d.PaymentID,
		UserID:      d.UserID,
		AccountID:   d.AccountID,
		Payee:       d.Payee,
		Amount:      d.Amount,
		DueDate:     d.DueDate,
		Category:    d.Category,
		IsAutomatic: d.IsAutomatic,
		IsPaid:      d.IsPaid,
		PaidAt:      d.PaidAt,
		CreatedAt:   d.CreatedAt,
	}
}

// ToDomainScheduledPayment converts a scheduled_payments row to a domain ScheduledPayment
func ToDomainScheduledPayment(m models.ScheduledPayment) domain.ScheduledPayment {
	return domain.ScheduledPayment{
		PaymentID:   m.PaymentID,
		UserID:      m.UserID,
		AccountID:   m.AccountID,
		Payee:       m.Payee,
		Amount:      m.Amount,
		DueDate:     m.DueDate,
		Category:    m.Category,
		IsAutomatic: m.IsAutomatic,
		IsPaid:      m.IsPaid,
		PaidAt:      m.PaidAt,
		CreatedAt:   m.CreatedAt,
	}
}

// ToDomainScheduledPaymentSlice converts rows to domain ScheduledPayments
func ToDomainScheduledPaymentSlice(ms []models.ScheduledPayment) []domain.ScheduledPayment {
	ds := make([]domain.ScheduledPayment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainScheduledPayment(m)
	}
	return ds
}
