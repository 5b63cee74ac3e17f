package mapping

import (
	"github.com/SscSPs/bank_dashboard/internal/core/domain"
	"github.com/SscSPs/bank_dashboard/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:     d.AccountID,
		UserID:        d.UserID,
		AccountNumber: d.AccountNumber,
		AccountType:   string(d.AccountType),
		Balance:       d.Balance,
		CurrencyCode:  d.CurrencyCode,
		IsActive:      d.IsActive,
		CreatedAt:     d.CreatedAt,
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:     m.AccountID,
		UserID:        m.UserID,
		AccountNumber: m.AccountNumber,
		AccountType:   domain.AccountType(m.AccountType),
		Balance:       m.Balance,
		CurrencyCode:  m.CurrencyCode,
		IsActive:      m.IsActive,
		CreatedAt:     m.CreatedAt,
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to a slice of domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
