package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType is the product type of a customer account.
type AccountType string

const (
	AccountTypeChecking   AccountType = "checking"
	AccountTypeSavings    AccountType = "savings"
	AccountTypeInvestment AccountType = "investment"
)

// IsValid reports whether t is a known account type.
func (t AccountType) IsValid() bool {
	switch t {
	case AccountTypeChecking, AccountTypeSavings, AccountTypeInvestment:
		return true
	}
	return false
}

// Account is a customer-visible holding of funds. Balance is only ever
// changed by the movement engines.
type Account struct {
	AccountID     string          `json:"accountID"`
	UserID        string          `json:"userID"`
	AccountNumber string          `json:"accountNumber"`
	AccountType   AccountType     `json:"accountType"`
	Balance       decimal.Decimal `json:"balance"`
	CurrencyCode  string          `json:"currencyCode"`
	IsActive      bool            `json:"isActive"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// OwnedBy reports whether the account belongs to the given user.
func (a Account) OwnedBy(userID string) bool {
	return a.UserID == userID
}

// CanDebit reports whether the balance covers amount.
func (a Account) CanDebit(amount decimal.Decimal) bool {
	return a.Balance.GreaterThanOrEqual(amount)
}
