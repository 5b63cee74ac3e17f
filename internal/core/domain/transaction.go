package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether a row moved money out of or into an account.
type TransactionType string

const (
	Debit  TransactionType = "debit"
	Credit TransactionType = "credit"
)

// CategoryTransfer marks rows written by the transfer engine.
const CategoryTransfer = "transfer"

const (
	MerchantInternalTransfer = "Internal Transfer"
	MerchantExternalTransfer = "External Transfer"
)

// Transaction is an immutable record of one balance change on one account.
type Transaction struct {
	TransactionID   string          `json:"transactionID"`
	AccountID       string          `json:"accountID"`
	Amount          decimal.Decimal `json:"amount"` // always positive; direction is TransactionType
	TransactionType TransactionType `json:"transactionType"`
	Category        string          `json:"category"`
	Description     string          `json:"description"`
	Merchant        *string         `json:"merchant,omitempty"`
	TransactionDate time.Time       `json:"transactionDate"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// SignedAmount returns the balance delta this row represents.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.TransactionType == Debit {
		return t.Amount.Neg()
	}
	return t.Amount
}
