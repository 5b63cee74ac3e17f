package domain

import (
	"strings"

	"github.com/SscSPs/bank_dashboard/internal/apperrors"
	"github.com/shopspring/decimal"
)

// MoneyScale is the number of fractional digits a movement amount may carry.
const MoneyScale = 2

// ValidateAmount rejects zero, negative, and sub-cent amounts.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return apperrors.Invalid("amount must be greater than zero")
	}
	if !amount.Equal(amount.Truncate(MoneyScale)) {
		return apperrors.Invalid("amount must not have more than %d decimal places", MoneyScale)
	}
	return nil
}

// ParseAmount parses a decimal string and validates it as a movement amount.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, apperrors.Invalid("amount is required")
	}
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, apperrors.Invalid("amount %q is not a number", s)
	}
	if err := ValidateAmount(amount); err != nil {
		return decimal.Zero, err
	}
	return amount, nil
}
