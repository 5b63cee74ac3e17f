package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthlyCashFlow holds income and expenses for one calendar month.
type MonthlyCashFlow struct {
	Month    time.Time       `json:"month"` // first day of the month, UTC
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
}

// FinancialSummary is the headline figures of the overview.
type FinancialSummary struct {
	Income      decimal.Decimal `json:"income"`
	Expenses    decimal.Decimal `json:"expenses"`
	Savings     decimal.Decimal `json:"savings"`
	Investments decimal.Decimal `json:"investments"`
}

// FinancialOverview represents an income vs expenses report
type FinancialOverview struct {
	Months  []MonthlyCashFlow `json:"months"`
	Summary FinancialSummary  `json:"summary"`
}

// SpendingTimeframe selects the window of a spending analysis.
type SpendingTimeframe string

const (
	TimeframeWeek  SpendingTimeframe = "week"
	TimeframeMonth SpendingTimeframe = "month"
	TimeframeYear  SpendingTimeframe = "year"
)

// Start returns the beginning of the window ending at now.
func (t SpendingTimeframe) Start(now time.Time) (time.Time, bool) {
	switch t {
	case TimeframeWeek:
		return now.AddDate(0, 0, -7), true
	case TimeframeMonth:
		return now.AddDate(0, -1, 0), true
	case TimeframeYear:
		return now.AddDate(-1, 0, 0), true
	}
	return time.Time{}, false
}

// CategoryAmount is a total for one spending category.
type CategoryAmount struct {
	Category   string          `json:"category"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage decimal.Decimal `json:"percentage"`
}

// SpendingAnalysis breaks debits down by category.
type SpendingAnalysis struct {
	Timeframe  SpendingTimeframe `json:"timeframe"`
	From       time.Time         `json:"from"`
	To         time.Time         `json:"to"`
	Total      decimal.Decimal   `json:"total"`
	Categories []CategoryAmount  `json:"categories"`
}
