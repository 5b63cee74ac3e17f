package dto

import (
	"time"

	"github.com/SscSPs/bank_dashboard/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FinancialOverviewParams defines query parameters for the overview chart.
type FinancialOverviewParams struct {
	Months int `form:"months,default=6" binding:"min=0,max=24"`
}

// SpendingAnalysisParams defines query parameters for the spending breakdown.
type SpendingAnalysisParams struct {
	Timeframe string `form:"timeframe,default=month" binding:"oneof=week month year"`
}

type MonthlyCashFlowResponse struct {
	Month    string          `json:"month"` // YYYY-MM
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
}

type FinancialSummaryResponse struct {
	Income      decimal.Decimal `json:"income"`
	Expenses    decimal.Decimal `json:"expenses"`
	Savings     decimal.Decimal `json:"savings"`
	Investments decimal.Decimal `json:"investments"`
}

type FinancialOverviewResponse struct {
	Months  []MonthlyCashFlowResponse `json:"months"`
	Summary FinancialSummaryResponse  `json:"summary"`
}

type CategoryAmountResponse struct {
	Category   string          `json:"category"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage decimal.Decimal `json:"percentage"`
}

type SpendingAnalysisResponse struct {
	Timeframe  domain.SpendingTimeframe `json:"timeframe"`
	From       time.Time                `json:"from"`
	To         time.Time                `json:"to"`
	Total      decimal.Decimal          `json:"total"`
	Categories []CategoryAmountResponse `json:"categories"`
}

func ToFinancialOverviewResponse(o *domain.FinancialOverview) FinancialOverviewResponse {
	months := make([]MonthlyCashFlowResponse, len(o.Months))
	for i, m := range o.Months {
		months[i] = MonthlyCashFlowResponse{
			Month:    m.Month.Format("2006-01"),
			Income:   m.Income,
			Expenses: m.Expenses,
		}
	}
	return FinancialOverviewResponse{
		Months: months,
		Summary: FinancialSummaryResponse{
			Income:      o.Summary.Income,
			Expenses:    o.Summary.Expenses,
			Savings:     o.Summary.Savings,
			Investments: o.Summary.Investments,
		},
	}
}

func ToSpendingAnalysisResponse(a *domain.SpendingAnalysis) SpendingAnalysisResponse {
	categories := make([]CategoryAmountResponse, len(a.Categories))
	for i, c := range a.Categories {
		categories[i] = CategoryAmountResponse{Category: c.Category, Amount: c.Amount, Percentage: c.Percentage}
	}
	return SpendingAnalysisResponse{
		Timeframe:  a.Timeframe,
		From:       a.From,
		To:         a.To,
		Total:      a.Total,
		Categories: categories,
	}
}
