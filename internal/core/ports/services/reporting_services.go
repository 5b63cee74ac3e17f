package services

import (
	"context"

	"github.com/SscSPs/bank_dashboard/internal/core/domain"
)

// ReportingService defines operations for generating dashboard reports
type ReportingService interface {
	// FinancialOverview reports income against expenses for the last months.
	FinancialOverview(ctx context.Context, actor domain.Actor, months int) (*domain.FinancialOverview, error)

	// SpendingAnalysis breaks down the actor's spending by category.
	SpendingAnalysis(ctx context.Context, actor domain.Actor, timeframe domain.SpendingTimeframe) (*domain.SpendingAnalysis, error)
}
