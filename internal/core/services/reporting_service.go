package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/bank_dashboard/internal/apperrors"
	"github.com/SscSPs/bank_dashboard/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_dashboard/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bank_dashboard/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

const (
	DefaultOverviewMonths = 6
	MaxOverviewMonths     = 24
)

var hundred = decimal.NewFromInt(100)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	accountRepo   portsrepo.AccountReader
	now           func() time.Time
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithReportingClock overrides the time source reports are anchored to.
func WithReportingClock(now func() time.Time) ReportingServiceOption {
	return func(s *reportingService) {
		s.now = now
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(repo portsrepo.ReportingRepository, accountRepo portsrepo.AccountReader, options ...ReportingServiceOption) portssvc.ReportingService {
	svc := &reportingService{
		reportingRepo: repo,
		accountRepo:   accountRepo,
		now:           func() time.Time { return time.Now().UTC() },
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

func startOfMonth(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// FinancialOverview covers the last months calendar months including the
// current one. The summary reports the previous full month and the current
// savings and investment balances.
func (s *reportingService) FinancialOverview(ctx context.Context, actor domain.Actor, months int) (*domain.FinancialOverview, error) {
	if months == 0 {
		months = DefaultOverviewMonths
	}
	if months < 0 || months > MaxOverviewMonths {
		return nil, apperrors.Invalid("months must be between 1 and %d", MaxOverviewMonths)
	}

	current := startOfMonth(s.now())
	from := current.AddDate(0, -(months - 1), 0)
	to := current.AddDate(0, 1, 0)
	previous := current.AddDate(0, -1, 0)

	queryFrom := from
	if previous.Before(queryFrom) {
		queryFrom = previous
	}

	rows, err := s.reportingRepo.GetMonthlyCashFlow(ctx, actor.UserID, queryFrom, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to get monthly cash flow", slog.Int("months", months))
		return nil, fmt.Errorf("failed to get monthly cash flow: %w", err)
	}
	byMonth := make(map[time.Time]domain.MonthlyCashFlow, len(rows))
	for _, row := range rows {
		byMonth[startOfMonth(row.Month)] = row
	}

	overview := &domain.FinancialOverview{Months: make([]domain.MonthlyCashFlow, 0, months)}
	for m := from; m.Before(to); m = m.AddDate(0, 1, 0) {
		row, ok := byMonth[m]
		if !ok {
			row = domain.MonthlyCashFlow{Income: decimal.Zero, Expenses: decimal.Zero}
		}
		row.Month = m
		overview.Months = append(overview.Months, row)
	}

	summary := domain.FinancialSummary{Income: decimal.Zero, Expenses: decimal.Zero, Savings: decimal.Zero, Investments: decimal.Zero}
	if row, ok := byMonth[previous]; ok {
		summary.Income = row.Income
		summary.Expenses = row.Expenses
	}

	accounts, err := s.accountRepo.ListAccountsByUser(ctx, actor.UserID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts for overview")
		return nil, fmt.Errorf("failed to list accounts for overview: %w", err)
	}
	for _, acc := range accounts {
		switch acc.AccountType {
		case domain.AccountTypeSavings:
			summary.Savings = summary.Savings.Add(acc.Balance)
		case domain.AccountTypeInvestment:
			summary.Investments = summary.Investments.Add(acc.Balance)
		}
	}
	overview.Summary = summary

	return overview, nil
}

// SpendingAnalysis totals debits per category over the timeframe ending now.
func (s *reportingService) SpendingAnalysis(ctx context.Context, actor domain.Actor, timeframe domain.SpendingTimeframe) (*domain.SpendingAnalysis, error) {
	if timeframe == "" {
		timeframe = domain.TimeframeMonth
	}
	now := s.now()
	from, ok := timeframe.Start(now)
	if !ok {
		return nil, apperrors.Invalid("timeframe must be one of week, month, year")
	}

	rows, err := s.reportingRepo.GetSpendingByCategory(ctx, actor.UserID, from, now)
	if err != nil {
		s.LogError(ctx, err, "Failed to get spending by category", slog.String("timeframe", string(timeframe)))
		return nil, fmt.Errorf("failed to get spending by category: %w", err)
	}

	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(row.Amount)
	}
	for i := range rows {
		rows[i].Percentage = decimal.Zero
		if total.IsPositive() {
			rows[i].Percentage = rows[i].Amount.Div(total).Mul(hundred).Round(2)
		}
	}

	return &domain.SpendingAnalysis{
		Timeframe:  timeframe,
		From:       from,
		To:         now,
		Total:      total,
		Categories: rows,
	}, nil
}
