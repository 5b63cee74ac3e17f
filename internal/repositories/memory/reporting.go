package memory

import (
	"context"
	"sort"
	"time"

	"github.com/SscSPs/bank_dashboard/internal/core/domain"
	"github.com/shopspring/decimal"
)

func monthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func isInternalTransfer(t domain.Transaction) bool {
	return t.Category == domain.CategoryTransfer && t.Merchant != nil && *t.Merchant == domain.MerchantInternalTransfer
}

// reportable returns the user's rows dated in [from, to), minus internal transfer legs.
func (s *Store) reportable(userID string, from, to time.Time) []domain.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Transaction, 0)
	for _, t := range s.txns {
		if isInternalTransfer(t) {
			continue
		}
		if t.TransactionDate.Before(from) || !t.TransactionDate.Before(to) {
			continue
		}
		if acc, ok := s.accounts[t.AccountID]; ok && acc.UserID == userID {
			out = append(out, t)
		}
	}
	return out
}

func (s *Store) GetMonthlyCashFlow(ctx context.Context, userID string, from, to time.Time) ([]domain.MonthlyCashFlow, error) {
	byMonth := make(map[time.Time]*domain.MonthlyCashFlow)
	for _, t := range s.reportable(userID, from, to) {
		m := monthStart(t.TransactionDate)
		row, ok := byMonth[m]
		if !ok {
			row = &domain.MonthlyCashFlow{Month: m, Income: decimal.Zero, Expenses: decimal.Zero}
			byMonth[m] = row
		}
		if t.TransactionType == domain.Credit {
			row.Income = row.Income.Add(t.Amount)
		} else {
			row.Expenses = row.Expenses.Add(t.Amount)
		}
	}

	rows := make([]domain.MonthlyCashFlow, 0, len(byMonth))
	for _, row := range byMonth {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Month.Before(rows[j].Month) })
	return rows, nil
}

func (s *Store) GetSpendingByCategory(ctx context.Context, userID string, from, to time.Time) ([]domain.CategoryAmount, error) {
	totals := make(map[string]decimal.Decimal)
	for _, t := range s.reportable(userID, from, to) {
		if t.TransactionType != domain.Debit {
			continue
		}
		cur, ok := totals[t.Category]
		if !ok {
			cur = decimal.Zero
		}
		totals[t.Category] = cur.Add(t.Amount)
	}

	rows := make([]domain.CategoryAmount, 0, len(totals))
	for category, amount := range totals {
		rows = append(rows, domain.CategoryAmount{Category: category, Amount: amount, Percentage: decimal.Zero})
	}
	sort.Slice(rows, func(i, j int) bool {
		if c := rows[i].Amount.Cmp(rows[j].Amount); c != 0 {
			return c > 0
		}
		return rows[i].Category < rows[j].Category
	})
	return rows, nil
}
