// Package seed provisions the demo customer used by the dashboard.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/bank_dashboard/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_dashboard/internal/core/ports/repositories"
	"github.com/SscSPs/bank_dashboard/internal/utils"
	"github.com/shopspring/decimal"
)

const (
	DemoUsername = "alex_johnson"
	DemoPassword = "password123"
	demoCurrency = "USD"
)

const day = 24 * time.Hour

type demoTxn struct {
	account  domain.AccountType
	amount   string
	kind     domain.TransactionType
	category string
	desc     string
	merchant string
	ago      time.Duration
}

// History is dated relative to now so the reports have something to show.
var demoHistory = []demoTxn{
	{domain.AccountTypeChecking, "34.21", domain.Debit, "shopping", "Online purchase", "Amazon", 1 * day},
	{domain.AccountTypeChecking, "2750.00", domain.Credit, "salary", "Monthly salary deposit", "Salary Deposit", 4 * day},
	{domain.AccountTypeChecking, "5.40", domain.Debit, "food", "Coffee", "Starbucks", 5 * day},
	{domain.AccountTypeChecking, "1200.00", domain.Debit, "housing", "Monthly rent payment", "Rent Payment", 7 * day},
	{domain.AccountTypeChecking, "42.15", domain.Debit, "gas", "Fuel", "Shell Gas", 9 * day},
	{domain.AccountTypeSavings, "12.38", domain.Credit, "interest", "Monthly interest payment", "Interest Payment", 11 * day},
}

type demoBill struct {
	payee    string
	amount   string
	category string
	dueIn    time.Duration
}

var demoBills = []demoBill{
	{"Electricity Bill", "85.20", "utilities", 3 * day},
	{"Internet Bill", "59.99", "utilities", 5 * day},
	{"Credit Card", "420.00", "credit card", 7 * day},
}

// DemoBatch builds the demo customer. passwordHash is stored as is.
func DemoBatch(now time.Time, passwordHash string) portsrepo.ProvisionBatch {
	now = now.UTC()
	user := domain.User{
		UserID:       domain.NewID(),
		Username:     DemoUsername,
		PasswordHash: passwordHash,
		Name:         "Alex Johnson",
		Email:        "alex.j@example.com",
		CreatedAt:    now,
	}

	accounts := []domain.Account{
		demoAccount(user.UserID, "1234829", domain.AccountTypeChecking, "12458.32", now),
		demoAccount(user.UserID, "7897635", domain.AccountTypeSavings, "8942.51", now),
		demoAccount(user.UserID, "4569214", domain.AccountTypeInvestment, "3161.71", now),
	}
	byType := make(map[domain.AccountType]string, len(accounts))
	for _, a := range accounts {
		byType[a.AccountType] = a.AccountID
	}

	txns := make([]domain.Transaction, 0, len(demoHistory))
	for _, h := range demoHistory {
		merchant := h.merchant
		txns = append(txns, domain.Transaction{
			TransactionID:   domain.NewID(),
			AccountID:       byType[h.account],
			Amount:          decimal.RequireFromString(h.amount),
			TransactionType: h.kind,
			Category:        h.category,
			Description:     h.desc,
			Merchant:        &merchant,
			TransactionDate: now.Add(-h.ago),
			CreatedAt:       now,
		})
	}

	bills := make([]domain.ScheduledPayment, 0, len(demoBills))
	for _, b := range demoBills {
		bills = append(bills, domain.ScheduledPayment{
			PaymentID: domain.NewID(),
			UserID:    user.UserID,
			AccountID: byType[domain.AccountTypeChecking],
			Payee:     b.payee,
			Amount:    decimal.RequireFromString(b.amount),
			DueDate:   now.Add(b.dueIn),
			Category:  b.category,
			CreatedAt: now,
		})
	}

	return portsrepo.ProvisionBatch{
		Users:             []domain.User{user},
		Accounts:          accounts,
		Transactions:      txns,
		ScheduledPayments: bills,
	}
}

func demoAccount(userID, number string, t domain.AccountType, balance string, now time.Time) domain.Account {
	return domain.Account{
		AccountID:     domain.NewID(),
		UserID:        userID,
		AccountNumber: number,
		AccountType:   t,
		Balance:       decimal.RequireFromString(balance),
		CurrencyCode:  demoCurrency,
		IsActive:      true,
		CreatedAt:     now,
	}
}

// Run provisions the demo customer when the store has no users.
// It reports whether anything was written.
func Run(ctx context.Context, p portsrepo.Provisioner, now time.Time) (bool, error) {
	n, err := p.CountUsers(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to count users: %w", err)
	}
	if n > 0 {
		slog.InfoContext(ctx, "Store already has users, skipping demo seed", slog.Int("users", n))
		return false, nil
	}

	hash, err := utils.HashPassword(DemoPassword)
	if err != nil {
		return false, fmt.Errorf("failed to hash demo password: %w", err)
	}
	if err := p.Provision(ctx, DemoBatch(now, hash)); err != nil {
		return false, fmt.Errorf("failed to provision demo data: %w", err)
	}
	slog.InfoContext(ctx, "Demo data provisioned", slog.String("username", DemoUsername))
	return true, nil
}
