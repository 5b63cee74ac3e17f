package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/bank_dashboard/internal/apperrors"
	"github.com/SscSPs/bank_dashboard/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_dashboard/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bank_dashboard/internal/core/ports/services"
)

const (
	DefaultPageSize = portsrepo.DefaultPageSize
	MaxPageSize     = 100
)

// accountService implements AccountSvcFacade
type accountService struct {
	BaseService
	accountRepo   portsrepo.AccountReader
	txnRepo       portsrepo.TransactionReader
	scheduledRepo portsrepo.ScheduledPaymentReader
}

// NewAccountService creates the read service behind the dashboard views.
func NewAccountService(accountRepo portsrepo.AccountReader, txnRepo portsrepo.TransactionReader, scheduledRepo portsrepo.ScheduledPaymentReader) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo:   accountRepo,
		txnRepo:       txnRepo,
		scheduledRepo: scheduledRepo,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// NormalizePageSize clamps limit into [1, MaxPageSize], defaulting non-positive values.
func NormalizePageSize(limit int) int {
	if limit <= 0 {
		return DefaultPageSize
	}
	if limit > MaxPageSize {
		return MaxPageSize
	}
	return limit
}

func (s *accountService) ListAccounts(ctx context.Context, actor domain.Actor) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccountsByUser(ctx, actor.UserID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// ownedAccount loads an account and hides it if the actor does not own it.
func (s *accountService) ownedAccount(ctx context.Context, actor domain.Actor, accountID string) (*domain.Account, error) {
	if err := domain.ValidateID("accountId", accountID); err != nil {
		return nil, err
	}
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		s.LogError(ctx, err, "Failed to get account", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to get account %s: %w", accountID, err)
	}
	if !account.OwnedBy(actor.UserID) {
		return nil, apperrors.ErrAccountNotFound
	}
	return account, nil
}

func (s *accountService) GetAccount(ctx context.Context, actor domain.Actor, accountID string) (*domain.Account, error) {
	return s.ownedAccount(ctx, actor, accountID)
}

func (s *accountService) ListAccountTransactions(ctx context.Context, actor domain.Actor, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if _, err := s.ownedAccount(ctx, actor, accountID); err != nil {
		return nil, nil, err
	}
	txns, next, err := s.txnRepo.ListTransactionsByAccount(ctx, accountID, NormalizePageSize(limit), nextToken)
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to list account transactions", slog.String("account_id", accountID))
		}
		return nil, nil, fmt.Errorf("failed to list transactions for account %s: %w", accountID, err)
	}
	return txns, next, nil
}

func (s *accountService) ListRecentTransactions(ctx context.Context, actor domain.Actor, limit int) ([]domain.Transaction, error) {
	txns, err := s.txnRepo.ListRecentTransactionsByUser(ctx, actor.UserID, NormalizePageSize(limit))
	if err != nil {
		s.LogError(ctx, err, "Failed to list recent transactions")
		return nil, fmt.Errorf("failed to list recent transactions: %w", err)
	}
	return txns, nil
}

func (s *accountService) ListUpcomingPayments(ctx context.Context, actor domain.Actor) ([]domain.ScheduledPayment, error) {
	payments, err := s.scheduledRepo.ListUnpaidScheduledPaymentsByUser(ctx, actor.UserID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list upcoming payments")
		return nil, fmt.Errorf("failed to list upcoming payments: %w", err)
	}
	return payments, nil
}
