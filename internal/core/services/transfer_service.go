package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/bank_dashboard/internal/apperrors"
	"github.com/SscSPs/bank_dashboard/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_dashboard/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bank_dashboard/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

const transferCompletedMessage = "Transfer completed successfully"

type transferService struct {
	movementEngine
}

// NewTransferService creates the transfer engine.
func NewTransferService(uow portsrepo.UnitOfWork, options ...EngineOption) portssvc.TransferSvc {
	return &transferService{movementEngine: newMovementEngine(uow, options...)}
}

var _ portssvc.TransferSvc = (*transferService)(nil)

func validateTransferRequest(req domain.TransferRequest) error {
	if err := domain.ValidateID("fromAccountId", req.FromAccountID); err != nil {
		return err
	}
	if req.ToAccountID != nil {
		if err := domain.ValidateID("toAccountId", *req.ToAccountID); err != nil {
			return err
		}
		if *req.ToAccountID == req.FromAccountID {
			return apperrors.Invalid("cannot transfer to the same account")
		}
	}
	return domain.ValidateAmount(req.Amount)
}

// Transfer debits the source account and, for an internal destination,
// credits the destination, all in one unit of work.
func (s *transferService) Transfer(ctx context.Context, actor domain.Actor, req domain.TransferRequest) (*domain.MovementResult, error) {
	logAttrs := []any{
		slog.String("from_account_id", req.FromAccountID),
		slog.String("amount", req.Amount.String()),
		slog.Bool("external", req.IsExternal()),
	}

	if err := validateTransferRequest(req); err != nil {
		s.LogWarn(ctx, err, "Transfer rejected", logAttrs...)
		return nil, err
	}

	lockIDs := []string{req.FromAccountID}
	if !req.IsExternal() {
		lockIDs = append(lockIDs, *req.ToAccountID)
	}

	var result *domain.MovementResult
	var event domain.MovementEvent

	err := s.uow.Do(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		accounts, err := repos.FindAccountsByIDsForUpdate(ctx, lockIDs)
		if err != nil {
			return fmt.Errorf("failed to lock accounts for transfer: %w", err)
		}

		source, ok := accounts[req.FromAccountID]
		if !ok || !source.OwnedBy(actor.UserID) {
			return apperrors.ErrAccountNotFound
		}
		if !source.IsActive {
			return apperrors.ErrAccountInactive
		}
		if !source.CanDebit(req.Amount) {
			return apperrors.ErrInsufficientFunds
		}

		var destination domain.Account
		if !req.IsExternal() {
			destination, ok = accounts[*req.ToAccountID]
			if !ok {
				return apperrors.ErrAccountNotFound
			}
			if !destination.IsActive {
				return apperrors.ErrAccountInactive
			}
			if destination.CurrencyCode != source.CurrencyCode {
				return apperrors.ErrCurrencyMismatch
			}
		}

		now := s.now()
		description := strings.TrimSpace(req.Note)
		if description == "" {
			description = "Transfer"
		}

		merchant := domain.MerchantExternalTransfer
		if !req.IsExternal() {
			merchant = domain.MerchantInternalTransfer
		}

		debit := domain.Transaction{
			TransactionID:   domain.NewID(),
			AccountID:       source.AccountID,
			Amount:          req.Amount,
			TransactionType: domain.Debit,
			Category:        domain.CategoryTransfer,
			Description:     description,
			Merchant:        &merchant,
			TransactionDate: now,
			CreatedAt:       now,
		}
		rows := []domain.Transaction{debit}
		changes := map[string]decimal.Decimal{source.AccountID: req.Amount.Neg()}

		if !req.IsExternal() {
			creditMerchant := domain.MerchantInternalTransfer
			rows = append(rows, domain.Transaction{
				TransactionID:   domain.NewID(),
				AccountID:       destination.AccountID,
				Amount:          req.Amount,
				TransactionType: domain.Credit,
				Category:        domain.CategoryTransfer,
				Description:     description,
				Merchant:        &creditMerchant,
				TransactionDate: now,
				CreatedAt:       now,
			})
			changes[destination.AccountID] = req.Amount
		}

		if err := repos.UpdateAccountBalances(ctx, changes); err != nil {
			return fmt.Errorf("failed to update balances for transfer: %w", err)
		}
		if err := repos.InsertTransactions(ctx, rows); err != nil {
			return fmt.Errorf("failed to record transfer transactions: %w", err)
		}

		txnIDs := make([]string, 0, len(rows))
		for _, row := range rows {
			txnIDs = append(txnIDs, row.TransactionID)
		}
		result = &domain.MovementResult{Success: true, Message: transferCompletedMessage, TransactionIDs: txnIDs}
		event = domain.MovementEvent{
			Kind:           domain.MovementTransfer,
			ActorID:        actor.UserID,
			FromAccountID:  source.AccountID,
			ToAccountID:    destination.AccountID,
			Amount:         req.Amount,
			TransactionIDs: txnIDs,
			OccurredAt:     now,
		}
		return nil
	})
	if err != nil {
		s.LogFailure(ctx, err, "Transfer failed", logAttrs...)
		return nil, err
	}

	s.LogInfo(ctx, "Transfer completed", append(logAttrs, slog.Any("transaction_ids", result.TransactionIDs))...)
	s.publish(ctx, event)
	return result, nil
}
