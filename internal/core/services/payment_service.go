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
	"github.com/shopspring/decimal"
)

const paymentProcessedMessage = "Payment processed successfully"

type paymentService struct {
	movementEngine
}

// NewPaymentService creates the bill payment engine.
func NewPaymentService(uow portsrepo.UnitOfWork, options ...EngineOption) portssvc.PaymentSvc {
	return &paymentService{movementEngine: newMovementEngine(uow, options...)}
}

var _ portssvc.PaymentSvc = (*paymentService)(nil)

// PayBill settles a scheduled payment from its linked account.
// The payment row is locked before the account row.
func (s *paymentService) PayBill(ctx context.Context, actor domain.Actor, paymentID string) (*domain.MovementResult, error) {
	logAttrs := []any{slog.String("payment_id", paymentID)}

	if err := domain.ValidateID("paymentId", paymentID); err != nil {
		s.LogWarn(ctx, err, "Bill payment rejected", logAttrs...)
		return nil, err
	}

	var result *domain.MovementResult
	var event domain.MovementEvent

	err := s.uow.Do(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		payment, err := repos.FindScheduledPaymentByIDForUpdate(ctx, paymentID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.ErrPaymentNotFound
			}
			return fmt.Errorf("failed to lock scheduled payment: %w", err)
		}
		if !payment.OwnedBy(actor.UserID) {
			return apperrors.ErrPaymentNotFound
		}
		if payment.IsPaid {
			return apperrors.ErrAlreadyPaid
		}

		accounts, err := repos.FindAccountsByIDsForUpdate(ctx, []string{payment.AccountID})
		if err != nil {
			return fmt.Errorf("failed to lock account for payment: %w", err)
		}
		account, ok := accounts[payment.AccountID]
		if !ok {
			return apperrors.ErrAccountNotFound
		}
		if !account.IsActive {
			return apperrors.ErrAccountInactive
		}
		if !account.CanDebit(payment.Amount) {
			return apperrors.ErrInsufficientFunds
		}

		now := s.now()
		payee := payment.Payee
		debit := domain.Transaction{
			TransactionID:   domain.NewID(),
			AccountID:       account.AccountID,
			Amount:          payment.Amount,
			TransactionType: domain.Debit,
			Category:        payment.Category,
			Description:     "Payment to " + payee,
			Merchant:        &payee,
			TransactionDate: now,
			CreatedAt:       now,
		}

		if err := repos.UpdateAccountBalances(ctx, map[string]decimal.Decimal{account.AccountID: payment.Amount.Neg()}); err != nil {
			return fmt.Errorf("failed to update balance for payment: %w", err)
		}
		if err := repos.InsertTransactions(ctx, []domain.Transaction{debit}); err != nil {
			return fmt.Errorf("failed to record payment transaction: %w", err)
		}
		if err := repos.MarkScheduledPaymentPaid(ctx, payment.PaymentID, now); err != nil {
			if errors.Is(err, apperrors.ErrAlreadyPaid) {
				return err
			}
			return fmt.Errorf("failed to mark payment as paid: %w", err)
		}

		txnIDs := []string{debit.TransactionID}
		result = &domain.MovementResult{Success: true, Message: paymentProcessedMessage, TransactionIDs: txnIDs}
		event = domain.MovementEvent{
			Kind:           domain.MovementBillPayment,
			ActorID:        actor.UserID,
			FromAccountID:  account.AccountID,
			PaymentID:      payment.PaymentID,
			Amount:         payment.Amount,
			TransactionIDs: txnIDs,
			OccurredAt:     now,
		}
		return nil
	})
	if err != nil {
		s.LogFailure(ctx, err, "Bill payment failed", logAttrs...)
		return nil, err
	}

	s.LogInfo(ctx, "Bill payment completed", append(logAttrs, slog.Any("transaction_ids", result.TransactionIDs))...)
	s.publish(ctx, event)
	return result, nil
}
