package memory

import (
	"context"
	"fmt"

	"github.com/SscSPs/bank_dashboard/internal/apperrors"
	portsrepo "github.com/SscSPs/bank_dashboard/internal/core/ports/repositories"
)

func (s *Store) CountUsers(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users), nil
}

// Provision inserts the batch atomically. Unique and foreign-key violations
// leave the store untouched.
func (s *Store) Provision(ctx context.Context, batch portsrepo.ProvisionBatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make(map[string]struct{})
	usernames := make(map[string]struct{})
	emails := make(map[string]struct{})
	for _, u := range batch.Users {
		if _, dup := s.users[u.UserID]; dup {
			return fmt.Errorf("%w: user %s", apperrors.ErrDuplicate, u.UserID)
		}
		if _, dup := s.usernames[u.Username]; dup {
			return fmt.Errorf("%w: username %s", apperrors.ErrDuplicate, u.Username)
		}
		if _, dup := usernames[u.Username]; dup {
			return fmt.Errorf("%w: username %s", apperrors.ErrDuplicate, u.Username)
		}
		if _, dup := users[u.UserID]; dup {
			return fmt.Errorf("%w: user %s", apperrors.ErrDuplicate, u.UserID)
		}
		_, committed := s.emails[u.Email]
		if _, staged := emails[u.Email]; staged || committed {
			return fmt.Errorf("%w: email %s", apperrors.ErrDuplicate, u.Email)
		}
		users[u.UserID] = struct{}{}
		usernames[u.Username] = struct{}{}
		emails[u.Email] = struct{}{}
	}
	userExists := func(id string) bool {
		_, staged := users[id]
		_, committed := s.users[id]
		return staged || committed
	}

	accounts := make(map[string]struct{})
	numbers := make(map[string]struct{})
	for _, a := range batch.Accounts {
		if !userExists(a.UserID) {
			return fmt.Errorf("%w: account %s references unknown user %s", apperrors.ErrValidation, a.AccountID, a.UserID)
		}
		if _, dup := s.accounts[a.AccountID]; dup {
			return fmt.Errorf("%w: account %s", apperrors.ErrDuplicate, a.AccountID)
		}
		if _, dup := s.numbers[a.AccountNumber]; dup {
			return fmt.Errorf("%w: account number %s", apperrors.ErrDuplicate, a.AccountNumber)
		}
		if _, dup := numbers[a.AccountNumber]; dup {
			return fmt.Errorf("%w: account number %s", apperrors.ErrDuplicate, a.AccountNumber)
		}
		if _, dup := accounts[a.AccountID]; dup {
			return fmt.Errorf("%w: account %s", apperrors.ErrDuplicate, a.AccountID)
		}
		if a.Balance.IsNegative() {
			return fmt.Errorf("%w: account %s has a negative balance", apperrors.ErrValidation, a.AccountID)
		}
		accounts[a.AccountID] = struct{}{}
		numbers[a.AccountNumber] = struct{}{}
	}
	accountExists := func(id string) bool {
		_, staged := accounts[id]
		_, committed := s.accounts[id]
		return staged || committed
	}

	txnIDs := make(map[string]struct{})
	for _, t := range batch.Transactions {
		if !accountExists(t.AccountID) {
			return fmt.Errorf("%w: transaction %s references unknown account %s", apperrors.ErrValidation, t.TransactionID, t.AccountID)
		}
		if !t.Amount.IsPositive() {
			return fmt.Errorf("%w: transaction %s amount must be positive", apperrors.ErrValidation, t.TransactionID)
		}
		_, committed := s.txnIDs[t.TransactionID]
		if _, staged := txnIDs[t.TransactionID]; staged || committed {
			return fmt.Errorf("%w: transaction %s", apperrors.ErrDuplicate, t.TransactionID)
		}
		txnIDs[t.TransactionID] = struct{}{}
	}
	paymentIDs := make(map[string]struct{})
	for _, p := range batch.ScheduledPayments {
		if !userExists(p.UserID) || !accountExists(p.AccountID) {
			return fmt.Errorf("%w: scheduled payment %s references unknown user or account", apperrors.ErrValidation, p.PaymentID)
		}
		if !p.Amount.IsPositive() {
			return fmt.Errorf("%w: scheduled payment %s amount must be positive", apperrors.ErrValidation, p.PaymentID)
		}
		if p.IsPaid != (p.PaidAt != nil) {
			return fmt.Errorf("%w: scheduled payment %s paid flag and paid time disagree", apperrors.ErrValidation, p.PaymentID)
		}
		_, committed := s.payments[p.PaymentID]
		if _, staged := paymentIDs[p.PaymentID]; staged || committed {
			return fmt.Errorf("%w: scheduled payment %s", apperrors.ErrDuplicate, p.PaymentID)
		}
		paymentIDs[p.PaymentID] = struct{}{}
	}

	for _, u := range batch.Users {
		s.users[u.UserID] = u
		s.usernames[u.Username] = u.UserID
		s.emails[u.Email] = u.UserID
	}
	for _, a := range batch.Accounts {
		s.accounts[a.AccountID] = a
		s.numbers[a.AccountNumber] = a.AccountID
	}
	for _, t := range batch.Transactions {
		s.txns = append(s.txns, t)
		s.txnIDs[t.TransactionID] = struct{}{}
	}
	for _, p := range batch.ScheduledPayments {
		s.payments[p.PaymentID] = p
	}
	return nil
}
