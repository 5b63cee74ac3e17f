package memory

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/SscSPs/bank_dashboard/internal/apperrors"
	"github.com/SscSPs/bank_dashboard/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_dashboard/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// unitOfWork stages writes against a Store and holds the row locks it took.
type unitOfWork struct {
	store *Store
	held  []chan struct{}
	keys  map[string]struct{}

	deltas map[string]decimal.Decimal
	txns   []domain.Transaction
	paid   map[string]time.Time
}

var _ portsrepo.TxRepositories = (*unitOfWork)(nil)

// Do runs fn in a unit of work. Staged writes are applied only if fn returns
// nil and every integrity check passes; locks are released either way.
func (s *Store) Do(ctx context.Context, fn func(ctx context.Context, repos portsrepo.TxRepositories) error) error {
	u := &unitOfWork{
		store:  s,
		keys:   make(map[string]struct{}),
		deltas: make(map[string]decimal.Decimal),
		paid:   make(map[string]time.Time),
	}
	defer u.release()

	if err := fn(ctx, u); err != nil {
		return err
	}
	return s.commit(u)
}

func accountKey(id string) string { return "account:" + id }
func paymentKey(id string) string { return "payment:" + id }

// lock acquires the row lock for key unless this unit of work already holds it.
func (u *unitOfWork) lock(ctx context.Context, key string) error {
	if _, ok := u.keys[key]; ok {
		return nil
	}
	ch := u.store.rowLock(key)
	select {
	case ch <- struct{}{}:
	case <-ctx.Done():
		return apperrors.NewAppError(http.StatusServiceUnavailable, "timed out waiting for row lock", ctx.Err())
	}
	u.keys[key] = struct{}{}
	u.held = append(u.held, ch)
	return nil
}

func (u *unitOfWork) release() {
	for i := len(u.held) - 1; i >= 0; i-- {
		<-u.held[i]
	}
	u.held = nil
}

func (u *unitOfWork) FindAccountsByIDsForUpdate(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	ids := uniqueSorted(accountIDs)

	result := make(map[string]domain.Account, len(ids))
	for _, id := range ids {
		u.store.mu.RLock()
		_, exists := u.store.accounts[id]
		u.store.mu.RUnlock()
		if !exists {
			continue
		}
		if err := u.lock(ctx, accountKey(id)); err != nil {
			return nil, err
		}
	}

	u.store.mu.RLock()
	defer u.store.mu.RUnlock()
	for _, id := range ids {
		acc, ok := u.store.accounts[id]
		if !ok {
			continue
		}
		if delta, staged := u.deltas[id]; staged {
			acc.Balance = acc.Balance.Add(delta)
		}
		result[id] = acc
	}
	return result, nil
}

func (u *unitOfWork) UpdateAccountBalances(ctx context.Context, balanceChanges map[string]decimal.Decimal) error {
	for id := range balanceChanges {
		if _, ok := u.keys[accountKey(id)]; !ok {
			return fmt.Errorf("account %s must be locked before its balance is updated", id)
		}
	}
	for id, delta := range balanceChanges {
		current, ok := u.deltas[id]
		if !ok {
			current = decimal.Zero
		}
		u.deltas[id] = current.Add(delta)
	}
	return nil
}

func (u *unitOfWork) InsertTransactions(ctx context.Context, txns []domain.Transaction) error {
	u.txns = append(u.txns, txns...)
	return nil
}

func (u *unitOfWork) FindScheduledPaymentByIDForUpdate(ctx context.Context, paymentID string) (*domain.ScheduledPayment, error) {
	u.store.mu.RLock()
	_, exists := u.store.payments[paymentID]
	u.store.mu.RUnlock()
	if !exists {
		return nil, apperrors.ErrPaymentNotFound
	}
	if err := u.lock(ctx, paymentKey(paymentID)); err != nil {
		return nil, err
	}

	u.store.mu.RLock()
	p := u.store.payments[paymentID]
	u.store.mu.RUnlock()
	if paidAt, staged := u.paid[paymentID]; staged {
		p.IsPaid = true
		p.PaidAt = &paidAt
	}
	return &p, nil
}

func (u *unitOfWork) MarkScheduledPaymentPaid(ctx context.Context, paymentID string, paidAt time.Time) error {
	if _, ok := u.keys[paymentKey(paymentID)]; !ok {
		return fmt.Errorf("payment %s must be locked before it is marked paid", paymentID)
	}
	u.store.mu.RLock()
	p, exists := u.store.payments[paymentID]
	u.store.mu.RUnlock()
	if !exists {
		return apperrors.ErrPaymentNotFound
	}
	if _, staged := u.paid[paymentID]; staged || p.IsPaid {
		return apperrors.ErrAlreadyPaid
	}
	u.paid[paymentID] = paidAt
	return nil
}

// commit validates every staged write against committed state and applies
// them together. Nothing is applied if any check fails.
func (s *Store) commit(u *unitOfWork) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	balances := make(map[string]decimal.Decimal, len(u.deltas))
	for id, delta := range u.deltas {
		acc, ok := s.accounts[id]
		if !ok {
			return integrityError("balance update references unknown account %s", id)
		}
		next := acc.Balance.Add(delta)
		if next.IsNegative() {
			return integrityError("balance of account %s would become negative", id)
		}
		balances[id] = next
	}

	seen := make(map[string]struct{}, len(u.txns))
	for _, t := range u.txns {
		if _, ok := s.accounts[t.AccountID]; !ok {
			return integrityError("transaction %s references unknown account %s", t.TransactionID, t.AccountID)
		}
		if !t.Amount.IsPositive() {
			return integrityError("transaction %s amount must be positive", t.TransactionID)
		}
		if t.TransactionType != domain.Debit && t.TransactionType != domain.Credit {
			return integrityError("transaction %s has unknown type %q", t.TransactionID, t.TransactionType)
		}
		if _, dup := s.txnIDs[t.TransactionID]; dup {
			return integrityError("duplicate transaction id %s", t.TransactionID)
		}
		if _, dup := seen[t.TransactionID]; dup {
			return integrityError("duplicate transaction id %s", t.TransactionID)
		}
		seen[t.TransactionID] = struct{}{}
	}

	for id := range u.paid {
		p, ok := s.payments[id]
		if !ok {
			return integrityError("unknown scheduled payment %s", id)
		}
		if p.IsPaid {
			return apperrors.ErrAlreadyPaid
		}
	}

	for id, balance := range balances {
		acc := s.accounts[id]
		acc.Balance = balance
		s.accounts[id] = acc
	}
	for _, t := range u.txns {
		s.txns = append(s.txns, t)
		s.txnIDs[t.TransactionID] = struct{}{}
	}
	for id, paidAt := range u.paid {
		p := s.payments[id]
		p.IsPaid = true
		p.PaidAt = &paidAt
		s.payments[id] = p
	}
	return nil
}

func integrityError(format string, args ...any) error {
	return apperrors.NewAppError(http.StatusInternalServerError, "integrity check failed", fmt.Errorf(format, args...))
}

func uniqueSorted(ids []string) []string {
	set := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := set[id]; ok {
			continue
		}
		set[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
