// Package memory is a process-local ledger store. It honours the same
// unit-of-work contract as the PostgreSQL store: row locks taken in key
// order, writes staged until commit, integrity checks before anything is
// applied.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/bank_dashboard/internal/apperrors"
	"github.com/SscSPs/bank_dashboard/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_dashboard/internal/core/ports/repositories"
	"github.com/SscSPs/bank_dashboard/internal/utils/pagination"
)

// Store holds committed ledger state.
type Store struct {
	mu        sync.RWMutex
	users     map[string]domain.User
	usernames map[string]string
	emails    map[string]string
	accounts  map[string]domain.Account
	numbers   map[string]string
	txns      []domain.Transaction
	txnIDs    map[string]struct{}
	payments  map[string]domain.ScheduledPayment

	locksMu sync.Mutex
	locks   map[string]chan struct{}
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		users:     make(map[string]domain.User),
		usernames: make(map[string]string),
		emails:    make(map[string]string),
		accounts:  make(map[string]domain.Account),
		numbers:   make(map[string]string),
		txnIDs:    make(map[string]struct{}),
		payments:  make(map[string]domain.ScheduledPayment),
		locks:     make(map[string]chan struct{}),
	}
}

// NewRepositoryProvider exposes a store through the repository ports.
func NewRepositoryProvider(store *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:          store,
		TransactionRepo:      store,
		ScheduledPaymentRepo: store,
		UserRepo:             store,
		ReportingRepo:        store,
		UnitOfWork:           store,
		Provisioner:          store,
	}
}

var (
	_ portsrepo.AccountReader          = (*Store)(nil)
	_ portsrepo.TransactionReader      = (*Store)(nil)
	_ portsrepo.ScheduledPaymentReader = (*Store)(nil)
	_ portsrepo.UserRepository         = (*Store)(nil)
	_ portsrepo.ReportingRepository    = (*Store)(nil)
	_ portsrepo.UnitOfWork             = (*Store)(nil)
	_ portsrepo.Provisioner            = (*Store)(nil)
)

// rowLock returns the lock channel for key, creating it on first use.
func (s *Store) rowLock(key string) chan struct{} {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	ch, ok := s.locks[key]
	if !ok {
		ch = make(chan struct{}, 1)
		s.locks[key] = ch
	}
	return ch
}

func (s *Store) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acc, ok := s.accounts[accountID]
	if !ok {
		return nil, apperrors.ErrAccountNotFound
	}
	return &acc, nil
}

func (s *Store) ListAccountsByUser(ctx context.Context, userID string) ([]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	accounts := make([]domain.Account, 0)
	for _, acc := range s.accounts {
		if acc.UserID == userID {
			accounts = append(accounts, acc)
		}
	}
	sort.Slice(accounts, func(i, j int) bool {
		if !accounts[i].CreatedAt.Equal(accounts[j].CreatedAt) {
			return accounts[i].CreatedAt.After(accounts[j].CreatedAt)
		}
		return accounts[i].AccountID > accounts[j].AccountID
	})
	return accounts, nil
}

// newestFirst orders transactions by date, then creation time, then id, all descending.
func newestFirst(txns []domain.Transaction) {
	sort.Slice(txns, func(i, j int) bool {
		a, b := txns[i], txns[j]
		if !a.TransactionDate.Equal(b.TransactionDate) {
			return a.TransactionDate.After(b.TransactionDate)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.TransactionID > b.TransactionID
	})
}

func (s *Store) ListTransactionsByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	var cursor *pagination.Cursor
	if nextToken != nil && *nextToken != "" {
		c, err := pagination.DecodeCursor(*nextToken)
		if err != nil {
			return nil, nil, apperrors.Invalid("%v", err)
		}
		cursor = &c
	}

	s.mu.RLock()
	matched := make([]domain.Transaction, 0)
	for _, t := range s.txns {
		if t.AccountID != accountID {
			continue
		}
		if cursor != nil && !cursor.Before(t.TransactionDate, t.CreatedAt, t.TransactionID) {
			continue
		}
		matched = append(matched, t)
	}
	s.mu.RUnlock()

	if limit <= 0 {
		limit = portsrepo.DefaultPageSize
	}
	newestFirst(matched)
	if len(matched) <= limit {
		return matched, nil, nil
	}

	page := matched[:limit]
	last := page[len(page)-1]
	token := pagination.EncodeCursor(pagination.Cursor{
		TransactionDate: last.TransactionDate,
		CreatedAt:       last.CreatedAt,
		ID:              last.TransactionID,
	})
	return page, &token, nil
}

func (s *Store) ListRecentTransactionsByUser(ctx context.Context, userID string, limit int) ([]domain.Transaction, error) {
	s.mu.RLock()
	matched := make([]domain.Transaction, 0)
	for _, t := range s.txns {
		if acc, ok := s.accounts[t.AccountID]; ok && acc.UserID == userID {
			matched = append(matched, t)
		}
	}
	s.mu.RUnlock()

	if limit <= 0 {
		limit = portsrepo.DefaultPageSize
	}
	newestFirst(matched)
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (s *Store) FindScheduledPaymentByID(ctx context.Context, paymentID string) (*domain.ScheduledPayment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.payments[paymentID]
	if !ok {
		return nil, apperrors.ErrPaymentNotFound
	}
	return &p, nil
}

func (s *Store) ListUnpaidScheduledPaymentsByUser(ctx context.Context, userID string) ([]domain.ScheduledPayment, error) {
	s.mu.RLock()
	payments := make([]domain.ScheduledPayment, 0)
	for _, p := range s.payments {
		if p.UserID == userID && !p.IsPaid {
			payments = append(payments, p)
		}
	}
	s.mu.RUnlock()

	sort.Slice(payments, func(i, j int) bool {
		if !payments[i].DueDate.Equal(payments[j].DueDate) {
			return payments[i].DueDate.Before(payments[j].DueDate)
		}
		return payments[i].PaymentID < payments[j].PaymentID
	})
	return payments, nil
}

func (s *Store) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[userID]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return &u, nil
}

func (s *Store) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.usernames[username]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	u := s.users[id]
	return &u, nil
}

func (s *Store) FindUserByRefreshTokenHash(ctx context.Context, hash string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if hash == "" {
		return nil, apperrors.ErrUserNotFound
	}
	for _, u := range s.users {
		if u.RefreshTokenHash == hash {
			return &u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (s *Store) UpdateRefreshToken(ctx context.Context, userID string, hash string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	for id, other := range s.users {
		if id != userID && other.RefreshTokenHash == hash {
			return apperrors.ErrDuplicate
		}
	}
	u.RefreshTokenHash = hash
	u.RefreshTokenExpiryTime = &expiresAt
	s.users[userID] = u
	return nil
}

func (s *Store) ClearRefreshToken(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.RefreshTokenHash = ""
	u.RefreshTokenExpiryTime = nil
	s.users[userID] = u
	return nil
}
