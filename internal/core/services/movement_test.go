package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/bank_dashboard/internal/apperrors"
	"github.com/SscSPs/bank_dashboard/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_dashboard/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bank_dashboard/internal/core/ports/services"
	"github.com/SscSPs/bank_dashboard/internal/core/services"
	"github.com/SscSPs/bank_dashboard/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

// recordingPublisher captures published events.
type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.MovementEvent
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, event domain.MovementEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) Events() []domain.MovementEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.MovementEvent(nil), p.events...)
}

// faultyUnitOfWork wraps a real unit of work and fails one writer after the
// writes before it have been staged.
type faultyUnitOfWork struct {
	inner  portsrepo.UnitOfWork
	failOn string
}

var errInjected = errors.New("injected store failure")

func (f *faultyUnitOfWork) Do(ctx context.Context, fn func(ctx context.Context, repos portsrepo.TxRepositories) error) error {
	return f.inner.Do(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		return fn(ctx, &faultyRepos{TxRepositories: repos, failOn: f.failOn})
	})
}

type faultyRepos struct {
	portsrepo.TxRepositories
	failOn string
}

// FindAccountsByIDsForUpdate reports every account as missing when asked to.
func (r *faultyRepos) FindAccountsByIDsForUpdate(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	if r.failOn == "FindAccountsByIDsForUpdate" {
		return map[string]domain.Account{}, nil
	}
	return r.TxRepositories.FindAccountsByIDsForUpdate(ctx, accountIDs)
}

func (r *faultyRepos) InsertTransactions(ctx context.Context, txns []domain.Transaction) error {
	if r.failOn == "InsertTransactions" {
		return errInjected
	}
	return r.TxRepositories.InsertTransactions(ctx, txns)
}

func (r *faultyRepos) MarkScheduledPaymentPaid(ctx context.Context, paymentID string, paidAt time.Time) error {
	if r.failOn == "MarkScheduledPaymentPaid" {
		return errInjected
	}
	return r.TxRepositories.MarkScheduledPaymentPaid(ctx, paymentID, paidAt)
}

// --- Test Suite Setup ---

type MovementTestSuite struct {
	suite.Suite
	ctx       context.Context
	store     *memory.Store
	publisher *recordingPublisher
	clock     time.Time
	transfers portssvc.TransferSvc
	payments  portssvc.PaymentSvc

	actor     domain.Actor
	stranger  domain.Actor
	checking  domain.Account
	savings   domain.Account
	dormant   domain.Account
	euro      domain.Account
	foreign   domain.Account
	bill      domain.ScheduledPayment
	strangers domain.ScheduledPayment
}

func TestMovementTestSuite(t *testing.T) {
	suite.Run(t, new(MovementTestSuite))
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func (suite *MovementTestSuite) newAccount(owner domain.Actor, number string, balance string) domain.Account {
	return domain.Account{
		AccountID:     domain.NewID(),
		UserID:        owner.UserID,
		AccountNumber: number,
		AccountType:   domain.AccountTypeChecking,
		Balance:       money(balance),
		CurrencyCode:  "USD",
		IsActive:      true,
		CreatedAt:     suite.clock,
	}
}

func (suite *MovementTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = memory.NewStore()
	suite.publisher = &recordingPublisher{}
	suite.clock = time.Date(2025, 5, 20, 9, 30, 0, 0, time.UTC)

	suite.actor = domain.NewActor(domain.NewID())
	suite.stranger = domain.NewActor(domain.NewID())

	suite.checking = suite.newAccount(suite.actor, "1234829", "200.00")
	suite.savings = suite.newAccount(suite.actor, "7897635", "50.00")
	suite.savings.AccountType = domain.AccountTypeSavings
	suite.dormant = suite.newAccount(suite.actor, "5550001", "500.00")
	suite.dormant.IsActive = false
	suite.euro = suite.newAccount(suite.actor, "5550002", "10.00")
	suite.euro.CurrencyCode = "EUR"
	suite.foreign = suite.newAccount(suite.stranger, "9990001", "75.00")

	suite.bill = domain.ScheduledPayment{
		PaymentID: domain.NewID(), UserID: suite.actor.UserID, AccountID: suite.checking.AccountID,
		Payee: "City Power & Light", Amount: money("85.20"), DueDate: suite.clock.AddDate(0, 0, 3), Category: "utilities",
	}
	suite.strangers = domain.ScheduledPayment{
		PaymentID: domain.NewID(), UserID: suite.stranger.UserID, AccountID: suite.foreign.AccountID,
		Payee: "Landlord", Amount: money("10.00"), DueDate: suite.clock, Category: "housing",
	}

	suite.Require().NoError(suite.store.Provision(suite.ctx, portsrepo.ProvisionBatch{
		Users: []domain.User{
			{UserID: suite.actor.UserID, Username: "alex_johnson", Name: "Alex Johnson", Email: "alex.j@example.com"},
			{UserID: suite.stranger.UserID, Username: "sam", Name: "Sam", Email: "sam@example.com"},
		},
		Accounts:          []domain.Account{suite.checking, suite.savings, suite.dormant, suite.euro, suite.foreign},
		ScheduledPayments: []domain.ScheduledPayment{suite.bill, suite.strangers},
	}))

	suite.buildEngines(suite.store)
}

func (suite *MovementTestSuite) buildEngines(uow portsrepo.UnitOfWork) {
	clock := func() time.Time { return suite.clock }
	suite.transfers = services.NewTransferService(uow, services.WithEventPublisher(suite.publisher), services.WithClock(clock))
	suite.payments = services.NewPaymentService(uow, services.WithEventPublisher(suite.publisher), services.WithClock(clock))
}

func (suite *MovementTestSuite) balance(accountID string) decimal.Decimal {
	acc, err := suite.store.FindAccountByID(suite.ctx, accountID)
	suite.Require().NoError(err)
	return acc.Balance
}

func (suite *MovementTestSuite) assertBalance(accountID, want string) {
	got := suite.balance(accountID)
	suite.True(money(want).Equal(got), "account %s: want %s, got %s", accountID, want, got)
}

func (suite *MovementTestSuite) ledgerTotal() decimal.Decimal {
	total := decimal.Zero
	for _, actor := range []domain.Actor{suite.actor, suite.stranger} {
		accounts, err := suite.store.ListAccountsByUser(suite.ctx, actor.UserID)
		suite.Require().NoError(err)
		for _, acc := range accounts {
			total = total.Add(acc.Balance)
		}
	}
	return total
}

func (suite *MovementTestSuite) rowCount() int {
	n := 0
	for _, actor := range []domain.Actor{suite.actor, suite.stranger} {
		txns, err := suite.store.ListRecentTransactionsByUser(suite.ctx, actor.UserID, 1000)
		suite.Require().NoError(err)
		n += len(txns)
	}
	return n
}

func ptr(s string) *string { return &s }

// --- Transfer Engine ---

func (suite *MovementTestSuite) TestInternalTransfer_ConservesMoneyAndWritesTwoRows() {
	before := suite.ledgerTotal()

	result, err := suite.transfers.Transfer(suite.ctx, suite.actor, domain.TransferRequest{
		FromAccountID: suite.checking.AccountID,
		ToAccountID:   ptr(suite.savings.AccountID),
		Amount:        money("30.00"),
		Note:          "Rainy day fund",
	})
	suite.Require().NoError(err)
	suite.True(result.Success)
	suite.Equal("Transfer completed successfully", result.Message)
	suite.Len(result.TransactionIDs, 2)

	suite.assertBalance(suite.checking.AccountID, "170.00")
	suite.assertBalance(suite.savings.AccountID, "80.00")
	suite.True(before.Equal(suite.ledgerTotal()), "internal transfers conserve money")

	debits, _, err := suite.store.ListTransactionsByAccount(suite.ctx, suite.checking.AccountID, 10, nil)
	suite.Require().NoError(err)
	credits, _, err := suite.store.ListTransactionsByAccount(suite.ctx, suite.savings.AccountID, 10, nil)
	suite.Require().NoError(err)
	suite.Require().Len(debits, 1)
	suite.Require().Len(credits, 1)

	debit, credit := debits[0], credits[0]
	suite.Equal(domain.Debit, debit.TransactionType)
	suite.Equal(domain.Credit, credit.TransactionType)
	suite.True(debit.Amount.Equal(credit.Amount))
	suite.True(debit.TransactionDate.Equal(credit.TransactionDate))
	suite.Equal(domain.CategoryTransfer, debit.Category)
	suite.Equal("Rainy day fund", debit.Description)
	suite.Equal(domain.MerchantInternalTransfer, *debit.Merchant)
	suite.Equal(domain.MerchantInternalTransfer, *credit.Merchant)

	events := suite.publisher.Events()
	suite.Require().Len(events, 1)
	suite.Equal(domain.MovementTransfer, events[0].Kind)
	suite.Equal(suite.savings.AccountID, events[0].ToAccountID)
	suite.ElementsMatch(result.TransactionIDs, events[0].TransactionIDs)
}

func (suite *MovementTestSuite) TestExternalTransfer_DebitsOnly() {
	before := suite.ledgerTotal()

	result, err := suite.transfers.Transfer(suite.ctx, suite.actor, domain.TransferRequest{
		FromAccountID: suite.checking.AccountID,
		Amount:        money("12.34"),
	})
	suite.Require().NoError(err)
	suite.Len(result.TransactionIDs, 1)

	suite.assertBalance(suite.checking.AccountID, "187.66")
	suite.True(before.Sub(money("12.34")).Equal(suite.ledgerTotal()))

	rows, _, err := suite.store.ListTransactionsByAccount(suite.ctx, suite.checking.AccountID, 10, nil)
	suite.Require().NoError(err)
	suite.Require().Len(rows, 1)
	suite.Equal(domain.MerchantExternalTransfer, *rows[0].Merchant)
	suite.Equal("Transfer", rows[0].Description, "empty note falls back to the default description")
	suite.Equal(1, suite.rowCount())
}

func (suite *MovementTestSuite) TestExternalTransfer_CountsAsSpending() {
	_, err := suite.transfers.Transfer(suite.ctx, suite.actor, domain.TransferRequest{
		FromAccountID: suite.checking.AccountID, ToAccountID: ptr(suite.savings.AccountID), Amount: money("70.00"),
	})
	suite.Require().NoError(err)
	_, err = suite.transfers.Transfer(suite.ctx, suite.actor, domain.TransferRequest{
		FromAccountID: suite.checking.AccountID, Amount: money("40.00"),
	})
	suite.Require().NoError(err)

	later := suite.clock.Add(time.Hour)
	reporting := services.NewReportingService(suite.store, suite.store, services.WithReportingClock(func() time.Time { return later }))
	analysis, err := reporting.SpendingAnalysis(suite.ctx, suite.actor, domain.TimeframeMonth)
	suite.Require().NoError(err)

	suite.True(money("40.00").Equal(analysis.Total), "only the external leg is spending, got %s", analysis.Total)
	suite.Require().Len(analysis.Categories, 1)
	suite.Equal(domain.CategoryTransfer, analysis.Categories[0].Category)
}

func (suite *MovementTestSuite) TestTransfer_RejectsInvalidInput() {
	tests := []struct {
		name string
		req  domain.TransferRequest
	}{
		{"zero amount", domain.TransferRequest{FromAccountID: suite.checking.AccountID, ToAccountID: ptr(suite.savings.AccountID), Amount: decimal.Zero}},
		{"negative amount", domain.TransferRequest{FromAccountID: suite.checking.AccountID, ToAccountID: ptr(suite.savings.AccountID), Amount: money("-5")}},
		{"sub-cent amount", domain.TransferRequest{FromAccountID: suite.checking.AccountID, ToAccountID: ptr(suite.savings.AccountID), Amount: money("0.001")}},
		{"same account", domain.TransferRequest{FromAccountID: suite.checking.AccountID, ToAccountID: ptr(suite.checking.AccountID), Amount: money("1")}},
		{"malformed source", domain.TransferRequest{FromAccountID: "acc-1", Amount: money("1")}},
		{"malformed destination", domain.TransferRequest{FromAccountID: suite.checking.AccountID, ToAccountID: ptr("acc-2"), Amount: money("1")}},
		{"currency mismatch", domain.TransferRequest{FromAccountID: suite.checking.AccountID, ToAccountID: ptr(suite.euro.AccountID), Amount: money("1")}},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			result, err := suite.transfers.Transfer(suite.ctx, suite.actor, tt.req)
			suite.Nil(result)
			suite.ErrorIs(err, apperrors.ErrInvalidInput)
		})
	}

	suite.assertBalance(suite.checking.AccountID, "200.00")
	suite.assertBalance(suite.savings.AccountID, "50.00")
	suite.Equal(0, suite.rowCount())
	suite.Empty(suite.publisher.Events())
}

func (suite *MovementTestSuite) TestTransfer_InsufficientFunds() {
	poor := suite.newAccount(suite.actor, "1000100", "100.00")
	suite.Require().NoError(suite.store.Provision(suite.ctx, portsrepo.ProvisionBatch{Accounts: []domain.Account{poor}}))

	_, err := suite.transfers.Transfer(suite.ctx, suite.actor, domain.TransferRequest{
		FromAccountID: poor.AccountID,
		ToAccountID:   ptr(suite.savings.AccountID),
		Amount:        money("150.00"),
	})
	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)
	suite.assertBalance(poor.AccountID, "100.00")
	suite.assertBalance(suite.savings.AccountID, "50.00")
	suite.Equal(0, suite.rowCount())
}

func (suite *MovementTestSuite) TestTransfer_ExactBalanceEmptiesAccount() {
	_, err := suite.transfers.Transfer(suite.ctx, suite.actor, domain.TransferRequest{
		FromAccountID: suite.savings.AccountID,
		ToAccountID:   ptr(suite.checking.AccountID),
		Amount:        money("50.00"),
	})
	suite.Require().NoError(err)
	suite.assertBalance(suite.savings.AccountID, "0")
	suite.assertBalance(suite.checking.AccountID, "250.00")
}

func (suite *MovementTestSuite) TestTransfer_AccountChecks() {
	tests := []struct {
		name    string
		actor   domain.Actor
		req     domain.TransferRequest
		wantErr error
	}{
		{
			name:    "source owned by someone else",
			actor:   suite.actor,
			req:     domain.TransferRequest{FromAccountID: suite.foreign.AccountID, ToAccountID: ptr(suite.checking.AccountID), Amount: money("1")},
			wantErr: apperrors.ErrAccountNotFound,
		},
		{
			name:    "source does not exist",
			actor:   suite.actor,
			req:     domain.TransferRequest{FromAccountID: domain.NewID(), Amount: money("1")},
			wantErr: apperrors.ErrAccountNotFound,
		},
		{
			name:    "destination does not exist",
			actor:   suite.actor,
			req:     domain.TransferRequest{FromAccountID: suite.checking.AccountID, ToAccountID: ptr(domain.NewID()), Amount: money("1")},
			wantErr: apperrors.ErrAccountNotFound,
		},
		{
			name:    "inactive source",
			actor:   suite.actor,
			req:     domain.TransferRequest{FromAccountID: suite.dormant.AccountID, Amount: money("1")},
			wantErr: apperrors.ErrAccountInactive,
		},
		{
			name:    "inactive destination",
			actor:   suite.actor,
			req:     domain.TransferRequest{FromAccountID: suite.checking.AccountID, ToAccountID: ptr(suite.dormant.AccountID), Amount: money("1")},
			wantErr: apperrors.ErrAccountInactive,
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			_, err := suite.transfers.Transfer(suite.ctx, tt.actor, tt.req)
			suite.ErrorIs(err, tt.wantErr)
		})
	}

	suite.Equal(0, suite.rowCount())
	suite.assertBalance(suite.foreign.AccountID, "75.00")
	suite.assertBalance(suite.dormant.AccountID, "500.00")
}

func (suite *MovementTestSuite) TestTransfer_ToAnotherCustomer() {
	_, err := suite.transfers.Transfer(suite.ctx, suite.actor, domain.TransferRequest{
		FromAccountID: suite.checking.AccountID,
		ToAccountID:   ptr(suite.foreign.AccountID),
		Amount:        money("25.00"),
	})
	suite.Require().NoError(err)
	suite.assertBalance(suite.checking.AccountID, "175.00")
	suite.assertBalance(suite.foreign.AccountID, "100.00")
}

func (suite *MovementTestSuite) TestTransfer_RollsBackWhenLogWriteFails() {
	suite.buildEngines(&faultyUnitOfWork{inner: suite.store, failOn: "InsertTransactions"})
	before := suite.ledgerTotal()

	_, err := suite.transfers.Transfer(suite.ctx, suite.actor, domain.TransferRequest{
		FromAccountID: suite.checking.AccountID,
		ToAccountID:   ptr(suite.savings.AccountID),
		Amount:        money("40.00"),
	})
	suite.ErrorIs(err, errInjected)

	suite.assertBalance(suite.checking.AccountID, "200.00")
	suite.assertBalance(suite.savings.AccountID, "50.00")
	suite.True(before.Equal(suite.ledgerTotal()))
	suite.Equal(0, suite.rowCount())
	suite.Empty(suite.publisher.Events(), "nothing is published for an aborted movement")
}

func (suite *MovementTestSuite) TestTransfer_PublishFailureDoesNotFailTransfer() {
	suite.publisher.err = errors.New("broker down")

	result, err := suite.transfers.Transfer(suite.ctx, suite.actor, domain.TransferRequest{
		FromAccountID: suite.checking.AccountID,
		Amount:        money("1.00"),
	})
	suite.Require().NoError(err)
	suite.True(result.Success)
	suite.assertBalance(suite.checking.AccountID, "199.00")
}

// --- Payment Engine ---

func (suite *MovementTestSuite) TestPayBill_DebitsAndMarksPaid() {
	result, err := suite.payments.PayBill(suite.ctx, suite.actor, suite.bill.PaymentID)
	suite.Require().NoError(err)
	suite.True(result.Success)
	suite.Equal("Payment processed successfully", result.Message)

	suite.assertBalance(suite.checking.AccountID, "114.80")

	rows, _, err := suite.store.ListTransactionsByAccount(suite.ctx, suite.checking.AccountID, 10, nil)
	suite.Require().NoError(err)
	suite.Require().Len(rows, 1)
	suite.Equal(domain.Debit, rows[0].TransactionType)
	suite.True(money("85.20").Equal(rows[0].Amount))
	suite.Equal("utilities", rows[0].Category)
	suite.Equal("Payment to City Power & Light", rows[0].Description)
	suite.Equal("City Power & Light", *rows[0].Merchant)

	payment, err := suite.store.FindScheduledPaymentByID(suite.ctx, suite.bill.PaymentID)
	suite.Require().NoError(err)
	suite.True(payment.IsPaid)
	suite.Require().NotNil(payment.PaidAt)
	suite.True(suite.clock.Equal(*payment.PaidAt))

	_, err = suite.payments.PayBill(suite.ctx, suite.actor, suite.bill.PaymentID)
	suite.ErrorIs(err, apperrors.ErrAlreadyPaid)
	suite.assertBalance(suite.checking.AccountID, "114.80")
	suite.Equal(1, suite.rowCount())

	events := suite.publisher.Events()
	suite.Require().Len(events, 1)
	suite.Equal(domain.MovementBillPayment, events[0].Kind)
	suite.Equal(suite.bill.PaymentID, events[0].PaymentID)
}

func (suite *MovementTestSuite) TestPayBill_Rejections() {
	_, err := suite.payments.PayBill(suite.ctx, suite.actor, "not-a-uuid")
	suite.ErrorIs(err, apperrors.ErrInvalidInput)

	_, err = suite.payments.PayBill(suite.ctx, suite.actor, domain.NewID())
	suite.ErrorIs(err, apperrors.ErrPaymentNotFound)

	_, err = suite.payments.PayBill(suite.ctx, suite.actor, suite.strangers.PaymentID)
	suite.ErrorIs(err, apperrors.ErrPaymentNotFound, "another user's bill is reported as missing")

	suite.assertBalance(suite.foreign.AccountID, "75.00")
	suite.Equal(0, suite.rowCount())
}

func (suite *MovementTestSuite) TestPayBill_InsufficientFunds() {
	_, err := suite.transfers.Transfer(suite.ctx, suite.actor, domain.TransferRequest{
		FromAccountID: suite.checking.AccountID,
		ToAccountID:   ptr(suite.savings.AccountID),
		Amount:        money("150.00"),
	})
	suite.Require().NoError(err)

	_, err = suite.payments.PayBill(suite.ctx, suite.actor, suite.bill.PaymentID)
	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)
	suite.assertBalance(suite.checking.AccountID, "50.00")
	suite.Equal(2, suite.rowCount(), "only the transfer legs are logged")

	payment, err := suite.store.FindScheduledPaymentByID(suite.ctx, suite.bill.PaymentID)
	suite.Require().NoError(err)
	suite.False(payment.IsPaid)
}

func (suite *MovementTestSuite) TestPayBill_InactiveAccount() {
	dormantBill := domain.ScheduledPayment{
		PaymentID: domain.NewID(), UserID: suite.actor.UserID, AccountID: suite.dormant.AccountID,
		Payee: "Water Board", Amount: money("30.00"), DueDate: suite.clock.AddDate(0, 0, 2), Category: "utilities",
	}
	suite.Require().NoError(suite.store.Provision(suite.ctx, portsrepo.ProvisionBatch{
		ScheduledPayments: []domain.ScheduledPayment{dormantBill},
	}))

	_, err := suite.payments.PayBill(suite.ctx, suite.actor, dormantBill.PaymentID)
	suite.ErrorIs(err, apperrors.ErrAccountInactive)

	suite.assertBalance(suite.dormant.AccountID, "500.00")
	suite.Equal(0, suite.rowCount())
	payment, err := suite.store.FindScheduledPaymentByID(suite.ctx, dormantBill.PaymentID)
	suite.Require().NoError(err)
	suite.False(payment.IsPaid)
	suite.Empty(suite.publisher.Events())
}

func (suite *MovementTestSuite) TestPayBill_MissingAccount() {
	suite.buildEngines(&faultyUnitOfWork{inner: suite.store, failOn: "FindAccountsByIDsForUpdate"})

	_, err := suite.payments.PayBill(suite.ctx, suite.actor, suite.bill.PaymentID)
	suite.ErrorIs(err, apperrors.ErrAccountNotFound)

	suite.assertBalance(suite.checking.AccountID, "200.00")
	suite.Equal(0, suite.rowCount())
	payment, err := suite.store.FindScheduledPaymentByID(suite.ctx, suite.bill.PaymentID)
	suite.Require().NoError(err)
	suite.False(payment.IsPaid)
	suite.Empty(suite.publisher.Events())
}

func (suite *MovementTestSuite) TestPayBill_RollsBackWhenFlagUpdateFails() {
	suite.buildEngines(&faultyUnitOfWork{inner: suite.store, failOn: "MarkScheduledPaymentPaid"})

	_, err := suite.payments.PayBill(suite.ctx, suite.actor, suite.bill.PaymentID)
	suite.ErrorIs(err, errInjected)

	suite.assertBalance(suite.checking.AccountID, "200.00")
	suite.Equal(0, suite.rowCount())
	payment, err := suite.store.FindScheduledPaymentByID(suite.ctx, suite.bill.PaymentID)
	suite.Require().NoError(err)
	suite.False(payment.IsPaid)
}

// --- Concurrency ---

func (suite *MovementTestSuite) TestConcurrentTransfers_DrainExactly() {
	const n = 20
	drain := suite.newAccount(suite.actor, "4242424", "100.00") // n * 5.00
	suite.Require().NoError(suite.store.Provision(suite.ctx, portsrepo.ProvisionBatch{Accounts: []domain.Account{drain}}))
	before := suite.ledgerTotal()

	var wg sync.WaitGroup
	errs := make(chan error, n+1)
	for i := 0; i < n+1; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := suite.transfers.Transfer(suite.ctx, suite.actor, domain.TransferRequest{
				FromAccountID: drain.AccountID,
				ToAccountID:   ptr(suite.savings.AccountID),
				Amount:        money("5.00"),
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded, insufficient := 0, 0
	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, apperrors.ErrInsufficientFunds):
			insufficient++
		default:
			suite.Failf("unexpected error", "%v", err)
		}
	}
	suite.Equal(n, succeeded)
	suite.Equal(1, insufficient)
	suite.assertBalance(drain.AccountID, "0")
	suite.assertBalance(suite.savings.AccountID, "150.00")
	suite.True(before.Equal(suite.ledgerTotal()))
	suite.Equal(2*n, suite.rowCount())
}

func (suite *MovementTestSuite) TestConcurrentOpposingTransfers_DoNotDeadlock() {
	ctx, cancel := context.WithTimeout(suite.ctx, 5*time.Second)
	defer cancel()
	before := suite.ledgerTotal()

	var wg sync.WaitGroup
	for i := 0; i < 25; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := suite.transfers.Transfer(ctx, suite.actor, domain.TransferRequest{
				FromAccountID: suite.checking.AccountID, ToAccountID: ptr(suite.savings.AccountID), Amount: money("1.00"),
			})
			assert.NoError(suite.T(), err)
		}()
		go func() {
			defer wg.Done()
			_, err := suite.transfers.Transfer(ctx, suite.actor, domain.TransferRequest{
				FromAccountID: suite.savings.AccountID, ToAccountID: ptr(suite.checking.AccountID), Amount: money("1.00"),
			})
			assert.NoError(suite.T(), err)
		}()
	}
	wg.Wait()

	suite.assertBalance(suite.checking.AccountID, "200.00")
	suite.assertBalance(suite.savings.AccountID, "50.00")
	suite.True(before.Equal(suite.ledgerTotal()))
}

func (suite *MovementTestSuite) TestConcurrentBillPayments_PayOnce() {
	const attempts = 10
	var wg sync.WaitGroup
	errs := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := suite.payments.PayBill(suite.ctx, suite.actor, suite.bill.PaymentID)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	paid, already := 0, 0
	for err := range errs {
		switch {
		case err == nil:
			paid++
		case errors.Is(err, apperrors.ErrAlreadyPaid):
			already++
		default:
			suite.Failf("unexpected error", "%v", err)
		}
	}
	suite.Equal(1, paid)
	suite.Equal(attempts-1, already)
	suite.assertBalance(suite.checking.AccountID, "114.80")
	suite.Equal(1, suite.rowCount())
}
