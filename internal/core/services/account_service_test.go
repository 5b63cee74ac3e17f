package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/bank_dashboard/internal/apperrors"
	"github.com/SscSPs/bank_dashboard/internal/core/domain"
	portssvc "github.com/SscSPs/bank_dashboard/internal/core/ports/services"
	"github.com/SscSPs/bank_dashboard/internal/core/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Setup ---

type AccountServiceTestSuite struct {
	suite.Suite
	accountRepo   *MockAccountRepository
	txnRepo       *MockTransactionRepository
	scheduledRepo *MockScheduledPaymentRepository
	service       portssvc.AccountSvcFacade
	actor         domain.Actor
	ctx           context.Context
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.accountRepo = new(MockAccountRepository)
	suite.txnRepo = new(MockTransactionRepository)
	suite.scheduledRepo = new(MockScheduledPaymentRepository)
	suite.service = services.NewAccountService(suite.accountRepo, suite.txnRepo, suite.scheduledRepo)
	suite.actor = domain.NewActor(uuid.NewString())
	suite.ctx = context.Background()
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}

// --- Test Cases ---

func (suite *AccountServiceTestSuite) TestGetAccount_Owned() {
	accountID := uuid.NewString()
	acc := &domain.Account{AccountID: accountID, UserID: suite.actor.UserID}
	suite.accountRepo.On("FindAccountByID", suite.ctx, accountID).Return(acc, nil).Once()

	got, err := suite.service.GetAccount(suite.ctx, suite.actor, accountID)
	suite.Require().NoError(err)
	suite.Equal(acc, got)
	suite.accountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetAccount_OtherOwnerIsNotFound() {
	accountID := uuid.NewString()
	acc := &domain.Account{AccountID: accountID, UserID: uuid.NewString()}
	suite.accountRepo.On("FindAccountByID", suite.ctx, accountID).Return(acc, nil).Once()

	got, err := suite.service.GetAccount(suite.ctx, suite.actor, accountID)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrAccountNotFound)
}

func (suite *AccountServiceTestSuite) TestGetAccount_MalformedID() {
	_, err := suite.service.GetAccount(suite.ctx, suite.actor, "123")
	suite.ErrorIs(err, apperrors.ErrInvalidInput)
	suite.accountRepo.AssertNotCalled(suite.T(), "FindAccountByID", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestGetAccount_RepoError() {
	accountID := uuid.NewString()
	suite.accountRepo.On("FindAccountByID", suite.ctx, accountID).Return(nil, assert.AnError).Once()

	_, err := suite.service.GetAccount(suite.ctx, suite.actor, accountID)
	suite.ErrorIs(err, assert.AnError)
	suite.NotErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestListAccountTransactions_ClampsLimit() {
	accountID := uuid.NewString()
	suite.accountRepo.On("FindAccountByID", suite.ctx, accountID).Return(&domain.Account{AccountID: accountID, UserID: suite.actor.UserID}, nil)

	token := "next"
	rows := []domain.Transaction{{TransactionID: uuid.NewString(), AccountID: accountID}}
	suite.txnRepo.On("ListTransactionsByAccount", suite.ctx, accountID, services.MaxPageSize, (*string)(nil)).Return(rows, &token, nil).Once()

	got, next, err := suite.service.ListAccountTransactions(suite.ctx, suite.actor, accountID, 1000, nil)
	suite.Require().NoError(err)
	suite.Equal(rows, got)
	suite.Require().NotNil(next)
	suite.Equal("next", *next)
	suite.txnRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestListAccountTransactions_NotOwned() {
	accountID := uuid.NewString()
	suite.accountRepo.On("FindAccountByID", suite.ctx, accountID).Return(nil, apperrors.ErrAccountNotFound).Once()

	_, _, err := suite.service.ListAccountTransactions(suite.ctx, suite.actor, accountID, 10, nil)
	suite.ErrorIs(err, apperrors.ErrAccountNotFound)
	suite.txnRepo.AssertNotCalled(suite.T(), "ListTransactionsByAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestListRecentTransactions_DefaultLimit() {
	suite.txnRepo.On("ListRecentTransactionsByUser", suite.ctx, suite.actor.UserID, services.DefaultPageSize).Return([]domain.Transaction{}, nil).Once()

	got, err := suite.service.ListRecentTransactions(suite.ctx, suite.actor, 0)
	suite.Require().NoError(err)
	suite.Empty(got)
	suite.txnRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestListUpcomingPayments_Error() {
	suite.scheduledRepo.On("ListUnpaidScheduledPaymentsByUser", suite.ctx, suite.actor.UserID).Return(nil, assert.AnError).Once()

	_, err := suite.service.ListUpcomingPayments(suite.ctx, suite.actor)
	suite.ErrorIs(err, assert.AnError)
}

func TestNormalizePageSize(t *testing.T) {
	assert.Equal(t, services.DefaultPageSize, services.NormalizePageSize(0))
	assert.Equal(t, services.DefaultPageSize, services.NormalizePageSize(-3))
	assert.Equal(t, 7, services.NormalizePageSize(7))
	assert.Equal(t, services.MaxPageSize, services.NormalizePageSize(services.MaxPageSize+1))
}
