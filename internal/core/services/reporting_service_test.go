package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/bank_dashboard/internal/apperrors"
	"github.com/SscSPs/bank_dashboard/internal/core/domain"
	portssvc "github.com/SscSPs/bank_dashboard/internal/core/ports/services"
	"github.com/SscSPs/bank_dashboard/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	reportingRepo *MockReportingRepository
	accountRepo   *MockAccountRepository
	service       portssvc.ReportingService
	actor         domain.Actor
	now           time.Time
	ctx           context.Context
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.reportingRepo = new(MockReportingRepository)
	suite.accountRepo = new(MockAccountRepository)
	suite.now = time.Date(2025, 6, 18, 15, 0, 0, 0, time.UTC)
	suite.service = services.NewReportingService(suite.reportingRepo, suite.accountRepo,
		services.WithReportingClock(func() time.Time { return suite.now }))
	suite.actor = domain.NewActor(uuid.NewString())
	suite.ctx = context.Background()
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}

func month(y int, m time.Month) time.Time {
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

func (suite *ReportingServiceTestSuite) TestFinancialOverview_FillsMonthsAndSummary() {
	from := month(2025, 4)
	to := month(2025, 7)
	suite.reportingRepo.On("GetMonthlyCashFlow", suite.ctx, suite.actor.UserID, from, to).Return([]domain.MonthlyCashFlow{
		{Month: month(2025, 4), Income: decimal.RequireFromString("2750.00"), Expenses: decimal.RequireFromString("1200.50")},
		{Month: month(2025, 5), Income: decimal.RequireFromString("2750.00"), Expenses: decimal.RequireFromString("980.25")},
	}, nil).Once()
	suite.accountRepo.On("ListAccountsByUser", suite.ctx, suite.actor.UserID).Return([]domain.Account{
		{AccountType: domain.AccountTypeChecking, Balance: decimal.RequireFromString("12458.32")},
		{AccountType: domain.AccountTypeSavings, Balance: decimal.RequireFromString("8942.51")},
		{AccountType: domain.AccountTypeInvestment, Balance: decimal.RequireFromString("3161.71")},
	}, nil).Once()

	overview, err := suite.service.FinancialOverview(suite.ctx, suite.actor, 3)
	suite.Require().NoError(err)

	suite.Require().Len(overview.Months, 3)
	suite.Equal(month(2025, 4), overview.Months[0].Month)
	suite.Equal(month(2025, 6), overview.Months[2].Month)
	suite.True(overview.Months[2].Income.IsZero(), "months without rows are zero-filled")

	suite.True(decimal.RequireFromString("2750.00").Equal(overview.Summary.Income))
	suite.True(decimal.RequireFromString("980.25").Equal(overview.Summary.Expenses))
	suite.True(decimal.RequireFromString("8942.51").Equal(overview.Summary.Savings))
	suite.True(decimal.RequireFromString("3161.71").Equal(overview.Summary.Investments))
	suite.reportingRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestFinancialOverview_SingleMonthStillQueriesPreviousMonth() {
	suite.reportingRepo.On("GetMonthlyCashFlow", suite.ctx, suite.actor.UserID, month(2025, 5), month(2025, 7)).Return([]domain.MonthlyCashFlow{}, nil).Once()
	suite.accountRepo.On("ListAccountsByUser", suite.ctx, suite.actor.UserID).Return([]domain.Account{}, nil).Once()

	overview, err := suite.service.FinancialOverview(suite.ctx, suite.actor, 1)
	suite.Require().NoError(err)
	suite.Len(overview.Months, 1)
	suite.reportingRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestFinancialOverview_DefaultsAndBounds() {
	suite.reportingRepo.On("GetMonthlyCashFlow", suite.ctx, suite.actor.UserID, month(2025, 1), month(2025, 7)).Return([]domain.MonthlyCashFlow{}, nil).Once()
	suite.accountRepo.On("ListAccountsByUser", suite.ctx, suite.actor.UserID).Return([]domain.Account{}, nil).Once()

	overview, err := suite.service.FinancialOverview(suite.ctx, suite.actor, 0)
	suite.Require().NoError(err)
	suite.Len(overview.Months, services.DefaultOverviewMonths)

	_, err = suite.service.FinancialOverview(suite.ctx, suite.actor, services.MaxOverviewMonths+1)
	suite.ErrorIs(err, apperrors.ErrInvalidInput)
	_, err = suite.service.FinancialOverview(suite.ctx, suite.actor, -1)
	suite.ErrorIs(err, apperrors.ErrInvalidInput)
}

func (suite *ReportingServiceTestSuite) TestFinancialOverview_RepoError() {
	suite.reportingRepo.On("GetMonthlyCashFlow", suite.ctx, suite.actor.UserID, mock.Anything, mock.Anything).Return(nil, assert.AnError).Once()

	_, err := suite.service.FinancialOverview(suite.ctx, suite.actor, 6)
	suite.ErrorIs(err, assert.AnError)
	suite.accountRepo.AssertNotCalled(suite.T(), "ListAccountsByUser", mock.Anything, mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestSpendingAnalysis_Percentages() {
	from := suite.now.AddDate(0, -1, 0)
	suite.reportingRepo.On("GetSpendingByCategory", suite.ctx, suite.actor.UserID, from, suite.now).Return([]domain.CategoryAmount{
		{Category: "housing", Amount: decimal.RequireFromString("150.00")},
		{Category: "food", Amount: decimal.RequireFromString("50.00")},
		{Category: "fun", Amount: decimal.RequireFromString("100.00")},
	}, nil).Once()

	analysis, err := suite.service.SpendingAnalysis(suite.ctx, suite.actor, domain.TimeframeMonth)
	suite.Require().NoError(err)

	suite.True(decimal.RequireFromString("300.00").Equal(analysis.Total))
	suite.True(decimal.RequireFromString("50").Equal(analysis.Categories[0].Percentage))
	suite.True(decimal.RequireFromString("16.67").Equal(analysis.Categories[1].Percentage))
	suite.True(decimal.RequireFromString("33.33").Equal(analysis.Categories[2].Percentage))
	suite.Equal(from, analysis.From)
}

func (suite *ReportingServiceTestSuite) TestSpendingAnalysis_EmptyAndInvalid() {
	suite.reportingRepo.On("GetSpendingByCategory", suite.ctx, suite.actor.UserID, suite.now.AddDate(0, 0, -7), suite.now).Return([]domain.CategoryAmount{}, nil).Once()

	analysis, err := suite.service.SpendingAnalysis(suite.ctx, suite.actor, domain.TimeframeWeek)
	suite.Require().NoError(err)
	suite.True(analysis.Total.IsZero())
	suite.Empty(analysis.Categories)

	_, err = suite.service.SpendingAnalysis(suite.ctx, suite.actor, domain.SpendingTimeframe("decade"))
	suite.ErrorIs(err, apperrors.ErrInvalidInput)
}
