package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/bizsuite/ledger_app/internal/apperrors"
	"github.com/bizsuite/ledger_app/internal/core/domain"
	"github.com/bizsuite/ledger_app/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	mockBalanceSvc *MockBalanceService
	mockArchive    *MockReportArchive
	service        *services.ReportingService
	tenantID       string
	userID         string
	asOf           time.Time
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockBalanceSvc = new(MockBalanceService)
	suite.mockArchive = new(MockReportArchive)
	suite.service = services.NewReportingService(suite.mockBalanceSvc, suite.mockArchive)
	suite.tenantID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.asOf = time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
}

// postedFixture models cash 1500 debit, capital 1000 credit, sales 700 credit,
// rent 200 debit, payable 0 net. Books balance: 1700 debits, 1700 credits.
func (suite *ReportingServiceTestSuite) postedFixture() []domain.AccountBalance {
	return []domain.AccountBalance{
		{AccountID: uuid.NewString(), Code: "101", Name: "Cash", AccountType: domain.Asset,
			TotalDebit: decimal.NewFromInt(1500), TotalCredit: decimal.Zero, Balance: decimal.NewFromInt(1500)},
		{AccountID: uuid.NewString(), Code: "102", Name: "Bank Checking", AccountType: domain.Asset,
			TotalDebit: decimal.NewFromInt(0), TotalCredit: decimal.Zero, Balance: decimal.Zero},
		{AccountID: uuid.NewString(), Code: "301", Name: "Capital", AccountType: domain.Equity,
			TotalDebit: decimal.Zero, TotalCredit: decimal.NewFromInt(1000), Balance: decimal.NewFromInt(1000)},
		{AccountID: uuid.NewString(), Code: "401", Name: "Sales", AccountType: domain.Revenue,
			TotalDebit: decimal.Zero, TotalCredit: decimal.NewFromInt(700), Balance: decimal.NewFromInt(700)},
		{AccountID: uuid.NewString(), Code: "501", Name: "Rent Expense", AccountType: domain.Expense,
			TotalDebit: decimal.NewFromInt(200), TotalCredit: decimal.Zero, Balance: decimal.NewFromInt(200)},
	}
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_DebitsEqualCredits() {
	ctx := context.Background()
	suite.mockBalanceSvc.On("AccountBalances", ctx, suite.tenantID, mock.Anything).
		Return(suite.postedFixture(), nil).Once()
	suite.mockArchive.On("SaveSnapshot", ctx, mock.AnythingOfType("domain.ReportSnapshot")).Return(nil).Once()

	report, err := suite.service.TrialBalance(ctx, suite.tenantID, suite.asOf, suite.userID)

	suite.Require().NoError(err)
	suite.True(report.TotalDebit.Equal(report.TotalCredit),
		"trial balance totals must be equal: debits %s, credits %s", report.TotalDebit, report.TotalCredit)
	suite.Len(report.Rows, 5)
	suite.mockArchive.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_AccountingEquationHolds() {
	ctx := context.Background()
	suite.mockBalanceSvc.On("AccountBalances", ctx, suite.tenantID, mock.Anything).
		Return(suite.postedFixture(), nil).Once()
	suite.mockArchive.On("SaveSnapshot", ctx, mock.AnythingOfType("domain.ReportSnapshot")).Return(nil).Once()

	report, err := suite.service.BalanceSheet(ctx, suite.tenantID, suite.asOf, suite.userID)

	suite.Require().NoError(err)
	// Assets 1500 == Liabilities 0 + Equity (1000 capital + 500 net income).
	suite.True(report.TotalAssets.Equal(report.TotalLiabilities.Add(report.TotalEquity)),
		"assets %s must equal liabilities %s plus equity %s",
		report.TotalAssets, report.TotalLiabilities, report.TotalEquity)
	suite.True(report.TotalAssets.Equal(decimal.NewFromInt(1500)))
}

func (suite *ReportingServiceTestSuite) TestProfitAndLoss_NetIncome() {
	ctx := context.Background()
	from := suite.asOf.AddDate(0, -1, 0)
	suite.mockBalanceSvc.On("AccountBalances", ctx, suite.tenantID, mock.Anything).
		Return(suite.postedFixture(), nil).Once()
	suite.mockArchive.On("SaveSnapshot", ctx, mock.AnythingOfType("domain.ReportSnapshot")).Return(nil).Once()

	report, err := suite.service.ProfitAndLoss(ctx, suite.tenantID, from, suite.asOf, suite.userID)

	suite.Require().NoError(err)
	suite.True(report.TotalRevenue.Equal(decimal.NewFromInt(700)))
	suite.True(report.TotalExpenses.Equal(decimal.NewFromInt(200)))
	suite.True(report.NetIncome.Equal(decimal.NewFromInt(500)))
	suite.Len(report.Revenue, 1)
	suite.Len(report.Expenses, 1)
}

func (suite *ReportingServiceTestSuite) TestCashFlow_NameHeuristic() {
	ctx := context.Background()
	suite.mockBalanceSvc.On("AccountBalances", ctx, suite.tenantID, mock.Anything).
		Return(suite.postedFixture(), nil).Once()
	suite.mockArchive.On("SaveSnapshot", ctx, mock.AnythingOfType("domain.ReportSnapshot")).Return(nil).Once()

	report, err := suite.service.CashFlow(ctx, suite.tenantID, suite.asOf, suite.userID)

	suite.Require().NoError(err)
	// "Cash" and "Bank Checking" match; "Capital" does not even though it is
	// bigger, because it is not an asset.
	suite.Len(report.Accounts, 2)
	suite.True(report.TotalCash.Equal(decimal.NewFromInt(1500)))
}

func (suite *ReportingServiceTestSuite) TestArchiveFailureDoesNotFailReport() {
	ctx := context.Background()
	suite.mockBalanceSvc.On("AccountBalances", ctx, suite.tenantID, mock.Anything).
		Return(suite.postedFixture(), nil).Once()
	suite.mockArchive.On("SaveSnapshot", ctx, mock.AnythingOfType("domain.ReportSnapshot")).
		Return(apperrors.ErrInternal).Once()

	report, err := suite.service.TrialBalance(ctx, suite.tenantID, suite.asOf, suite.userID)

	suite.Require().NoError(err, "a failed archive write must not fail the report")
	suite.NotNil(report)
}

func (suite *ReportingServiceTestSuite) TestSnapshotCarriesProvenance() {
	ctx := context.Background()
	suite.mockBalanceSvc.On("AccountBalances", ctx, suite.tenantID, mock.Anything).
		Return(suite.postedFixture(), nil).Once()

	var saved domain.ReportSnapshot
	suite.mockArchive.On("SaveSnapshot", ctx, mock.AnythingOfType("domain.ReportSnapshot")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.ReportSnapshot)
		}).Return(nil).Once()

	_, err := suite.service.BalanceSheet(ctx, suite.tenantID, suite.asOf, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("Balance Sheet", saved.Name)
	suite.Equal("financial", saved.ReportType)
	suite.Equal(suite.userID, saved.GeneratedBy)
	suite.Equal(suite.tenantID, saved.TenantID)
	suite.False(saved.GeneratedAt.IsZero())
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
