package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/bizsuite/ledger_app/internal/apperrors"
	"github.com/bizsuite/ledger_app/internal/core/domain"
	portssvc "github.com/bizsuite/ledger_app/internal/core/ports/services"
	"github.com/bizsuite/ledger_app/internal/core/services"
	"github.com/bizsuite/ledger_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	mockEntryRepo   *MockEntryRepository
	mockAccountRepo *MockAccountRepository
	mockBalanceSvc  *MockBalanceService
	service         portssvc.LedgerSvcFacade
	tenantID        string
	userID          string
	cashAccount     domain.Account
	capitalAccount  domain.Account
	expenseAccount  domain.Account
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockEntryRepo = new(MockEntryRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockBalanceSvc = new(MockBalanceService)
	suite.service = services.NewLedgerService(suite.mockEntryRepo, suite.mockAccountRepo, suite.mockBalanceSvc)

	suite.tenantID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.cashAccount = domain.Account{
		AccountID:   uuid.NewString(),
		TenantID:    suite.tenantID,
		Code:        "101",
		Name:        "Cash",
		AccountType: domain.Asset,
		IsActive:    true,
	}
	suite.capitalAccount = domain.Account{
		AccountID:   uuid.NewString(),
		TenantID:    suite.tenantID,
		Code:        "301",
		Name:        "Capital",
		AccountType: domain.Equity,
		IsActive:    true,
	}
	suite.expenseAccount = domain.Account{
		AccountID:   uuid.NewString(),
		TenantID:    suite.tenantID,
		Code:        "501",
		Name:        "Rent Expense",
		AccountType: domain.Expense,
		IsActive:    true,
	}
}

func (suite *LedgerServiceTestSuite) balancedRequest() dto.CreateEntryRequest {
	return dto.CreateEntryRequest{
		EntryDate:   time.Now(),
		Description: "Owner investment",
		Lines: []dto.CreateEntryLine{
			{AccountID: suite.cashAccount.AccountID, DebitAmount: decimal.NewFromInt(1000)},
			{AccountID: suite.capitalAccount.AccountID, CreditAmount: decimal.NewFromInt(1000)},
		},
	}
}

func (suite *LedgerServiceTestSuite) accountsMap(accounts ...domain.Account) map[string]domain.Account {
	m := make(map[string]domain.Account, len(accounts))
	for _, a := range accounts {
		m[a.AccountID] = a
	}
	return m
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_Success() {
	ctx := context.Background()
	req := suite.balancedRequest()

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.tenantID,
		[]string{suite.cashAccount.AccountID, suite.capitalAccount.AccountID}).
		Return(suite.accountsMap(suite.cashAccount, suite.capitalAccount), nil).Once()
	suite.mockEntryRepo.On("NextEntryNumber", ctx, suite.tenantID).Return("JE-000001", nil).Once()
	suite.mockEntryRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine")).Return(nil).Once()
	suite.mockBalanceSvc.On("Refresh", ctx, suite.tenantID).Return(true).Once()

	entry, err := suite.service.CreateEntry(ctx, suite.tenantID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.Equal("JE-000001", entry.EntryNumber)
	suite.Equal(domain.Posted, entry.Status)
	suite.True(entry.TotalDebit.Equal(decimal.NewFromInt(1000)))
	suite.True(entry.TotalCredit.Equal(decimal.NewFromInt(1000)))
	suite.Len(entry.Lines, 2)
	suite.Equal(1, entry.Lines[0].LineNumber)
	suite.Equal(2, entry.Lines[1].LineNumber)

	suite.mockEntryRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockBalanceSvc.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_UnbalancedRejectedBeforePersistence() {
	ctx := context.Background()
	req := dto.CreateEntryRequest{
		EntryDate:   time.Now(),
		Description: "Lopsided",
		Lines: []dto.CreateEntryLine{
			{AccountID: suite.cashAccount.AccountID, DebitAmount: decimal.NewFromInt(1000)},
			{AccountID: suite.capitalAccount.AccountID, CreditAmount: decimal.NewFromInt(999)},
		},
	}

	_, err := suite.service.CreateEntry(ctx, suite.tenantID, req, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrUnbalanced)
	// Nothing was looked up and nothing was written.
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountsByIDs", mock.Anything, mock.Anything, mock.Anything)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_LineWithBothSidesRejected() {
	ctx := context.Background()
	req := dto.CreateEntryRequest{
		EntryDate:   time.Now(),
		Description: "Bad line",
		Lines: []dto.CreateEntryLine{
			{AccountID: suite.cashAccount.AccountID, DebitAmount: decimal.NewFromInt(500), CreditAmount: decimal.NewFromInt(500)},
			{AccountID: suite.capitalAccount.AccountID, CreditAmount: decimal.NewFromInt(500)},
		},
	}

	_, err := suite.service.CreateEntry(ctx, suite.tenantID, req, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_UnknownAccountRejected() {
	ctx := context.Background()
	req := suite.balancedRequest()

	// Only one of the two accounts exists.
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.tenantID, mock.Anything).
		Return(suite.accountsMap(suite.cashAccount), nil).Once()

	_, err := suite.service.CreateEntry(ctx, suite.tenantID, req, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_InactiveAccountRejected() {
	ctx := context.Background()
	req := suite.balancedRequest()

	inactive := suite.capitalAccount
	inactive.IsActive = false
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.tenantID, mock.Anything).
		Return(suite.accountsMap(suite.cashAccount, inactive), nil).Once()

	_, err := suite.service.CreateEntry(ctx, suite.tenantID, req, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_DraftSkipsBalanceRefresh() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.AsDraft = true

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.tenantID, mock.Anything).
		Return(suite.accountsMap(suite.cashAccount, suite.capitalAccount), nil).Once()
	suite.mockEntryRepo.On("NextEntryNumber", ctx, suite.tenantID).Return("JE-000007", nil).Once()
	suite.mockEntryRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine")).Return(nil).Once()

	entry, err := suite.service.CreateEntry(ctx, suite.tenantID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.Draft, entry.Status)
	suite.mockBalanceSvc.AssertNotCalled(suite.T(), "Refresh", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestPostEntry_Success() {
	ctx := context.Background()
	entryID := uuid.NewString()
	draft := &domain.JournalEntry{
		EntryID:     entryID,
		TenantID:    suite.tenantID,
		EntryNumber: "JE-000003",
		Status:      domain.Draft,
	}

	suite.mockEntryRepo.On("FindEntryByID", ctx, suite.tenantID, entryID).Return(draft, nil).Once()
	suite.mockEntryRepo.On("UpdateEntryStatus", ctx, entryID, domain.Posted, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockBalanceSvc.On("Refresh", ctx, suite.tenantID).Return(true).Once()

	entry, err := suite.service.PostEntry(ctx, suite.tenantID, entryID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.Posted, entry.Status)
	suite.mockEntryRepo.AssertExpectations(suite.T())
	suite.mockBalanceSvc.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestPostEntry_AlreadyPostedRejected() {
	ctx := context.Background()
	entryID := uuid.NewString()
	posted := &domain.JournalEntry{EntryID: entryID, TenantID: suite.tenantID, Status: domain.Posted}

	suite.mockEntryRepo.On("FindEntryByID", ctx, suite.tenantID, entryID).Return(posted, nil).Once()

	_, err := suite.service.PostEntry(ctx, suite.tenantID, entryID, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrConflict)
}

func (suite *LedgerServiceTestSuite) TestDeleteEntry_Success() {
	ctx := context.Background()
	entryID := uuid.NewString()
	posted := &domain.JournalEntry{
		EntryID:  entryID,
		TenantID: suite.tenantID,
		Status:   domain.Posted,
	}

	suite.mockEntryRepo.On("FindEntryByID", ctx, suite.tenantID, entryID).Return(posted, nil).Once()
	suite.mockEntryRepo.On("DeleteEntry", ctx, suite.tenantID, entryID).Return(nil).Once()
	suite.mockBalanceSvc.On("Refresh", ctx, suite.tenantID).Return(true).Once()

	err := suite.service.DeleteEntry(ctx, suite.tenantID, entryID, suite.userID)

	suite.Require().NoError(err)
	suite.mockEntryRepo.AssertExpectations(suite.T())
	suite.mockBalanceSvc.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestDeleteEntry_ReversalPairProtected() {
	ctx := context.Background()
	entryID := uuid.NewString()
	reversalID := uuid.NewString()
	reversed := &domain.JournalEntry{
		EntryID:          entryID,
		TenantID:         suite.tenantID,
		Status:           domain.Reversed,
		ReversingEntryID: &reversalID,
	}

	suite.mockEntryRepo.On("FindEntryByID", ctx, suite.tenantID, entryID).Return(reversed, nil).Once()

	err := suite.service.DeleteEntry(ctx, suite.tenantID, entryID, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrConflict)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "DeleteEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestReverseEntry_SwapsSidesAndLinks() {
	ctx := context.Background()
	entryID := uuid.NewString()
	original := &domain.JournalEntry{
		EntryID:     entryID,
		TenantID:    suite.tenantID,
		EntryNumber: "JE-000001",
		Description: "Rent payment",
		Status:      domain.Posted,
		TotalDebit:  decimal.NewFromInt(800),
		TotalCredit: decimal.NewFromInt(800),
	}
	originalLines := []domain.JournalLine{
		{LineID: uuid.NewString(), EntryID: entryID, AccountID: suite.expenseAccount.AccountID, DebitAmount: decimal.NewFromInt(800), LineNumber: 1},
		{LineID: uuid.NewString(), EntryID: entryID, AccountID: suite.cashAccount.AccountID, CreditAmount: decimal.NewFromInt(800), LineNumber: 2},
	}

	suite.mockEntryRepo.On("FindEntryByID", ctx, suite.tenantID, entryID).Return(original, nil).Once()
	suite.mockEntryRepo.On("FindLinesByEntryID", ctx, entryID).Return(originalLines, nil).Once()
	suite.mockEntryRepo.On("NextEntryNumber", ctx, suite.tenantID).Return("JE-000002", nil).Once()

	var savedLines []domain.JournalLine
	suite.mockEntryRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine")).
		Run(func(args mock.Arguments) {
			savedLines = args.Get(2).([]domain.JournalLine)
		}).Return(nil).Once()
	suite.mockEntryRepo.On("UpdateEntryStatusAndLinks", ctx, entryID, domain.Reversed,
		mock.AnythingOfType("*string"), (*string)(nil), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockBalanceSvc.On("Refresh", ctx, suite.tenantID).Return(true).Once()

	reversal, err := suite.service.ReverseEntry(ctx, suite.tenantID, entryID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(reversal)
	suite.Equal("JE-000002", reversal.EntryNumber)
	suite.Equal(domain.Posted, reversal.Status)
	suite.Require().NotNil(reversal.OriginalEntryID)
	suite.Equal(entryID, *reversal.OriginalEntryID)

	// Debit and credit sides are swapped line for line.
	suite.Require().Len(savedLines, 2)
	suite.True(savedLines[0].CreditAmount.Equal(decimal.NewFromInt(800)))
	suite.True(savedLines[0].DebitAmount.IsZero())
	suite.True(savedLines[1].DebitAmount.Equal(decimal.NewFromInt(800)))
	suite.True(savedLines[1].CreditAmount.IsZero())

	suite.mockEntryRepo.AssertExpectations(suite.T())
	suite.mockBalanceSvc.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestReverseEntry_AlreadyReversedRejected() {
	ctx := context.Background()
	entryID := uuid.NewString()
	reversalID := uuid.NewString()
	original := &domain.JournalEntry{
		EntryID:          entryID,
		TenantID:         suite.tenantID,
		Status:           domain.Posted,
		ReversingEntryID: &reversalID,
	}

	suite.mockEntryRepo.On("FindEntryByID", ctx, suite.tenantID, entryID).Return(original, nil).Once()

	_, err := suite.service.ReverseEntry(ctx, suite.tenantID, entryID, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrConflict)
}

func (suite *LedgerServiceTestSuite) TestReverseEntry_DraftRejected() {
	ctx := context.Background()
	entryID := uuid.NewString()
	draft := &domain.JournalEntry{EntryID: entryID, TenantID: suite.tenantID, Status: domain.Draft}

	suite.mockEntryRepo.On("FindEntryByID", ctx, suite.tenantID, entryID).Return(draft, nil).Once()

	_, err := suite.service.ReverseEntry(ctx, suite.tenantID, entryID, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrConflict)
}

func (suite *LedgerServiceTestSuite) TestGetEntryByID_HydratesLines() {
	ctx := context.Background()
	entryID := uuid.NewString()
	entry := &domain.JournalEntry{EntryID: entryID, TenantID: suite.tenantID, Status: domain.Posted}
	lines := []domain.JournalLine{
		{LineID: uuid.NewString(), EntryID: entryID, DebitAmount: decimal.NewFromInt(100), LineNumber: 1},
		{LineID: uuid.NewString(), EntryID: entryID, CreditAmount: decimal.NewFromInt(100), LineNumber: 2},
	}

	suite.mockEntryRepo.On("FindEntryByID", ctx, suite.tenantID, entryID).Return(entry, nil).Once()
	suite.mockEntryRepo.On("FindLinesByEntryID", ctx, entryID).Return(lines, nil).Once()

	got, err := suite.service.GetEntryByID(ctx, suite.tenantID, entryID)

	suite.Require().NoError(err)
	suite.Len(got.Lines, 2)
}

func (suite *LedgerServiceTestSuite) TestListEntries_PassesToken() {
	ctx := context.Background()
	token := "cursor"
	entries := []domain.JournalEntry{{EntryID: uuid.NewString(), TenantID: suite.tenantID}}

	suite.mockEntryRepo.On("ListEntries", ctx, suite.tenantID, 10, &token, false).
		Return(entries, "next-cursor", nil).Once()

	resp, err := suite.service.ListEntries(ctx, suite.tenantID, dto.ListEntriesParams{Limit: 10, NextToken: &token})

	suite.Require().NoError(err)
	suite.Len(resp.Entries, 1)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal("next-cursor", *resp.NextToken)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
