package services_test

import (
	"context"
	"testing"

	"github.com/bizsuite/ledger_app/internal/apperrors"
	"github.com/bizsuite/ledger_app/internal/core/domain"
	portsrepo "github.com/bizsuite/ledger_app/internal/core/ports/repositories"
	"github.com/bizsuite/ledger_app/internal/core/services"
	"github.com/bizsuite/ledger_app/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	service         *services.AccountService
	tenantID        string
	userID          string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockAccountRepo)
	suite.tenantID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:        "101",
		Name:        "Cash",
		AccountType: "ASSET",
		Description: "Petty cash and till",
	}

	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, suite.tenantID, req, suite.userID)

	suite.Require().NoError(err)
	suite.NotEmpty(account.AccountID)
	suite.Equal(suite.tenantID, account.TenantID)
	suite.Equal("101", account.Code)
	suite.Equal(domain.Asset, account.AccountType)
	suite.True(account.IsActive)
	suite.Equal(suite.userID, account.CreatedBy)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_InvalidTypeRejected() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Code: "999", Name: "Mystery", AccountType: "GOODWILL"}

	_, err := suite.service.CreateAccount(ctx, suite.tenantID, req, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateCodePropagated() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Code: "101", Name: "Cash", AccountType: "ASSET"}

	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).
		Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreateAccount(ctx, suite.tenantID, req, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_TypeChangeDoesNotTouchHistory() {
	ctx := context.Background()
	accountID := uuid.NewString()
	existing := &domain.Account{
		AccountID:   accountID,
		TenantID:    suite.tenantID,
		Code:        "205",
		Name:        "Deferred Revenue",
		AccountType: domain.Liability,
		IsActive:    true,
	}
	newType := "REVENUE"

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.tenantID, accountID).Return(existing, nil).Once()
	suite.mockAccountRepo.On("UpdateAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	updated, err := suite.service.UpdateAccount(ctx, suite.tenantID, accountID, dto.UpdateAccountRequest{AccountType: &newType}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.Revenue, updated.AccountType)
	// Only the account row is updated; no repository call rewrites lines.
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_RefusedWhileLinesReference() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockAccountRepo.On("CountLinesForAccount", ctx, accountID).
		Return(int64(3), nil).Once()

	err := suite.service.DeleteAccount(ctx, suite.tenantID, accountID, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrReferentialIntegrity)
	suite.Contains(err.Error(), "3 journal lines")
	// The delete is never issued once the count refuses it.
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "DeleteAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_Success() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockAccountRepo.On("CountLinesForAccount", ctx, accountID).
		Return(int64(0), nil).Once()
	suite.mockAccountRepo.On("DeleteAccount", ctx, suite.tenantID, accountID).
		Return(nil).Once()

	err := suite.service.DeleteAccount(ctx, suite.tenantID, accountID, suite.userID)

	suite.Require().NoError(err)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_RepositoryGuardStillPropagated() {
	ctx := context.Background()
	accountID := uuid.NewString()

	// A line posted between count and delete trips the in-transaction guard.
	suite.mockAccountRepo.On("CountLinesForAccount", ctx, accountID).
		Return(int64(0), nil).Once()
	suite.mockAccountRepo.On("DeleteAccount", ctx, suite.tenantID, accountID).
		Return(apperrors.ErrReferentialIntegrity).Once()

	err := suite.service.DeleteAccount(ctx, suite.tenantID, accountID, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrReferentialIntegrity)
}

func (suite *AccountServiceTestSuite) TestListAccounts_InvalidTypeFilterRejected() {
	ctx := context.Background()
	badType := "PROFIT"

	_, err := suite.service.ListAccounts(ctx, suite.tenantID, dto.ListAccountsParams{AccountType: &badType})

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "ListAccounts", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestListAccounts_ForwardsFilter() {
	ctx := context.Background()
	assetType := "ASSET"
	active := true

	suite.mockAccountRepo.On("ListAccounts", ctx, suite.tenantID, mock.MatchedBy(func(f portsrepo.AccountListFilter) bool {
		return f.AccountType != nil && *f.AccountType == domain.Asset && f.ActiveOnly != nil && *f.ActiveOnly
	})).Return([]domain.Account{}, nil).Once()

	_, err := suite.service.ListAccounts(ctx, suite.tenantID, dto.ListAccountsParams{AccountType: &assetType, ActiveOnly: &active})

	suite.Require().NoError(err)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
