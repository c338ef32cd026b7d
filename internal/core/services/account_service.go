package services

import (
	"context"
	"fmt"
	"time"

	"github.com/bizsuite/ledger_app/internal/apperrors"
	"github.com/bizsuite/ledger_app/internal/core/domain"
	portsrepo "github.com/bizsuite/ledger_app/internal/core/ports/repositories"
	portssvc "github.com/bizsuite/ledger_app/internal/core/ports/services"
	"github.com/bizsuite/ledger_app/internal/dto"
	"github.com/bizsuite/ledger_app/internal/middleware"
	"github.com/google/uuid"
)

// AccountService manages the chart of accounts.
type AccountService struct {
	accountRepo portsrepo.AccountRepository
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepository) *AccountService {
	return &AccountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*AccountService)(nil)

// CreateAccount creates a new account in the tenant's chart of accounts.
func (s *AccountService) CreateAccount(ctx context.Context, tenantID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	accountType := domain.AccountType(req.AccountType)
	if !accountType.IsValid() {
		return nil, fmt.Errorf("%w: invalid account type %q", apperrors.ErrValidation, req.AccountType)
	}

	now := time.Now()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		TenantID:    tenantID,
		Code:        req.Code,
		Name:        req.Name,
		AccountType: accountType,
		Description: req.Description,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", "error", err, "code", req.Code)
		return nil, err
	}

	logger.Info("Account created", "accountID", account.AccountID, "code", account.Code)
	return &account, nil
}

// GetAccountByID retrieves a single account.
func (s *AccountService) GetAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID)
	if err != nil {
		return nil, err
	}
	return account, nil
}

// ListAccounts retrieves accounts matching the given filters, ordered by code.
func (s *AccountService) ListAccounts(ctx context.Context, tenantID string, params dto.ListAccountsParams) ([]domain.Account, error) {
	filter := portsrepo.AccountListFilter{
		ActiveOnly: params.ActiveOnly,
		Limit:      params.Limit,
		Offset:     params.Offset,
	}
	if params.AccountType != nil {
		accountType := domain.AccountType(*params.AccountType)
		if !accountType.IsValid() {
			return nil, fmt.Errorf("%w: invalid account type %q", apperrors.ErrValidation, *params.AccountType)
		}
		filter.AccountType = &accountType
	}
	return s.accountRepo.ListAccounts(ctx, tenantID, filter)
}

// UpdateAccount applies plain field edits to an account. Changing the account
// type does not rewrite any history; balances pick up the new polarity on the
// next recompute.
func (s *AccountService) UpdateAccount(ctx context.Context, tenantID, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	if req.AccountType != nil {
		accountType := domain.AccountType(*req.AccountType)
		if !accountType.IsValid() {
			return nil, fmt.Errorf("%w: invalid account type %q", apperrors.ErrValidation, *req.AccountType)
		}
		account.AccountType = accountType
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}
	account.LastUpdatedAt = time.Now()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		logger.Error("Failed to update account", "error", err, "accountID", accountID)
		return nil, err
	}
	return account, nil
}

// DeactivateAccount soft-retires an account. It stays referenceable by
// existing lines but is excluded from active listings.
func (s *AccountService) DeactivateAccount(ctx context.Context, tenantID, accountID string, userID string) error {
	return s.accountRepo.DeactivateAccount(ctx, tenantID, accountID, userID, time.Now())
}

// DeleteAccount hard-deletes an account. The delete is refused while journal
// lines still reference it, so history stays intact. The count check here
// produces the actionable message; the repository's foreign-key mapping
// remains the backstop for lines inserted between check and delete.
func (s *AccountService) DeleteAccount(ctx context.Context, tenantID, accountID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	count, err := s.accountRepo.CountLinesForAccount(ctx, accountID)
	if err != nil {
		return err
	}
	if count > 0 {
		logger.Warn("Account delete refused", "accountID", accountID, "referencingLines", count)
		return fmt.Errorf("%w: %d journal lines still reference account %s", apperrors.ErrReferentialIntegrity, count, accountID)
	}

	if err := s.accountRepo.DeleteAccount(ctx, tenantID, accountID); err != nil {
		logger.Warn("Account delete refused", "error", err, "accountID", accountID, "userID", userID)
		return err
	}

	logger.Info("Account deleted", "accountID", accountID, "userID", userID)
	return nil
}
