package services

import (
	"context"

	"github.com/bizsuite/ledger_app/internal/core/domain"
	"github.com/bizsuite/ledger_app/internal/dto"
)

// AccountSvcFacade defines the chart-of-accounts operations.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, tenantID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error)
	GetAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error)
	ListAccounts(ctx context.Context, tenantID string, params dto.ListAccountsParams) ([]domain.Account, error)
	UpdateAccount(ctx context.Context, tenantID, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)
	DeactivateAccount(ctx context.Context, tenantID, accountID string, userID string) error
	// DeleteAccount hard-deletes; blocked with ErrReferentialIntegrity while
	// journal lines still reference the account.
	DeleteAccount(ctx context.Context, tenantID, accountID string, userID string) error
}
