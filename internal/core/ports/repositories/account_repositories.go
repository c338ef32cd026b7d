package repositories

import (
	"context"
	"time"

	"github.com/bizsuite/ledger_app/internal/core/domain"
)

// AccountListFilter narrows ListAccounts results. Nil fields mean "no filter".
type AccountListFilter struct {
	AccountType *domain.AccountType
	ActiveOnly  *bool
	Limit       int
	Offset      int
}

// AccountRepository defines persistence operations for the chart of accounts.
type AccountRepository interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	FindAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error)
	FindAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error)
	ListAccounts(ctx context.Context, tenantID string, filter AccountListFilter) ([]domain.Account, error)
	UpdateAccount(ctx context.Context, account domain.Account) error
	DeactivateAccount(ctx context.Context, tenantID, accountID string, userID string, now time.Time) error
	// DeleteAccount hard-deletes an account. It fails with
	// apperrors.ErrReferentialIntegrity while any journal line references it.
	DeleteAccount(ctx context.Context, tenantID, accountID string) error
	// CountLinesForAccount reports how many journal lines reference the account.
	CountLinesForAccount(ctx context.Context, accountID string) (int64, error)
}
