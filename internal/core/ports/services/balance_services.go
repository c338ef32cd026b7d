package services

import (
	"context"

	"github.com/bizsuite/ledger_app/internal/core/domain"
	portsrepo "github.com/bizsuite/ledger_app/internal/core/ports/repositories"
)

// BalanceSvcFacade derives per-account balances from posted journal lines.
// Balances are a pure function of the posted-line set and each account's
// current type; there is no persisted running balance.
type BalanceSvcFacade interface {
	// AccountBalances computes fresh polarity-signed balances for a tenant.
	AccountBalances(ctx context.Context, tenantID string, period portsrepo.BalancePeriod) ([]domain.AccountBalance, error)
	// CachedBalances returns the last snapshot built by Refresh, which may
	// be stale until the next mutation-triggered recompute.
	CachedBalances(tenantID string) ([]domain.AccountBalance, bool)
	// Refresh rebuilds the cached snapshot. Overlapping refreshes are
	// dropped, not queued; the return value reports whether this call ran.
	Refresh(ctx context.Context, tenantID string) bool
}
