package services

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/bizsuite/ledger_app/internal/core/domain"
	portsrepo "github.com/bizsuite/ledger_app/internal/core/ports/repositories"
	portssvc "github.com/bizsuite/ledger_app/internal/core/ports/services"
	"github.com/bizsuite/ledger_app/internal/middleware"
	"github.com/bizsuite/ledger_app/internal/utils/accounting"
)

// tenantSnapshot holds the last computed balance set for one tenant plus the
// busy flag that serialises recomputes.
type tenantSnapshot struct {
	mu   sync.RWMutex
	rows []domain.AccountBalance
	ok   bool
	busy atomic.Bool
}

// BalanceService computes polarity-signed account balances from posted lines.
// There is no persisted running balance: every computation scans the posted
// line set, so recomputing without a mutation is idempotent.
type BalanceService struct {
	balanceRepo portsrepo.BalanceRepository

	mu        sync.Mutex
	snapshots map[string]*tenantSnapshot
}

// NewBalanceService creates a new BalanceService.
func NewBalanceService(balanceRepo portsrepo.BalanceRepository) *BalanceService {
	return &BalanceService{
		balanceRepo: balanceRepo,
		snapshots:   make(map[string]*tenantSnapshot),
	}
}

var _ portssvc.BalanceSvcFacade = (*BalanceService)(nil)

func (s *BalanceService) snapshot(tenantID string) *tenantSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.snapshots[tenantID]
	if !ok {
		snap = &tenantSnapshot{}
		s.snapshots[tenantID] = snap
	}
	return snap
}

// AccountBalances computes fresh balances for a tenant over an optional
// period. Accounts with no posted lines are absent from the result.
func (s *BalanceService) AccountBalances(ctx context.Context, tenantID string, period portsrepo.BalancePeriod) ([]domain.AccountBalance, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	rows, err := s.balanceRepo.AccountBalanceRows(ctx, tenantID, period)
	if err != nil {
		return rows, err
	}

	for i := range rows {
		signed, err := accounting.SignedBalance(rows[i].AccountType, rows[i].TotalDebit, rows[i].TotalCredit)
		if err != nil {
			// Unknown type on a legacy row: treat it as asset-polarity and
			// keep going rather than failing the whole aggregation.
			logger.Warn("Unknown account type during balance signing",
				"accountID", rows[i].AccountID, "accountType", rows[i].AccountType)
			signed = rows[i].TotalDebit.Sub(rows[i].TotalCredit)
		}
		rows[i].Balance = signed
	}
	return rows, nil
}

// CachedBalances returns the last snapshot built by Refresh for the tenant.
// The second return reports whether a snapshot exists yet.
func (s *BalanceService) CachedBalances(tenantID string) ([]domain.AccountBalance, bool) {
	snap := s.snapshot(tenantID)
	snap.mu.RLock()
	defer snap.mu.RUnlock()
	if !snap.ok {
		return nil, false
	}
	rows := make([]domain.AccountBalance, len(snap.rows))
	copy(rows, snap.rows)
	return rows, true
}

// Refresh recomputes the tenant's cached snapshot. If a refresh is already in
// flight the call is dropped, not queued: the in-flight computation scans the
// same posted-line set, so a second pass would produce the same rows. Returns
// whether this call performed the recompute.
func (s *BalanceService) Refresh(ctx context.Context, tenantID string) bool {
	logger := middleware.GetLoggerFromCtx(ctx)

	snap := s.snapshot(tenantID)
	if !snap.busy.CompareAndSwap(false, true) {
		return false
	}
	defer snap.busy.Store(false)

	rows, err := s.AccountBalances(ctx, tenantID, portsrepo.BalancePeriod{})
	if err != nil {
		logger.Warn("Balance refresh failed, keeping previous snapshot", "error", err, "tenantID", tenantID)
		return true
	}

	snap.mu.Lock()
	snap.rows = rows
	snap.ok = true
	snap.mu.Unlock()
	return true
}
