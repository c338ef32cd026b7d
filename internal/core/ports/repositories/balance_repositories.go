package repositories

import (
	"context"
	"time"

	"github.com/bizsuite/ledger_app/internal/core/domain"
)

// BalancePeriod bounds a balance aggregation by entry date. Nil means
// unbounded on that side.
type BalancePeriod struct {
	From *time.Time
	To   *time.Time
}

// BalanceRepository aggregates per-account debit/credit totals over posted
// journal lines. Implementations tolerate schema drift across tenant
// databases: a missing tenant-scope column demotes the query to the next
// fallback tier instead of failing.
type BalanceRepository interface {
	// Probe detects the deployed schema's capabilities once so later
	// aggregations run a fixed query strategy instead of re-discovering it.
	Probe(ctx context.Context) error
	// AccountBalanceRows returns one row per account with summed posted
	// debits and credits. The Balance field is left for the caller to sign
	// by polarity.
	AccountBalanceRows(ctx context.Context, tenantID string, period BalancePeriod) ([]domain.AccountBalance, error)
}
