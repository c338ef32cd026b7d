package pgsql

import (
	"context"
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/bizsuite/ledger_app/internal/apperrors"
	"github.com/bizsuite/ledger_app/internal/core/domain"
	portsrepo "github.com/bizsuite/ledger_app/internal/core/ports/repositories"
	"github.com/bizsuite/ledger_app/internal/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Aggregation strategies, ordered from the most precise to the loosest.
// Demotion is one-way: once a tier fails with undefined_column the repository
// never retries it.
const (
	strategyTenantScoped int32 = iota
	strategyAccountScoped
	strategyUnscoped
	strategyExhausted
)

// balanceQueryFunc runs one aggregation attempt with a fixed strategy.
type balanceQueryFunc func(ctx context.Context, strategy int32, tenantID string, period portsrepo.BalancePeriod) ([]domain.AccountBalance, error)

type PgxBalanceRepository struct {
	BaseRepository
	strategy atomic.Int32
	query    balanceQueryFunc
}

// newPgxBalanceRepository creates a balance aggregation repository starting at
// the tenant-scoped strategy.
func newPgxBalanceRepository(pool *pgxpool.Pool) portsrepo.BalanceRepository {
	r := &PgxBalanceRepository{BaseRepository: BaseRepository{Pool: pool}}
	r.strategy.Store(strategyTenantScoped)
	r.query = r.queryBalances
	return r
}

var _ portsrepo.BalanceRepository = (*PgxBalanceRepository)(nil)

// Probe runs each aggregation strategy against the live schema, cheapest row
// count possible, and settles on the first one the schema supports. Called once
// at startup so steady-state aggregations never pay for schema discovery.
func (r *PgxBalanceRepository) Probe(ctx context.Context) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	probes := []struct {
		strategy int32
		query    string
	}{
		{strategyTenantScoped, `
			SELECT l.account_id FROM journal_lines l
			JOIN journal_entries e ON l.entry_id = e.entry_id
			WHERE e.tenant_id = '' LIMIT 1;`},
		{strategyAccountScoped, `
			SELECT l.account_id FROM journal_lines l
			JOIN accounts a ON l.account_id = a.account_id
			WHERE a.tenant_id = '' LIMIT 1;`},
		{strategyUnscoped, `
			SELECT l.account_id FROM journal_lines l LIMIT 1;`},
	}

	for _, p := range probes {
		rows, err := r.Pool.Query(ctx, p.query)
		if err == nil {
			rows.Close()
			r.strategy.Store(p.strategy)
			if p.strategy != strategyTenantScoped {
				logger.Warn("balance aggregation demoted to a fallback strategy",
					"strategy", p.strategy)
			}
			return nil
		}
		if !isUndefinedColumn(err) {
			return fmt.Errorf("balance probe failed: %w", err)
		}
		logger.Warn("balance probe found a missing column, trying next strategy",
			"strategy", p.strategy, "error", err)
	}

	r.strategy.Store(strategyExhausted)
	return apperrors.ErrSchemaMismatch
}

// AccountBalanceRows returns one row per account with summed posted debits and
// credits, running the currently selected strategy and demoting on
// undefined_column errors. Any other database error is returned as-is.
func (r *PgxBalanceRepository) AccountBalanceRows(ctx context.Context, tenantID string, period portsrepo.BalancePeriod) ([]domain.AccountBalance, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	for {
		strategy := r.strategy.Load()
		if strategy == strategyExhausted {
			return []domain.AccountBalance{}, apperrors.ErrSchemaMismatch
		}

		rows, err := r.query(ctx, strategy, tenantID, period)
		if err == nil {
			return rows, nil
		}
		if !isUndefinedColumn(err) {
			return nil, fmt.Errorf("failed to aggregate balances for tenant %s: %w", tenantID, err)
		}

		// Missing column: this tier can never succeed against this schema.
		logger.Warn("balance aggregation demoted after undefined column",
			"strategy", strategy, "error", err)
		r.strategy.CompareAndSwap(strategy, strategy+1)
	}
}

func (r *PgxBalanceRepository) queryBalances(ctx context.Context, strategy int32, tenantID string, period portsrepo.BalancePeriod) ([]domain.AccountBalance, error) {
	// The account-scoped tier selects the account's tenant column and filters
	// rows client-side, so a schema whose journal_entries lost the column but
	// whose accounts kept it still yields correctly scoped results.
	tenantSelect := `'' AS row_tenant`
	if strategy == strategyAccountScoped {
		tenantSelect = `a.tenant_id AS row_tenant`
	}

	query := `
		SELECT a.account_id, a.code, a.name, a.account_type,
		       COALESCE(SUM(l.debit_amount), 0) AS total_debit,
		       COALESCE(SUM(l.credit_amount), 0) AS total_credit,
		       ` + tenantSelect + `
		FROM journal_lines l
		JOIN journal_entries e ON l.entry_id = e.entry_id
		JOIN accounts a ON l.account_id = a.account_id
		WHERE e.status = 'POSTED'
	`

	args := []interface{}{}
	if strategy == strategyTenantScoped {
		args = append(args, tenantID)
		query += ` AND e.tenant_id = $1`
	}

	if period.From != nil {
		args = append(args, *period.From)
		query += ` AND e.entry_date >= $` + strconv.Itoa(len(args))
	}
	if period.To != nil {
		args = append(args, *period.To)
		query += ` AND e.entry_date <= $` + strconv.Itoa(len(args))
	}

	groupBy := `a.account_id, a.code, a.name, a.account_type`
	if strategy == strategyAccountScoped {
		groupBy += `, a.tenant_id`
	}
	query += `
		GROUP BY ` + groupBy + `
		ORDER BY a.code;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	scanned := []scopedBalanceRow{}
	for rows.Next() {
		var row scopedBalanceRow
		var accountType string
		if err := rows.Scan(&row.balance.AccountID, &row.balance.Code, &row.balance.Name, &accountType,
			&row.balance.TotalDebit, &row.balance.TotalCredit, &row.rowTenant); err != nil {
			return nil, err
		}
		row.balance.AccountType = domain.AccountType(accountType)
		scanned = append(scanned, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return filterBalanceRows(strategy, tenantID, scanned), nil
}

// scopedBalanceRow is one aggregation row before client-side tenant filtering.
type scopedBalanceRow struct {
	balance   domain.AccountBalance
	rowTenant string
}

// filterBalanceRows keeps the rows belonging to the tenant. Only the
// account-scoped tier carries a real tenant column per row; the other tiers
// either filtered server-side already or have no column to filter on.
func filterBalanceRows(strategy int32, tenantID string, scanned []scopedBalanceRow) []domain.AccountBalance {
	result := make([]domain.AccountBalance, 0, len(scanned))
	for _, row := range scanned {
		if strategy == strategyAccountScoped && row.rowTenant != tenantID {
			continue
		}
		result = append(result, row.balance)
	}
	return result
}
