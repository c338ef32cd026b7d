package pgsql

import (
	portsrepo "github.com/bizsuite/ledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every pgx-backed repository onto one pool.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		Account: newPgxAccountRepository(pool),
		Entry:   newPgxEntryRepository(pool),
		Balance: newPgxBalanceRepository(pool),
		Archive: newPgxReportArchive(pool),
	}
}
