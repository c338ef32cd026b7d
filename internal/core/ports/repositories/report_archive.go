package repositories

import (
	"context"

	"github.com/bizsuite/ledger_app/internal/core/domain"
)

// ReportArchive persists generated report snapshots. Archive failures are
// best-effort from the caller's perspective: the report is still returned.
type ReportArchive interface {
	SaveSnapshot(ctx context.Context, snapshot domain.ReportSnapshot) error
}
