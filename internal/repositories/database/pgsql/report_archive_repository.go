package pgsql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bizsuite/ledger_app/internal/core/domain"
	portsrepo "github.com/bizsuite/ledger_app/internal/core/ports/repositories"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxReportArchive struct {
	BaseRepository
}

func newPgxReportArchive(pool *pgxpool.Pool) portsrepo.ReportArchive {
	return &PgxReportArchive{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportArchive = (*PgxReportArchive)(nil)

// SaveSnapshot inserts one archived report row with the derived data as JSONB.
func (r *PgxReportArchive) SaveSnapshot(ctx context.Context, snapshot domain.ReportSnapshot) error {
	params, err := json.Marshal(snapshot.Parameters)
	if err != nil {
		return fmt.Errorf("failed to marshal report parameters: %w", err)
	}

	query := `
		INSERT INTO report_snapshots (snapshot_id, tenant_id, name, description, report_type,
			parameters, generated_by, is_public, generated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = r.Pool.Exec(ctx, query,
		uuid.NewString(),
		snapshot.TenantID,
		snapshot.Name,
		snapshot.Description,
		snapshot.ReportType,
		params,
		snapshot.GeneratedBy,
		snapshot.IsPublic,
		snapshot.GeneratedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert report snapshot %q: %w", snapshot.Name, err)
	}
	return nil
}
