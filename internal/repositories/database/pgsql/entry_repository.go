package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/bizsuite/ledger_app/internal/apperrors"
	"github.com/bizsuite/ledger_app/internal/core/domain"
	portsrepo "github.com/bizsuite/ledger_app/internal/core/ports/repositories"
	"github.com/bizsuite/ledger_app/internal/models"
	"github.com/bizsuite/ledger_app/internal/utils/mapping"
	"github.com/bizsuite/ledger_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxEntryRepository struct {
	BaseRepository
}

// newPgxEntryRepository creates a new repository for journal entry and line data.
func newPgxEntryRepository(pool *pgxpool.Pool) portsrepo.EntryRepository {
	return &PgxEntryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxEntryRepository implements portsrepo.EntryRepository
var _ portsrepo.EntryRepository = (*PgxEntryRepository)(nil)

const entryColumns = `entry_id, tenant_id, entry_number, entry_date, description, reference, status,
		total_debit, total_credit, original_entry_id, reversing_entry_id,
		created_at, created_by, last_updated_at, last_updated_by`

const lineColumns = `line_id, entry_id, account_id, debit_amount, credit_amount, line_number, description,
		created_at, created_by, last_updated_at, last_updated_by`

func scanEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.TenantID,
		&m.EntryNumber,
		&m.EntryDate,
		&m.Description,
		&m.Reference,
		&m.Status,
		&m.TotalDebit,
		&m.TotalCredit,
		&m.OriginalEntryID,
		&m.ReversingEntryID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanLine(row pgx.Row) (models.JournalLine, error) {
	var m models.JournalLine
	err := row.Scan(
		&m.LineID,
		&m.EntryID,
		&m.AccountID,
		&m.DebitAmount,
		&m.CreditAmount,
		&m.LineNumber,
		&m.Description,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveEntry inserts an entry header and all of its lines within one database
// transaction. An entry is never persisted without its lines.
func (r *PgxEntryRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	// Ignored if the transaction is committed successfully.
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelEntry(entry)
	headerQuery := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err = tx.Exec(ctx, headerQuery,
		m.EntryID,
		m.TenantID,
		m.EntryNumber,
		m.EntryDate,
		m.Description,
		m.Reference,
		m.Status,
		m.TotalDebit,
		m.TotalCredit,
		m.OriginalEntryID,
		m.ReversingEntryID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if pgErrCode(err) == pgUniqueViolation {
			return fmt.Errorf("%w: entry number %s already exists", apperrors.ErrDuplicate, m.EntryNumber)
		}
		return fmt.Errorf("%w: failed to insert entry %s: %v", apperrors.ErrTransactionFailed, m.EntryID, err)
	}

	lineQuery := `
		INSERT INTO journal_lines (` + lineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	batch := &pgx.Batch{}
	for _, line := range lines {
		ml := mapping.ToModelLine(line)
		batch.Queue(lineQuery,
			ml.LineID,
			ml.EntryID,
			ml.AccountID,
			ml.DebitAmount,
			ml.CreditAmount,
			ml.LineNumber,
			ml.Description,
			ml.CreatedAt,
			ml.CreatedBy,
			ml.LastUpdatedAt,
			ml.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("%w: failed to insert lines for entry %s: %v", apperrors.ErrTransactionFailed, m.EntryID, err)
	}

	return r.Commit(ctx, tx)
}

// DeleteEntry removes an entry's lines and then its header as one atomic
// transaction. Either both statements commit or neither does, so a
// mid-operation crash cannot leave orphaned lines.
func (r *PgxEntryRepository) DeleteEntry(ctx context.Context, tenantID, entryID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM journal_lines WHERE entry_id = $1;`, entryID); err != nil {
		return fmt.Errorf("%w: failed to delete lines for entry %s: %v", apperrors.ErrTransactionFailed, entryID, err)
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM journal_entries WHERE entry_id = $1 AND tenant_id = $2;`, entryID, tenantID)
	if err != nil {
		return fmt.Errorf("%w: failed to delete entry %s: %v", apperrors.ErrTransactionFailed, entryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("entry " + entryID + " not found for delete")
	}

	return r.Commit(ctx, tx)
}

// FindEntryByID retrieves an entry header by its ID within a tenant.
func (r *PgxEntryRepository) FindEntryByID(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE entry_id = $1 AND tenant_id = $2;
	`
	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID, tenantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find entry by ID %s: %w", entryID, err)
	}

	entry := mapping.ToDomainEntry(m)
	return &entry, nil
}

// FindLinesByEntryID retrieves all lines of an entry in line order.
func (r *PgxEntryRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	query := `
		SELECT ` + lineColumns + `
		FROM journal_lines
		WHERE entry_id = $1
		ORDER BY line_number;
	`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for entry %s: %w", entryID, err)
	}
	defer rows.Close()

	lines := []models.JournalLine{}
	for rows.Next() {
		m, err := scanLine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan line row for entry %s: %w", entryID, err)
		}
		lines = append(lines, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating line rows for entry %s: %w", entryID, err)
	}

	return mapping.ToDomainLineSlice(lines), nil
}

// FindLinesByEntryIDs retrieves all lines for a list of entry IDs, keyed by
// entry ID. Entries with no lines get an empty slice.
func (r *PgxEntryRepository) FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.JournalLine, error) {
	if len(entryIDs) == 0 {
		return map[string][]domain.JournalLine{}, nil
	}

	query := `
		SELECT ` + lineColumns + `
		FROM journal_lines
		WHERE entry_id = ANY($1)
		ORDER BY entry_id, line_number;
	`
	rows, err := r.Pool.Query(ctx, query, entryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for entry IDs: %w", err)
	}
	defer rows.Close()

	linesMap := make(map[string][]domain.JournalLine)
	for rows.Next() {
		m, err := scanLine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan line row during batch fetch: %w", err)
		}
		line := mapping.ToDomainLine(m)
		linesMap[line.EntryID] = append(linesMap[line.EntryID], line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating line rows during batch fetch: %w", err)
	}

	for _, id := range entryIDs {
		if _, exists := linesMap[id]; !exists {
			linesMap[id] = []domain.JournalLine{}
		}
	}
	return linesMap, nil
}

// ListEntries retrieves a paginated list of entries for a tenant using
// token-based pagination, newest first.
func (r *PgxEntryRepository) ListEntries(ctx context.Context, tenantID string, limit int, nextToken *string, includeReversals bool) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra item to determine if there is a next page.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + entryColumns + `
		FROM journal_entries
	`
	filterClause := `WHERE tenant_id = $1`
	if !includeReversals {
		filterClause += ` AND status != 'REVERSED' AND original_entry_id IS NULL`
	}
	// Ordering must be stable: entry_date DESC with created_at as tie-breaker.
	orderByClause := `ORDER BY entry_date DESC, created_at DESC`

	args := []interface{}{tenantID}
	query := baseQuery + " " + filterClause
	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastDate, lastCreatedAt)
		query += ` AND (entry_date, created_at) < ($2, $3)`
	}
	args = append(args, fetchLimit)
	query += " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query entries for tenant %s: %w", tenantID, err)
	}
	defer rows.Close()

	modelEntries := make([]models.JournalEntry, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanEntry(rows)
		if scanErr != nil {
			return nil, nil, fmt.Errorf("failed to scan entry row for tenant %s: %w", tenantID, scanErr)
		}
		modelEntries = append(modelEntries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating entry rows for tenant %s: %w", tenantID, err)
	}

	var nextTokenVal *string
	results := modelEntries
	if len(modelEntries) > limit {
		last := modelEntries[limit-1]
		token := pagination.EncodeToken(last.EntryDate, last.CreatedAt)
		nextTokenVal = &token
		results = modelEntries[:limit]
	}

	entries := make([]domain.JournalEntry, len(results))
	for i, m := range results {
		entries[i] = mapping.ToDomainEntry(m)
	}
	return entries, nextTokenVal, nil
}

// ListPostedLines returns lines of POSTED entries joined to entry and account
// metadata, newest first. Reversal pairs are included: they cancel out in the
// feed the same way they cancel in the balances.
func (r *PgxEntryRepository) ListPostedLines(ctx context.Context, tenantID string, filter portsrepo.PostedLineFilter) ([]domain.PostedLine, error) {
	query := `
		SELECT l.line_id, l.entry_id, l.account_id, l.debit_amount, l.credit_amount, l.line_number, l.description,
		       l.created_at, l.created_by, l.last_updated_at, l.last_updated_by,
		       e.entry_number, e.entry_date, e.description, e.reference,
		       a.name, a.account_type
		FROM journal_lines l
		JOIN journal_entries e ON l.entry_id = e.entry_id
		JOIN accounts a ON l.account_id = a.account_id
		WHERE e.tenant_id = $1 AND e.status = 'POSTED'
	`
	args := []interface{}{tenantID}
	if filter.From != nil {
		args = append(args, *filter.From)
		query += ` AND e.entry_date >= $` + strconv.Itoa(len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += ` AND e.entry_date <= $` + strconv.Itoa(len(args))
	}
	if filter.AccountID != "" {
		args = append(args, filter.AccountID)
		query += ` AND l.account_id = $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY e.entry_date DESC, e.created_at DESC, l.line_number;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query posted lines for tenant %s: %w", tenantID, err)
	}
	defer rows.Close()

	result := []domain.PostedLine{}
	for rows.Next() {
		var ml models.JournalLine
		var pl domain.PostedLine
		var accountType string
		err := rows.Scan(
			&ml.LineID,
			&ml.EntryID,
			&ml.AccountID,
			&ml.DebitAmount,
			&ml.CreditAmount,
			&ml.LineNumber,
			&ml.Description,
			&ml.CreatedAt,
			&ml.CreatedBy,
			&ml.LastUpdatedAt,
			&ml.LastUpdatedBy,
			&pl.EntryNumber,
			&pl.EntryDate,
			&pl.EntryDescription,
			&pl.Reference,
			&pl.AccountName,
			&accountType,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan posted line row for tenant %s: %w", tenantID, err)
		}
		pl.Line = mapping.ToDomainLine(ml)
		pl.AccountType = domain.AccountType(accountType)
		result = append(result, pl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating posted line rows for tenant %s: %w", tenantID, err)
	}
	return result, nil
}

// UpdateEntry updates header fields of an entry (date, description, reference).
func (r *PgxEntryRepository) UpdateEntry(ctx context.Context, entry domain.JournalEntry) error {
	m := mapping.ToModelEntry(entry)

	query := `
		UPDATE journal_entries
		SET entry_date = $2,
		    description = $3,
		    reference = $4,
		    last_updated_at = $5,
		    last_updated_by = $6
		WHERE entry_id = $1;
	`
	// Status, totals and reversal links are updated through their own methods.

	cmdTag, err := r.Pool.Exec(ctx, query,
		m.EntryID,
		m.EntryDate,
		m.Description,
		m.Reference,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update entry %s: %w", m.EntryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("entry " + m.EntryID + " not found for update")
	}
	return nil
}

// UpdateEntryStatus updates only the status of an entry.
func (r *PgxEntryRepository) UpdateEntryStatus(ctx context.Context, entryID string, status domain.EntryStatus, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE journal_entries
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE entry_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, entryID, status, updatedAt, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update entry status for %s: %w", entryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("entry " + entryID + " not found for status update")
	}
	return nil
}

// UpdateEntryStatusAndLinks updates the status and reversal links of an entry.
func (r *PgxEntryRepository) UpdateEntryStatusAndLinks(ctx context.Context, entryID string, status domain.EntryStatus, reversingEntryID, originalEntryID *string, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE journal_entries
		SET status = $2,
		    reversing_entry_id = $3,
		    original_entry_id = $4,
		    last_updated_at = $5,
		    last_updated_by = $6
		WHERE entry_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		entryID,
		status,
		reversingEntryID,
		originalEntryID,
		updatedAt,
		updatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update entry status/links for %s: %w", entryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("entry " + entryID + " not found for update")
	}
	return nil
}

// NextEntryNumber allocates the next sequential entry number for a tenant.
// Single logical writer assumption: no cross-process reservation.
func (r *PgxEntryRepository) NextEntryNumber(ctx context.Context, tenantID string) (string, error) {
	var maxNumber *string
	query := `SELECT MAX(entry_number) FROM journal_entries WHERE tenant_id = $1 AND entry_number LIKE 'JE-%';`
	if err := r.Pool.QueryRow(ctx, query, tenantID).Scan(&maxNumber); err != nil {
		return "", fmt.Errorf("failed to query max entry number for tenant %s: %w", tenantID, err)
	}

	next := 1
	if maxNumber != nil {
		if n, err := strconv.Atoi((*maxNumber)[len("JE-"):]); err == nil {
			next = n + 1
		}
	}
	return fmt.Sprintf("JE-%06d", next), nil
}
