package repositories

import (
	"context"
	"time"

	"github.com/bizsuite/ledger_app/internal/core/domain"
)

// PostedLineFilter narrows ListPostedLines results. Nil bounds mean
// unbounded; an empty AccountID matches all accounts.
type PostedLineFilter struct {
	From      *time.Time
	To        *time.Time
	AccountID string
}

// EntryRepository defines persistence operations for journal entries and
// their lines. Header and lines always move together: SaveEntry and
// DeleteEntry are single atomic units.
type EntryRepository interface {
	// SaveEntry inserts the header and all lines in one transaction.
	SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error
	// DeleteEntry removes the lines and then the header in one transaction;
	// a failure of either statement rolls back both.
	DeleteEntry(ctx context.Context, tenantID, entryID string) error
	FindEntryByID(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error)
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error)
	FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.JournalLine, error)
	ListEntries(ctx context.Context, tenantID string, limit int, nextToken *string, includeReversals bool) ([]domain.JournalEntry, *string, error)
	// ListPostedLines returns lines of POSTED entries joined to entry and
	// account metadata, newest first, for the transaction feed and exports.
	ListPostedLines(ctx context.Context, tenantID string, filter PostedLineFilter) ([]domain.PostedLine, error)
	UpdateEntry(ctx context.Context, entry domain.JournalEntry) error
	UpdateEntryStatus(ctx context.Context, entryID string, status domain.EntryStatus, updatedBy string, updatedAt time.Time) error
	UpdateEntryStatusAndLinks(ctx context.Context, entryID string, status domain.EntryStatus, reversingEntryID, originalEntryID *string, updatedBy string, updatedAt time.Time) error
	// NextEntryNumber allocates the next sequential entry number for a tenant.
	NextEntryNumber(ctx context.Context, tenantID string) (string, error)
}
