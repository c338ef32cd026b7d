package services

import (
	"context"

	"github.com/bizsuite/ledger_app/internal/core/domain"
	"github.com/bizsuite/ledger_app/internal/dto"
)

// LedgerSvcFacade wraps multi-row journal mutations as atomic units and owns
// the debit=credit gatekeeping: nothing unbalanced reaches the repository.
type LedgerSvcFacade interface {
	CreateEntry(ctx context.Context, tenantID string, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error)
	GetEntryByID(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error)
	ListEntries(ctx context.Context, tenantID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
	UpdateEntry(ctx context.Context, tenantID, entryID string, req dto.UpdateEntryRequest, userID string) (*domain.JournalEntry, error)
	// PostEntry transitions a DRAFT entry to POSTED, after which its lines
	// count toward balances.
	PostEntry(ctx context.Context, tenantID, entryID string, userID string) (*domain.JournalEntry, error)
	// DeleteEntry destructively removes a posted entry and its lines as one
	// atomic unit. The audit-preserving alternative is ReverseEntry.
	DeleteEntry(ctx context.Context, tenantID, entryID string, userID string) error
	// ReverseEntry creates a balancing counter-entry with debit and credit
	// sides swapped and marks the original REVERSED.
	ReverseEntry(ctx context.Context, tenantID, entryID string, userID string) (*domain.JournalEntry, error)
}
