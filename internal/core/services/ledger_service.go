package services

import (
	"context"
	"fmt"
	"time"

	"github.com/bizsuite/ledger_app/internal/apperrors"
	"github.com/bizsuite/ledger_app/internal/core/domain"
	portsrepo "github.com/bizsuite/ledger_app/internal/core/ports/repositories"
	portssvc "github.com/bizsuite/ledger_app/internal/core/ports/services"
	"github.com/bizsuite/ledger_app/internal/dto"
	"github.com/bizsuite/ledger_app/internal/middleware"
	"github.com/bizsuite/ledger_app/internal/utils/accounting"
	"github.com/google/uuid"
)

// LedgerService owns journal entry mutations. Every write path validates the
// double-entry invariant before touching the repository, so nothing
// unbalanced is ever persisted, not even transiently.
type LedgerService struct {
	entryRepo   portsrepo.EntryRepository
	accountRepo portsrepo.AccountRepository
	balanceSvc  portssvc.BalanceSvcFacade
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(entryRepo portsrepo.EntryRepository, accountRepo portsrepo.AccountRepository, balanceSvc portssvc.BalanceSvcFacade) *LedgerService {
	return &LedgerService{
		entryRepo:   entryRepo,
		accountRepo: accountRepo,
		balanceSvc:  balanceSvc,
	}
}

var _ portssvc.LedgerSvcFacade = (*LedgerService)(nil)

// CreateEntry validates and persists a journal entry with its lines as one
// atomic unit. The entry is POSTED immediately unless the request asks for a
// draft.
func (s *LedgerService) CreateEntry(ctx context.Context, tenantID string, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now()
	entryID := uuid.NewString()

	lines := make([]domain.JournalLine, len(req.Lines))
	accountIDs := make([]string, 0, len(req.Lines))
	for i, l := range req.Lines {
		lines[i] = domain.JournalLine{
			LineID:       uuid.NewString(),
			EntryID:      entryID,
			AccountID:    l.AccountID,
			DebitAmount:  l.DebitAmount,
			CreditAmount: l.CreditAmount,
			LineNumber:   i + 1,
			Description:  l.Description,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     creatorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: creatorUserID,
			},
		}
		accountIDs = append(accountIDs, l.AccountID)
	}

	// Balance gate first: an unbalanced request never reaches the database.
	totalDebit, totalCredit, err := accounting.ValidateEntryBalance(lines)
	if err != nil {
		logger.Warn("Entry rejected before persistence", "error", err, "tenantID", tenantID)
		return nil, err
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, tenantID, accountIDs)
	if err != nil {
		return nil, err
	}
	for _, id := range accountIDs {
		account, found := accounts[id]
		if !found {
			return nil, fmt.Errorf("%w: account %s not found", apperrors.ErrValidation, id)
		}
		if !account.IsActive {
			return nil, fmt.Errorf("%w: account %s (%s) is inactive", apperrors.ErrValidation, account.Code, account.Name)
		}
	}

	entryNumber := req.EntryNumber
	if entryNumber == "" {
		entryNumber, err = s.entryRepo.NextEntryNumber(ctx, tenantID)
		if err != nil {
			return nil, err
		}
	}

	status := domain.Posted
	if req.AsDraft {
		status = domain.Draft
	}

	entry := domain.JournalEntry{
		EntryID:     entryID,
		TenantID:    tenantID,
		EntryNumber: entryNumber,
		EntryDate:   req.EntryDate,
		Description: req.Description,
		Reference:   req.Reference,
		Status:      status,
		TotalDebit:  totalDebit,
		TotalCredit: totalCredit,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.entryRepo.SaveEntry(ctx, entry, lines); err != nil {
		logger.Error("Failed to save entry", "error", err, "entryNumber", entryNumber)
		return nil, err
	}

	logger.Info("Entry created", "entryID", entryID, "entryNumber", entryNumber, "status", status)
	if status == domain.Posted {
		s.balanceSvc.Refresh(ctx, tenantID)
	}

	entry.Lines = lines
	return &entry, nil
}

// GetEntryByID retrieves an entry with its lines.
func (s *LedgerService) GetEntryByID(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, tenantID, entryID)
	if err != nil {
		return nil, err
	}
	lines, err := s.entryRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	entry.Lines = lines
	return entry, nil
}

// ListEntries retrieves a page of entries, optionally hydrated with lines.
func (s *LedgerService) ListEntries(ctx context.Context, tenantID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	entries, nextToken, err := s.entryRepo.ListEntries(ctx, tenantID, params.Limit, params.NextToken, params.IncludeReversals)
	if err != nil {
		return nil, err
	}

	if params.IncludeLines && len(entries) > 0 {
		entryIDs := make([]string, len(entries))
		for i := range entries {
			entryIDs[i] = entries[i].EntryID
		}
		linesMap, err := s.entryRepo.FindLinesByEntryIDs(ctx, entryIDs)
		if err != nil {
			return nil, err
		}
		for i := range entries {
			entries[i].Lines = linesMap[entries[i].EntryID]
		}
	}

	resp := &dto.ListEntriesResponse{
		Entries:   make([]dto.EntryResponse, len(entries)),
		NextToken: nextToken,
	}
	for i := range entries {
		resp.Entries[i] = dto.ToEntryResponse(&entries[i])
	}
	return resp, nil
}

// UpdateEntry edits header fields of an entry. Reversed entries and reversal
// entries are immutable.
func (s *LedgerService) UpdateEntry(ctx context.Context, tenantID, entryID string, req dto.UpdateEntryRequest, userID string) (*domain.JournalEntry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, tenantID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status == domain.Reversed || entry.OriginalEntryID != nil {
		return nil, fmt.Errorf("%w: entry %s is part of a reversal pair and cannot be edited", apperrors.ErrConflict, entry.EntryNumber)
	}

	if req.EntryDate != nil {
		entry.EntryDate = *req.EntryDate
	}
	if req.Description != nil {
		entry.Description = *req.Description
	}
	if req.Reference != nil {
		entry.Reference = *req.Reference
	}
	entry.LastUpdatedAt = time.Now()
	entry.LastUpdatedBy = userID

	if err := s.entryRepo.UpdateEntry(ctx, *entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// PostEntry transitions a DRAFT entry to POSTED. From then on its lines count
// toward account balances.
func (s *LedgerService) PostEntry(ctx context.Context, tenantID, entryID string, userID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.entryRepo.FindEntryByID(ctx, tenantID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.Draft {
		return nil, fmt.Errorf("%w: entry %s is %s, only drafts can be posted", apperrors.ErrConflict, entry.EntryNumber, entry.Status)
	}

	now := time.Now()
	if err := s.entryRepo.UpdateEntryStatus(ctx, entryID, domain.Posted, userID, now); err != nil {
		return nil, err
	}
	entry.Status = domain.Posted
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID

	logger.Info("Entry posted", "entryID", entryID, "entryNumber", entry.EntryNumber)
	s.balanceSvc.Refresh(ctx, tenantID)
	return entry, nil
}

// DeleteEntry destructively removes an entry and its lines in one atomic
// transaction, withdrawing its effect from every balance it touched. Entries
// linked into a reversal pair cannot be deleted; the pair is the audit trail.
func (s *LedgerService) DeleteEntry(ctx context.Context, tenantID, entryID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.entryRepo.FindEntryByID(ctx, tenantID, entryID)
	if err != nil {
		return err
	}
	if entry.Status == domain.Reversed || entry.ReversingEntryID != nil || entry.OriginalEntryID != nil {
		return fmt.Errorf("%w: entry %s is part of a reversal pair and cannot be deleted", apperrors.ErrConflict, entry.EntryNumber)
	}

	if err := s.entryRepo.DeleteEntry(ctx, tenantID, entryID); err != nil {
		logger.Error("Failed to delete entry", "error", err, "entryID", entryID)
		return err
	}

	logger.Info("Entry deleted", "entryID", entryID, "entryNumber", entry.EntryNumber, "userID", userID)
	if entry.Status == domain.Posted {
		s.balanceSvc.Refresh(ctx, tenantID)
	}
	return nil
}

// ReverseEntry creates a balancing counter-entry with the debit and credit
// sides of every line swapped, posts it, and marks the original REVERSED.
// The original's net effect on balances becomes zero while both entries stay
// on the books.
func (s *LedgerService) ReverseEntry(ctx context.Context, tenantID, entryID string, userID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, err := s.entryRepo.FindEntryByID(ctx, tenantID, entryID)
	if err != nil {
		return nil, err
	}
	if original.Status != domain.Posted {
		return nil, fmt.Errorf("%w: entry %s is %s, only posted entries can be reversed", apperrors.ErrConflict, original.EntryNumber, original.Status)
	}
	if original.ReversingEntryID != nil {
		return nil, fmt.Errorf("%w: entry %s is already reversed", apperrors.ErrConflict, original.EntryNumber)
	}

	originalLines, err := s.entryRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	reversalID := uuid.NewString()
	reversalLines := make([]domain.JournalLine, len(originalLines))
	for i, l := range originalLines {
		reversalLines[i] = domain.JournalLine{
			LineID:       uuid.NewString(),
			EntryID:      reversalID,
			AccountID:    l.AccountID,
			DebitAmount:  l.CreditAmount,
			CreditAmount: l.DebitAmount,
			LineNumber:   l.LineNumber,
			Description:  l.Description,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}

	entryNumber, err := s.entryRepo.NextEntryNumber(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	reversal := domain.JournalEntry{
		EntryID:         reversalID,
		TenantID:        tenantID,
		EntryNumber:     entryNumber,
		EntryDate:       now,
		Description:     "Reversal of " + original.EntryNumber + ": " + original.Description,
		Reference:       original.Reference,
		Status:          domain.Posted,
		TotalDebit:      original.TotalCredit,
		TotalCredit:     original.TotalDebit,
		OriginalEntryID: &original.EntryID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.entryRepo.SaveEntry(ctx, reversal, reversalLines); err != nil {
		logger.Error("Failed to save reversal entry", "error", err, "originalEntryID", entryID)
		return nil, err
	}
	if err := s.entryRepo.UpdateEntryStatusAndLinks(ctx, entryID, domain.Reversed, &reversalID, original.OriginalEntryID, userID, now); err != nil {
		logger.Error("Failed to mark original entry reversed", "error", err,
			"originalEntryID", entryID, "reversalEntryID", reversalID)
		return nil, err
	}

	logger.Info("Entry reversed", "originalEntryID", entryID, "reversalEntryID", reversalID, "reversalNumber", entryNumber)
	s.balanceSvc.Refresh(ctx, tenantID)

	reversal.Lines = reversalLines
	return &reversal, nil
}
