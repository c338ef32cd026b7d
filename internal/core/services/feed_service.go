package services

import (
	"context"
	"strings"

	"github.com/bizsuite/ledger_app/internal/core/domain"
	portsrepo "github.com/bizsuite/ledger_app/internal/core/ports/repositories"
	portssvc "github.com/bizsuite/ledger_app/internal/core/ports/services"
	"github.com/bizsuite/ledger_app/internal/dto"
)

const defaultFeedPageSize = 50

// FeedService flattens posted journal lines into a chronological transaction
// view with free-text search, date filtering and offset pagination. Reversal
// pairs appear as normal rows; their amounts cancel the same way they cancel
// in the balances.
type FeedService struct {
	entryRepo portsrepo.EntryRepository
}

// NewFeedService creates a new FeedService.
func NewFeedService(entryRepo portsrepo.EntryRepository) *FeedService {
	return &FeedService{entryRepo: entryRepo}
}

var _ portssvc.FeedSvcFacade = (*FeedService)(nil)

// ListTransactions returns one page of the transaction feed, newest first.
func (s *FeedService) ListTransactions(ctx context.Context, tenantID string, params dto.FeedParams) (*dto.FeedResponse, error) {
	postedLines, err := s.entryRepo.ListPostedLines(ctx, tenantID, portsrepo.PostedLineFilter{
		From:      params.From,
		To:        params.To,
		AccountID: params.AccountID,
	})
	if err != nil {
		return nil, err
	}

	rows := make([]domain.FeedRow, 0, len(postedLines))
	search := strings.ToLower(strings.TrimSpace(params.Search))
	for _, pl := range postedLines {
		if search != "" && !matchesSearch(pl, search) {
			continue
		}
		rows = append(rows, toFeedRow(pl))
	}

	total := len(rows)
	limit := params.Limit
	if limit <= 0 {
		limit = defaultFeedPageSize
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	return &dto.FeedResponse{
		Rows:    rows[offset:end],
		Total:   total,
		HasMore: end < total,
	}, nil
}

// matchesSearch checks the entry description, line description, reference,
// entry number and account name, case-insensitively.
func matchesSearch(pl domain.PostedLine, search string) bool {
	for _, field := range []string{
		pl.EntryDescription,
		pl.Line.Description,
		pl.Reference,
		pl.EntryNumber,
		pl.AccountName,
	} {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}

func toFeedRow(pl domain.PostedLine) domain.FeedRow {
	description := pl.Line.Description
	if description == "" {
		description = pl.EntryDescription
	}

	side := domain.CreditSide
	if pl.Line.IsDebit() {
		side = domain.DebitSide
	}

	return domain.FeedRow{
		LineID:      pl.Line.LineID,
		EntryID:     pl.Line.EntryID,
		EntryNumber: pl.EntryNumber,
		Date:        pl.EntryDate,
		Description: description,
		Category:    domain.CategoryForAccountType(pl.AccountType),
		Side:        side,
		Amount:      pl.Line.Amount(),
		Reference:   pl.Reference,
		AccountName: pl.AccountName,
	}
}
