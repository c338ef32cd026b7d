package services

import (
	"context"

	"github.com/bizsuite/ledger_app/internal/dto"
)

// FeedSvcFacade flattens posted journal lines into a chronological,
// filterable, paginated transaction view.
type FeedSvcFacade interface {
	ListTransactions(ctx context.Context, tenantID string, params dto.FeedParams) (*dto.FeedResponse, error)
}
