package dto

import (
	"time"

	"github.com/bizsuite/ledger_app/internal/core/domain"
)

// FeedParams filters and pages the transaction feed.
type FeedParams struct {
	Search    string
	AccountID string
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// FeedResponse is one page of flattened transaction rows.
type FeedResponse struct {
	Rows    []domain.FeedRow `json:"rows"`
	Total   int              `json:"total"` // Row count before pagination
	HasMore bool             `json:"hasMore"`
}
