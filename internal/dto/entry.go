package dto

import (
	"time"

	"github.com/bizsuite/ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateEntryLine is one debit-or-credit movement in a create request.
// Exactly one of debitAmount / creditAmount must be non-zero.
type CreateEntryLine struct {
	AccountID    string          `json:"accountID" binding:"required"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	Description  string          `json:"description"`
}

// CreateEntryRequest defines the payload for creating a journal entry with
// its lines as one unit.
type CreateEntryRequest struct {
	EntryNumber string            `json:"entryNumber"` // Optional; allocated when empty
	EntryDate   time.Time         `json:"entryDate" binding:"required"`
	Description string            `json:"description" binding:"required"`
	Reference   string            `json:"reference"`
	AsDraft     bool              `json:"asDraft"` // When true the entry stays DRAFT until posted
	Lines       []CreateEntryLine `json:"lines" binding:"required,min=2,dive"`
}

// UpdateEntryRequest defines the payload for editing entry header fields.
type UpdateEntryRequest struct {
	EntryDate   *time.Time `json:"entryDate"`
	Description *string    `json:"description"`
	Reference   *string    `json:"reference"`
}

// ListEntriesParams holds parameters for listing entries.
type ListEntriesParams struct {
	Limit            int
	NextToken        *string
	IncludeReversals bool
	IncludeLines     bool
}

// LineResponse defines the data returned for a journal line.
type LineResponse struct {
	LineID       string          `json:"lineID"`
	AccountID    string          `json:"accountID"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	LineNumber   int             `json:"lineNumber"`
	Description  string          `json:"description"`
}

// EntryResponse defines the data returned for a journal entry.
type EntryResponse struct {
	EntryID          string          `json:"entryID"`
	EntryNumber      string          `json:"entryNumber"`
	EntryDate        time.Time       `json:"entryDate"`
	Description      string          `json:"description"`
	Reference        string          `json:"reference"`
	Status           string          `json:"status"`
	TotalDebit       decimal.Decimal `json:"totalDebit"`
	TotalCredit      decimal.Decimal `json:"totalCredit"`
	OriginalEntryID  *string         `json:"originalEntryID,omitempty"`
	ReversingEntryID *string         `json:"reversingEntryID,omitempty"`
	Lines            []LineResponse  `json:"lines,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
	CreatedBy        string          `json:"createdBy"`
}

// ListEntriesResponse is the paginated entry listing.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ToLineResponse converts a domain.JournalLine to LineResponse.
func ToLineResponse(l *domain.JournalLine) LineResponse {
	return LineResponse{
		LineID:       l.LineID,
		AccountID:    l.AccountID,
		DebitAmount:  l.DebitAmount,
		CreditAmount: l.CreditAmount,
		LineNumber:   l.LineNumber,
		Description:  l.Description,
	}
}

// ToEntryResponse converts a domain.JournalEntry to EntryResponse.
func ToEntryResponse(e *domain.JournalEntry) EntryResponse {
	resp := EntryResponse{
		EntryID:          e.EntryID,
		EntryNumber:      e.EntryNumber,
		EntryDate:        e.EntryDate,
		Description:      e.Description,
		Reference:        e.Reference,
		Status:           string(e.Status),
		TotalDebit:       e.TotalDebit,
		TotalCredit:      e.TotalCredit,
		OriginalEntryID:  e.OriginalEntryID,
		ReversingEntryID: e.ReversingEntryID,
		CreatedAt:        e.CreatedAt,
		CreatedBy:        e.CreatedBy,
	}
	if e.Lines != nil {
		resp.Lines = make([]LineResponse, len(e.Lines))
		for i := range e.Lines {
			resp.Lines[i] = ToLineResponse(&e.Lines[i])
		}
	}
	return resp
}
