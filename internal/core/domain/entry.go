package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the state of a journal entry.
type EntryStatus string

const (
	Draft    EntryStatus = "DRAFT"
	Posted   EntryStatus = "POSTED"
	Reversed EntryStatus = "REVERSED"
)

// JournalEntry represents a single, balanced financial event composed of
// two or more lines. For a POSTED entry TotalDebit == TotalCredit == the sum
// over its lines. An entry exclusively owns its lines: they are created and
// deleted with it as one atomic unit.
type JournalEntry struct {
	EntryID     string      `json:"entryID"`     // Primary key (UUID)
	TenantID    string      `json:"tenantID"`    // Tenant scope (NON-NULL)
	EntryNumber string      `json:"entryNumber"` // Unique per tenant (e.g. "JE-000042")
	EntryDate   time.Time   `json:"entryDate"`   // Date the event occurred
	Description string      `json:"description"`
	Reference   string      `json:"reference"` // Nullable external reference
	Status      EntryStatus `json:"status"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	// Reversal links. A reversing entry points at the entry it cancels via
	// OriginalEntryID; the reversed entry points back via ReversingEntryID.
	OriginalEntryID  *string `json:"originalEntryID,omitempty"`
	ReversingEntryID *string `json:"reversingEntryID,omitempty"`
	// Lines are often loaded separately; nil means "not fetched".
	Lines []JournalLine `json:"lines,omitempty"`
	AuditFields
}

// JournalLine is one debit-or-credit movement against a single account,
// belonging to exactly one entry. Exactly one of DebitAmount / CreditAmount
// is non-zero.
type JournalLine struct {
	LineID       string          `json:"lineID"`  // Primary key (UUID)
	EntryID      string          `json:"entryID"` // FK -> journal_entries (Not Null)
	AccountID    string          `json:"accountID"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	LineNumber   int             `json:"lineNumber"` // Ordering within the entry
	Description  string          `json:"description"`
	AuditFields
}

// IsDebit reports whether the line moves value on the debit side.
func (l JournalLine) IsDebit() bool {
	return l.DebitAmount.IsPositive()
}

// Amount returns the non-zero side of the line.
func (l JournalLine) Amount() decimal.Decimal {
	if l.IsDebit() {
		return l.DebitAmount
	}
	return l.CreditAmount
}
