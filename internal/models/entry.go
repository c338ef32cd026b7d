package models

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

// JournalEntry is the database representation of an entry header.
type JournalEntry struct {
	EntryID          string          `db:"entry_id"`
	TenantID         string          `db:"tenant_id"`
	EntryNumber      string          `db:"entry_number"`
	EntryDate        time.Time       `db:"entry_date"`
	Description      string          `db:"description"`
	Reference        string          `db:"reference"`
	Status           EntryStatus     `db:"status"`
	TotalDebit       decimal.Decimal `db:"total_debit"`
	TotalCredit      decimal.Decimal `db:"total_credit"`
	OriginalEntryID  *string         `db:"original_entry_id"`  // Nullable
	ReversingEntryID *string         `db:"reversing_entry_id"` // Nullable
	AuditFields
}

// JournalLine is the database representation of a line item.
// Exactly one of DebitAmount / CreditAmount is non-zero.
type JournalLine struct {
	LineID       string          `db:"line_id"`
	EntryID      string          `db:"entry_id"`
	AccountID    string          `db:"account_id"`
	DebitAmount  decimal.Decimal `db:"debit_amount"`
	CreditAmount decimal.Decimal `db:"credit_amount"`
	LineNumber   int             `db:"line_number"`
	Description  string          `db:"description"`
	AuditFields
}
