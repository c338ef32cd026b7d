package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineSide labels which side of the books a feed row sits on.
type LineSide string

const (
	DebitSide  LineSide = "DEBIT"
	CreditSide LineSide = "CREDIT"
)

// FeedRow is one flattened journal line joined to its parent entry and
// account, shaped for chronological display.
type FeedRow struct {
	LineID      string          `json:"lineID"`
	EntryID     string          `json:"entryID"`
	EntryNumber string          `json:"entryNumber"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Category    string          `json:"category"` // Derived from account type, default "Other"
	Side        LineSide        `json:"side"`
	Amount      decimal.Decimal `json:"amount"`
	Reference   string          `json:"reference"`
	AccountName string          `json:"accountName"`
}

// PostedLine is a journal line joined to its parent entry and account,
// restricted to POSTED entries. It is the raw material the feed and the CSV
// export shape for display.
type PostedLine struct {
	Line             JournalLine
	EntryNumber      string
	EntryDate        time.Time
	EntryDescription string
	Reference        string
	AccountName      string
	AccountType      AccountType
}

// CategoryForAccountType maps an account type to the feed's display category.
func CategoryForAccountType(t AccountType) string {
	switch t {
	case Asset:
		return "Assets"
	case Liability:
		return "Liabilities"
	case Equity:
		return "Equity"
	case Revenue:
		return "Income"
	case Expense:
		return "Expenses"
	default:
		return "Other"
	}
}
