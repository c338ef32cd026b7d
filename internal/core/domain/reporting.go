package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountBalance is one row of the balance aggregation: total posted debits
// and credits for an account plus the polarity-signed balance derived from
// the account's current type.
type AccountBalance struct {
	AccountID   string          `json:"accountID"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	AccountType AccountType     `json:"accountType"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	Balance     decimal.Decimal `json:"balance"`
}

// AccountAmount represents an account with its net amount in a financial report.
type AccountAmount struct {
	AccountID string          `json:"accountID"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
}

// TrialBalanceReport lists every account with its balance; TotalDebit and
// TotalCredit over the rows must be equal for books that balance.
type TrialBalanceReport struct {
	AsOf        time.Time        `json:"asOf"`
	Rows        []AccountBalance `json:"rows"`
	TotalDebit  decimal.Decimal  `json:"totalDebit"`
	TotalCredit decimal.Decimal  `json:"totalCredit"`
}

// BalanceSheetReport groups account balances by type. For posted-only data
// TotalAssets == TotalLiabilities + TotalEquity.
type BalanceSheetReport struct {
	AsOf             time.Time       `json:"asOf"`
	Assets           []AccountAmount `json:"assets"`
	Liabilities      []AccountAmount `json:"liabilities"`
	Equity           []AccountAmount `json:"equity"`
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal `json:"totalEquity"`
}

// PAndLReport is revenue minus expenses for a period.
type PAndLReport struct {
	From          time.Time       `json:"from"`
	To            time.Time       `json:"to"`
	Revenue       []AccountAmount `json:"revenue"`
	Expenses      []AccountAmount `json:"expenses"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	NetIncome     decimal.Decimal `json:"netIncome"`
}

// CashFlowReport is the summed balance of asset accounts whose name matches
// the cash/bank heuristic. It is not a full indirect/direct derivation.
type CashFlowReport struct {
	AsOf      time.Time       `json:"asOf"`
	Accounts  []AccountAmount `json:"accounts"`
	TotalCash decimal.Decimal `json:"totalCash"`
}

// ReportSnapshot is the timestamped payload handed to the report archive.
// If the archive write fails the report is still shown transiently.
type ReportSnapshot struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	ReportType  string         `json:"report_type"` // Always "financial"
	Parameters  map[string]any `json:"parameters"`  // Derived report data + provenance
	GeneratedBy string         `json:"generated_by"`
	IsPublic    bool           `json:"is_public"`
	TenantID    string         `json:"tenant_scope"`
	GeneratedAt time.Time      `json:"generated_at"`
}
