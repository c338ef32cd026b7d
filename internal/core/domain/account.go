package domain

// AccountType defines the fundamental accounting type of an account.
// The type determines balance polarity: debits increase ASSET/EXPENSE
// accounts, credits increase LIABILITY/EQUITY/REVENUE accounts.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// IsValid reports whether t is one of the five recognised account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// Account represents one entry in the chart of accounts.
// Accounts are referenced by journal lines, never owned by them: an account
// cannot be hard-deleted while any line still points at it.
type Account struct {
	AccountID   string      `json:"accountID"` // Primary key (UUID)
	TenantID    string      `json:"tenantID"`  // Tenant scope (NON-NULL)
	Code        string      `json:"code"`      // Unique per tenant, sortable (e.g. "101")
	Name        string      `json:"name"`
	AccountType AccountType `json:"accountType"`
	Description string      `json:"description"` // Nullable user description
	IsActive    bool        `json:"isActive"`    // Soft-retire flag
	AuditFields
}
