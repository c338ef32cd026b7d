package models

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account is the database representation of a chart-of-accounts row.
type Account struct {
	AccountID   string      `db:"account_id"`
	TenantID    string      `db:"tenant_id"`
	Code        string      `db:"code"` // Unique per tenant
	Name        string      `db:"name"`
	AccountType AccountType `db:"account_type"`
	Description string      `db:"description"`
	IsActive    bool        `db:"is_active"`
	AuditFields             // Embed common audit fields
}
