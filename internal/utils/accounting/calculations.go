package accounting

import (
	"fmt"

	"github.com/bizsuite/ledger_app/internal/apperrors"
	"github.com/bizsuite/ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SignedBalance applies the polarity convention for an account type:
// balance = debits - credits for ASSET/EXPENSE accounts,
// balance = credits - debits for LIABILITY/EQUITY/REVENUE accounts.
func SignedBalance(accountType domain.AccountType, totalDebit, totalCredit decimal.Decimal) (decimal.Decimal, error) {
	switch accountType {
	case domain.Asset, domain.Expense:
		return totalDebit.Sub(totalCredit), nil
	case domain.Liability, domain.Equity, domain.Revenue:
		return totalCredit.Sub(totalDebit), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown account type %q", accountType)
	}
}

// ValidateLine checks the per-line exclusivity invariant: exactly one of
// debit_amount / credit_amount is non-zero, and that side is positive.
func ValidateLine(line domain.JournalLine) error {
	debitSet := !line.DebitAmount.IsZero()
	creditSet := !line.CreditAmount.IsZero()

	if debitSet == creditSet {
		return fmt.Errorf("%w: line %d must carry exactly one of debit or credit", apperrors.ErrValidation, line.LineNumber)
	}
	if line.DebitAmount.IsNegative() || line.CreditAmount.IsNegative() {
		return fmt.Errorf("%w: line %d amount must be positive", apperrors.ErrValidation, line.LineNumber)
	}
	return nil
}

// ValidateEntryBalance checks the double-entry invariant across an entry's
// lines: at least two lines, each line valid, and sum(debits) == sum(credits).
// Returns the debit and credit totals for the header.
func ValidateEntryBalance(lines []domain.JournalLine) (totalDebit, totalCredit decimal.Decimal, err error) {
	if len(lines) < 2 {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: entry must have at least one balanced pair of lines", apperrors.ErrValidation)
	}

	totalDebit = decimal.Zero
	totalCredit = decimal.Zero
	for _, line := range lines {
		if err := ValidateLine(line); err != nil {
			return decimal.Zero, decimal.Zero, err
		}
		totalDebit = totalDebit.Add(line.DebitAmount)
		totalCredit = totalCredit.Add(line.CreditAmount)
	}

	if !totalDebit.Equal(totalCredit) {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: debits sum to %s, credits sum to %s",
			apperrors.ErrUnbalanced, totalDebit.String(), totalCredit.String())
	}
	return totalDebit, totalCredit, nil
}
