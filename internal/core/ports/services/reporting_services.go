package services

import (
	"context"
	"time"

	"github.com/bizsuite/ledger_app/internal/core/domain"
)

// ReportingSvcFacade generates financial statements as pure derivations of
// the aggregated balances. Each generated report is also archived as a
// timestamped snapshot, best-effort.
type ReportingSvcFacade interface {
	TrialBalance(ctx context.Context, tenantID string, asOf time.Time, userID string) (*domain.TrialBalanceReport, error)
	BalanceSheet(ctx context.Context, tenantID string, asOf time.Time, userID string) (*domain.BalanceSheetReport, error)
	ProfitAndLoss(ctx context.Context, tenantID string, from, to time.Time, userID string) (*domain.PAndLReport, error)
	CashFlow(ctx context.Context, tenantID string, asOf time.Time, userID string) (*domain.CashFlowReport, error)
}
