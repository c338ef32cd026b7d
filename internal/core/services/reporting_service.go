package services

import (
	"context"
	"strings"
	"time"

	"github.com/bizsuite/ledger_app/internal/core/domain"
	portsrepo "github.com/bizsuite/ledger_app/internal/core/ports/repositories"
	portssvc "github.com/bizsuite/ledger_app/internal/core/ports/services"
	"github.com/bizsuite/ledger_app/internal/middleware"
	"github.com/shopspring/decimal"
)

// ReportingService derives financial statements from the balance aggregation.
// Reports are pure functions of the posted-line set; nothing here writes to
// the ledger. Each generated report is archived as a timestamped snapshot,
// best-effort: an archive failure is logged and the report still returned.
type ReportingService struct {
	balanceSvc portssvc.BalanceSvcFacade
	archive    portsrepo.ReportArchive
}

// NewReportingService creates a new ReportingService.
func NewReportingService(balanceSvc portssvc.BalanceSvcFacade, archive portsrepo.ReportArchive) *ReportingService {
	return &ReportingService{balanceSvc: balanceSvc, archive: archive}
}

var _ portssvc.ReportingSvcFacade = (*ReportingService)(nil)

// TrialBalance lists every account with posted activity and its signed
// balance. Summed debits must equal summed credits for books that balance.
func (s *ReportingService) TrialBalance(ctx context.Context, tenantID string, asOf time.Time, userID string) (*domain.TrialBalanceReport, error) {
	rows, err := s.balanceSvc.AccountBalances(ctx, tenantID, portsrepo.BalancePeriod{To: &asOf})
	if err != nil {
		return nil, err
	}

	report := &domain.TrialBalanceReport{
		AsOf:        asOf,
		Rows:        rows,
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}
	for _, r := range rows {
		report.TotalDebit = report.TotalDebit.Add(r.TotalDebit)
		report.TotalCredit = report.TotalCredit.Add(r.TotalCredit)
	}

	s.archiveSnapshot(ctx, tenantID, userID, "Trial Balance", map[string]any{
		"asOf":        asOf,
		"totalDebit":  report.TotalDebit,
		"totalCredit": report.TotalCredit,
		"rows":        report.Rows,
	})
	return report, nil
}

// BalanceSheet groups signed balances by account type. The net of revenue and
// expenses is folded into equity as current-period net income, so
// TotalAssets == TotalLiabilities + TotalEquity holds on posted-only data.
func (s *ReportingService) BalanceSheet(ctx context.Context, tenantID string, asOf time.Time, userID string) (*domain.BalanceSheetReport, error) {
	rows, err := s.balanceSvc.AccountBalances(ctx, tenantID, portsrepo.BalancePeriod{To: &asOf})
	if err != nil {
		return nil, err
	}

	report := &domain.BalanceSheetReport{
		AsOf:             asOf,
		Assets:           []domain.AccountAmount{},
		Liabilities:      []domain.AccountAmount{},
		Equity:           []domain.AccountAmount{},
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		TotalEquity:      decimal.Zero,
	}

	netIncome := decimal.Zero
	for _, r := range rows {
		amount := domain.AccountAmount{AccountID: r.AccountID, Code: r.Code, Name: r.Name, Amount: r.Balance}
		switch r.AccountType {
		case domain.Asset:
			report.Assets = append(report.Assets, amount)
			report.TotalAssets = report.TotalAssets.Add(r.Balance)
		case domain.Liability:
			report.Liabilities = append(report.Liabilities, amount)
			report.TotalLiabilities = report.TotalLiabilities.Add(r.Balance)
		case domain.Equity:
			report.Equity = append(report.Equity, amount)
			report.TotalEquity = report.TotalEquity.Add(r.Balance)
		case domain.Revenue:
			netIncome = netIncome.Add(r.Balance)
		case domain.Expense:
			netIncome = netIncome.Sub(r.Balance)
		}
	}

	if !netIncome.IsZero() {
		report.Equity = append(report.Equity, domain.AccountAmount{
			Name:   "Net Income (current period)",
			Amount: netIncome,
		})
		report.TotalEquity = report.TotalEquity.Add(netIncome)
	}

	s.archiveSnapshot(ctx, tenantID, userID, "Balance Sheet", map[string]any{
		"asOf":             asOf,
		"totalAssets":      report.TotalAssets,
		"totalLiabilities": report.TotalLiabilities,
		"totalEquity":      report.TotalEquity,
	})
	return report, nil
}

// ProfitAndLoss is revenue minus expenses over a period.
func (s *ReportingService) ProfitAndLoss(ctx context.Context, tenantID string, from, to time.Time, userID string) (*domain.PAndLReport, error) {
	rows, err := s.balanceSvc.AccountBalances(ctx, tenantID, portsrepo.BalancePeriod{From: &from, To: &to})
	if err != nil {
		return nil, err
	}

	report := &domain.PAndLReport{
		From:          from,
		To:            to,
		Revenue:       []domain.AccountAmount{},
		Expenses:      []domain.AccountAmount{},
		TotalRevenue:  decimal.Zero,
		TotalExpenses: decimal.Zero,
	}
	for _, r := range rows {
		amount := domain.AccountAmount{AccountID: r.AccountID, Code: r.Code, Name: r.Name, Amount: r.Balance}
		switch r.AccountType {
		case domain.Revenue:
			report.Revenue = append(report.Revenue, amount)
			report.TotalRevenue = report.TotalRevenue.Add(r.Balance)
		case domain.Expense:
			report.Expenses = append(report.Expenses, amount)
			report.TotalExpenses = report.TotalExpenses.Add(r.Balance)
		}
	}
	report.NetIncome = report.TotalRevenue.Sub(report.TotalExpenses)

	s.archiveSnapshot(ctx, tenantID, userID, "Profit and Loss", map[string]any{
		"from":          from,
		"to":            to,
		"totalRevenue":  report.TotalRevenue,
		"totalExpenses": report.TotalExpenses,
		"netIncome":     report.NetIncome,
	})
	return report, nil
}

// CashFlow sums the balances of asset accounts matching the cash/bank name
// heuristic. It is a cash position summary, not an indirect-method statement.
func (s *ReportingService) CashFlow(ctx context.Context, tenantID string, asOf time.Time, userID string) (*domain.CashFlowReport, error) {
	rows, err := s.balanceSvc.AccountBalances(ctx, tenantID, portsrepo.BalancePeriod{To: &asOf})
	if err != nil {
		return nil, err
	}

	report := &domain.CashFlowReport{
		AsOf:      asOf,
		Accounts:  []domain.AccountAmount{},
		TotalCash: decimal.Zero,
	}
	for _, r := range rows {
		if r.AccountType != domain.Asset || !isCashAccount(r.Name) {
			continue
		}
		report.Accounts = append(report.Accounts, domain.AccountAmount{
			AccountID: r.AccountID, Code: r.Code, Name: r.Name, Amount: r.Balance,
		})
		report.TotalCash = report.TotalCash.Add(r.Balance)
	}

	s.archiveSnapshot(ctx, tenantID, userID, "Cash Flow", map[string]any{
		"asOf":      asOf,
		"totalCash": report.TotalCash,
	})
	return report, nil
}

func isCashAccount(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "cash") || strings.Contains(lower, "bank")
}

// archiveSnapshot persists the derived report, best-effort. A failed write
// only costs the archived copy; the caller already has the report.
func (s *ReportingService) archiveSnapshot(ctx context.Context, tenantID, userID, name string, parameters map[string]any) {
	logger := middleware.GetLoggerFromCtx(ctx)

	snapshot := domain.ReportSnapshot{
		Name:        name,
		Description: name + " generated from posted journal entries",
		ReportType:  "financial",
		Parameters:  parameters,
		GeneratedBy: userID,
		IsPublic:    false,
		TenantID:    tenantID,
		GeneratedAt: time.Now(),
	}
	if err := s.archive.SaveSnapshot(ctx, snapshot); err != nil {
		logger.Warn("Failed to archive report snapshot", "error", err, "report", name)
	}
}
