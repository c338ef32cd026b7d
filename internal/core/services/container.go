package services

import (
	portsrepo "github.com/bizsuite/ledger_app/internal/core/ports/repositories"
	portssvc "github.com/bizsuite/ledger_app/internal/core/ports/services"
)

// NewServiceContainer wires every service onto the repository provider.
func NewServiceContainer(repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	balanceSvc := NewBalanceService(repos.Balance)

	return &portssvc.ServiceContainer{
		Account:   NewAccountService(repos.Account),
		Ledger:    NewLedgerService(repos.Entry, repos.Account, balanceSvc),
		Balance:   balanceSvc,
		Reporting: NewReportingService(balanceSvc, repos.Archive),
		Feed:      NewFeedService(repos.Entry),
		Export:    NewExportService(repos.Account, repos.Entry),
	}
}
