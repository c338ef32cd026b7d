package services

// ServiceContainer bundles all service facades for handler registration.
type ServiceContainer struct {
	Account   AccountSvcFacade
	Ledger    LedgerSvcFacade
	Balance   BalanceSvcFacade
	Reporting ReportingSvcFacade
	Feed      FeedSvcFacade
	Export    ExportSvcFacade
}
