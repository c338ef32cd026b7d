package repositories

// RepositoryProvider bundles all repository interfaces for dependency injection.
type RepositoryProvider struct {
	Account AccountRepository
	Entry   EntryRepository
	Balance BalanceRepository
	Archive ReportArchive
}
