package services

import "context"

// ExportSvcFacade emits flat CSV rows for manual export, one section per
// entity: accounts, entries, transactions.
type ExportSvcFacade interface {
	ExportCSV(ctx context.Context, tenantID string) ([]byte, error)
}
