package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/bizsuite/ledger_app/internal/core/domain"
	portsrepo "github.com/bizsuite/ledger_app/internal/core/ports/repositories"
	portssvc "github.com/bizsuite/ledger_app/internal/core/ports/services"
)

const exportPageSize = 500

// ExportService emits the tenant's ledger as flat CSV, one commented section
// per entity. The file is meant for spreadsheets and offline backup, not for
// round-tripping back into the system.
type ExportService struct {
	accountRepo portsrepo.AccountRepository
	entryRepo   portsrepo.EntryRepository
}

// NewExportService creates a new ExportService.
func NewExportService(accountRepo portsrepo.AccountRepository, entryRepo portsrepo.EntryRepository) *ExportService {
	return &ExportService{accountRepo: accountRepo, entryRepo: entryRepo}
}

var _ portssvc.ExportSvcFacade = (*ExportService)(nil)

// ExportCSV renders three sections: accounts, journal entries, transactions.
func (s *ExportService) ExportCSV(ctx context.Context, tenantID string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := s.writeAccounts(ctx, tenantID, &buf, w); err != nil {
		return nil, err
	}
	if err := s.writeEntries(ctx, tenantID, &buf, w); err != nil {
		return nil, err
	}
	if err := s.writeTransactions(ctx, tenantID, &buf, w); err != nil {
		return nil, err
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv export: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *ExportService) writeAccounts(ctx context.Context, tenantID string, buf *bytes.Buffer, w *csv.Writer) error {
	accounts, err := s.accountRepo.ListAccounts(ctx, tenantID, portsrepo.AccountListFilter{})
	if err != nil {
		return err
	}

	buf.WriteString("# accounts\n")
	if err := w.Write([]string{"code", "name", "type", "description", "active"}); err != nil {
		return err
	}
	for _, a := range accounts {
		record := []string{a.Code, a.Name, string(a.AccountType), a.Description, strconv.FormatBool(a.IsActive)}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func (s *ExportService) writeEntries(ctx context.Context, tenantID string, buf *bytes.Buffer, w *csv.Writer) error {
	buf.WriteString("# journal_entries\n")
	if err := w.Write([]string{"entry_number", "entry_date", "description", "reference", "status", "total_debit", "total_credit"}); err != nil {
		return err
	}

	var nextToken *string
	for {
		entries, token, err := s.entryRepo.ListEntries(ctx, tenantID, exportPageSize, nextToken, true)
		if err != nil {
			return err
		}
		for _, e := range entries {
			record := []string{
				e.EntryNumber,
				e.EntryDate.Format(time.DateOnly),
				e.Description,
				e.Reference,
				string(e.Status),
				e.TotalDebit.String(),
				e.TotalCredit.String(),
			}
			if err := w.Write(record); err != nil {
				return err
			}
		}
		if token == nil {
			break
		}
		nextToken = token
	}
	w.Flush()
	return w.Error()
}

func (s *ExportService) writeTransactions(ctx context.Context, tenantID string, buf *bytes.Buffer, w *csv.Writer) error {
	postedLines, err := s.entryRepo.ListPostedLines(ctx, tenantID, portsrepo.PostedLineFilter{})
	if err != nil {
		return err
	}

	buf.WriteString("# transactions\n")
	if err := w.Write([]string{"entry_number", "date", "account", "category", "side", "amount", "description", "reference"}); err != nil {
		return err
	}
	for _, pl := range postedLines {
		side := string(domain.CreditSide)
		if pl.Line.IsDebit() {
			side = string(domain.DebitSide)
		}
		description := pl.Line.Description
		if description == "" {
			description = pl.EntryDescription
		}
		record := []string{
			pl.EntryNumber,
			pl.EntryDate.Format(time.DateOnly),
			pl.AccountName,
			domain.CategoryForAccountType(pl.AccountType),
			side,
			pl.Line.Amount().String(),
			description,
			pl.Reference,
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
