package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/vatbooks/vatbooks-api/internal/domain/entity"
	"github.com/vatbooks/vatbooks-api/internal/domain/repository"
	"github.com/vatbooks/vatbooks-api/pkg/apperror"
	"github.com/vatbooks/vatbooks-api/pkg/pagination"
	"github.com/xuri/excelize/v2"
)

// ExportService renders invoice registers and VAT returns as spreadsheets
type ExportService struct {
	invoiceRepo   repository.InvoiceRepository
	vatReturnRepo repository.VATReturnRepository
}

// NewExportService creates a new export service
func NewExportService(invoiceRepo repository.InvoiceRepository, vatReturnRepo repository.VATReturnRepository) *ExportService {
	return &ExportService{
		invoiceRepo:   invoiceRepo,
		vatReturnRepo: vatReturnRepo,
	}
}

var invoiceRegisterHeader = []string{
	"Number", "Type", "Status", "Customer", "Issue Date", "Due Date",
	"Subtotal", "VAT", "Total",
}

func writeInvoiceRow(f *excelize.File, sheet string, row int, inv *entity.Invoice) error {
	customer := ""
	if inv.Customer != nil {
		customer = inv.Customer.Name
	}
	values := []interface{}{
		inv.Number,
		inv.Type.String(),
		inv.Status.String(),
		customer,
		inv.IssueDate.Format("2006-01-02"),
		inv.DueDate.Format("2006-01-02"),
		inv.Subtotal.InexactFloat64(),
		inv.VATTotal.InexactFloat64(),
		inv.Total.InexactFloat64(),
	}
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}

func writeHeader(f *excelize.File, sheet string, header []string) error {
	for col, h := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	return nil
}

// ExportInvoices builds an xlsx register of the company's invoices matching
// the filter.
func (s *ExportService) ExportInvoices(ctx context.Context, filter *repository.InvoiceFilter) (*excelize.File, error) {
	params := &pagination.Params{Page: 1, PerPage: pagination.MaxPerPage}
	var all []entity.Invoice
	for {
		invoices, total, err := s.invoiceRepo.List(ctx, params, filter)
		if err != nil {
			return nil, err
		}
		all = append(all, invoices...)
		if int64(len(all)) >= total || len(invoices) == 0 {
			break
		}
		params.Page++
	}

	f := excelize.NewFile()
	sheet := "Invoices"
	f.SetSheetName("Sheet1", sheet)

	if err := writeHeader(f, sheet, invoiceRegisterHeader); err != nil {
		return nil, err
	}
	for i := range all {
		if err := writeInvoiceRow(f, sheet, i+2, &all[i]); err != nil {
			return nil, err
		}
	}

	return f, nil
}

// ExportVATReturn builds an xlsx summary of one VAT return together with the
// invoices that produced it.
func (s *ExportService) ExportVATReturn(ctx context.Context, id uuid.UUID) (*excelize.File, error) {
	vatReturn, err := s.vatReturnRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if vatReturn == nil {
		return nil, apperror.NewNotFoundError("VAT return")
	}

	f := excelize.NewFile()
	summary := "Summary"
	f.SetSheetName("Sheet1", summary)

	rows := [][]interface{}{
		{"Period", vatReturn.Period},
		{"From", vatReturn.StartDate.Format("2006-01-02")},
		{"To", vatReturn.EndDate.Format("2006-01-02")},
		{"Sales VAT", vatReturn.SalesVAT.InexactFloat64()},
		{"Purchases VAT", vatReturn.PurchasesVAT.InexactFloat64()},
		{"Net VAT due", vatReturn.NetVATDue.InexactFloat64()},
		{"Status", vatReturn.Status},
	}
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(summary, cell, v); err != nil {
				return nil, err
			}
		}
	}

	invoices, err := s.invoiceRepo.ListForPeriod(ctx, vatReturn.StartDate, vatReturn.EndDate)
	if err != nil {
		return nil, err
	}

	detail := "Invoices"
	if _, err := f.NewSheet(detail); err != nil {
		return nil, err
	}
	if err := writeHeader(f, detail, invoiceRegisterHeader); err != nil {
		return nil, err
	}
	for i := range invoices {
		if err := writeInvoiceRow(f, detail, i+2, &invoices[i]); err != nil {
			return nil, err
		}
	}

	return f, nil
}
