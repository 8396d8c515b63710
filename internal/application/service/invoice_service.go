package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vatbooks/vatbooks-api/internal/domain/entity"
	"github.com/vatbooks/vatbooks-api/internal/domain/enum"
	"github.com/vatbooks/vatbooks-api/internal/domain/repository"
	infraRepo "github.com/vatbooks/vatbooks-api/internal/infrastructure/repository"
	"github.com/vatbooks/vatbooks-api/pkg/apperror"
	"github.com/vatbooks/vatbooks-api/pkg/pagination"
	"github.com/vatbooks/vatbooks-api/pkg/utils"
)

// statusTransitions lists the allowed invoice status changes. Overdue is also
// reached automatically by MarkOverdue when a sent invoice passes its due date.
var statusTransitions = map[enum.InvoiceStatus][]enum.InvoiceStatus{
	enum.InvoiceStatusDraft:   {enum.InvoiceStatusSent, enum.InvoiceStatusVoid},
	enum.InvoiceStatusSent:    {enum.InvoiceStatusPaid, enum.InvoiceStatusOverdue, enum.InvoiceStatusVoid},
	enum.InvoiceStatusOverdue: {enum.InvoiceStatusPaid, enum.InvoiceStatusVoid},
}

func transitionAllowed(from, to enum.InvoiceStatus) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// InvoiceService handles invoice-related operations
type InvoiceService struct {
	invoiceRepo  repository.InvoiceRepository
	customerRepo repository.CustomerRepository
	categoryRepo repository.CategoryRepository
	companyRepo  repository.CompanyRepository
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	customerRepo repository.CustomerRepository,
	categoryRepo repository.CategoryRepository,
	companyRepo repository.CompanyRepository,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		categoryRepo: categoryRepo,
		companyRepo:  companyRepo,
	}
}

// InvoiceLineInput represents one line of an invoice being created or updated
type InvoiceLineInput struct {
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	VATRate     decimal.Decimal
}

// CreateInvoiceInput represents the create invoice input
type CreateInvoiceInput struct {
	Type       enum.InvoiceType
	CustomerID *uuid.UUID
	CategoryID *uuid.UUID
	Number     string
	IssueDate  time.Time
	DueDate    time.Time
	Notes      *string
	Lines      []InvoiceLineInput
}

// CreateInvoice creates a new invoice with computed totals
func (s *InvoiceService) CreateInvoice(ctx context.Context, input *CreateInvoiceInput) (*entity.Invoice, error) {
	companyID, ok := infraRepo.GetCompanyID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Company context required")
	}

	if len(input.Lines) == 0 {
		return nil, apperror.NewBadRequestError("Invoice requires at least one line")
	}
	if input.DueDate.Before(input.IssueDate) {
		return nil, apperror.NewBadRequestError("Due date cannot precede the issue date")
	}

	if err := s.checkReferences(ctx, input.CustomerID, input.CategoryID); err != nil {
		return nil, err
	}

	number := input.Number
	if number == "" {
		n, err := s.nextNumber(ctx, companyID)
		if err != nil {
			return nil, err
		}
		number = n
	} else {
		existing, err := s.invoiceRepo.GetByNumber(ctx, number)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError("Invoice number already in use")
		}
	}

	invoice := &entity.Invoice{
		CompanyID:  companyID,
		CustomerID: input.CustomerID,
		CategoryID: input.CategoryID,
		Number:     number,
		Type:       input.Type,
		Status:     enum.InvoiceStatusDraft,
		IssueDate:  input.IssueDate,
		DueDate:    input.DueDate,
		Notes:      input.Notes,
		Lines:      buildLines(input.Lines),
	}

	if err := invoice.Recalculate(); err != nil {
		return nil, apperror.NewInvalidArgumentError("lines", err)
	}

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, err
	}

	return invoice, nil
}

func buildLines(inputs []InvoiceLineInput) []entity.InvoiceLine {
	lines := make([]entity.InvoiceLine, len(inputs))
	for i, in := range inputs {
		lines[i] = entity.InvoiceLine{
			Description: in.Description,
			Quantity:    in.Quantity,
			UnitPrice:   in.UnitPrice,
			VATRate:     in.VATRate,
		}
	}
	return lines
}

func (s *InvoiceService) checkReferences(ctx context.Context, customerID, categoryID *uuid.UUID) error {
	if customerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *customerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return apperror.NewNotFoundError("Customer")
		}
	}
	if categoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *categoryID)
		if err != nil {
			return err
		}
		if category == nil {
			return apperror.NewNotFoundError("Category")
		}
	}
	return nil
}

// nextNumber generates an unused invoice number with the company's prefix
func (s *InvoiceService) nextNumber(ctx context.Context, companyID uuid.UUID) (string, error) {
	prefix := "INV"
	company, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return "", err
	}
	if company != nil && company.Settings.InvoicePrefix != "" {
		prefix = company.Settings.InvoicePrefix
	}

	for attempt := 0; attempt < 5; attempt++ {
		number := utils.GenerateInvoiceNumber(prefix)
		existing, err := s.invoiceRepo.GetByNumber(ctx, number)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return number, nil
		}
	}
	return "", apperror.ErrInternalServer
}

// GetInvoice retrieves an invoice with its lines
func (s *InvoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

// ListInvoices lists invoices of the current company
func (s *InvoiceService) ListInvoices(ctx context.Context, params *pagination.Params, filter *repository.InvoiceFilter) (*pagination.PaginatedResult[entity.Invoice], error) {
	invoices, total, err := s.invoiceRepo.List(ctx, params, filter)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(invoices, pag), nil
}

// UpdateInvoiceInput represents the update invoice input. Lines replace the
// existing set entirely.
type UpdateInvoiceInput struct {
	ID         uuid.UUID
	CustomerID *uuid.UUID
	CategoryID *uuid.UUID
	IssueDate  *time.Time
	DueDate    *time.Time
	Notes      *string
	Lines      []InvoiceLineInput
}

// UpdateInvoice updates an invoice and recomputes its totals. Paid and void
// invoices are immutable.
func (s *InvoiceService) UpdateInvoice(ctx context.Context, input *UpdateInvoiceInput) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}

	if invoice.Status == enum.InvoiceStatusPaid || invoice.Status == enum.InvoiceStatusVoid {
		return nil, apperror.NewConflictError("Paid and void invoices cannot be edited")
	}

	if err := s.checkReferences(ctx, input.CustomerID, input.CategoryID); err != nil {
		return nil, err
	}

	if input.CustomerID != nil {
		invoice.CustomerID = input.CustomerID
	}
	if input.CategoryID != nil {
		invoice.CategoryID = input.CategoryID
	}
	if input.IssueDate != nil {
		invoice.IssueDate = *input.IssueDate
	}
	if input.DueDate != nil {
		invoice.DueDate = *input.DueDate
	}
	if input.Notes != nil {
		invoice.Notes = input.Notes
	}
	if invoice.DueDate.Before(invoice.IssueDate) {
		return nil, apperror.NewBadRequestError("Due date cannot precede the issue date")
	}

	if input.Lines != nil {
		if len(input.Lines) == 0 {
			return nil, apperror.NewBadRequestError("Invoice requires at least one line")
		}
		invoice.Lines = buildLines(input.Lines)
	}

	if err := invoice.Recalculate(); err != nil {
		return nil, apperror.NewInvalidArgumentError("lines", err)
	}

	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, err
	}

	return invoice, nil
}

// UpdateStatus moves an invoice through its status lifecycle
func (s *InvoiceService) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.InvoiceStatus) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}

	if invoice.Status == status {
		return invoice, nil
	}
	if !transitionAllowed(invoice.Status, status) {
		return nil, apperror.NewConflictError(
			"Cannot change invoice status from " + invoice.Status.String() + " to " + status.String())
	}

	if err := s.invoiceRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	invoice.Status = status
	return invoice, nil
}

// DeleteInvoice deletes an invoice. Only drafts can be deleted; issued
// documents are voided instead.
func (s *InvoiceService) DeleteInvoice(ctx context.Context, id uuid.UUID) error {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if invoice == nil {
		return apperror.NewNotFoundError("Invoice")
	}

	if invoice.Status != enum.InvoiceStatusDraft {
		return apperror.NewConflictError("Only draft invoices can be deleted; void the invoice instead")
	}

	return s.invoiceRepo.Delete(ctx, id)
}

// OverdueResult reports the outcome of an overdue sweep
type OverdueResult struct {
	Marked   int64            `json:"marked"`
	Invoices []entity.Invoice `json:"invoices"`
}

// SweepOverdue marks sent invoices past their due date as overdue and
// returns the current overdue list.
func (s *InvoiceService) SweepOverdue(ctx context.Context, now time.Time) (*OverdueResult, error) {
	marked, err := s.invoiceRepo.MarkOverdue(ctx, now)
	if err != nil {
		return nil, err
	}

	status := enum.InvoiceStatusOverdue
	params := &pagination.Params{Page: 1, PerPage: pagination.MaxPerPage}
	invoices, _, err := s.invoiceRepo.List(ctx, params, &repository.InvoiceFilter{Status: &status})
	if err != nil {
		return nil, err
	}

	return &OverdueResult{Marked: marked, Invoices: invoices}, nil
}
