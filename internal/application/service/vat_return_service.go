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
	"github.com/vatbooks/vatbooks-api/pkg/money"
	"github.com/vatbooks/vatbooks-api/pkg/pagination"
	"github.com/vatbooks/vatbooks-api/pkg/utils"
)

// VATReturnService handles VAT return operations
type VATReturnService struct {
	vatReturnRepo repository.VATReturnRepository
	invoiceRepo   repository.InvoiceRepository
}

// NewVATReturnService creates a new VAT return service
func NewVATReturnService(vatReturnRepo repository.VATReturnRepository, invoiceRepo repository.InvoiceRepository) *VATReturnService {
	return &VATReturnService{
		vatReturnRepo: vatReturnRepo,
		invoiceRepo:   invoiceRepo,
	}
}

// CreateVATReturnInput represents the create VAT return input. Exactly one of
// Quarter or Month selects the period within the year.
type CreateVATReturnInput struct {
	Year    int
	Quarter *int
	Month   *int
}

func periodBounds(input *CreateVATReturnInput) (start, end time.Time, quarterly bool, err error) {
	switch {
	case input.Quarter != nil && input.Month == nil:
		q := *input.Quarter
		if q < 1 || q > 4 {
			return start, end, false, apperror.NewBadRequestError("Quarter must be between 1 and 4")
		}
		start = time.Date(input.Year, time.Month((q-1)*3+1), 1, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(0, 3, -1)
		return start, end, true, nil
	case input.Month != nil && input.Quarter == nil:
		m := *input.Month
		if m < 1 || m > 12 {
			return start, end, false, apperror.NewBadRequestError("Month must be between 1 and 12")
		}
		start = time.Date(input.Year, time.Month(m), 1, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(0, 1, -1)
		return start, end, false, nil
	default:
		return start, end, false, apperror.NewBadRequestError("Specify either a quarter or a month")
	}
}

// vatPosition sums the VAT sides from the period's reportable invoices:
// receivables contribute sales VAT, payables purchases VAT. Sums are exact,
// rounded to the minor unit once at the end.
func vatPosition(invoices []entity.Invoice) (salesVAT, purchasesVAT decimal.Decimal) {
	for _, inv := range invoices {
		if !inv.Status.CountsTowardReports() {
			continue
		}
		switch inv.Type {
		case enum.InvoiceTypeReceivable:
			salesVAT = salesVAT.Add(inv.VATTotal)
		case enum.InvoiceTypePayable:
			purchasesVAT = purchasesVAT.Add(inv.VATTotal)
		}
	}
	return money.RoundMinor(salesVAT), money.RoundMinor(purchasesVAT)
}

// CreateVATReturn computes a VAT return from the company's invoices in the
// requested period. One return per period; an existing open return for the
// same period is recomputed instead of duplicated.
func (s *VATReturnService) CreateVATReturn(ctx context.Context, input *CreateVATReturnInput) (*entity.VATReturn, error) {
	companyID, ok := infraRepo.GetCompanyID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Company context required")
	}

	start, end, quarterly, err := periodBounds(input)
	if err != nil {
		return nil, err
	}
	period := utils.PeriodLabel(start, quarterly)

	invoices, err := s.invoiceRepo.ListForPeriod(ctx, start, end)
	if err != nil {
		return nil, err
	}
	salesVAT, purchasesVAT := vatPosition(invoices)

	existing, err := s.vatReturnRepo.GetByPeriod(ctx, period)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.IsFinalized() {
			return nil, apperror.NewConflictError("VAT return for this period is finalized")
		}
		existing.SetVAT(salesVAT, purchasesVAT)
		if err := s.vatReturnRepo.Update(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	vatReturn := &entity.VATReturn{
		CompanyID: companyID,
		Period:    period,
		StartDate: start,
		EndDate:   end,
		Status:    entity.VATReturnStatusOpen,
	}
	vatReturn.SetVAT(salesVAT, purchasesVAT)

	if err := s.vatReturnRepo.Create(ctx, vatReturn); err != nil {
		return nil, err
	}

	return vatReturn, nil
}

// GetVATReturn retrieves a VAT return by ID
func (s *VATReturnService) GetVATReturn(ctx context.Context, id uuid.UUID) (*entity.VATReturn, error) {
	vatReturn, err := s.vatReturnRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if vatReturn == nil {
		return nil, apperror.NewNotFoundError("VAT return")
	}
	return vatReturn, nil
}

// ListVATReturns lists VAT returns of the current company
func (s *VATReturnService) ListVATReturns(ctx context.Context, params *pagination.Params) (*pagination.PaginatedResult[entity.VATReturn], error) {
	returns, total, err := s.vatReturnRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(returns, pag), nil
}

// RecomputeVATReturn refreshes an open return from the current invoice set
func (s *VATReturnService) RecomputeVATReturn(ctx context.Context, id uuid.UUID) (*entity.VATReturn, error) {
	vatReturn, err := s.GetVATReturn(ctx, id)
	if err != nil {
		return nil, err
	}
	if vatReturn.IsFinalized() {
		return nil, apperror.NewConflictError("Finalized VAT returns cannot be recomputed")
	}

	invoices, err := s.invoiceRepo.ListForPeriod(ctx, vatReturn.StartDate, vatReturn.EndDate)
	if err != nil {
		return nil, err
	}
	salesVAT, purchasesVAT := vatPosition(invoices)
	vatReturn.SetVAT(salesVAT, purchasesVAT)

	if err := s.vatReturnRepo.Update(ctx, vatReturn); err != nil {
		return nil, err
	}

	return vatReturn, nil
}

// FinalizeVATReturn locks a return against further recomputation
func (s *VATReturnService) FinalizeVATReturn(ctx context.Context, id uuid.UUID) (*entity.VATReturn, error) {
	vatReturn, err := s.GetVATReturn(ctx, id)
	if err != nil {
		return nil, err
	}
	if vatReturn.IsFinalized() {
		return nil, apperror.NewConflictError("VAT return is already finalized")
	}

	now := time.Now()
	vatReturn.Status = entity.VATReturnStatusFinalized
	vatReturn.FinalizedAt = &now

	if err := s.vatReturnRepo.Update(ctx, vatReturn); err != nil {
		return nil, err
	}

	return vatReturn, nil
}

// DeleteVATReturn deletes an open VAT return
func (s *VATReturnService) DeleteVATReturn(ctx context.Context, id uuid.UUID) error {
	vatReturn, err := s.GetVATReturn(ctx, id)
	if err != nil {
		return err
	}
	if vatReturn.IsFinalized() {
		return apperror.NewConflictError("Finalized VAT returns cannot be deleted")
	}
	return s.vatReturnRepo.Delete(ctx, id)
}
