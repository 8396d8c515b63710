package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vatbooks/vatbooks-api/internal/domain/enum"
	"github.com/vatbooks/vatbooks-api/internal/domain/repository"
	"github.com/vatbooks/vatbooks-api/pkg/money"
	"github.com/vatbooks/vatbooks-api/pkg/pagination"
)

// DashboardService provides the numbers behind the dashboard screen
type DashboardService struct {
	invoiceRepo  repository.InvoiceRepository
	customerRepo repository.CustomerRepository
	categoryRepo repository.CategoryRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	invoiceRepo repository.InvoiceRepository,
	customerRepo repository.CustomerRepository,
	categoryRepo repository.CategoryRepository,
) *DashboardService {
	return &DashboardService{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		categoryRepo: categoryRepo,
	}
}

// DashboardStats represents dashboard statistics for one company
type DashboardStats struct {
	TotalCustomers  int64           `json:"total_customers"`
	TotalInvoices   int64           `json:"total_invoices"`
	DraftInvoices   int64           `json:"draft_invoices"`
	OverdueInvoices int64           `json:"overdue_invoices"`
	UnpaidInvoices  int64           `json:"unpaid_invoices"`
	Revenue         decimal.Decimal `json:"revenue"`
	Expenses        decimal.Decimal `json:"expenses"`
	VATPosition     decimal.Decimal `json:"vat_position"`
	MonthlySeries   []PeriodTotal   `json:"monthly_series"`
	TopCategories   []CategoryTotal `json:"top_categories"`
}

// GetDashboardStats returns the dashboard for the current company: invoice
// and customer counts, trailing-6-month revenue/expense totals and series,
// and the category breakdown over the same window.
func (s *DashboardService) GetDashboardStats(ctx context.Context, now time.Time) (*DashboardStats, error) {
	stats := &DashboardStats{}

	countParams := &pagination.Params{Page: 1, PerPage: 1}
	_, customerCount, err := s.customerRepo.List(ctx, countParams, "")
	if err != nil {
		return nil, err
	}
	stats.TotalCustomers = customerCount

	_, invoiceCount, err := s.invoiceRepo.List(ctx, &pagination.Params{Page: 1, PerPage: 1}, nil)
	if err != nil {
		return nil, err
	}
	stats.TotalInvoices = invoiceCount

	if stats.DraftInvoices, err = s.invoiceRepo.CountByStatus(ctx, enum.InvoiceStatusDraft); err != nil {
		return nil, err
	}
	if stats.OverdueInvoices, err = s.invoiceRepo.CountByStatus(ctx, enum.InvoiceStatusOverdue); err != nil {
		return nil, err
	}
	sentCount, err := s.invoiceRepo.CountByStatus(ctx, enum.InvoiceStatusSent)
	if err != nil {
		return nil, err
	}
	stats.UnpaidInvoices = sentCount + stats.OverdueInvoices

	bounds := monthlyBounds(now, 6)
	from := bounds[0].Start
	to := bounds[len(bounds)-1].End

	invoices, err := s.invoiceRepo.ListForPeriod(ctx, from, to)
	if err != nil {
		return nil, err
	}

	var revenue, expenses, salesVAT, purchasesVAT decimal.Decimal
	for _, inv := range invoices {
		switch inv.Type {
		case enum.InvoiceTypeReceivable:
			revenue = revenue.Add(inv.Subtotal)
			salesVAT = salesVAT.Add(inv.VATTotal)
		case enum.InvoiceTypePayable:
			expenses = expenses.Add(inv.Subtotal)
			purchasesVAT = purchasesVAT.Add(inv.VATTotal)
		}
	}
	stats.Revenue = money.RoundMinor(revenue)
	stats.Expenses = money.RoundMinor(expenses)
	stats.VATPosition = money.RoundMinor(salesVAT.Sub(purchasesVAT))

	stats.MonthlySeries = aggregateByPeriod(invoices, bounds)

	categories, err := s.categoryRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	stats.TopCategories = aggregateByCategory(invoices, categories)

	return stats, nil
}
