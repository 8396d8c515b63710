package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vatbooks/vatbooks-api/internal/domain/entity"
	"github.com/vatbooks/vatbooks-api/internal/domain/enum"
	"github.com/vatbooks/vatbooks-api/internal/domain/repository"
	"github.com/vatbooks/vatbooks-api/pkg/apperror"
	"github.com/vatbooks/vatbooks-api/pkg/money"
)

// ReportService builds financial reports from invoices
type ReportService struct {
	invoiceRepo  repository.InvoiceRepository
	categoryRepo repository.CategoryRepository
}

// NewReportService creates a new report service
func NewReportService(invoiceRepo repository.InvoiceRepository, categoryRepo repository.CategoryRepository) *ReportService {
	return &ReportService{
		invoiceRepo:  invoiceRepo,
		categoryRepo: categoryRepo,
	}
}

// CategoryTotal is the aggregate of all invoices tagged with one category
type CategoryTotal struct {
	CategoryID uuid.UUID         `json:"category_id"`
	Name       string            `json:"name"`
	Type       enum.CategoryType `json:"type"`
	Net        decimal.Decimal   `json:"net"`
	VAT        decimal.Decimal   `json:"vat"`
	Gross      decimal.Decimal   `json:"gross"`
	Count      int               `json:"count"`
}

// aggregateByCategory sums invoices into one total per category. Categories
// with no contributing invoice are omitted, as are invoices whose category
// is unset or not in the given set. Output order follows the categories slice.
func aggregateByCategory(invoices []entity.Invoice, categories []entity.Category) []CategoryTotal {
	totals := make(map[uuid.UUID]*CategoryTotal, len(categories))
	for _, c := range categories {
		totals[c.ID] = &CategoryTotal{CategoryID: c.ID, Name: c.Name, Type: c.Type}
	}

	for _, inv := range invoices {
		if inv.CategoryID == nil {
			continue
		}
		t, known := totals[*inv.CategoryID]
		if !known {
			continue
		}
		t.Net = t.Net.Add(inv.Subtotal)
		t.VAT = t.VAT.Add(inv.VATTotal)
		t.Gross = t.Gross.Add(inv.Total)
		t.Count++
	}

	result := make([]CategoryTotal, 0, len(categories))
	for _, c := range categories {
		t := totals[c.ID]
		if t.Count == 0 {
			continue
		}
		t.Net = money.RoundMinor(t.Net)
		t.VAT = money.RoundMinor(t.VAT)
		t.Gross = money.RoundMinor(t.Gross)
		result = append(result, *t)
	}
	return result
}

// PeriodBound delimits one reporting period, end-inclusive
type PeriodBound struct {
	Label string
	Start time.Time
	End   time.Time
}

// PeriodTotal is the income/expense position of one period
type PeriodTotal struct {
	Period  string          `json:"period"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

// aggregateByPeriod buckets invoices into the given chronological bounds,
// partitioning receivable net amounts into income and payable into expense.
// Every bound produces a point even when empty, so charts keep their axis.
func aggregateByPeriod(invoices []entity.Invoice, bounds []PeriodBound) []PeriodTotal {
	series := make([]PeriodTotal, len(bounds))
	income := make([]decimal.Decimal, len(bounds))
	expense := make([]decimal.Decimal, len(bounds))

	for _, inv := range invoices {
		for i, b := range bounds {
			if inv.IssueDate.Before(b.Start) || inv.IssueDate.After(b.End) {
				continue
			}
			switch inv.Type {
			case enum.InvoiceTypeReceivable:
				income[i] = income[i].Add(inv.Subtotal)
			case enum.InvoiceTypePayable:
				expense[i] = expense[i].Add(inv.Subtotal)
			}
			break
		}
	}

	for i, b := range bounds {
		in := money.RoundMinor(income[i])
		out := money.RoundMinor(expense[i])
		series[i] = PeriodTotal{
			Period:  b.Label,
			Income:  in,
			Expense: out,
			Net:     in.Sub(out),
		}
	}
	return series
}

// monthlyBounds returns n consecutive month bounds ending with the month of
// the reference date.
func monthlyBounds(ref time.Time, n int) []PeriodBound {
	bounds := make([]PeriodBound, 0, n)
	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(n - 1), 0)
	for i := 0; i < n; i++ {
		start := first.AddDate(0, i, 0)
		bounds = append(bounds, PeriodBound{
			Label: start.Format("2006-01"),
			Start: start,
			End:   start.AddDate(0, 1, -1),
		})
	}
	return bounds
}

// ProfitLossReport summarizes income against expenses for a date range
type ProfitLossReport struct {
	From       time.Time       `json:"from"`
	To         time.Time       `json:"to"`
	Income     decimal.Decimal `json:"income"`
	Expense    decimal.Decimal `json:"expense"`
	Net        decimal.Decimal `json:"net"`
	Categories []CategoryTotal `json:"categories"`
}

// ProfitLoss builds a profit and loss report over [from, to]
func (s *ReportService) ProfitLoss(ctx context.Context, from, to time.Time) (*ProfitLossReport, error) {
	if to.Before(from) {
		return nil, apperror.NewBadRequestError("Report end date cannot precede its start date")
	}

	invoices, err := s.invoiceRepo.ListForPeriod(ctx, from, to)
	if err != nil {
		return nil, err
	}
	categories, err := s.categoryRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	var income, expense decimal.Decimal
	for _, inv := range invoices {
		switch inv.Type {
		case enum.InvoiceTypeReceivable:
			income = income.Add(inv.Subtotal)
		case enum.InvoiceTypePayable:
			expense = expense.Add(inv.Subtotal)
		}
	}
	income = money.RoundMinor(income)
	expense = money.RoundMinor(expense)

	return &ProfitLossReport{
		From:       from,
		To:         to,
		Income:     income,
		Expense:    expense,
		Net:        income.Sub(expense),
		Categories: aggregateByCategory(invoices, categories),
	}, nil
}

// CashFlowReport is a chronological income/expense series
type CashFlowReport struct {
	From   time.Time     `json:"from"`
	To     time.Time     `json:"to"`
	Series []PeriodTotal `json:"series"`
}

// CashFlow builds a monthly income/expense series over [from, to] from paid
// invoices only; unpaid documents have not moved cash yet.
func (s *ReportService) CashFlow(ctx context.Context, from, to time.Time) (*CashFlowReport, error) {
	if to.Before(from) {
		return nil, apperror.NewBadRequestError("Report end date cannot precede its start date")
	}

	invoices, err := s.invoiceRepo.ListForPeriod(ctx, from, to)
	if err != nil {
		return nil, err
	}
	paid := invoices[:0]
	for _, inv := range invoices {
		if inv.Status == enum.InvoiceStatusPaid {
			paid = append(paid, inv)
		}
	}

	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month()) + 1
	bounds := monthlyBounds(to, months)

	return &CashFlowReport{
		From:   from,
		To:     to,
		Series: aggregateByPeriod(paid, bounds),
	}, nil
}

// CategoryBreakdown returns per-category totals over [from, to]
func (s *ReportService) CategoryBreakdown(ctx context.Context, from, to time.Time) ([]CategoryTotal, error) {
	if to.Before(from) {
		return nil, apperror.NewBadRequestError("Report end date cannot precede its start date")
	}

	invoices, err := s.invoiceRepo.ListForPeriod(ctx, from, to)
	if err != nil {
		return nil, err
	}
	categories, err := s.categoryRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	return aggregateByCategory(invoices, categories), nil
}
