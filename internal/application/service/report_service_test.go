package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vatbooks/vatbooks-api/internal/domain/entity"
	"github.com/vatbooks/vatbooks-api/internal/domain/enum"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func invoice(typ enum.InvoiceType, categoryID *uuid.UUID, issued, subtotal, vat string) entity.Invoice {
	sub := d(subtotal)
	v := d(vat)
	return entity.Invoice{
		Type:       typ,
		Status:     enum.InvoiceStatusSent,
		CategoryID: categoryID,
		IssueDate:  date(issued),
		Subtotal:   sub,
		VATTotal:   v,
		Total:      sub.Add(v),
	}
}

func TestAggregateByCategory(t *testing.T) {
	sales := entity.Category{ID: uuid.New(), Name: "Sales", Type: enum.CategoryTypeIncome}
	office := entity.Category{ID: uuid.New(), Name: "Office", Type: enum.CategoryTypeExpense}
	unused := entity.Category{ID: uuid.New(), Name: "Travel", Type: enum.CategoryTypeExpense}
	categories := []entity.Category{sales, office, unused}

	invoices := []entity.Invoice{
		invoice(enum.InvoiceTypeReceivable, &sales.ID, "2026-01-10", "100.00", "21.00"),
		invoice(enum.InvoiceTypeReceivable, &sales.ID, "2026-01-20", "200.00", "42.00"),
		invoice(enum.InvoiceTypePayable, &office.ID, "2026-01-15", "50.00", "10.50"),
	}

	totals := aggregateByCategory(invoices, categories)
	if len(totals) != 2 {
		t.Fatalf("expected 2 category totals, got %d", len(totals))
	}

	if totals[0].CategoryID != sales.ID {
		t.Fatalf("expected Sales first, got %s", totals[0].Name)
	}
	if !totals[0].Net.Equal(d("300.00")) || !totals[0].VAT.Equal(d("63.00")) {
		t.Errorf("Sales totals = %s net, %s vat", totals[0].Net, totals[0].VAT)
	}
	if totals[0].Count != 2 {
		t.Errorf("Sales count = %d, want 2", totals[0].Count)
	}
	if !totals[1].Gross.Equal(d("60.50")) {
		t.Errorf("Office gross = %s, want 60.50", totals[1].Gross)
	}
}

func TestAggregateByCategoryUnknownReference(t *testing.T) {
	known := entity.Category{ID: uuid.New(), Name: "Sales", Type: enum.CategoryTypeIncome}
	deleted := uuid.New()

	invoices := []entity.Invoice{
		invoice(enum.InvoiceTypeReceivable, &known.ID, "2026-01-10", "100.00", "21.00"),
		invoice(enum.InvoiceTypeReceivable, &deleted, "2026-01-11", "999.00", "0.00"),
		invoice(enum.InvoiceTypeReceivable, nil, "2026-01-12", "999.00", "0.00"),
	}

	totals := aggregateByCategory(invoices, []entity.Category{known})
	if len(totals) != 1 {
		t.Fatalf("expected 1 total, got %d", len(totals))
	}
	if !totals[0].Net.Equal(d("100.00")) {
		t.Errorf("net = %s, untracked invoices must not contribute", totals[0].Net)
	}
}

func TestAggregateByCategoryEmpty(t *testing.T) {
	if got := aggregateByCategory(nil, nil); len(got) != 0 {
		t.Fatalf("expected empty result, got %d entries", len(got))
	}
}

func TestAggregateByPeriod(t *testing.T) {
	bounds := monthlyBounds(date("2026-03-15"), 3)

	invoices := []entity.Invoice{
		invoice(enum.InvoiceTypeReceivable, nil, "2026-01-10", "100.00", "21.00"),
		invoice(enum.InvoiceTypeReceivable, nil, "2026-03-05", "300.00", "63.00"),
		invoice(enum.InvoiceTypePayable, nil, "2026-03-20", "80.00", "16.80"),
		invoice(enum.InvoiceTypePayable, nil, "2025-12-31", "999.00", "0.00"), // outside range
	}

	series := aggregateByPeriod(invoices, bounds)
	if len(series) != 3 {
		t.Fatalf("expected 3 points, got %d", len(series))
	}

	labels := []string{"2026-01", "2026-02", "2026-03"}
	for i, want := range labels {
		if series[i].Period != want {
			t.Fatalf("series[%d].Period = %s, want %s", i, series[i].Period, want)
		}
	}

	if !series[0].Income.Equal(d("100.00")) {
		t.Errorf("January income = %s, want 100.00", series[0].Income)
	}
	if !series[1].Income.IsZero() || !series[1].Expense.IsZero() {
		t.Errorf("February must be an empty point, got %s / %s", series[1].Income, series[1].Expense)
	}
	if !series[2].Net.Equal(d("220.00")) {
		t.Errorf("March net = %s, want 220.00", series[2].Net)
	}
}

func TestMonthlyBounds(t *testing.T) {
	bounds := monthlyBounds(date("2026-02-28"), 6)
	if len(bounds) != 6 {
		t.Fatalf("expected 6 bounds, got %d", len(bounds))
	}
	if bounds[0].Label != "2025-09" || bounds[5].Label != "2026-02" {
		t.Fatalf("bounds run %s..%s, want 2025-09..2026-02", bounds[0].Label, bounds[5].Label)
	}
	if !bounds[5].End.Equal(date("2026-02-28")) {
		t.Errorf("February 2026 must end on the 28th, got %s", bounds[5].End)
	}
	for i := 1; i < len(bounds); i++ {
		if !bounds[i].Start.After(bounds[i-1].End) {
			t.Fatalf("bounds %d and %d overlap", i-1, i)
		}
	}
}
