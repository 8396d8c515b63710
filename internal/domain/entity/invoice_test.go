package entity

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vatbooks/vatbooks-api/internal/domain/enum"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestInvoiceRecalculate(t *testing.T) {
	inv := &Invoice{
		Lines: []InvoiceLine{
			{Description: "Consulting", Quantity: d("2"), UnitPrice: d("50"), VATRate: d("5")},
			{Description: "Hardware", Quantity: d("1"), UnitPrice: d("200"), VATRate: d("0")},
		},
	}

	if err := inv.Recalculate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !inv.Subtotal.Equal(d("300")) {
		t.Fatalf("subtotal = %s, want 300", inv.Subtotal)
	}
	if !inv.VATTotal.Equal(d("5")) {
		t.Fatalf("vat_total = %s, want 5", inv.VATTotal)
	}
	if !inv.Total.Equal(d("305")) {
		t.Fatalf("total = %s, want 305", inv.Total)
	}

	// Line-derived amounts recomputed, positions assigned in input order.
	if !inv.Lines[0].NetAmount.Equal(d("100")) || !inv.Lines[0].VATAmount.Equal(d("5")) || !inv.Lines[0].GrossAmount.Equal(d("105")) {
		t.Fatalf("line 0 amounts: %s/%s/%s", inv.Lines[0].NetAmount, inv.Lines[0].VATAmount, inv.Lines[0].GrossAmount)
	}
	if inv.Lines[0].Position != 0 || inv.Lines[1].Position != 1 {
		t.Fatalf("positions: %d, %d", inv.Lines[0].Position, inv.Lines[1].Position)
	}
}

// total == subtotal + vat_total must hold after every recomputation, and
// recomputing an unchanged invoice must not move any amount.
func TestInvoiceRecalculateInvariant(t *testing.T) {
	inv := &Invoice{
		Lines: []InvoiceLine{
			{Quantity: d("3"), UnitPrice: d("19.99"), VATRate: d("19")},
			{Quantity: d("7"), UnitPrice: d("1.37"), VATRate: d("7")},
			{Quantity: d("1"), UnitPrice: d("0.03"), VATRate: d("21")},
		},
	}

	if err := inv.Recalculate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !inv.Total.Equal(inv.Subtotal.Add(inv.VATTotal)) {
		t.Fatalf("total %s != subtotal %s + vat %s", inv.Total, inv.Subtotal, inv.VATTotal)
	}

	subtotal, vatTotal, total := inv.Subtotal, inv.VATTotal, inv.Total
	if err := inv.Recalculate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !inv.Subtotal.Equal(subtotal) || !inv.VATTotal.Equal(vatTotal) || !inv.Total.Equal(total) {
		t.Fatal("recalculation of an unchanged invoice changed the totals")
	}
}

func TestInvoiceRecalculateEmpty(t *testing.T) {
	inv := &Invoice{}
	if err := inv.Recalculate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !inv.Subtotal.IsZero() || !inv.VATTotal.IsZero() || !inv.Total.IsZero() {
		t.Fatalf("empty invoice must have zero totals, got %s/%s/%s", inv.Subtotal, inv.VATTotal, inv.Total)
	}
}

func TestInvoiceRecalculateRejectsInvalidLine(t *testing.T) {
	inv := &Invoice{
		Lines: []InvoiceLine{
			{Quantity: d("0"), UnitPrice: d("10"), VATRate: d("20")},
		},
	}
	if err := inv.Recalculate(); err == nil {
		t.Fatal("expected error for zero quantity")
	}

	inv = &Invoice{
		Lines: []InvoiceLine{
			{Quantity: d("1"), UnitPrice: d("10"), VATRate: d("-5")},
		},
	}
	if err := inv.Recalculate(); err == nil {
		t.Fatal("expected error for negative VAT rate")
	}
}

func TestInvoiceIsOverdue(t *testing.T) {
	due := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	after := due.AddDate(0, 0, 1)
	before := due.AddDate(0, 0, -1)

	cases := []struct {
		name   string
		status enum.InvoiceStatus
		now    time.Time
		want   bool
	}{
		{"sent past due", enum.InvoiceStatusSent, after, true},
		{"sent before due", enum.InvoiceStatusSent, before, false},
		{"paid past due", enum.InvoiceStatusPaid, after, false},
		{"draft past due", enum.InvoiceStatusDraft, after, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			inv := &Invoice{Status: tc.status, DueDate: due}
			if got := inv.IsOverdue(tc.now); got != tc.want {
				t.Fatalf("IsOverdue = %v, want %v", got, tc.want)
			}
		})
	}
}
