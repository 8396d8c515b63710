package service

import (
	"testing"

	"github.com/vatbooks/vatbooks-api/internal/domain/entity"
	"github.com/vatbooks/vatbooks-api/internal/domain/enum"
)

func TestVATPosition(t *testing.T) {
	invoices := []entity.Invoice{
		invoice(enum.InvoiceTypeReceivable, nil, "2026-01-10", "1000.00", "1200.00"),
		invoice(enum.InvoiceTypePayable, nil, "2026-02-10", "500.00", "900.00"),
		invoice(enum.InvoiceTypePayable, nil, "2026-03-10", "300.00", "600.00"),
	}

	sales, purchases := vatPosition(invoices)
	if !sales.Equal(d("1200.00")) {
		t.Errorf("sales VAT = %s, want 1200.00", sales)
	}
	if !purchases.Equal(d("1500.00")) {
		t.Errorf("purchases VAT = %s, want 1500.00", purchases)
	}

	ret := &entity.VATReturn{}
	ret.SetVAT(sales, purchases)
	if !ret.NetVATDue.Equal(d("-300.00")) {
		t.Errorf("net VAT due = %s, want -300.00", ret.NetVATDue)
	}
	if !ret.IsRefund() {
		t.Error("a negative net position must be a refund")
	}
}

func TestVATPositionSkipsDraftAndVoid(t *testing.T) {
	draft := invoice(enum.InvoiceTypeReceivable, nil, "2026-01-10", "100.00", "21.00")
	draft.Status = enum.InvoiceStatusDraft
	void := invoice(enum.InvoiceTypePayable, nil, "2026-01-11", "100.00", "21.00")
	void.Status = enum.InvoiceStatusVoid

	sales, purchases := vatPosition([]entity.Invoice{draft, void})
	if !sales.IsZero() || !purchases.IsZero() {
		t.Errorf("draft and void invoices must not count, got %s / %s", sales, purchases)
	}
}

func TestPeriodBounds(t *testing.T) {
	q := 1
	start, end, quarterly, err := periodBounds(&CreateVATReturnInput{Year: 2026, Quarter: &q})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !quarterly {
		t.Error("quarter input must yield a quarterly period")
	}
	if !start.Equal(date("2026-01-01")) || !end.Equal(date("2026-03-31")) {
		t.Errorf("Q1 2026 bounds = %s..%s", start, end)
	}

	m := 2
	start, end, quarterly, err = periodBounds(&CreateVATReturnInput{Year: 2026, Month: &m})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quarterly {
		t.Error("month input must not yield a quarterly period")
	}
	if !end.Equal(date("2026-02-28")) {
		t.Errorf("February 2026 must end on the 28th, got %s", end)
	}

	badQ := 5
	if _, _, _, err := periodBounds(&CreateVATReturnInput{Year: 2026, Quarter: &badQ}); err == nil {
		t.Error("quarter 5 must be rejected")
	}
	if _, _, _, err := periodBounds(&CreateVATReturnInput{Year: 2026}); err == nil {
		t.Error("missing period selector must be rejected")
	}
	both, bothM := 1, 1
	if _, _, _, err := periodBounds(&CreateVATReturnInput{Year: 2026, Quarter: &both, Month: &bothM}); err == nil {
		t.Error("specifying both quarter and month must be rejected")
	}
}
