package money

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestVAT(t *testing.T) {
	cases := []struct {
		name   string
		amount string
		rate   string
		want   string
		err    error
	}{
		{"standard rate", "100", "5", "5", nil},
		{"uk standard", "200", "20", "40", nil},
		{"zero amount", "0", "20", "0", nil},
		{"zero rate", "100", "0", "0", nil},
		{"fractional", "99.99", "19", "18.9981", nil},
		{"full rate", "50", "100", "50", nil},
		{"negative amount", "-1", "20", "", ErrNegativeAmount},
		{"negative rate", "100", "-5", "", ErrNegativeRate},
		{"absurd rate", "100", "101", "", ErrRateTooHigh},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := VAT(dec(tc.amount), dec(tc.rate))
			if tc.err != nil {
				if !errors.Is(err, tc.err) {
					t.Fatalf("expected %v, got %v", tc.err, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(dec(tc.want)) {
				t.Fatalf("VAT(%s, %s) = %s, want %s", tc.amount, tc.rate, got, tc.want)
			}
		})
	}
}

func TestTotalWithVAT(t *testing.T) {
	got, err := TotalWithVAT(dec("100"), dec("5"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(dec("105")) {
		t.Fatalf("TotalWithVAT(100, 5) = %s, want 105", got)
	}

	// Zero-rate identity
	got, err = TotalWithVAT(dec("42.42"), decimal.Zero)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(dec("42.42")) {
		t.Fatalf("TotalWithVAT(42.42, 0) = %s, want 42.42", got)
	}
}

func TestNetFromGross(t *testing.T) {
	got, err := NetFromGross(dec("105"), dec("5"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !RoundMinor(got).Equal(dec("100")) {
		t.Fatalf("NetFromGross(105, 5) = %s, want 100", got)
	}

	got, err = NetFromGross(dec("120"), decimal.Zero)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(dec("120")) {
		t.Fatalf("NetFromGross(120, 0) = %s, want 120", got)
	}

	if _, err := NetFromGross(dec("-10"), dec("20")); !errors.Is(err, ErrNegativeAmount) {
		t.Fatalf("expected ErrNegativeAmount, got %v", err)
	}
}

// Round-tripping net -> gross -> net must stay within one minor currency
// unit for any non-negative amount and rate in [0, 100].
func TestGrossNetInverse(t *testing.T) {
	tolerance := dec("0.01")
	amounts := []string{"0", "0.01", "1", "99.99", "100", "1234.56", "999999.99"}
	rates := []string{"0", "5", "7.7", "19", "20", "21", "25", "100"}

	for _, a := range amounts {
		for _, r := range rates {
			amount, rate := dec(a), dec(r)
			gross, err := TotalWithVAT(amount, rate)
			if err != nil {
				t.Fatalf("TotalWithVAT(%s, %s): %v", a, r, err)
			}
			net, err := NetFromGross(gross, rate)
			if err != nil {
				t.Fatalf("NetFromGross(%s, %s): %v", gross, r, err)
			}
			diff := net.Sub(amount).Abs()
			if diff.GreaterThan(tolerance) {
				t.Fatalf("round trip amount=%s rate=%s drifted by %s", a, r, diff)
			}
		}
	}
}

func TestLineAmounts(t *testing.T) {
	line := Line{Description: "Consulting", Quantity: dec("2"), UnitPrice: dec("50"), VATRate: dec("5")}
	amounts, err := line.Amounts()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !amounts.Net.Equal(dec("100")) || !amounts.VAT.Equal(dec("5")) || !amounts.Gross.Equal(dec("105")) {
		t.Fatalf("got net=%s vat=%s gross=%s", amounts.Net, amounts.VAT, amounts.Gross)
	}

	bad := []struct {
		name string
		line Line
		err  error
	}{
		{"zero quantity", Line{Quantity: dec("0"), UnitPrice: dec("10")}, ErrInvalidQuantity},
		{"negative quantity", Line{Quantity: dec("-1"), UnitPrice: dec("10")}, ErrInvalidQuantity},
		{"negative price", Line{Quantity: dec("1"), UnitPrice: dec("-10")}, ErrNegativeAmount},
		{"negative rate", Line{Quantity: dec("1"), UnitPrice: dec("10"), VATRate: dec("-1")}, ErrNegativeRate},
	}
	for _, tc := range bad {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := tc.line.Amounts(); !errors.Is(err, tc.err) {
				t.Fatalf("expected %v, got %v", tc.err, err)
			}
		})
	}
}

func TestAggregateLines(t *testing.T) {
	lines := []Line{
		{Quantity: dec("2"), UnitPrice: dec("50"), VATRate: dec("5")},
		{Quantity: dec("1"), UnitPrice: dec("200"), VATRate: dec("0")},
	}
	totals, err := AggregateLines(lines)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !totals.Subtotal.Equal(dec("300")) {
		t.Fatalf("subtotal = %s, want 300", totals.Subtotal)
	}
	if !totals.VATTotal.Equal(dec("5")) {
		t.Fatalf("vat total = %s, want 5", totals.VATTotal)
	}
	if !totals.Total.Equal(dec("305")) {
		t.Fatalf("total = %s, want 305", totals.Total)
	}
}

func TestAggregateLinesEmpty(t *testing.T) {
	totals, err := AggregateLines(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !totals.Subtotal.IsZero() || !totals.VATTotal.IsZero() || !totals.Total.IsZero() {
		t.Fatalf("empty sequence must yield zero totals, got %+v", totals)
	}
}

// Total must equal the sum of each line's independently derived gross
// amount, and recomputation must be idempotent.
func TestAggregateLinesAdditivity(t *testing.T) {
	lines := []Line{
		{Quantity: dec("3"), UnitPrice: dec("19.99"), VATRate: dec("19")},
		{Quantity: dec("1"), UnitPrice: dec("0.07"), VATRate: dec("7")},
		{Quantity: dec("12"), UnitPrice: dec("1.11"), VATRate: dec("21")},
	}

	sum := decimal.Zero
	for _, line := range lines {
		amounts, err := line.Amounts()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		sum = sum.Add(amounts.Gross)
	}

	first, err := AggregateLines(lines)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !first.Total.Equal(sum) {
		t.Fatalf("total = %s, sum of line gross = %s", first.Total, sum)
	}
	if !first.Total.Equal(first.Subtotal.Add(first.VATTotal)) {
		t.Fatalf("total %s != subtotal %s + vat %s", first.Total, first.Subtotal, first.VATTotal)
	}

	second, err := AggregateLines(lines)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !first.Total.Equal(second.Total) || !first.Subtotal.Equal(second.Subtotal) || !first.VATTotal.Equal(second.VATTotal) {
		t.Fatalf("aggregation is not idempotent: %+v vs %+v", first, second)
	}

	if _, err := AggregateLines([]Line{{Quantity: dec("0"), UnitPrice: dec("1")}}); err == nil {
		t.Fatal("expected error for invalid line")
	}
}

func TestRoundMinor(t *testing.T) {
	cases := []struct{ in, want string }{
		{"18.9981", "19"},
		{"1.005", "1.01"},
		{"1.004", "1"},
		{"0", "0"},
	}
	for _, tc := range cases {
		if got := RoundMinor(dec(tc.in)); !got.Equal(dec(tc.want)) {
			t.Fatalf("RoundMinor(%s) = %s, want %s", tc.in, got, tc.want)
		}
	}
}
