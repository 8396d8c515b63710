// Package money provides VAT-aware monetary computation: rate application,
// gross/net conversion and multi-line aggregation.
//
// All amounts are decimal.Decimal. Rounding to the minor currency unit
// happens only at the display/persistence boundary (RoundMinor, Totals.Rounded);
// intermediate aggregation is exact so rounding error never compounds
// across lines.
package money

import (
	"errors"

	"github.com/shopspring/decimal"
)

// MinorUnitPlaces is the number of decimal places of the minor currency unit.
const MinorUnitPlaces = 2

// Negative or absurd inputs are rejected rather than clamped. The engine
// never silently returns a negative or meaningless amount.
var (
	ErrNegativeAmount  = errors.New("money: amount must not be negative")
	ErrNegativeRate    = errors.New("money: VAT rate must not be negative")
	ErrRateTooHigh     = errors.New("money: VAT rate above 100% is not a valid VAT rate")
	ErrInvalidQuantity = errors.New("money: quantity must be positive")
)

var oneHundred = decimal.NewFromInt(100)

func checkRate(ratePercent decimal.Decimal) error {
	if ratePercent.IsNegative() {
		return ErrNegativeRate
	}
	if ratePercent.GreaterThan(oneHundred) {
		return ErrRateTooHigh
	}
	return nil
}

// VAT returns amount * ratePercent / 100.
func VAT(amount, ratePercent decimal.Decimal) (decimal.Decimal, error) {
	if amount.IsNegative() {
		return decimal.Zero, ErrNegativeAmount
	}
	if err := checkRate(ratePercent); err != nil {
		return decimal.Zero, err
	}
	return amount.Mul(ratePercent).Div(oneHundred), nil
}

// TotalWithVAT returns the gross amount: amount + VAT(amount, ratePercent).
func TotalWithVAT(amount, ratePercent decimal.Decimal) (decimal.Decimal, error) {
	vat, err := VAT(amount, ratePercent)
	if err != nil {
		return decimal.Zero, err
	}
	return amount.Add(vat), nil
}

// NetFromGross is the inverse of TotalWithVAT: gross / (1 + ratePercent/100).
// At rate 0 the gross amount is returned unchanged.
func NetFromGross(gross, ratePercent decimal.Decimal) (decimal.Decimal, error) {
	if gross.IsNegative() {
		return decimal.Zero, ErrNegativeAmount
	}
	if err := checkRate(ratePercent); err != nil {
		return decimal.Zero, err
	}
	if ratePercent.IsZero() {
		return gross, nil
	}
	divisor := decimal.New(1, 0).Add(ratePercent.Div(oneHundred))
	return gross.Div(divisor), nil
}

// RoundMinor rounds an amount to the minor currency unit, half away from zero.
func RoundMinor(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(MinorUnitPlaces)
}

// Line is a single invoice line as entered by the user. Net, VAT and gross
// amounts are always derived from these inputs, never stored independently.
type Line struct {
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	VATRate     decimal.Decimal
}

// LineAmounts holds the derived amounts of a single line.
type LineAmounts struct {
	Net   decimal.Decimal
	VAT   decimal.Decimal
	Gross decimal.Decimal
}

// Amounts derives net = quantity * unitPrice, vat = VAT(net, rate) and
// gross = net + vat for the line.
func (l Line) Amounts() (LineAmounts, error) {
	if !l.Quantity.IsPositive() {
		return LineAmounts{}, ErrInvalidQuantity
	}
	if l.UnitPrice.IsNegative() {
		return LineAmounts{}, ErrNegativeAmount
	}
	net := l.Quantity.Mul(l.UnitPrice)
	vat, err := VAT(net, l.VATRate)
	if err != nil {
		return LineAmounts{}, err
	}
	return LineAmounts{Net: net, VAT: vat, Gross: net.Add(vat)}, nil
}

// Totals is the aggregate of an ordered line sequence.
type Totals struct {
	Subtotal decimal.Decimal
	VATTotal decimal.Decimal
	Total    decimal.Decimal
}

// Rounded returns the totals rounded to the minor currency unit. Summation
// is exact and rounding applied once here, so Total always equals
// Subtotal + VATTotal before rounding.
func (t Totals) Rounded() Totals {
	return Totals{
		Subtotal: RoundMinor(t.Subtotal),
		VATTotal: RoundMinor(t.VATTotal),
		Total:    RoundMinor(t.Total),
	}
}

// AggregateLines reduces an ordered sequence of lines into subtotal, VAT
// total and grand total. The empty sequence yields all-zero totals. The
// function is pure: the same input always produces the same output.
func AggregateLines(lines []Line) (Totals, error) {
	totals := Totals{
		Subtotal: decimal.Zero,
		VATTotal: decimal.Zero,
		Total:    decimal.Zero,
	}
	for _, line := range lines {
		amounts, err := line.Amounts()
		if err != nil {
			return Totals{}, err
		}
		totals.Subtotal = totals.Subtotal.Add(amounts.Net)
		totals.VATTotal = totals.VATTotal.Add(amounts.VAT)
		totals.Total = totals.Total.Add(amounts.Gross)
	}
	return totals, nil
}
