// Package calc holds the derived-field calculators: pure functions recomputed
// from a draft whenever their inputs change.
package calc

import (
	"biowearth/internal/model"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Totals is the derived money of an order line.
type Totals struct {
	Base      decimal.Decimal
	TaxAmount decimal.Decimal
	Amount    decimal.Decimal
}

// OrderTotals computes base = qty*rate, tax = base*taxRate/100 and amount = base+tax.
// Inputs are loosely typed form values; anything non-numeric counts as 0.
func OrderTotals(qty, rate, taxRate any) Totals {
	q := model.ParseNumber(qty)
	r := model.ParseNumber(rate)
	t := model.ParseNumber(taxRate)

	base := q.Mul(r)
	tax := base.Mul(t).Div(hundred)
	return Totals{Base: base, TaxAmount: tax, Amount: base.Add(tax)}
}
