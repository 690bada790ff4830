package calc_test

import (
	"errors"
	"testing"
	"time"

	"biowearth/internal/calc"
	"biowearth/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ── Order totals ─────────────────────────────────────────────────────────────

func TestOrderTotals(t *testing.T) {
	cases := []struct {
		name                string
		qty, rate, tax      any
		base, taxAmt, total string
	}{
		{"numbers", 10, 250, 18, "2500", "450", "2950"},
		{"strings", "10", "250.5", "5", "2505", "125.25", "2630.25"},
		{"non numeric counts as zero", "abc", 100, 18, "0", "0", "0"},
		{"missing tax", 3, "1.1", nil, "3.3", "0", "3.3"},
		{"leading number", "12kg", "2", "", "24", "0", "24"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := calc.OrderTotals(tc.qty, tc.rate, tc.tax)
			assert.True(t, got.Base.Equal(d(tc.base)), "base %s", got.Base)
			assert.True(t, got.TaxAmount.Equal(d(tc.taxAmt)), "tax %s", got.TaxAmount)
			assert.True(t, got.Amount.Equal(d(tc.total)), "amount %s", got.Amount)
		})
	}
}

func TestOrderTotals_AmountIdentity(t *testing.T) {
	for _, qty := range []int64{0, 1, 7, 120} {
		for _, rate := range []string{"0", "9.99", "1500"} {
			for _, tax := range []string{"0", "5", "12.5", "28"} {
				got := calc.OrderTotals(qty, rate, tax)
				base := decimal.NewFromInt(qty).Mul(d(rate))
				want := base.Add(base.Mul(d(tax)).Div(decimal.NewFromInt(100)))
				assert.True(t, got.Amount.Equal(want), "qty=%d rate=%s tax=%s", qty, rate, tax)
			}
		}
	}
}

// ── SKU code ─────────────────────────────────────────────────────────────────

func TestSKUCode_RoundTrip(t *testing.T) {
	code := calc.SKUCode(calc.SKUParts{
		ProductName: "Whey", Variant: "Isolate", PackSize: "1", Unit: "kg", PackType: "Jar", Flavour: "Chocolate",
	}, nil)
	assert.Equal(t, "WHEY-ISOLATE-1KG-JAR-CHOCOLATE", code)
}

func TestSKUCode_CollapsesAndTrims(t *testing.T) {
	code := calc.SKUCode(calc.SKUParts{ProductName: "Whey", PackSize: "500", Unit: "g", PackType: "Pouch"}, nil)
	assert.Equal(t, "WHEY-500G-POUCH", code)
}

func TestSKUCode_Defaults(t *testing.T) {
	assert.Equal(t, "PROD-KG-BAG", calc.SKUCode(calc.SKUParts{}, nil))

	settings := model.Settings{model.SettingUnits: {"g"}, model.SettingPackTypes: {"Jar"}}
	assert.Equal(t, "PROD-250G-JAR", calc.SKUCode(calc.SKUParts{PackSize: "250"}, settings))
}

// ── Milestones ───────────────────────────────────────────────────────────────

func terms(percents ...string) []model.PaymentTerm {
	out := make([]model.PaymentTerm, len(percents))
	for i, p := range percents {
		out[i] = model.PaymentTerm{Label: "m", Percent: model.Scalar(p), Status: model.PaymentPending}
	}
	return out
}

func TestValidateMilestones(t *testing.T) {
	assert.NoError(t, calc.ValidateMilestones(terms("30", "70")))
	assert.NoError(t, calc.ValidateMilestones(terms("33.3", "33.3", "33.3")))
	assert.NoError(t, calc.ValidateMilestones(terms("50", "50.1")))

	err := calc.ValidateMilestones(terms("50", "40"))
	require.Error(t, err)
	var me *calc.MilestoneError
	require.True(t, errors.As(err, &me))
	assert.True(t, me.Sum.Equal(d("90")))
	assert.Equal(t, "Payment milestones must sum to 100%. Current sum: 90%", err.Error())

	assert.Error(t, calc.ValidateMilestones(terms("50", "50.2")))
	assert.Error(t, calc.ValidateMilestones(nil))
	assert.Error(t, calc.ValidateMilestones(terms("abc", "x100")))
}

// ── Margin ───────────────────────────────────────────────────────────────────

func TestMargin(t *testing.T) {
	m := calc.Margin("120", "100", "50")
	assert.True(t, m.PerUnit.Equal(d("20")))
	assert.True(t, m.TotalRevenue.Equal(d("6000")))
	assert.True(t, m.TotalCost.Equal(d("5000")))
	assert.True(t, m.TotalMargin.Equal(d("1000")))
	assert.True(t, m.Percent.Equal(d("20")))
}

func TestMargin_ZeroCost(t *testing.T) {
	m := calc.Margin(120, nil, 10)
	assert.True(t, m.TotalMargin.Equal(d("1200")))
	assert.True(t, m.Percent.IsZero())

	m = calc.Margin(120, 100, 0)
	assert.True(t, m.Percent.IsZero())
}

// ── Formulation ──────────────────────────────────────────────────────────────

func TestIngredientTotals(t *testing.T) {
	sums := calc.IngredientTotals([]model.Ingredient{
		{Name: "Whey", Per100g: "80", PerServing: "24.5", PerSku: "800"},
		{Name: "Cocoa", Per100g: "5.125", PerServing: "n/a", PerSku: "50"},
		{Name: "Flavour"},
	})
	assert.Equal(t, "85.13", sums.Per100g)
	assert.Equal(t, "24.50", sums.PerServing)
	assert.Equal(t, "850.00", sums.PerSku)

	assert.Equal(t, calc.IngredientSums{Per100g: "0.00", PerServing: "0.00", PerSku: "0.00"}, calc.IngredientTotals(nil))
}

func TestDosageFallback(t *testing.T) {
	assert.Equal(t, "500mg", calc.Dosage(model.Ingredient{PerSku: "500mg", PerServing: "1g", Per100g: "2g"}))
	assert.Equal(t, "1g", calc.Dosage(model.Ingredient{PerServing: "1g", Per100g: "2g"}))
	assert.Equal(t, "2g", calc.Dosage(model.Ingredient{Per100g: "2g"}))
	assert.Equal(t, "-", calc.Dosage(model.Ingredient{}))
}

// ── Formatting ───────────────────────────────────────────────────────────────

func TestFormatMoney(t *testing.T) {
	inr := calc.FormatMoney(1234, "")
	assert.Contains(t, inr, "₹")
	assert.Contains(t, inr, "1,234")

	assert.Contains(t, calc.FormatMoney("999.6", "INR"), "1,000")
	assert.Equal(t, "₹0", calc.FormatMoney(nil, "INR"))
	assert.Contains(t, calc.FormatMoney(-50, "INR"), "-")
	assert.Contains(t, calc.FormatMoney(10, "XYZ1"), "XYZ1")
}

func TestFormatDate(t *testing.T) {
	ts := model.Timestamp{Time: time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)}
	assert.Equal(t, "05-Mar", calc.FormatDate(ts))
	assert.Equal(t, "05-Mar-2024", calc.FormatDateWithYear(ts))
	assert.Equal(t, "17-Jan-2025", calc.FormatDateWithYear("2025-01-17"))
	assert.Equal(t, "-", calc.FormatDate(""))
	assert.Equal(t, "-", calc.FormatDate("not a date"))
	assert.Equal(t, "-", calc.FormatDate(model.Timestamp{}))
	assert.Equal(t, "-", calc.FormatDate(nil))
}
