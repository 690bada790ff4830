package calc

import (
	"biowearth/internal/model"

	"github.com/shopspring/decimal"
)

// IngredientSums are the column totals of a formulation, fixed to 2 decimals.
type IngredientSums struct {
	Per100g    string `json:"per100g"`
	PerServing string `json:"perServing"`
	PerSku     string `json:"perSku"`
}

// IngredientTotals sums each dosage column; non-numeric cells count as 0.
func IngredientTotals(ingredients []model.Ingredient) IngredientSums {
	var a, b, c decimal.Decimal
	for _, ing := range ingredients {
		a = a.Add(ing.Per100g.Decimal())
		b = b.Add(ing.PerServing.Decimal())
		c = c.Add(ing.PerSku.Decimal())
	}
	return IngredientSums{
		Per100g:    a.StringFixed(2),
		PerServing: b.StringFixed(2),
		PerSku:     c.StringFixed(2),
	}
}

// Dosage is the first non-empty of perSku, perServing and per100g, or "-".
func Dosage(ing model.Ingredient) string {
	for _, v := range []model.Scalar{ing.PerSku, ing.PerServing, ing.Per100g} {
		if v != "" {
			return v.String()
		}
	}
	return "-"
}
