package calc

import (
	"biowearth/internal/model"

	"github.com/shopspring/decimal"
)

// MarginResult is the margin of a sales quote against its locked-in base cost.
type MarginResult struct {
	PerUnit      decimal.Decimal `json:"perUnit"`
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
	TotalCost    decimal.Decimal `json:"totalCost"`
	TotalMargin  decimal.Decimal `json:"totalMargin"`
	Percent      decimal.Decimal `json:"percent"`
}

// Margin computes (selling - base) per unit and over moq units. Percent is
// totalMargin / totalCost * 100 and 0 when totalCost is 0.
func Margin(sellingPrice, baseCostPrice, moq any) MarginResult {
	sell := model.ParseNumber(sellingPrice)
	base := model.ParseNumber(baseCostPrice)
	n := model.ParseNumber(moq)

	res := MarginResult{
		PerUnit:      sell.Sub(base),
		TotalRevenue: sell.Mul(n),
		TotalCost:    base.Mul(n),
	}
	res.TotalMargin = res.TotalRevenue.Sub(res.TotalCost)
	if !res.TotalCost.IsZero() {
		res.Percent = res.TotalMargin.Div(res.TotalCost).Mul(hundred)
	}
	return res
}
