package projection

import (
	"biowearth/internal/calc"
	"biowearth/internal/model"
	"biowearth/internal/relation"
	"biowearth/internal/repository"
)

// ProductRow is a product with its SKUs, suppliers and sales reach.
type ProductRow struct {
	model.Product
	SKUs              []model.SKU    `json:"skus"`
	Suppliers         []model.Vendor `json:"suppliers"`
	ClientIDs         []string       `json:"clientIds"`
	ActiveQuotesCount int            `json:"activeQuotesCount"`
}

// ProductFilter selects products by format ("All" or empty = any) and name.
type ProductFilter struct {
	Format string `form:"format"`
	Search string `form:"search"`
}

// Products enriches, filters and sorts the product list. Sort keys are name
// (default) and format.
func Products(s *repository.Snapshot, f ProductFilter, srt Sort) []ProductRow {
	rows := []ProductRow{}
	for _, p := range s.Products {
		if f.Format != "" && f.Format != "All" && p.Format != f.Format {
			continue
		}
		if !Contains(p.Name, f.Search) {
			continue
		}
		rows = append(rows, ProductRow{
			Product:           p,
			SKUs:              nonNil(relation.SKUsForProduct(s, p.ID)),
			Suppliers:         nonNil(relation.VendorsSupplyingProduct(s, p.ID)),
			ClientIDs:         nonNil(relation.ClientsQuotedForProduct(s, p.ID)),
			ActiveQuotesCount: len(relation.ActiveSalesQuotesForProduct(s, p.ID)),
		})
	}
	srt = srt.Or("name", Asc)
	SortByKey(rows, srt.Dir, func(r ProductRow) string {
		if srt.Key == "format" {
			return r.Format
		}
		return r.Name
	})
	return rows
}

// ActiveQuoteRow is one Active sales quote of a product with its client and margin.
type ActiveQuoteRow struct {
	model.QuoteSent
	ClientName string            `json:"clientName"`
	SKULabel   string            `json:"skuLabel"`
	Margin     calc.MarginResult `json:"margin"`
}

// ActiveQuotes lists the Active sales quotes of a product.
func ActiveQuotes(s *repository.Snapshot, productID string) []ActiveQuoteRow {
	rows := []ActiveQuoteRow{}
	for _, q := range relation.ActiveSalesQuotesForProduct(s, productID) {
		rows = append(rows, ActiveQuoteRow{
			QuoteSent:  q,
			ClientName: relation.ClientName(s, q.ClientID),
			SKULabel:   relation.SKULabel(s, q.SKUID),
			Margin:     relation.MarginForSalesQuote(q),
		})
	}
	return rows
}

// FormulationRow is a formulation with its SKU label and column totals.
type FormulationRow struct {
	model.Formulation
	SKULabel string              `json:"skuLabel"`
	Totals   calc.IngredientSums `json:"totals"`
}

// Formulations lists every formulation, searchable by SKU label.
func Formulations(s *repository.Snapshot, search string) []FormulationRow {
	rows := []FormulationRow{}
	for _, f := range s.Formulations {
		label := relation.SKULabel(s, f.SKUID)
		if !Contains(label, search) {
			continue
		}
		rows = append(rows, FormulationRow{
			Formulation: f,
			SKULabel:    label,
			Totals:      calc.IngredientTotals(f.Ingredients),
		})
	}
	return rows
}
