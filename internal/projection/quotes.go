package projection

import (
	"biowearth/internal/calc"
	"biowearth/internal/model"
	"biowearth/internal/relation"
	"biowearth/internal/repository"
)

// PurchaseQuoteRow is a vendor quote with the values the purchase table shows.
type PurchaseQuoteRow struct {
	model.QuoteReceived
	VendorName   string `json:"vendorName"`
	SKULabel     string `json:"skuLabel"`
	Status       string `json:"status"`
	LinkedSaleID string `json:"linkedSaleId,omitempty"`
}

// SalesQuoteRow is a client quote with client, base vendor and margin.
type SalesQuoteRow struct {
	model.QuoteSent
	ClientName     string            `json:"clientName"`
	SKULabel       string            `json:"skuLabel"`
	BaseVendorName string            `json:"baseVendorName,omitempty"`
	Margin         calc.MarginResult `json:"margin"`
}

// PurchaseQuotes enriches every vendor quote and groups them by SKU.
func PurchaseQuotes(s *repository.Snapshot) []relation.QuoteGroup[PurchaseQuoteRow] {
	rows := make([]PurchaseQuoteRow, 0, len(s.QuotesReceived))
	for _, q := range s.QuotesReceived {
		r := PurchaseQuoteRow{
			QuoteReceived: q,
			VendorName:    relation.VendorName(s, q.VendorID),
			SKULabel:      relation.SKULabel(s, q.SKUID),
			Status:        relation.EffectiveQuoteStatus(s, q),
		}
		if sq, ok := relation.LinkedSalesQuote(s, q.ID); ok {
			r.LinkedSaleID = sq.ID
		}
		rows = append(rows, r)
	}
	return nonNil(relation.QuoteGroupsBySKU(rows))
}

// SalesQuotes enriches every client quote and groups them by SKU.
func SalesQuotes(s *repository.Snapshot) []relation.QuoteGroup[SalesQuoteRow] {
	rows := make([]SalesQuoteRow, 0, len(s.QuotesSent))
	for _, q := range s.QuotesSent {
		r := SalesQuoteRow{
			QuoteSent:  q,
			ClientName: relation.ClientName(s, q.ClientID),
			SKULabel:   relation.SKULabel(s, q.SKUID),
			Margin:     relation.MarginForSalesQuote(q),
		}
		if base, ok := s.QuoteReceived(q.BaseCostID); ok {
			r.BaseVendorName = relation.VendorName(s, base.VendorID)
		}
		rows = append(rows, r)
	}
	return nonNil(relation.QuoteGroupsBySKU(rows))
}
