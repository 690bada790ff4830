package relation

import (
	"sort"

	"biowearth/internal/calc"
	"biowearth/internal/model"
	"biowearth/internal/repository"
)

func skuSet(skus []model.SKU) map[string]bool {
	set := make(map[string]bool, len(skus))
	for _, s := range skus {
		set[s.ID] = true
	}
	return set
}

// VendorsSupplyingProduct returns, in vendor order, the existing vendors with a
// purchase quote on any SKU of the product.
func VendorsSupplyingProduct(s *repository.Snapshot, productID string) []model.Vendor {
	skus := skuSet(SKUsForProduct(s, productID))
	quoted := make(map[string]bool)
	for _, q := range s.QuotesReceived {
		if skus[q.SKUID] {
			quoted[q.VendorID] = true
		}
	}
	var out []model.Vendor
	for _, v := range s.Vendors {
		if quoted[v.ID] {
			out = append(out, v)
		}
	}
	return out
}

// ClientsQuotedForProduct returns the distinct client ids of sales quotes on
// the product's SKUs, in quote order. Ids of deleted clients are kept.
func ClientsQuotedForProduct(s *repository.Snapshot, productID string) []string {
	skus := skuSet(SKUsForProduct(s, productID))
	seen := make(map[string]bool)
	var out []string
	for _, q := range s.QuotesSent {
		if skus[q.SKUID] && !seen[q.ClientID] {
			seen[q.ClientID] = true
			out = append(out, q.ClientID)
		}
	}
	return out
}

// ActiveSalesQuotesForProduct returns the Active sales quotes on the product's SKUs.
func ActiveSalesQuotesForProduct(s *repository.Snapshot, productID string) []model.QuoteSent {
	skus := skuSet(SKUsForProduct(s, productID))
	var out []model.QuoteSent
	for _, q := range s.QuotesSent {
		if skus[q.SKUID] && q.Status == model.QuoteActive {
			out = append(out, q)
		}
	}
	return out
}

// LatestPurchaseQuote returns the most recently created purchase quote for a SKU.
func LatestPurchaseQuote(s *repository.Snapshot, skuID string) (model.QuoteReceived, bool) {
	var (
		best  model.QuoteReceived
		found bool
	)
	for _, q := range s.QuotesReceived {
		if q.SKUID != skuID {
			continue
		}
		if !found || q.CreatedAt.Epoch() > best.CreatedAt.Epoch() {
			best, found = q, true
		}
	}
	return best, found
}

// LinkedSalesQuote returns the first sales quote priced off the purchase quote.
func LinkedSalesQuote(s *repository.Snapshot, purchaseQuoteID string) (model.QuoteSent, bool) {
	if purchaseQuoteID == "" {
		return model.QuoteSent{}, false
	}
	for _, q := range s.QuotesSent {
		if q.BaseCostID == purchaseQuoteID {
			return q, true
		}
	}
	return model.QuoteSent{}, false
}

// EffectiveQuoteStatus is the status shown for a purchase quote: Active when an
// Active sales quote is priced off it, Draft otherwise.
func EffectiveQuoteStatus(s *repository.Snapshot, q model.QuoteReceived) string {
	for _, sq := range s.QuotesSent {
		if sq.BaseCostID == q.ID && q.ID != "" && sq.Status == model.QuoteActive {
			return model.QuoteActive
		}
	}
	return model.QuoteDraft
}

// MarginForSalesQuote applies calc.Margin to the quote's copied base cost.
func MarginForSalesQuote(q model.QuoteSent) calc.MarginResult {
	return calc.Margin(q.SellingPrice, q.BaseCostPrice, q.MOQ)
}

// PurchaseQuotesForVendor returns the vendor's purchase quotes in store order.
func PurchaseQuotesForVendor(s *repository.Snapshot, vendorID string) []model.QuoteReceived {
	var out []model.QuoteReceived
	for _, q := range s.QuotesReceived {
		if q.VendorID == vendorID {
			out = append(out, q)
		}
	}
	return out
}

// SalesQuotesForClient returns the client's sales quotes in store order.
func SalesQuotesForClient(s *repository.Snapshot, clientID string) []model.QuoteSent {
	var out []model.QuoteSent
	for _, q := range s.QuotesSent {
		if q.ClientID == clientID {
			out = append(out, q)
		}
	}
	return out
}

// ── Grouping ─────────────────────────────────────────────────────────────────

// QuoteGroup is every quote of one SKU, newest first.
type QuoteGroup[T model.SKUQuote] struct {
	SKUID  string `json:"skuId"`
	Quotes []T    `json:"quotes"`
}

// QuoteGroupsBySKU groups quotes by SKU. Groups keep the order in which their SKU
// first appears; inside a group quotes are sorted by creation time, newest first.
func QuoteGroupsBySKU[T model.SKUQuote](quotes []T) []QuoteGroup[T] {
	index := make(map[string]int)
	var groups []QuoteGroup[T]
	for _, q := range quotes {
		i, ok := index[q.QuoteSKU()]
		if !ok {
			i = len(groups)
			index[q.QuoteSKU()] = i
			groups = append(groups, QuoteGroup[T]{SKUID: q.QuoteSKU()})
		}
		groups[i].Quotes = append(groups[i].Quotes, q)
	}
	for i := range groups {
		qs := groups[i].Quotes
		sort.SliceStable(qs, func(a, b int) bool {
			return qs[a].Created().Epoch() > qs[b].Created().Epoch()
		})
	}
	return groups
}
