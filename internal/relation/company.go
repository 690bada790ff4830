package relation

import (
	"sort"

	"biowearth/internal/model"
	"biowearth/internal/repository"

	"github.com/shopspring/decimal"
)

// TasksForCompany returns every task referencing the company, open tasks first,
// each half ordered by due date (no due date last).
func TasksForCompany(s *repository.Snapshot, companyID string) []model.Task {
	var out []model.Task
	for _, t := range s.Tasks {
		if t.References(companyID) {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Completed() != out[j].Completed() {
			return !out[i].Completed()
		}
		return out[i].DueKey() < out[j].DueKey()
	})
	return out
}

// PendingTasksForCompany returns the company's tasks that are not Completed,
// ascending by due date with undated tasks last.
func PendingTasksForCompany(s *repository.Snapshot, companyID string) []model.Task {
	var out []model.Task
	for _, t := range s.Tasks {
		if t.References(companyID) && !t.Completed() {
			out = append(out, t)
		}
	}
	SortTasksByDue(out)
	return out
}

// SortTasksByDue orders tasks ascending by due date in place, undated last.
func SortTasksByDue(tasks []model.Task) {
	sort.SliceStable(tasks, func(i, j int) bool { return tasks[i].DueKey() < tasks[j].DueKey() })
}

// ProductNamesForCompany returns the distinct product names, in SKU order, of
// the SKUs on the company's quotes: quotes received for a vendor, quotes sent
// for a client. SKUs whose product is gone are skipped.
func ProductNamesForCompany(s *repository.Snapshot, kind model.Kind, companyID string) []string {
	quoted := make(map[string]bool)
	switch kind {
	case model.KindVendor:
		for _, q := range s.QuotesReceived {
			if q.VendorID == companyID {
				quoted[q.SKUID] = true
			}
		}
	case model.KindClient:
		for _, q := range s.QuotesSent {
			if q.ClientID == companyID {
				quoted[q.SKUID] = true
			}
		}
	}

	seen := make(map[string]bool)
	var names []string
	for _, sku := range s.SKUs {
		if !quoted[sku.ID] {
			continue
		}
		p, ok := ProductForSKU(s, sku)
		if !ok || p.Name == "" || seen[p.Name] {
			continue
		}
		seen[p.Name] = true
		names = append(names, p.Name)
	}
	return names
}

// OrdersForCompany returns the company's orders, newest order date first.
func OrdersForCompany(s *repository.Snapshot, companyID string) []model.Order {
	var out []model.Order
	for _, o := range s.Orders {
		if o.CompanyID == companyID {
			out = append(out, o)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return model.ParseTime(out[i].Date).After(model.ParseTime(out[j].Date))
	})
	return out
}

// Value is the money a company represents.
type Value struct {
	// Potential is Σ price·moq of a vendor's purchase quotes, or Σ sellingPrice·moq
	// of a client's Active sales quotes.
	Potential decimal.Decimal `json:"potentialValue"`
	Orders    decimal.Decimal `json:"totalOrderValue"`
}

// CompanyValue computes the potential and ordered value of a vendor or client.
func CompanyValue(s *repository.Snapshot, kind model.Kind, companyID string) Value {
	var v Value
	switch kind {
	case model.KindVendor:
		for _, q := range PurchaseQuotesForVendor(s, companyID) {
			v.Potential = v.Potential.Add(q.Price.Decimal().Mul(q.MOQ.Decimal()))
		}
	case model.KindClient:
		for _, q := range SalesQuotesForClient(s, companyID) {
			if q.Status == model.QuoteActive {
				v.Potential = v.Potential.Add(q.SellingPrice.Decimal().Mul(q.MOQ.Decimal()))
			}
		}
	}
	for _, o := range s.Orders {
		if o.CompanyID == companyID {
			v.Orders = v.Orders.Add(o.Amount.Decimal())
		}
	}
	return v
}

// AvailableSKUsForOrder lists the SKUs an order for the company may pick. A vendor
// order offers only the SKUs that vendor has quoted; anything else offers all.
func AvailableSKUsForOrder(s *repository.Snapshot, kind model.Kind, companyID string) []model.SKU {
	if kind != model.KindVendor || companyID == "" {
		return s.SKUs
	}
	quoted := make(map[string]bool)
	for _, q := range s.QuotesReceived {
		if q.VendorID == companyID {
			quoted[q.SKUID] = true
		}
	}
	var out []model.SKU
	for _, sku := range s.SKUs {
		if quoted[sku.ID] {
			out = append(out, sku)
		}
	}
	return out
}
