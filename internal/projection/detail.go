package projection

import (
	"biowearth/internal/model"
	"biowearth/internal/relation"
	"biowearth/internal/repository"
)

// CompanyDetail is everything the company detail screen shows.
type CompanyDetail struct {
	Company        model.Company                              `json:"company"`
	LeadSource     string                                     `json:"leadSource,omitempty"`
	LeadDate       string                                     `json:"leadDate,omitempty"`
	Contacts       []model.Contact                            `json:"contacts"`
	Tasks          []model.Task                               `json:"tasks"`
	PurchaseQuotes []relation.QuoteGroup[model.QuoteReceived] `json:"purchaseQuotes,omitempty"`
	SalesQuotes    []relation.QuoteGroup[model.QuoteSent]     `json:"salesQuotes,omitempty"`
	Orders         []model.Order                              `json:"orders"`
	Value          relation.Value                             `json:"value"`
}

// Detail assembles the detail screen of a vendor or client.
func Detail(s *repository.Snapshot, kind model.Kind, id string) (CompanyDetail, bool) {
	company, ok := relation.Company(s, kind, id)
	if !ok {
		return CompanyDetail{}, false
	}
	d := CompanyDetail{
		Company:  company,
		Contacts: nonNil(relation.ContactsForCompany(s, id)),
		Tasks:    nonNil(relation.TasksForCompany(s, id)),
		Orders:   nonNil(relation.OrdersForCompany(s, id)),
		Value:    relation.CompanyValue(s, kind, id),
	}
	switch kind {
	case model.KindVendor:
		d.PurchaseQuotes = nonNil(relation.QuoteGroupsBySKU(relation.PurchaseQuotesForVendor(s, id)))
	case model.KindClient:
		if c, ok := s.Client(id); ok {
			d.LeadSource, d.LeadDate = c.LeadSource, c.LeadDate
		}
		d.SalesQuotes = nonNil(relation.QuoteGroupsBySKU(relation.SalesQuotesForClient(s, id)))
	}
	return d, true
}
