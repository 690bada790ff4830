package projection

import (
	"fmt"

	"biowearth/internal/model"
	"biowearth/internal/relation"
	"biowearth/internal/repository"
)

// RFQRow is an RFQ as listed: its company and a title/subtitle describing the item.
type RFQRow struct {
	model.RFQ
	CompanyName string `json:"companyName"`
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
}

// RFQs lists RFQs whose company name or item title contains search.
func RFQs(s *repository.Snapshot, search string) []RFQRow {
	rows := []RFQRow{}
	for _, r := range s.RFQs {
		company, ok := relation.CompanyName(s, r.CompanyID)
		if !ok {
			company = model.UnknownVendor
		}
		title, subtitle := rfqDetails(s, r)
		if !Contains(company, search) && !Contains(title, search) {
			continue
		}
		rows = append(rows, RFQRow{RFQ: r, CompanyName: company, Title: title, Subtitle: subtitle})
	}
	return rows
}

func rfqDetails(s *repository.Snapshot, r model.RFQ) (title, subtitle string) {
	if r.EffectiveType() == model.RFQTypeOther {
		title, subtitle = r.CustomName, r.CustomDetails
		if title == "" {
			title = "Custom Item"
		}
		if subtitle == "" {
			subtitle = "-"
		}
		return title, subtitle
	}
	title, subtitle = model.UnknownProduct, "-"
	sku, ok := s.SKU(r.LinkedID)
	if !ok {
		return title, subtitle
	}
	subtitle = fmt.Sprintf("%s %s %s", sku.PackSize, sku.Unit, sku.PackType)
	if p, ok := relation.ProductForSKU(s, sku); ok {
		title = fmt.Sprintf("%s (%s)", p.Name, sku.Variant)
	}
	return title, subtitle
}

// ORSRow is an OEM request sheet as listed.
type ORSRow struct {
	model.ORS
	VendorName string `json:"vendorName"`
	ClientName string `json:"clientName"`
	SKUDetails string `json:"skuDetails"`
}

// ORSList lists sheets whose vendor or client name contains search.
func ORSList(s *repository.Snapshot, search string) []ORSRow {
	rows := []ORSRow{}
	for _, o := range s.ORS {
		v := relation.VendorName(s, o.VendorID)
		c := relation.ClientName(s, o.ClientID)
		if !Contains(v, search) && !Contains(c, search) {
			continue
		}
		rows = append(rows, ORSRow{ORS: o, VendorName: v, ClientName: c, SKUDetails: relation.SKUDetails(s, o.SKUID)})
	}
	return rows
}
