package model

const (
	RecipientVendor = "Vendor"
	RecipientClient = "Client"
	RecipientBoth   = "Both"
)

// ORS is an OEM request sheet addressed to a vendor, a client, or both.
type ORS struct {
	Meta
	Date          string          `json:"date"`
	VendorID      string          `json:"vendorId,omitempty"`
	ClientID      string          `json:"clientId,omitempty"`
	RecipientType string          `json:"recipientType,omitempty"`
	SKUID         string          `json:"skuId"`
	Qty           Scalar          `json:"qty"`
	CostPerUnit   Scalar          `json:"costPerUnit"`
	Currency      string          `json:"currency,omitempty"`
	PriceTerms    string          `json:"priceTerms,omitempty"`
	CountryOfSale string          `json:"countryOfSale,omitempty"`
	LeadTime      Scalar          `json:"leadTime"`
	ShelfLife     Scalar          `json:"shelfLife"`
	RequiredDocs  map[string]bool `json:"requiredDocs"`
}

// Recipients returns the recipient roles a sheet is generated for, Vendor when
// unset. An unrecognised recipient type yields none.
func (o ORS) Recipients() []string {
	switch o.RecipientType {
	case "", RecipientVendor:
		return []string{RecipientVendor}
	case RecipientClient:
		return []string{RecipientClient}
	case RecipientBoth:
		return []string{RecipientVendor, RecipientClient}
	default:
		return nil
	}
}
