package model

const (
	RFQTypeSKU   = "SKU"
	RFQTypeOther = "Other"

	RFQOpen   = "Open"
	RFQSent   = "Sent"
	RFQClosed = "Closed"
)

// RFQ is a request for quotation for a catalogue SKU or a custom item.
// Its email subject and body are derived on demand and never stored.
type RFQ struct {
	Meta
	RFQType       string `json:"rfqType,omitempty"`
	LinkedID      string `json:"linkedId,omitempty"`
	CustomName    string `json:"customName,omitempty"`
	CustomDetails string `json:"customDetails,omitempty"`
	CompanyID     string `json:"companyId,omitempty"`
	OrderID       string `json:"orderId,omitempty"`
	Qty           Scalar `json:"qty"`
	TargetPrice   Scalar `json:"targetPrice"`
	Currency      string `json:"currency,omitempty"`
	CountryOfSale string `json:"countryOfSale,omitempty"`
	EmailTo       string `json:"emailTo,omitempty"`
	EmailCc       string `json:"emailCc,omitempty"`
	EmailToName   string `json:"emailToName,omitempty"`
	Status        string `json:"status,omitempty"`
}

// EffectiveType treats anything but "Other" as a SKU request.
func (r RFQ) EffectiveType() string {
	if r.RFQType == RFQTypeOther {
		return RFQTypeOther
	}
	return RFQTypeSKU
}
