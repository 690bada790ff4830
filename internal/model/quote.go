package model

// Sales quote statuses. Purchase quotes carry no status of their own; see
// relation.EffectiveQuoteStatus.
const (
	QuoteDraft  = "Draft"
	QuoteActive = "Active"
	QuoteClosed = "Closed"
)

const DefaultCurrency = "INR"

// QuoteReceived is one vendor's offer for one SKU at one MOQ / price point.
type QuoteReceived struct {
	Meta
	QuoteID   string `json:"quoteId"`
	VendorID  string `json:"vendorId"`
	SKUID     string `json:"skuId"`
	MOQ       Scalar `json:"moq"`
	Price     Scalar `json:"price"`
	Currency  string `json:"currency,omitempty"`
	DriveLink string `json:"driveLink,omitempty"`
}

func (q QuoteReceived) QuoteSKU() string { return q.SKUID }

// QuoteSent is a sales quote to a client. BaseCostPrice is a copy of the linked
// purchase quote's price taken when the link was made; it does not follow later edits.
type QuoteSent struct {
	Meta
	QuoteID       string `json:"quoteId"`
	ClientID      string `json:"clientId"`
	SKUID         string `json:"skuId"`
	MOQ           Scalar `json:"moq"`
	SellingPrice  Scalar `json:"sellingPrice"`
	BaseCostID    string `json:"baseCostId,omitempty"`
	BaseCostPrice Scalar `json:"baseCostPrice"`
	Status        string `json:"status,omitempty"`
	Currency      string `json:"currency,omitempty"`
	DriveLink     string `json:"driveLink,omitempty"`
}

func (q QuoteSent) QuoteSKU() string { return q.SKUID }
