package model

// Payment milestone statuses.
const (
	PaymentPending = "Pending"
	PaymentPaid    = "Paid"
)

// RequiredDocs is the checklist offered on orders and ORS sheets.
var RequiredDocs = []string{
	"COA",
	"MSDS",
	"Nutritional Info",
	"FSSAI License",
	"Label Artwork",
	"Commercial Invoice",
	"Packing List",
	"Certificate of Origin",
}

// PaymentTerm is one milestone of an order's payment schedule.
type PaymentTerm struct {
	Label   string `json:"label"`
	Percent Scalar `json:"percent"`
	Status  string `json:"status"`
}

// DocRequirement tracks one document type an order needs.
type DocRequirement struct {
	Required bool   `json:"required"`
	Received bool   `json:"received"`
	Link     string `json:"link"`
}

// Order is a purchase (vendor) or sales (client) order for one SKU.
// Amount and TaxAmount are derived from Qty, Rate and TaxRate.
type Order struct {
	Meta
	OrderID         string                    `json:"orderId"`
	Date            string                    `json:"date"`
	SKUID           string                    `json:"skuId"`
	CompanyID       string                    `json:"companyId"`
	Qty             Scalar                    `json:"qty"`
	Rate            Scalar                    `json:"rate"`
	TaxRate         Scalar                    `json:"taxRate"`
	Amount          Scalar                    `json:"amount"`
	TaxAmount       Scalar                    `json:"taxAmount"`
	PaymentTerms    []PaymentTerm             `json:"paymentTerms"`
	DocRequirements map[string]DocRequirement `json:"docRequirements"`
}
