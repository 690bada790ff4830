package model

// Company holds the fields vendors and clients share.
// Status is free-form; the allowed values come from the settings lists.
type Company struct {
	Meta
	CompanyName string `json:"companyName"`
	Website     string `json:"website,omitempty"`
	Country     string `json:"country,omitempty"`
	DriveLink   string `json:"driveLink,omitempty"`
	Status      string `json:"status,omitempty"`
}

// Vendor supplies SKUs; referenced by purchase quotes, orders, tasks, RFQs and ORS.
type Vendor struct {
	Company
}

// Client buys SKUs; referenced by sales quotes, orders, tasks, RFQs and ORS.
type Client struct {
	Company
	LeadSource string `json:"leadSource,omitempty"`
	LeadDate   string `json:"leadDate,omitempty"`
}

// Company statuses the views treat specially. StatusActive is also assumed for
// companies that carry no status.
const (
	StatusActive  = "Active"
	StatusHotLead = "Hot Lead"
)

// Contact is one person at a vendor or client.
type Contact struct {
	Meta
	Name      string `json:"name"`
	Role      string `json:"role,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	CompanyID string `json:"companyId"`
}
