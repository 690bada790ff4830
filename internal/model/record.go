package model

// Meta is embedded in every record: the store-generated id and the
// server-stamped creation time.
type Meta struct {
	ID        string    `json:"id"`
	CreatedAt Timestamp `json:"createdAt"`
}

// RecordID returns the document id.
func (m Meta) RecordID() string { return m.ID }

// Created returns the creation timestamp.
func (m Meta) Created() Timestamp { return m.CreatedAt }

// Record is satisfied by every typed record.
type Record interface {
	RecordID() string
	Created() Timestamp
}

// SKUQuote is satisfied by both purchase and sales quotes.
type SKUQuote interface {
	Record
	QuoteSKU() string
}

// Placeholder labels rendered in place of dangling references.
const (
	UnknownProduct = "Unknown Product"
	UnknownSKU     = "Unknown SKU"
	UnknownVendor  = "Unknown Vendor"
	UnknownClient  = "Unknown Client"
	UnknownItem    = "Unknown Item"
)

// SetID overwrites the document id.
func (m *Meta) SetID(id string) { m.ID = id }
