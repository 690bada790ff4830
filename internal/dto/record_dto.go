package dto

import "biowearth/internal/store"

// RecordResponse wraps a single stored record.
type RecordResponse struct {
	Kind   string         `json:"kind"`
	Record store.Document `json:"record"`
}

// CreatedResponse is returned by a successful create.
type CreatedResponse struct {
	ID string `json:"id"`
}

// PreviewResponse carries a draft after derived fields were recomputed.
type PreviewResponse struct {
	Kind  string       `json:"kind"`
	Draft store.Fields `json:"draft"`
}
