package dto

// ExportRequest queues a PDF export of one RFQ or ORS sheet.
type ExportRequest struct {
	Type string `json:"type" validate:"required,oneof=rfq ors"`
	ID   string `json:"id"   validate:"required"`
}

type ExportResponse struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"`
}
