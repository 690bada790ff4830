package dto

// TaskPatchRequest updates the inline-editable task fields. Nil fields are left alone.
type TaskPatchRequest struct {
	Title    *string `json:"title"    validate:"omitempty,min=1"`
	Assignee *string `json:"assignee"`
	DueDate  *string `json:"dueDate"  validate:"omitempty,datetime=2006-01-02"`
}

type CompanyStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// DocPatchRequest sets the received flag and/or link of an order's document requirement.
type DocPatchRequest struct {
	Received *bool   `json:"received"`
	Link     *string `json:"link"`
}
