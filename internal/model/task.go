package model

const (
	TaskPending   = "Pending"
	TaskCompleted = "Completed"

	PriorityNormal = "Normal"
	PriorityHigh   = "High"

	ContextInternal = "Internal"
	ContextClient   = "Client"
	ContextVendor   = "Vendor"
)

// NoDueDate sorts tasks without a due date after every real date.
const NoDueDate = "9999-12-31"

// Task is an internal to-do. A Client or Vendor task names its primary company in
// RelatedID and may link one company of the other type as secondary; on submit both
// land in RelatedClientID / RelatedVendorID.
type Task struct {
	Meta
	Title             string `json:"title"`
	Status            string `json:"status,omitempty"`
	Priority          string `json:"priority,omitempty"`
	ContextType       string `json:"contextType,omitempty"`
	RelatedID         string `json:"relatedId,omitempty"`
	RelatedName       string `json:"relatedName,omitempty"`
	RelatedClientID   string `json:"relatedClientId,omitempty"`
	RelatedVendorID   string `json:"relatedVendorId,omitempty"`
	SecondaryVendorID string `json:"secondaryVendorId,omitempty"`
	SecondaryClientID string `json:"secondaryClientId,omitempty"`
	Assignee          string `json:"assignee,omitempty"`
	DueDate           string `json:"dueDate,omitempty"`
	TaskGroup         string `json:"taskGroup,omitempty"`
}

// Completed reports whether the task is done.
func (t Task) Completed() bool { return t.Status == TaskCompleted }

// References reports whether the task points at companyID in any relation field.
func (t Task) References(companyID string) bool {
	if companyID == "" {
		return false
	}
	return t.RelatedID == companyID || t.RelatedClientID == companyID || t.RelatedVendorID == companyID
}

// DueKey is the due date used for ordering.
func (t Task) DueKey() string {
	if t.DueDate == "" {
		return NoDueDate
	}
	return t.DueDate
}
