// Package apierror holds the JSON error envelopes of the API. Handlers answer
// every 4xx/5xx through it so store and driver errors never reach clients.
package apierror

import "fmt"

// APIError is the body of every error response.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

func Newf(format string, args ...interface{}) *APIError {
	return &APIError{Detail: fmt.Sprintf(format, args...)}
}

func (e *APIError) Error() string { return e.Detail }

// ValidationError reports which request fields failed which validator tag.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Validation error", Fields: fields}
}
