package dto

// ErrorResponse represents a standardized error response for the API
type ErrorResponse struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
	Details map[string]any    `json:"details,omitempty"`
}
