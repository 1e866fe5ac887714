package models

// APIError is the uniform error body: a machine code plus a
// human-readable message, with optional extras such as eco-data
// suggestions.
type APIError struct {
	Code        string   `json:"code"`
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions,omitempty"`
}

type ErrorResponse struct {
	Error APIError `json:"error"`
}

func NewErrorResponse(code, message string) *ErrorResponse {
	return &ErrorResponse{Error: APIError{Code: code, Message: message}}
}

// MessageResponse is the body of simple success acknowledgements.
type MessageResponse struct {
	Message string `json:"message"`
}
