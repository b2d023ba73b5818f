package transport

// ErrorResponse is the uniform error body: a JSON object with a single
// "error" string. No stack traces or backend detail leak through it.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewError returns an error body with the given message.
func NewError(message string) ErrorResponse {
	return ErrorResponse{Error: message}
}
