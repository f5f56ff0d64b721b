package dto

// ErrorBody is the payload of every failed response.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the single envelope used for all API errors.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// NewErrorResponse builds an ErrorResponse.
func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{Error: ErrorBody{Code: code, Message: message}}
}
