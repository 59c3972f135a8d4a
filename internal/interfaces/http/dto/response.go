package dto

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Success bool       `json:"success" example:"false"`
	Error   *ErrorInfo `json:"error"`
}

// ErrorInfo represents error details
type ErrorInfo struct {
	Code      string             `json:"code" example:"ERR_VALIDATION"`
	Message   string             `json:"message" example:"Request validation failed"`
	RequestID string             `json:"request_id,omitempty"`
	Details   []ValidationDetail `json:"details,omitempty"`
}

// ValidationDetail names one rejected field
type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// NewErrorResponse creates an error response
func NewErrorResponse(code, message, requestID string) ErrorResponse {
	return ErrorResponse{
		Success: false,
		Error: &ErrorInfo{
			Code:      code,
			Message:   message,
			RequestID: requestID,
		},
	}
}

// NewValidationErrorResponse creates a 400 response body listing the rejected fields
func NewValidationErrorResponse(message, requestID string, details []ValidationDetail) ErrorResponse {
	resp := NewErrorResponse(ErrCodeValidation, message, requestID)
	resp.Error.Details = details
	return resp
}

// SuccessResponse is returned by endpoints that have nothing else to say
type SuccessResponse struct {
	Success bool `json:"success" example:"true"`
}

// HealthResponse reports liveness and dependency status
type HealthResponse struct {
	Status   string            `json:"status" example:"healthy"`
	Version  string            `json:"version,omitempty"`
	Services map[string]string `json:"services,omitempty"`
}
