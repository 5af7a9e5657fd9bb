package model

// APIResponse is the common response envelope.
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
}

// NewSuccessResponse builds a success envelope.
func NewSuccessResponse(message string, data any) APIResponse {
	return APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	}
}

// NewErrorResponse builds an error envelope.
func NewErrorResponse(message, code string) APIResponse {
	return APIResponse{
		Success: false,
		Error:   message,
		Code:    code,
	}
}
