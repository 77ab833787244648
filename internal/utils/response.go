package utils

import "net/http"

// Response is the envelope every endpoint answers with.
type Response struct {
	Success bool        `json:"success"`
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"` // null when there is no payload
}

func NewResponse(status int, message string, data interface{}) Response {
	return Response{
		Success: status < http.StatusBadRequest,
		Status:  status,
		Message: message,
		Data:    data,
	}
}

// NewSuccessResponse defaults status to 200 (OK).
func NewSuccessResponse(message string, data interface{}) Response {
	return NewResponse(http.StatusOK, message, data)
}

func NewErrorResponse(status int, message string) Response {
	return Response{
		Success: false,
		Status:  status,
		Message: message,
		Data:    nil,
	}
}
