package models

import "fmt"

// ErrorResponse описывает ошибку с кодом и сообщением.
type ErrorResponse struct {
	StatusCode int    `json:"-"`
	Message    string `json:"reason"`
}

// NewErrorResponse создает новую ошибку с кодом и сообщением.
func NewErrorResponse(statusCode int, message string) *ErrorResponse {
	return &ErrorResponse{
		StatusCode: statusCode,
		Message:    message}
}

// NewErrorResponsef создает новую ошибку с кодом и форматированным сообщением.
func NewErrorResponsef(statusCode int, format string, args ...interface{}) *ErrorResponse {
	return &ErrorResponse{
		StatusCode: statusCode,
		Message:    fmt.Sprintf(format, args...)}
}

// Реализация метода Error() для удовлетворения интерфейса error.
func (e *ErrorResponse) Error() string {
	return e.Message
}
