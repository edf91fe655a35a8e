package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error — типизированная ошибка с машинным кодом и HTTP-статусом.
// Текст исходной ошибки бэкенда наружу не отдается, только логируется.
type Error struct {
	Status  int    `json:"status"`
	Code    string `json:"errorCode"`
	Message string `json:"message"`

	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// Is сравнивает ошибки по коду, чтобы работал errors.Is с сентинелами ниже.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// Сентинелы для errors.Is.
var (
	ErrValidation = &Error{Status: http.StatusBadRequest, Code: "VALIDATION_ERROR"}
	ErrNotFound   = &Error{Status: http.StatusNotFound, Code: "NOT_FOUND"}
	ErrStore      = &Error{Status: http.StatusInternalServerError, Code: "STORE_ERROR"}
	ErrServer     = &Error{Status: http.StatusInternalServerError, Code: "SERVER_ERROR"}
)

// Validation создает ошибку валидации входных данных.
func Validation(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Code: "VALIDATION_ERROR", Message: message}
}

// NotFound создает ошибку отсутствия ресурса.
func NotFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Code: "NOT_FOUND", Message: message}
}

// Store создает ошибку хранилища; cause остается только для логов.
func Store(message string, cause error) *Error {
	return &Error{Status: http.StatusInternalServerError, Code: "STORE_ERROR", Message: message, cause: cause}
}

// Server создает неожиданную внутреннюю ошибку.
func Server(message string, cause error) *Error {
	return &Error{Status: http.StatusInternalServerError, Code: "SERVER_ERROR", Message: message, cause: cause}
}

// From приводит произвольную ошибку к *Error, заворачивая неизвестные в SERVER_ERROR.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Server("An internal server error occurred.", err)
}
