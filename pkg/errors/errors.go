package errors

import (
	"fmt"
	"net/http"
)

// ApiError is the error type every workflow operation returns for expected
// failures. Code is the HTTP status the boundary answers with. Operational
// separates expected domain errors from unexpected faults: the HTTP layer
// passes operational errors through untouched and collapses everything else
// into a generic 500 in production.
type ApiError struct {
	Code        int
	Message     string
	Operational bool
	Err         error
}

func (e *ApiError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ApiError) Unwrap() error {
	return e.Err
}

func New(code int, message string) *ApiError {
	return &ApiError{Code: code, Message: message, Operational: true}
}

func NewBadRequest(message string) *ApiError {
	return New(http.StatusBadRequest, message)
}

func NewUnauthorized(message string) *ApiError {
	return New(http.StatusUnauthorized, message)
}

func NewNotAcceptable(message string) *ApiError {
	return New(http.StatusNotAcceptable, message)
}

func NewNotFound(message string) *ApiError {
	return New(http.StatusNotFound, message)
}

func NewConflict(message string) *ApiError {
	return New(http.StatusConflict, message)
}

// NewInternal wraps an unexpected fault. Not operational, so the HTTP layer
// hides the message in production.
func NewInternal(message string, err error) *ApiError {
	return &ApiError{
		Code:        http.StatusInternalServerError,
		Message:     message,
		Operational: false,
		Err:         err,
	}
}
