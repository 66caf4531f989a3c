// Package apperror defines the recoverable error kinds surfaced by the
// document and taxonomy services.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrValidation  = errors.New("validation failed")
	ErrNotFound    = errors.New("not found")
	ErrLoadFailure = errors.New("load failure")
	ErrSaveFailure = errors.New("save failure")
)

type DomainError struct {
	Kind    error
	Status  int
	Code    string
	Message string
	Field   string
	cause   error
}

func (e *DomainError) Error() string {
	if e == nil {
		return ""
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes both the kind and the underlying cause to errors.Is/As.
func (e *DomainError) Unwrap() []error {
	out := []error{e.Kind}
	if e.cause != nil {
		out = append(out, e.cause)
	}
	return out
}

// Retryable reports whether repeating the same operation may succeed.
func (e *DomainError) Retryable() bool {
	return e.Kind == ErrLoadFailure || e.Kind == ErrSaveFailure
}

func domainError(kind error, status int, code, message string) *DomainError {
	return &DomainError{
		Kind:    kind,
		Status:  status,
		Code:    code,
		Message: message,
	}
}

func Validation(field, message string) *DomainError {
	e := domainError(ErrValidation, http.StatusBadRequest, "VALIDATION_ERROR", message)
	e.Field = field
	return e
}

func NotFound(message string) *DomainError {
	return domainError(ErrNotFound, http.StatusNotFound, "NOT_FOUND", message)
}

func LoadFailure(err error) *DomainError {
	e := domainError(ErrLoadFailure, http.StatusServiceUnavailable, "LOAD_FAILURE", "failed to load data, please retry")
	e.cause = err
	return e
}

func SaveFailure(err error) *DomainError {
	e := domainError(ErrSaveFailure, http.StatusServiceUnavailable, "SAVE_FAILURE", "failed to save changes, please retry")
	e.cause = err
	return e
}

// As extracts the DomainError from err, if there is one.
func As(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
