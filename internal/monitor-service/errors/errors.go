package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrServerNotFound          = errors.New("server not found")
	ErrServerCodeAlreadyExists = errors.New("server code already exists")
	ErrUnauthorized            = errors.New("unauthorized")
	ErrValidation              = errors.New("validation error")
	ErrSyncInProgress          = errors.New("registry sync already in progress")
	ErrRegistryNotFound        = errors.New("no registry entries for game")
	ErrFleetSummaryUnavailable = errors.New("fleet summary requires the event index")
)

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func NewValidationError(field string, reason string) error {
	return &ValidationError{
		Field:  field,
		Reason: reason,
	}
}

type ElasticSearchError struct {
	StatusCode int
	Type       string
	Reason     string
}

func (e *ElasticSearchError) Error() string {
	return fmt.Sprintf("[%d] %s: %s", e.StatusCode, e.Type, e.Reason)
}

func NewElasticSearchError(statusCode int, typeReason string, reason string) error {
	return &ElasticSearchError{
		StatusCode: statusCode,
		Type:       typeReason,
		Reason:     reason,
	}
}
