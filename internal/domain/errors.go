package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure cases callers branch on.
var (
	// ErrSourceNotFound reports a missing input PDF, before any work runs.
	ErrSourceNotFound = errors.New("source PDF not found")
	// ErrEmptySource reports a source that yielded zero pages.
	ErrEmptySource = errors.New("source PDF has no pages")
	// ErrEngineUnavailable reports a selected engine whose required
	// dependency is absent. Raised at first use, not at startup.
	ErrEngineUnavailable = errors.New("recognition engine unavailable")
)

// ErrorType classifies domain-specific errors
type ErrorType string

const (
	ErrorTypeValidation  ErrorType = "validation"
	ErrorTypeConversion  ErrorType = "conversion"
	ErrorTypeRecognition ErrorType = "recognition"
	ErrorTypeEngine      ErrorType = "engine"
	ErrorTypeConfig      ErrorType = "config"
	ErrorTypeIO          ErrorType = "io"
)

// DomainError represents a domain-specific error with context
type DomainError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewError creates a new domain error
func NewError(errType ErrorType, message string, err error) *DomainError {
	return &DomainError{
		Type:    errType,
		Message: message,
		Err:     err,
	}
}

// Common error constructors
func ValidationError(message string, err error) *DomainError {
	return NewError(ErrorTypeValidation, message, err)
}

func ConversionError(message string, err error) *DomainError {
	return NewError(ErrorTypeConversion, message, err)
}

func RecognitionError(message string, err error) *DomainError {
	return NewError(ErrorTypeRecognition, message, err)
}

func EngineError(message string, err error) *DomainError {
	return NewError(ErrorTypeEngine, message, err)
}

func ConfigError(message string, err error) *DomainError {
	return NewError(ErrorTypeConfig, message, err)
}

func IOError(message string, err error) *DomainError {
	return NewError(ErrorTypeIO, message, err)
}
