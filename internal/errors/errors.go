// Package errors provides error handling utilities.
package errors

import (
	"fmt"
)

// Type identifies the category of error
type Type string

const (
	// TypeMalformedPriceBook indicates an unusable price book document
	TypeMalformedPriceBook Type = "MALFORMED_PRICE_BOOK"

	// TypeInvalidConfiguration indicates a building configuration that cannot be priced
	TypeInvalidConfiguration Type = "INVALID_CONFIGURATION"

	// TypeInvalidPlacement indicates an opening placed outside its wall
	TypeInvalidPlacement Type = "INVALID_PLACEMENT"

	// TypeDimensionOutOfDomain indicates dimensions no matrix entry can cover
	TypeDimensionOutOfDomain Type = "DIMENSION_OUT_OF_DOMAIN"

	// TypeInput indicates an input validation error
	TypeInput Type = "INPUT_ERROR"

	// TypeConfig indicates a configuration error
	TypeConfig Type = "CONFIG_ERROR"

	// TypeInternal indicates an internal error
	TypeInternal Type = "INTERNAL_ERROR"

	// TypeNotFound indicates a resource not found error
	TypeNotFound Type = "NOT_FOUND"
)

// Error represents a domain error with context
type Error struct {
	Type    Type                   `json:"type"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is checks if the error is of a specific type
func (e *Error) Is(t Type) bool {
	return e.Type == t
}

// WithContext adds context to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// New creates a new error
func New(errType Type, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
	}
}

// Newf creates a new formatted error
func Newf(errType Type, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with context
func Wrap(errType Type, message string, cause error) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// Wrapf wraps an error with formatted context
func Wrapf(errType Type, cause error, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// IsType checks if an error is of a specific type
func IsType(err error, t Type) bool {
	if e, ok := err.(*Error); ok {
		return e.Type == t
	}
	return false
}

// MalformedPriceBook creates a price book load error
func MalformedPriceBook(message string) *Error {
	return New(TypeMalformedPriceBook, message)
}

// MalformedPriceBookf creates a formatted price book load error
func MalformedPriceBookf(format string, args ...interface{}) *Error {
	return Newf(TypeMalformedPriceBook, format, args...)
}

// InvalidConfiguration creates a per-quote configuration error
func InvalidConfiguration(message string) *Error {
	return New(TypeInvalidConfiguration, message)
}

// InvalidPlacement creates a per-quote placement error
func InvalidPlacement(message string) *Error {
	return New(TypeInvalidPlacement, message)
}

// DimensionOutOfDomain creates a dimension domain error
func DimensionOutOfDomain(message string) *Error {
	return New(TypeDimensionOutOfDomain, message)
}

// Input creates an input error
func Input(message string) *Error {
	return New(TypeInput, message)
}

// NotFound creates a not found error
func NotFound(resourceType, identifier string) *Error {
	return Newf(TypeNotFound, "%s not found: %s", resourceType, identifier)
}

// Internal creates an internal error
func Internal(message string, cause error) *Error {
	return Wrap(TypeInternal, message, cause)
}
