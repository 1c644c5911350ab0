// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrConfigInvalid   = errors.New("invalid configuration")
	ErrDataNotFound    = errors.New("data not found")
	ErrDatabaseError   = errors.New("database error")
	ErrInputValidation = errors.New("input validation failed")
	ErrNoLegs          = errors.New("strategy has no legs")
)

// ValidationError represents a validation error.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s (%v): %s", e.Field, e.Value, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrInputValidation
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// PricingError represents an error from the pricing engine.
type PricingError struct {
	Operation string
	Message   string
	Err       error
}

func (e *PricingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("pricing error [%s]: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("pricing error [%s]: %s", e.Operation, e.Message)
}

func (e *PricingError) Unwrap() error {
	return e.Err
}

// NewPricingError creates a new PricingError.
func NewPricingError(operation, message string, err error) *PricingError {
	return &PricingError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// DataError represents a data-related error.
type DataError struct {
	DataType string
	Key      string
	Message  string
	Err      error
}

func (e *DataError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("data error [%s] %s: %s: %v", e.DataType, e.Key, e.Message, e.Err)
	}
	return fmt.Sprintf("data error [%s] %s: %s", e.DataType, e.Key, e.Message)
}

func (e *DataError) Unwrap() error {
	return e.Err
}

// NewDataError creates a new DataError.
func NewDataError(dataType, key, message string, err error) *DataError {
	return &DataError{
		DataType: dataType,
		Key:      key,
		Message:  message,
		Err:      err,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
