// Package errors provides the error taxonomy shared by the calculators.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	// ErrInvalidInput marks a precondition violation on calculator inputs.
	// It is always detected before any numerical work begins.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotConverged marks an iterative solver that exhausted its
	// iteration budget without reaching tolerance.
	ErrNotConverged = errors.New("solver did not converge")

	// ErrUnreachable marks a breakeven equation with no valid solution
	// for the supplied greeks and costs.
	ErrUnreachable = errors.New("breakeven unreachable")

	// ErrGoalNotReached marks a savings goal that cannot be reached
	// within the scanned horizon.
	ErrGoalNotReached = errors.New("goal not reached")
)

// ValidationError reports which input field failed validation.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s (%v): %s", e.Field, e.Value, e.Message)
}

// Unwrap makes every ValidationError match ErrInvalidInput under errors.Is.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
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
