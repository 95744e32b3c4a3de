package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationErrorUnwrapsToInvalidInput(t *testing.T) {
	err := NewValidationError("spot", -5.0, "must be positive")

	if !errors.Is(err, ErrInvalidInput) {
		t.Error("validation error should match ErrInvalidInput")
	}

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatal("errors.As failed to extract *ValidationError")
	}
	if ve.Field != "spot" {
		t.Errorf("field = %s, want spot", ve.Field)
	}
}

func TestWrapPreservesSentinel(t *testing.T) {
	err := Wrap(ErrNotConverged, "bisection exhausted")
	if !errors.Is(err, ErrNotConverged) {
		t.Error("wrapped error should match ErrNotConverged")
	}

	err = Wrapf(ErrGoalNotReached, "goal %.2f not reached", 100.0)
	if !errors.Is(err, ErrGoalNotReached) {
		t.Error("wrapped error should match ErrGoalNotReached")
	}
}

func TestSentinelsAreDistinct(t *testing.T) {
	sentinels := []error{ErrInvalidInput, ErrNotConverged, ErrUnreachable, ErrGoalNotReached}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("sentinel %v should not match %v", a, b)
			}
		}
	}
}

func TestWrappedSurvivesFurtherWrapping(t *testing.T) {
	err := fmt.Errorf("outer context: %w", Wrap(ErrUnreachable, "negative discriminant"))
	if !errors.Is(err, ErrUnreachable) {
		t.Error("double-wrapped error should still match ErrUnreachable")
	}
}
