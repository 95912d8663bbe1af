package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidArgument indicates a programming error by the caller, such as
	// a non-positive time increment or speed factor.
	ErrInvalidArgument = errors.New("dynamo: invalid argument")

	// ErrUnknownMotion indicates a motion type with no dynamics handler.
	ErrUnknownMotion = errors.New("dynamo: unknown motion type")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrInvalidState indicates a step produced NaN or Inf.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")
)

// StepError wraps an error with the position in the run where it happened.
type StepError struct {
	Step   int
	Time   float64
	Motion MotionType
	Err    error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f, %s): %v", e.Step, e.Time, e.Motion, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
