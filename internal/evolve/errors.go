package evolve

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidState indicates a particle reached a NaN or Inf position
	// or velocity.
	ErrInvalidState = errors.New("evolve: invalid state (NaN or Inf detected)")

	// ErrBadConfig indicates a non-positive timestep or duration.
	ErrBadConfig = errors.New("evolve: invalid configuration")
)

// StepError wraps a failure with the step and simulation time at which it
// occurred.
type StepError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.4g): %v", e.Step, e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error { return e.Wrapped }
