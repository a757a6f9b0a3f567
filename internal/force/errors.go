package force

import (
	"errors"
	"fmt"
)

// ErrNegativeTemperature indicates a particle reached the sound-speed
// computation with T < 0. This is an invariant violation, not an edge
// case: clamping it would hide a negative-energy bug and silently corrupt
// the run, so it always propagates to the caller.
var ErrNegativeTemperature = errors.New("force: negative temperature")

// DomainError carries the offending particle's state for diagnostics.
type DomainError struct {
	ParticleID int
	Temp       float64
	State      string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("force: domain error on particle %d (T=%.6g): %s", e.ParticleID, e.Temp, e.State)
}

func (e *DomainError) Unwrap() error { return ErrNegativeTemperature }
