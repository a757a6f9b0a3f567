// Package evolve advances the simulation in time: per step it rebuilds the
// neighbor index, runs the density and EOS passes, evaluates the force
// core in parallel across particles, and integrates with a kick-drift-kick
// leapfrog (the core is evaluated twice per step, once per kick).
package evolve

import (
	"github.com/san-kum/galaxsph/internal/body"
	"github.com/san-kum/galaxsph/internal/vec"
)

type Config struct {
	Dt            float64
	TMax          float64
	SnapshotEvery int
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            0.1,
		TMax:          10.0,
		SnapshotEvery: 10,
		ValidateState: true,
	}
}

// Metric observes the whole arena once per step.
type Metric interface {
	Name() string
	Observe(ar *body.Arena, t float64)
	Value() float64
	Reset()
}

// Observer receives a callback after every completed step. The arena must
// be treated as a read-only snapshot for the duration of the call.
type Observer interface {
	OnStep(ar *body.Arena, step int, t float64)
}

// ParticleState is the per-particle slice of a snapshot, decoupled from
// the live arena.
type ParticleState struct {
	ID   int
	Pos  vec.Vec3
	Vel  vec.Vec3
	U    float64
	Rho  float64
	H    float64
	MGas float64
}

type Snapshot struct {
	Step      int
	Time      float64
	Particles []ParticleState
}

// TakeSnapshot copies the observable particle state out of the arena.
func TakeSnapshot(ar *body.Arena, step int, t float64) Snapshot {
	snap := Snapshot{Step: step, Time: t, Particles: make([]ParticleState, ar.Len())}
	for i := 0; i < ar.Len(); i++ {
		p := ar.At(i)
		snap.Particles[i] = ParticleState{
			ID: p.ID, Pos: p.Pos, Vel: p.Vel,
			U: p.U, Rho: p.Rho, H: p.H, MGas: p.MGas,
		}
	}
	return snap
}

type Result struct {
	Times      []float64
	Snapshots  []Snapshot
	Metrics    map[string]float64
	History    map[string][]float64
	StepsTaken int
	Errors     []error
}
