// Package body defines the particle data model shared by the density,
// force and evolution passes: the Particle itself, the read-only run
// Params, and the Arena holding all particles plus their neighbor index
// lists.
package body

import (
	"fmt"

	"github.com/san-kum/galaxsph/internal/vec"
)

// Particle carries the full per-particle state. The force pass mutates only
// the derivative fields (DvGrav..DmStar); everything else is read-only for
// the duration of one evaluation pass.
type Particle struct {
	ID int

	Pos vec.Vec3
	Vel vec.Vec3

	M    float64 // total mass
	MGas float64 // gas-phase mass, drained by star formation

	U  float64 // specific internal energy
	Mu float64 // mean molecular weight [kg/mol]
	T  float64 // temperature, derived from U each EOS pass

	Rho    float64
	RhoGas float64

	H     float64 // smoothing length
	Omega float64 // grad-h correction factor
	Cs    float64 // sound speed

	// Neighbors are indices into the owning Arena, refreshed each step by
	// the neighbor finder. The relation is not symmetric: it is gathered
	// with this particle's own smoothing length.
	Neighbors []int

	// Derivative accumulators, valid between ResetDerivatives and the
	// integrator consuming them.
	DvGrav vec.Vec3
	DvP    vec.Vec3
	DvVisc vec.Vec3
	DuP    float64
	DuVisc float64
	DuCond float64
	DmStar float64
}

// ResetDerivatives zeroes every accumulator before a force pass.
func (p *Particle) ResetDerivatives() {
	p.DvGrav = vec.Vec3{}
	p.DvP = vec.Vec3{}
	p.DvVisc = vec.Vec3{}
	p.DuP = 0
	p.DuVisc = 0
	p.DuCond = 0
	p.DmStar = 0
}

// Accel is the total acceleration accumulated by the last force pass.
func (p *Particle) Accel() vec.Vec3 {
	return p.DvGrav.Add(p.DvP).Add(p.DvVisc)
}

// DuTotal is the total specific-internal-energy derivative.
func (p *Particle) DuTotal() float64 {
	return p.DuP + p.DuVisc + p.DuCond
}

// Dump renders the particle state for diagnostics, used when an invariant
// violation aborts a run.
func (p *Particle) Dump() string {
	return fmt.Sprintf(
		"particle %d: pos=%v vel=%v m=%.6g m_gas=%.6g u=%.6g T=%.6g rho=%.6g h=%.6g omega=%.6g neighbors=%d",
		p.ID, p.Pos, p.Vel, p.M, p.MGas, p.U, p.T, p.Rho, p.H, p.Omega, len(p.Neighbors))
}
