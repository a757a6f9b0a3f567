// Package metrics provides run-level diagnostics observed once per step.
package metrics

import (
	"math"

	"github.com/san-kum/galaxsph/internal/body"
)

// TotalEnergy tracks kinetic plus internal energy of the gas.
type TotalEnergy struct {
	name    string
	current float64
}

func NewTotalEnergy() *TotalEnergy {
	return &TotalEnergy{name: "energy"}
}

func (e *TotalEnergy) Name() string { return e.name }

func (e *TotalEnergy) Observe(ar *body.Arena, t float64) {
	total := 0.0
	for i := 0; i < ar.Len(); i++ {
		p := ar.At(i)
		total += 0.5*p.M*p.Vel.Dot(p.Vel) + p.M*p.U
	}
	e.current = total
}

func (e *TotalEnergy) Value() float64 { return e.current }

func (e *TotalEnergy) Reset() { e.current = 0 }

// EnergyDrift tracks the maximum relative deviation from the first
// observed total energy. The external halo potential does work on the gas,
// so nonzero drift is expected; the metric flags blowups, not conservation.
type EnergyDrift struct {
	name     string
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{name: "energy_drift"}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(ar *body.Arena, t float64) {
	total := 0.0
	for i := 0; i < ar.Len(); i++ {
		p := ar.At(i)
		total += 0.5*p.M*p.Vel.Dot(p.Vel) + p.M*p.U
	}

	if e.samples == 0 {
		e.initial = total
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(total-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}
