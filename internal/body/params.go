package body

import "github.com/san-kum/galaxsph/internal/units"

// Params holds the physical constants and feature switches of one run.
// It is constructed once at setup and shared read-only across all
// concurrent force evaluations.
type Params struct {
	G   float64 // gravitational constant
	Rig float64 // ideal gas constant

	// NFW halo shape.
	MTot float64
	ANFW float64
	Rs   float64

	// Thermal conduction.
	KCond float64
	Eps   float64 // conduction denominator regularizer

	// Artificial viscosity.
	Alpha float64
	Beta  float64

	// Star formation efficiency per free-fall time.
	EtaEff float64

	StarFormation bool
	Viscosity     bool
}

// DefaultParams returns parameters for a 1e10 Msun halo with concentration
// 10 (A = ln(1+c) - c/(1+c)) and the usual Monaghan viscosity coefficients.
func DefaultParams() *Params {
	return &Params{
		G:             units.G,
		Rig:           units.Rig,
		MTot:          1e10 * units.Msun,
		ANFW:          1.4888,
		Rs:            10 * units.Kpc,
		KCond:         0,
		Eps:           0.01,
		Alpha:         1.0,
		Beta:          2.0,
		EtaEff:        0.01,
		StarFormation: false,
		Viscosity:     true,
	}
}
