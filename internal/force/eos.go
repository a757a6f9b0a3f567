package force

import (
	"math"

	"github.com/san-kum/galaxsph/internal/body"
)

// Equation of state: ideal monatomic gas, gamma = 5/3.

// Pressure returns P = (2/3) u rho.
func Pressure(p *body.Particle) float64 {
	return 2.0 / 3.0 * p.U * p.Rho
}

// Temperature returns T = 2 mu / (3 Rig) * u.
func Temperature(p *body.Particle, par *body.Params) float64 {
	return 2 * p.Mu / (3 * par.Rig) * p.U
}

// SoundSpeed returns c = sqrt((5/3) Rig T / mu). A negative temperature is
// a hard domain error carrying the particle state.
func SoundSpeed(p *body.Particle, par *body.Params) (float64, error) {
	t := Temperature(p, par)
	if t < 0 {
		return 0, &DomainError{ParticleID: p.ID, Temp: t, State: p.Dump()}
	}
	return math.Sqrt(5.0 / 3.0 * par.Rig * t / p.Mu), nil
}
