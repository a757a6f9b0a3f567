package force

import (
	"math"

	"github.com/san-kum/galaxsph/internal/body"
)

// DmStar computes the local star-formation rate: a fraction EtaEff of the
// particle's gas mass per free-fall time t_ff = sqrt(3 pi / (32 G rho_gas)).
// Purely local, no neighbor loop. Zero when the feature is off or the
// particle has no gas.
func (c *Computer) DmStar(p *body.Particle) float64 {
	if !c.par.StarFormation {
		p.DmStar = 0
		return 0
	}
	if p.RhoGas <= 0 {
		p.DmStar = 0
		return 0
	}

	tff := math.Sqrt(3 * math.Pi / (32 * c.par.G * p.RhoGas))
	p.DmStar = c.par.EtaEff * p.MGas / tff
	return p.DmStar
}
