package force

import (
	"math"

	"github.com/san-kum/galaxsph/internal/body"
)

// NFWAccel returns the signed radial acceleration of the fixed NFW halo
// potential at distance r from its center:
//
//	a(r) = (G Mtot / A) (1/r^2) ( r/(r+Rs) - ln(1 + r/Rs) )
//
// The value is negative for r > 0 (the pull is inward along the radial
// unit vector). r = 0 is an expected degenerate case, not an error: the
// particle sitting at the center feels no net force.
func NFWAccel(r float64, par *body.Params) float64 {
	if r == 0 {
		return 0
	}
	x := r / par.Rs
	return par.G * par.MTot / par.ANFW / (r * r) * (r/(r+par.Rs) - math.Log1p(x))
}

// DvGravity writes the halo acceleration of p, directed along the radial
// unit vector from the halo center (the origin) to the particle.
func (c *Computer) DvGravity(p *body.Particle) {
	r := p.Pos.Norm()
	p.DvGrav = p.Pos.Unit().Scale(NFWAccel(r, c.par))
}
