package force

import (
	"github.com/san-kum/galaxsph/internal/body"
	"github.com/san-kum/galaxsph/internal/vec"
)

// Kernel supplies the pair-oriented interpolation kernel derivatives. Both
// methods evaluate with the first argument's smoothing length.
type Kernel interface {
	GradW(p, q *body.Particle) vec.Vec3
	DW(p, q *body.Particle) float64
}

// Computer evaluates the physical derivatives of one particle against its
// neighbor snapshot. Safe for concurrent use across distinct particles:
// it holds no mutable state of its own.
type Computer struct {
	kern Kernel
	par  *body.Params
}

func New(kern Kernel, par *body.Params) *Computer {
	return &Computer{kern: kern, par: par}
}

// UpdateEOS refreshes the particle's temperature and sound speed from its
// internal energy. Fails when the temperature comes out negative.
func (c *Computer) UpdateEOS(p *body.Particle) error {
	p.T = Temperature(p, c.par)
	cs, err := SoundSpeed(p, c.par)
	if err != nil {
		return err
	}
	p.Cs = cs
	return nil
}

// Derive resets the particle's accumulators and evaluates every derivative
// term. The EOS pass must have run first (sound speeds feed the viscosity
// signal speed).
func (c *Computer) Derive(ar *body.Arena, i int) {
	p := ar.At(i)
	p.ResetDerivatives()

	c.DvGravity(p)
	c.DvPressure(ar, i)
	c.DuPressure(ar, i)
	c.DvViscosity(ar, i)
	c.DuViscosity(ar, i)
	c.DuConduction(ar, i)
	c.DmStar(p)
}
