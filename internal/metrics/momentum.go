package metrics

import (
	"math"

	"github.com/san-kum/galaxsph/internal/body"
)

// Momentum tracks the magnitude of the total linear momentum. The SPH
// pair forces conserve it; the halo potential does not, so the useful
// check is running with the halo mass set to zero.
type Momentum struct {
	name    string
	current float64
}

func NewMomentum() *Momentum {
	return &Momentum{name: "momentum"}
}

func (m *Momentum) Name() string { return m.name }

func (m *Momentum) Observe(ar *body.Arena, t float64) {
	var px, py, pz float64
	for i := 0; i < ar.Len(); i++ {
		p := ar.At(i)
		px += p.M * p.Vel[0]
		py += p.M * p.Vel[1]
		pz += p.M * p.Vel[2]
	}
	m.current = math.Sqrt(px*px + py*py + pz*pz)
}

func (m *Momentum) Value() float64 { return m.current }

func (m *Momentum) Reset() { m.current = 0 }
