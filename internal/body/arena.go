package body

// Arena owns the contiguous particle store. Neighbor lists are indices into
// this slice, so particles never hold pointers at each other and the store
// can be relocated or snapshotted freely.
type Arena struct {
	Particles []Particle
}

func NewArena(n int) *Arena {
	return &Arena{Particles: make([]Particle, n)}
}

func (a *Arena) Len() int { return len(a.Particles) }

// At returns the particle at index i. Neighbor reads during a force pass go
// through this accessor.
func (a *Arena) At(i int) *Particle { return &a.Particles[i] }

// TotalMass sums particle masses.
func (a *Arena) TotalMass() float64 {
	sum := 0.0
	for i := range a.Particles {
		sum += a.Particles[i].M
	}
	return sum
}

// GasMass sums gas-phase masses.
func (a *Arena) GasMass() float64 {
	sum := 0.0
	for i := range a.Particles {
		sum += a.Particles[i].MGas
	}
	return sum
}
