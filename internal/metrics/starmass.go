package metrics

import "github.com/san-kum/galaxsph/internal/body"

// StarMass tracks the cumulative stellar mass: total mass minus remaining
// gas-phase mass.
type StarMass struct {
	name    string
	current float64
}

func NewStarMass() *StarMass {
	return &StarMass{name: "star_mass"}
}

func (s *StarMass) Name() string { return s.name }

func (s *StarMass) Observe(ar *body.Arena, t float64) {
	s.current = ar.TotalMass() - ar.GasMass()
}

func (s *StarMass) Value() float64 { return s.current }

func (s *StarMass) Reset() { s.current = 0 }
