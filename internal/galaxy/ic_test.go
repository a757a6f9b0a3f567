package galaxy

import (
	"math"
	"testing"

	"github.com/san-kum/galaxsph/internal/body"
)

func testIC() IC {
	ic := DefaultIC()
	ic.N = 200
	return ic
}

func TestGenerateMassPartition(t *testing.T) {
	ic := testIC()
	ar := Generate(ic, body.DefaultParams(), 1)

	if ar.Len() != ic.N {
		t.Fatalf("arena size %d, want %d", ar.Len(), ic.N)
	}
	if got := ar.TotalMass(); math.Abs(got-ic.MGasTot) > 1e-6*ic.MGasTot {
		t.Errorf("total mass %g, want %g", got, ic.MGasTot)
	}
	if got := ar.GasMass(); got != ar.TotalMass() {
		t.Errorf("all mass should start in the gas phase: %g != %g", got, ar.TotalMass())
	}
}

func TestGenerateThermodynamicState(t *testing.T) {
	ic := testIC()
	par := body.DefaultParams()
	ar := Generate(ic, par, 1)

	u0 := 3 * par.Rig * ic.Temp / (2 * ic.Mu)
	for i := 0; i < ar.Len(); i++ {
		p := ar.At(i)
		if p.U != u0 {
			t.Fatalf("particle %d: u = %g, want %g", i, p.U, u0)
		}
		if p.Mu != ic.Mu {
			t.Fatalf("particle %d: mu = %g, want %g", i, p.Mu, ic.Mu)
		}
		if p.H <= 0 || p.Rho <= 0 || p.Omega != 1 {
			t.Fatalf("particle %d: bad placeholder state h=%g rho=%g omega=%g",
				i, p.H, p.Rho, p.Omega)
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	ic := testIC()
	par := body.DefaultParams()

	a := Generate(ic, par, 42)
	b := Generate(ic, par, 42)
	for i := 0; i < a.Len(); i++ {
		if a.At(i).Pos != b.At(i).Pos || a.At(i).Vel != b.At(i).Vel {
			t.Fatalf("particle %d differs between identically seeded runs", i)
		}
	}

	c := Generate(ic, par, 43)
	same := true
	for i := 0; i < a.Len(); i++ {
		if a.At(i).Pos != c.At(i).Pos {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical positions")
	}
}

func TestGenerateDiskIsFlattened(t *testing.T) {
	ic := testIC()
	ic.N = 2000
	ar := Generate(ic, body.DefaultParams(), 7)

	var sx, sz float64
	for i := 0; i < ar.Len(); i++ {
		p := ar.At(i)
		sx += p.Pos[0] * p.Pos[0]
		sz += p.Pos[2] * p.Pos[2]
	}
	// z is drawn at half the radial scale, so its variance is a quarter.
	ratio := sz / sx
	if ratio < 0.15 || ratio > 0.4 {
		t.Errorf("z/x variance ratio = %g, want ~0.25", ratio)
	}
}

func TestGenerateSpinRotatesAboutZ(t *testing.T) {
	ic := testIC()
	ic.N = 2000
	ic.Spin = 1.0
	ic.Sigma = 0 // pure rotation
	ar := Generate(ic, body.DefaultParams(), 7)

	aligned := 0
	for i := 0; i < ar.Len(); i++ {
		p := ar.At(i)
		// z-component of angular momentum about the halo center.
		lz := p.Pos[0]*p.Vel[1] - p.Pos[1]*p.Vel[0]
		if lz > 0 {
			aligned++
		}
	}
	if aligned < ar.Len()*9/10 {
		t.Errorf("only %d/%d particles rotate the same way", aligned, ar.Len())
	}
}
