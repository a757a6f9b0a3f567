// Package galaxy builds initial conditions: a rotating gas sphere sitting
// in the fixed dark-matter halo.
package galaxy

import (
	"math"
	"math/rand"

	"github.com/san-kum/galaxsph/internal/body"
	"github.com/san-kum/galaxsph/internal/units"
	"github.com/san-kum/galaxsph/internal/vec"
)

// IC describes the gas cloud.
type IC struct {
	N       int
	MGasTot float64 // total gas mass
	Radius  float64 // scale radius of the position distribution
	Spin    float64 // tangential velocity as a fraction of v_circ
	Sigma   float64 // isotropic dispersion as a fraction of v_circ
	Temp    float64 // initial gas temperature [K]
	Mu      float64 // mean molecular weight [kg/mol]
}

func DefaultIC() IC {
	return IC{
		N:       1000,
		MGasTot: 1e8 * units.Msun,
		Radius:  5 * units.Kpc,
		Spin:    0.4,
		Sigma:   0.1,
		Temp:    1e4,
		Mu:      units.MuHydrogen,
	}
}

// Generate draws particle positions from a normal distribution around the
// halo center, gives each a tangential rotation about z plus an isotropic
// dispersion, and seeds the thermodynamic state from the target
// temperature. Densities, smoothing lengths and Omega are placeholders
// until the first density pass.
func Generate(ic IC, par *body.Params, seed int64) *body.Arena {
	rng := rand.New(rand.NewSource(seed))
	ar := body.NewArena(ic.N)

	m := ic.MGasTot / float64(ic.N)
	u0 := 3 * par.Rig * ic.Temp / (2 * ic.Mu)

	// Initial guess tuned for ~40 neighbors inside kernel support; the
	// density pass iterates h from here.
	h0 := 2.1 * ic.Radius / math.Cbrt(float64(ic.N))
	rhoMean := 3 * ic.MGasTot / (4 * math.Pi * math.Pow(ic.Radius, 3))

	for i := 0; i < ic.N; i++ {
		pos := vec.Vec3{
			rng.NormFloat64() * ic.Radius,
			rng.NormFloat64() * ic.Radius,
			rng.NormFloat64() * ic.Radius * 0.5, // flattened along z
		}

		r := pos.Norm()
		vcirc := 0.0
		if r > 0 {
			vcirc = math.Sqrt(par.G * par.MTot / par.ANFW / r * math.Abs(math.Log1p(r/par.Rs)-r/(r+par.Rs)))
		}

		// Tangential direction about z; degenerate on the axis, where the
		// dispersion term still gives the particle a kick.
		tangent := vec.Vec3{-pos[1], pos[0], 0}.Unit()
		vel := tangent.Scale(ic.Spin * vcirc).Add(vec.Vec3{
			rng.NormFloat64() * ic.Sigma * vcirc,
			rng.NormFloat64() * ic.Sigma * vcirc,
			rng.NormFloat64() * ic.Sigma * vcirc,
		})

		*ar.At(i) = body.Particle{
			ID:     i,
			Pos:    pos,
			Vel:    vel,
			M:      m,
			MGas:   m,
			U:      u0,
			Mu:     ic.Mu,
			Rho:    rhoMean,
			RhoGas: rhoMean,
			H:      h0,
			Omega:  1,
		}
	}
	return ar
}
