package force_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/galaxsph/internal/body"
	"github.com/san-kum/galaxsph/internal/force"
	"github.com/san-kum/galaxsph/internal/kernel"
	"github.com/san-kum/galaxsph/internal/vec"
)

// fixedKernel returns a gradient of fixed magnitude along unit(q-p) and a
// fixed radial derivative, so pairwise sums have closed-form values.
type fixedKernel struct {
	mag float64
	dw  float64
}

func (k fixedKernel) GradW(p, q *body.Particle) vec.Vec3 {
	return q.Pos.Sub(p.Pos).Unit().Scale(k.mag)
}

func (k fixedKernel) DW(p, q *body.Particle) float64 { return k.dw }

func testParams() *body.Params {
	return &body.Params{
		G: 1, Rig: 1,
		MTot: 1, ANFW: 1.4888, Rs: 1,
		KCond: 1, Eps: 0.01,
		Alpha: 1, Beta: 2,
		EtaEff:    0.1,
		Viscosity: true,
	}
}

// unitParticle returns a particle with rho = Omega = 1 and pressure P,
// placed at pos.
func unitParticle(id int, pos vec.Vec3, pressure float64) body.Particle {
	return body.Particle{
		ID: id, Pos: pos,
		M: 1, MGas: 1, Mu: 1,
		U: 1.5 * pressure, // P = (2/3) u rho with rho = 1
		Rho: 1, RhoGas: 1, Omega: 1, H: 1,
	}
}

var _ = Describe("equation of state", func() {
	par := testParams()

	It("computes P = (2/3) u rho", func() {
		p := &body.Particle{U: 3.0, Rho: 2.0}
		Expect(force.Pressure(p)).To(Equal(4.0))
	})

	It("computes T = 2 mu u / (3 Rig)", func() {
		p := &body.Particle{U: 3.0, Mu: 1.0}
		Expect(force.Temperature(p, par)).To(Equal(2.0))
	})

	It("returns a positive sound speed for T >= 0", func() {
		p := &body.Particle{U: 1.5, Mu: 1.0}
		cs, err := force.SoundSpeed(p, par)
		Expect(err).NotTo(HaveOccurred())
		t := force.Temperature(p, par)
		Expect(cs).To(BeNumerically("~", math.Sqrt(5.0/3.0*par.Rig*t/p.Mu), 1e-12))
		Expect(cs).To(BeNumerically(">", 0))
	})

	It("fails with a domain error for T < 0", func() {
		p := &body.Particle{ID: 7, U: -1.0, Mu: 1.0}
		_, err := force.SoundSpeed(p, par)
		Expect(err).To(HaveOccurred())
		Expect(errors.Is(err, force.ErrNegativeTemperature)).To(BeTrue())

		var de *force.DomainError
		Expect(errors.As(err, &de)).To(BeTrue())
		Expect(de.ParticleID).To(Equal(7))
	})
})

var _ = Describe("NFW halo gravity", func() {
	par := testParams()

	It("is zero at the halo center", func() {
		Expect(force.NFWAccel(0, par)).To(BeZero())
	})

	It("pulls inward for r > 0", func() {
		Expect(force.NFWAccel(1.0, par)).To(BeNumerically("<", 0))
	})

	It("decays at large radius", func() {
		near := math.Abs(force.NFWAccel(1, par))
		far := math.Abs(force.NFWAccel(1e4, par))
		veryFar := math.Abs(force.NFWAccel(1e8, par))
		Expect(far).To(BeNumerically("<", near))
		Expect(veryFar).To(BeNumerically("<", 1e-10))
	})

	It("is finite and continuous as r -> 0", func() {
		a1 := force.NFWAccel(1e-6, par)
		a2 := force.NFWAccel(2e-6, par)
		Expect(math.IsNaN(a1) || math.IsInf(a1, 0)).To(BeFalse())
		Expect(a1).To(BeNumerically("~", a2, math.Abs(a1)*1e-3+1e-30))
	})
})

var _ = Describe("empty neighbor sets", func() {
	It("produces zero for every pairwise sum", func() {
		par := testParams()
		ar := body.NewArena(1)
		*ar.At(0) = unitParticle(0, vec.Vec3{1, 2, 3}, 1.0)

		comp := force.New(kernel.Cubic{}, par)
		Expect(comp.UpdateEOS(ar.At(0))).To(Succeed())
		comp.Derive(ar, 0)

		p := ar.At(0)
		Expect(p.DvP.IsZero()).To(BeTrue())
		Expect(p.DvVisc.IsZero()).To(BeTrue())
		Expect(p.DuP).To(BeZero())
		Expect(p.DuVisc).To(BeZero())
		Expect(p.DuCond).To(BeZero())
	})
})

var _ = Describe("artificial viscosity", func() {
	makePair := func(par *body.Params, vp, vq vec.Vec3) (*body.Arena, *force.Computer) {
		ar := body.NewArena(2)
		*ar.At(0) = unitParticle(0, vec.Vec3{0, 0, 0}, 1.0)
		*ar.At(1) = unitParticle(1, vec.Vec3{1, 0, 0}, 2.0)
		ar.At(0).Vel = vp
		ar.At(1).Vel = vq
		ar.At(0).Neighbors = []int{1}
		ar.At(1).Neighbors = []int{0}

		comp := force.New(fixedKernel{mag: -0.5, dw: -0.5}, par)
		Expect(comp.UpdateEOS(ar.At(0))).To(Succeed())
		Expect(comp.UpdateEOS(ar.At(1))).To(Succeed())
		return ar, comp
	}

	It("is zero everywhere when the feature is off", func() {
		par := testParams()
		par.Viscosity = false
		ar, comp := makePair(par, vec.Vec3{1, 0, 0}, vec.Vec3{-1, 0, 0})

		p, q := ar.At(0), ar.At(1)
		Expect(comp.SignalSpeed(p, q)).To(BeZero())
		Expect(comp.SignalSpeedU(p, q)).To(BeZero())
		Expect(comp.DuViscosity(ar, 0)).To(BeZero())
		Expect(comp.DvViscosity(ar, 0).IsZero()).To(BeTrue())
	})

	It("has zero signal speed for receding pairs", func() {
		ar, comp := makePair(testParams(), vec.Vec3{-1, 0, 0}, vec.Vec3{1, 0, 0})
		Expect(comp.SignalSpeed(ar.At(0), ar.At(1))).To(BeZero())
		Expect(comp.SignalSpeedU(ar.At(0), ar.At(1))).To(BeZero())
	})

	It("has non-negative signal speed for approaching pairs", func() {
		ar, comp := makePair(testParams(), vec.Vec3{1, 0, 0}, vec.Vec3{-1, 0, 0})
		p, q := ar.At(0), ar.At(1)

		sig := comp.SignalSpeed(p, q)
		Expect(sig).To(BeNumerically(">", 0))
		// v_r = -2 along the pair axis: 1/2 (c_p + c_q + 2 beta).
		Expect(sig).To(BeNumerically("~", 0.5*(p.Cs+q.Cs+2*testParams().Beta), 1e-12))

		sigU := comp.SignalSpeedU(p, q)
		// sqrt(2 |P_p - P_q| / (rho_p + rho_q)) = sqrt(2*1/2) = 1.
		Expect(sigU).To(BeNumerically("~", 1.0, 1e-12))
	})

	It("damps the closing velocity", func() {
		ar, comp := makePair(testParams(), vec.Vec3{1, 0, 0}, vec.Vec3{-1, 0, 0})
		dv := comp.DvViscosity(ar, 0)
		// Particle 0 moves +x toward its neighbor; the force must oppose it.
		Expect(dv[0]).To(BeNumerically("<", 0))
	})
})

var _ = Describe("thermal conduction", func() {
	It("keeps a finite denominator at zero separation", func() {
		par := testParams()
		ar := body.NewArena(2)
		*ar.At(0) = unitParticle(0, vec.Vec3{0, 0, 0}, 1.0)
		*ar.At(1) = unitParticle(1, vec.Vec3{0, 0, 0}, 2.0)
		ar.At(0).Neighbors = []int{1}

		// dist = 0 makes the rho term of the denominator vanish; only the
		// eps*h^2 term keeps this from dividing by zero.
		comp := force.New(fixedKernel{mag: -0.5, dw: -0.5}, par)
		du := comp.DuConduction(ar, 0)
		Expect(math.IsNaN(du)).To(BeFalse())
		Expect(math.IsInf(du, 0)).To(BeFalse())
	})

	It("couples particles with unequal internal energy", func() {
		par := testParams()
		ar := body.NewArena(2)
		*ar.At(0) = unitParticle(0, vec.Vec3{0, 0, 0}, 2.0) // hotter
		*ar.At(1) = unitParticle(1, vec.Vec3{0.5, 0, 0}, 1.0)
		ar.At(0).Neighbors = []int{1}

		// Gradient oriented toward p (against unit(q-p)), the real kernel's
		// convention.
		comp := force.New(kernel.Cubic{}, par)
		du := comp.DuConduction(ar, 0)
		Expect(du).NotTo(BeZero())
		Expect(math.IsNaN(du)).To(BeFalse())
	})
})

var _ = Describe("star formation", func() {
	It("is zero when the feature is off", func() {
		par := testParams()
		comp := force.New(kernel.Cubic{}, par)

		p := unitParticle(0, vec.Vec3{}, 1.0)
		Expect(comp.DmStar(&p)).To(BeZero())
		Expect(p.DmStar).To(BeZero())
	})

	It("matches the free-fall formula when enabled", func() {
		par := testParams()
		par.StarFormation = true
		comp := force.New(kernel.Cubic{}, par)

		p := unitParticle(0, vec.Vec3{}, 1.0)
		p.MGas = 2.0
		p.RhoGas = 4.0

		tff := math.Sqrt(3 * math.Pi / (32 * par.G * p.RhoGas))
		want := par.EtaEff * p.MGas / tff
		Expect(comp.DmStar(&p)).To(BeNumerically("~", want, 1e-12))
		Expect(p.DmStar).To(BeNumerically("~", want, 1e-12))
	})

	It("guards against zero gas density", func() {
		par := testParams()
		par.StarFormation = true
		comp := force.New(kernel.Cubic{}, par)

		p := unitParticle(0, vec.Vec3{}, 1.0)
		p.RhoGas = 0
		Expect(comp.DmStar(&p)).To(BeZero())
	})
})

var _ = Describe("pressure force", func() {
	It("matches the literal two-particle value", func() {
		par := testParams()
		ar := body.NewArena(2)
		*ar.At(0) = unitParticle(0, vec.Vec3{0, 0, 0}, 1.0)
		*ar.At(1) = unitParticle(1, vec.Vec3{1, 0, 0}, 1.0)
		ar.At(0).Neighbors = []int{1}

		// GradW(p,q) = (-0.5,0,0), GradW(q,p) = (+0.5,0,0):
		// dv_P(p) = -1 * ( -1*(-0.5,0,0) + 1*(0.5,0,0) ) = (-1,0,0).
		comp := force.New(fixedKernel{mag: -0.5, dw: -0.5}, par)
		dv := comp.DvPressure(ar, 0)
		Expect(dv[0]).To(BeNumerically("~", -1.0, 1e-12))
		Expect(dv[1]).To(BeZero())
		Expect(dv[2]).To(BeZero())
	})

	It("conserves momentum for a symmetric pair", func() {
		par := testParams()
		ar := body.NewArena(2)
		*ar.At(0) = unitParticle(0, vec.Vec3{-0.5, 0, 0}, 1.0)
		*ar.At(1) = unitParticle(1, vec.Vec3{0.5, 0, 0}, 1.0)
		ar.At(0).H = 2
		ar.At(1).H = 2
		ar.At(0).Neighbors = []int{1}
		ar.At(1).Neighbors = []int{0}

		comp := force.New(kernel.Cubic{}, par)
		dvP := comp.DvPressure(ar, 0)
		dvQ := comp.DvPressure(ar, 1)

		total := dvP.Scale(ar.At(0).M).Add(dvQ.Scale(ar.At(1).M))
		Expect(total.Norm()).To(BeNumerically("<", 1e-12))
		// And the pair actually repels.
		Expect(dvP[0]).To(BeNumerically("<", 0))
		Expect(dvQ[0]).To(BeNumerically(">", 0))
	})

	It("heats on compression", func() {
		par := testParams()
		ar := body.NewArena(2)
		*ar.At(0) = unitParticle(0, vec.Vec3{0, 0, 0}, 1.0)
		*ar.At(1) = unitParticle(1, vec.Vec3{0.5, 0, 0}, 1.0)
		ar.At(0).H = 2
		ar.At(1).Vel = vec.Vec3{-1, 0, 0} // closing in
		ar.At(0).Neighbors = []int{1}

		comp := force.New(kernel.Cubic{}, par)
		Expect(comp.DuPressure(ar, 0)).To(BeNumerically(">", 0))
	})
})
