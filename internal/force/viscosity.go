package force

import (
	"math"

	"github.com/san-kum/galaxsph/internal/body"
	"github.com/san-kum/galaxsph/internal/vec"
)

// SignalSpeed is the pairwise viscosity signal speed. Zero when viscosity
// is disabled or the pair is receding: artificial viscosity only acts on
// converging flow.
//
// v_r is measured along unit(x_q - x_p); the viscous force below measures
// its closing rate along unit(x_p - x_q). The two orientations are not
// interchangeable, each sign convention feeds the dissipative sign of its
// own formula.
func (c *Computer) SignalSpeed(p, q *body.Particle) float64 {
	if !c.par.Viscosity {
		return 0
	}
	vr := q.Vel.Sub(p.Vel).Dot(q.Pos.Sub(p.Pos).Unit())
	if vr > 0 {
		return 0
	}
	return 0.5 * (p.Cs + q.Cs - c.par.Beta*vr)
}

// SignalSpeedU is the signal speed of the thermal-energy dissipation term,
// gated the same way as SignalSpeed.
func (c *Computer) SignalSpeedU(p, q *body.Particle) float64 {
	if !c.par.Viscosity {
		return 0
	}
	vr := q.Vel.Sub(p.Vel).Dot(q.Pos.Sub(p.Pos).Unit())
	if vr > 0 {
		return 0
	}
	return math.Sqrt(2 * math.Abs(Pressure(p)-Pressure(q)) / (p.Rho + q.Rho))
}

// DuViscosity accumulates the viscous energy term:
//
//	du_visc(p) = sum_q (m_q/rho_pq) ( a/2 sig^2 + a sig_u (u_p - u_q) )
//	             * (DW(p,q) + DW(q,p)) / 2
func (c *Computer) DuViscosity(ar *body.Arena, i int) float64 {
	p := ar.At(i)
	if !c.par.Viscosity {
		p.DuVisc = 0
		return 0
	}

	sum := 0.0
	for _, j := range p.Neighbors {
		q := ar.At(j)
		rhoPQ := 0.5 * (p.Rho + q.Rho)
		sig := c.SignalSpeed(p, q)
		sigU := c.SignalSpeedU(p, q)
		dwAvg := 0.5 * (c.kern.DW(p, q) + c.kern.DW(q, p))

		sum += q.M / rhoPQ * (0.5*c.par.Alpha*sig*sig + c.par.Alpha*sigU*(p.U-q.U)) * dwAvg
	}
	p.DuVisc = sum
	return sum
}

// DvViscosity accumulates the viscous force:
//
//	dv_visc(p) += -(m_q/rho_pq) sig(p,q) vr (GradW(p,q) - GradW(q,p))
//
// with vr = (v_p - v_q) . unit(x_p - x_q). Note the unit-vector
// orientation is the opposite of the one inside SignalSpeed.
func (c *Computer) DvViscosity(ar *body.Arena, i int) vec.Vec3 {
	p := ar.At(i)
	if !c.par.Viscosity {
		p.DvVisc = vec.Vec3{}
		return p.DvVisc
	}

	acc := vec.Vec3{}
	for _, j := range p.Neighbors {
		q := ar.At(j)
		rhoPQ := 0.5 * (p.Rho + q.Rho)
		sig := c.SignalSpeed(p, q)
		vr := p.Vel.Sub(q.Vel).Dot(p.Pos.Sub(q.Pos).Unit())

		gdiff := c.kern.GradW(p, q).Sub(c.kern.GradW(q, p))
		acc = acc.Add(gdiff.Scale(-q.M / rhoPQ * sig * vr))
	}
	p.DvVisc = acc
	return acc
}
