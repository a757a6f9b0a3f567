package force

import (
	"github.com/san-kum/galaxsph/internal/body"
	"github.com/san-kum/galaxsph/internal/vec"
)

// DvPressure accumulates the grad-h SPH pressure force:
//
//	dv_P(p) = -sum_q m_q ( -P_p/(rho_p^2 Omega_p) GradW(p,q)
//	                      + P_q/(rho_q^2 Omega_q) GradW(q,p) )
//
// Each pair contributes two asymmetric kernel gradients, one per smoothing
// length; the symmetrized sum over the whole system conserves momentum.
func (c *Computer) DvPressure(ar *body.Arena, i int) vec.Vec3 {
	p := ar.At(i)
	pp := Pressure(p) / (p.Rho * p.Rho * p.Omega)

	acc := vec.Vec3{}
	for _, j := range p.Neighbors {
		q := ar.At(j)
		pq := Pressure(q) / (q.Rho * q.Rho * q.Omega)

		term := c.kern.GradW(p, q).Scale(-pp).Add(c.kern.GradW(q, p).Scale(pq))
		acc = acc.Sub(term.Scale(q.M))
	}
	p.DvP = acc
	return acc
}

// DuPressure accumulates the compressive heating term:
//
//	du_P(p) = P_p/(Omega_p rho_p^2) * sum_q m_q (v_q - v_p) . GradW(p,q)
//
// Unlike the force, the prefactor is applied once and only p's kernel
// orientation appears.
func (c *Computer) DuPressure(ar *body.Arena, i int) float64 {
	p := ar.At(i)

	sum := 0.0
	for _, j := range p.Neighbors {
		q := ar.At(j)
		sum += q.M * q.Vel.Sub(p.Vel).Dot(c.kern.GradW(p, q))
	}
	du := Pressure(p) / (p.Omega * p.Rho * p.Rho) * sum
	p.DuP = du
	return du
}
