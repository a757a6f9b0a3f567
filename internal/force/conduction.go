package force

import "github.com/san-kum/galaxsph/internal/body"

// DuConduction accumulates the thermal conduction term:
//
//	du_cond(p) = sum_q -m_q (k_p + k_q) (u_p - u_q) (x_q - x_p) . GradW(p,q)
//	             / ( rho_pq dist^2 + eps h_p^2 )
//
// with k = Kcond/rho. The eps h^2 term keeps the denominator away from
// zero for coincident particles; it is a required stability guard, not a
// tunable nicety.
func (c *Computer) DuConduction(ar *body.Arena, i int) float64 {
	p := ar.At(i)
	kp := c.par.KCond / p.Rho

	sum := 0.0
	for _, j := range p.Neighbors {
		q := ar.At(j)
		kq := c.par.KCond / q.Rho
		sep := q.Pos.Sub(p.Pos)
		d := sep.Norm()
		rhoPQ := 0.5 * (p.Rho + q.Rho)

		denom := rhoPQ*d*d + c.par.Eps*p.H*p.H
		sum += -q.M * (kp + kq) * (p.U - q.U) * sep.Dot(c.kern.GradW(p, q)) / denom
	}
	p.DuCond = sum
	return sum
}
