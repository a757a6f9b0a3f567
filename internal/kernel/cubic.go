// Package kernel implements the SPH interpolation kernel. The simulation
// uses the cubic spline (M4) with compact support r < h, normalized in 3D:
//
//	W(r,h) = 8/(pi h^3) * w(r/h)
//	w(q)   = 1 - 6q^2 + 6q^3        0   <= q <= 1/2
//	         2 (1 - q)^3            1/2 <  q <= 1
//	         0                      q > 1
//
// Pair functions take the kernel arguments in a fixed order: W(p,q),
// GradW(p,q) and DW(p,q) all evaluate with p's own smoothing length, so
// GradW(p,q) and GradW(q,p) are generally different vectors.
package kernel

import (
	"math"

	"github.com/san-kum/galaxsph/internal/body"
	"github.com/san-kum/galaxsph/internal/vec"
)

const sigma3D = 8.0 / math.Pi

// W evaluates the kernel at separation r with smoothing length h.
func W(r, h float64) float64 {
	q := r / h
	return sigma3D / (h * h * h) * wShape(q)
}

// DW is the radial derivative dW/dr. It is <= 0 everywhere inside the
// support.
func DW(r, h float64) float64 {
	q := r / h
	return sigma3D / (h * h * h * h) * wShapeD(q)
}

// DWDH is the derivative of the kernel with respect to the smoothing
// length, used by the grad-h correction factor.
func DWDH(r, h float64) float64 {
	q := r / h
	return -sigma3D / (h * h * h * h) * (3*wShape(q) + q*wShapeD(q))
}

func wShape(q float64) float64 {
	switch {
	case q <= 0.5:
		return 1 - 6*q*q + 6*q*q*q
	case q <= 1:
		d := 1 - q
		return 2 * d * d * d
	default:
		return 0
	}
}

func wShapeD(q float64) float64 {
	switch {
	case q <= 0.5:
		return -12*q + 18*q*q
	case q <= 1:
		d := 1 - q
		return -6 * d * d
	default:
		return 0
	}
}

// Cubic adapts the spline to the pair-oriented kernel interface consumed by
// the force core.
type Cubic struct{}

// GradW returns the kernel gradient for the pair (p, q), evaluated with
// p's smoothing length and oriented along unit(q.Pos - p.Pos). The radial
// derivative is negative inside the support, so the vector points away
// from q.
func (Cubic) GradW(p, q *body.Particle) vec.Vec3 {
	sep := q.Pos.Sub(p.Pos)
	r := sep.Norm()
	if r == 0 {
		return vec.Vec3{}
	}
	return sep.Scale(DW(r, p.H) / r)
}

// DW returns the radial kernel derivative for the pair (p, q), evaluated
// with p's smoothing length.
func (Cubic) DW(p, q *body.Particle) float64 {
	return DW(vec.Dist(p.Pos, q.Pos), p.H)
}
