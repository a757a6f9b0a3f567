// Package density estimates the SPH density field: per-particle density,
// adaptive smoothing length and the grad-h correction factor Omega. It
// runs as its own pass before the force pass; the neighbor lists it leaves
// on the particles are the read-only snapshot the force pass iterates.
package density

import (
	"math"

	"github.com/san-kum/galaxsph/internal/body"
	"github.com/san-kum/galaxsph/internal/kernel"
	"github.com/san-kum/galaxsph/internal/tree"
	"github.com/san-kum/galaxsph/internal/vec"
)

const minChunk = 64

// Estimator computes rho, h and Omega for every particle.
type Estimator struct {
	// HEta couples the smoothing length to the local interparticle
	// spacing: h = HEta * (m/rho)^(1/3). With kernel support r < h,
	// HEta ~ 2.1 gives roughly 40 neighbors.
	HEta float64

	// Iters is the number of fixed-point h iterations per step.
	Iters int
}

func NewEstimator() *Estimator {
	return &Estimator{HEta: 2.1, Iters: 2}
}

// Update refreshes neighbor lists, density, smoothing length, Omega and
// gas density for the whole arena, and returns the spatial grid consistent
// with the final smoothing lengths.
func (e *Estimator) Update(ar *body.Arena) *tree.Grid {
	n := ar.Len()
	var g *tree.Grid

	for it := 0; it < e.Iters; it++ {
		g = tree.Build(ar)
		last := it == e.Iters-1

		body.ParallelFor(n, minChunk, func(start, end int) {
			for i := start; i < end; i++ {
				p := ar.At(i)
				p.Neighbors = g.Neighbors(ar, i, p.Neighbors)

				rho := p.M * kernel.W(0, p.H)
				for _, j := range p.Neighbors {
					q := ar.At(j)
					rho += q.M * kernel.W(vec.Dist(p.Pos, q.Pos), p.H)
				}
				p.Rho = rho

				if !last {
					p.H = e.HEta * math.Cbrt(p.M/rho)
				}
			}
		})
	}

	body.ParallelFor(n, minChunk, func(start, end int) {
		for i := start; i < end; i++ {
			p := ar.At(i)

			// Omega = 1 + h/(3 rho) * sum_j m_j dW/dh, self term included.
			sum := p.M * kernel.DWDH(0, p.H)
			for _, j := range p.Neighbors {
				q := ar.At(j)
				sum += q.M * kernel.DWDH(vec.Dist(p.Pos, q.Pos), p.H)
			}
			p.Omega = 1 + p.H/(3*p.Rho)*sum

			if p.M > 0 {
				p.RhoGas = p.Rho * p.MGas / p.M
			}
		}
	})

	return g
}
