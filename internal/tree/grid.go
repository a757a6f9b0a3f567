// Package tree provides the spatial index used to gather each particle's
// neighbor set. A uniform hash grid with cell size equal to the largest
// smoothing length means a 27-cell sweep always covers a particle's kernel
// support.
package tree

import (
	"github.com/san-kum/galaxsph/internal/body"
	"github.com/san-kum/galaxsph/internal/vec"
)

type cellKey [3]int

type Grid struct {
	cell  float64
	cells map[cellKey][]int
}

// Build bins every particle in the arena. Must be called again whenever
// positions or smoothing lengths change.
func Build(ar *body.Arena) *Grid {
	cell := 0.0
	for i := 0; i < ar.Len(); i++ {
		if h := ar.At(i).H; h > cell {
			cell = h
		}
	}
	if cell == 0 {
		cell = 1
	}

	g := &Grid{cell: cell, cells: make(map[cellKey][]int, ar.Len())}
	for i := 0; i < ar.Len(); i++ {
		k := g.key(ar.At(i).Pos)
		g.cells[k] = append(g.cells[k], i)
	}
	return g
}

func (g *Grid) key(pos vec.Vec3) cellKey {
	return cellKey{floorDiv(pos[0], g.cell), floorDiv(pos[1], g.cell), floorDiv(pos[2], g.cell)}
}

func floorDiv(x, cell float64) int {
	q := x / cell
	i := int(q)
	if q < 0 && float64(i) != q {
		i--
	}
	return i
}

// Neighbors gathers the indices of particles within p's own smoothing
// length, excluding p itself. The result is appended to buf to let callers
// reuse per-particle slices across steps. The gather is one-sided: j being
// a neighbor of i does not make i a neighbor of j.
func (g *Grid) Neighbors(ar *body.Arena, i int, buf []int) []int {
	p := ar.At(i)
	buf = buf[:0]
	center := g.key(p.Pos)

	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for dz := -1; dz <= 1; dz++ {
				k := cellKey{center[0] + dx, center[1] + dy, center[2] + dz}
				for _, j := range g.cells[k] {
					if j == i {
						continue
					}
					if vec.Dist(p.Pos, ar.At(j).Pos) < p.H {
						buf = append(buf, j)
					}
				}
			}
		}
	}
	return buf
}
