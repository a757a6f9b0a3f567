package tree

import (
	"testing"

	"github.com/san-kum/galaxsph/internal/body"
	"github.com/san-kum/galaxsph/internal/vec"
)

func makeArena(positions []vec.Vec3, h float64) *body.Arena {
	ar := body.NewArena(len(positions))
	for i, pos := range positions {
		p := ar.At(i)
		p.ID = i
		p.Pos = pos
		p.H = h
	}
	return ar
}

func TestNeighborsWithinRadius(t *testing.T) {
	ar := makeArena([]vec.Vec3{
		{0, 0, 0},
		{0.5, 0, 0},  // inside
		{0, 0.9, 0},  // inside
		{3, 0, 0},    // outside
		{0, 0, -2.5}, // outside
	}, 1.0)

	g := Build(ar)
	nbrs := g.Neighbors(ar, 0, nil)

	if len(nbrs) != 2 {
		t.Fatalf("expected 2 neighbors, got %d: %v", len(nbrs), nbrs)
	}
	seen := map[int]bool{}
	for _, j := range nbrs {
		seen[j] = true
	}
	if !seen[1] || !seen[2] {
		t.Errorf("expected neighbors {1,2}, got %v", nbrs)
	}
}

func TestSelfExcluded(t *testing.T) {
	ar := makeArena([]vec.Vec3{{0, 0, 0}}, 1.0)
	g := Build(ar)
	if nbrs := g.Neighbors(ar, 0, nil); len(nbrs) != 0 {
		t.Errorf("isolated particle should have no neighbors, got %v", nbrs)
	}
}

func TestGatherAsymmetry(t *testing.T) {
	// p has a large kernel that reaches q; q's does not reach back.
	ar := makeArena([]vec.Vec3{{0, 0, 0}, {1, 0, 0}}, 0)
	ar.At(0).H = 2.0
	ar.At(1).H = 0.5

	g := Build(ar)
	if nbrs := g.Neighbors(ar, 0, nil); len(nbrs) != 1 || nbrs[0] != 1 {
		t.Errorf("p should see q, got %v", nbrs)
	}
	if nbrs := g.Neighbors(ar, 1, nil); len(nbrs) != 0 {
		t.Errorf("q should not see p, got %v", nbrs)
	}
}

func TestNegativeCoordinates(t *testing.T) {
	ar := makeArena([]vec.Vec3{{-0.1, -0.1, -0.1}, {0.1, 0.1, 0.1}}, 1.0)
	g := Build(ar)
	if nbrs := g.Neighbors(ar, 0, nil); len(nbrs) != 1 {
		t.Errorf("neighbor across the origin not found: %v", nbrs)
	}
}

func TestBufferReuse(t *testing.T) {
	ar := makeArena([]vec.Vec3{{0, 0, 0}, {0.5, 0, 0}}, 1.0)
	g := Build(ar)

	buf := make([]int, 0, 8)
	nbrs := g.Neighbors(ar, 0, buf)
	if len(nbrs) != 1 {
		t.Fatalf("expected 1 neighbor, got %d", len(nbrs))
	}
	nbrs = g.Neighbors(ar, 1, nbrs)
	if len(nbrs) != 1 || nbrs[0] != 0 {
		t.Errorf("reused buffer gave wrong result: %v", nbrs)
	}
}
