package vec

import (
	"math"
	"testing"
)

func TestUnitZeroVector(t *testing.T) {
	u := Vec3{}.Unit()
	if !u.IsZero() {
		t.Errorf("unit of zero vector should be zero, got %v", u)
	}
}

func TestUnitLength(t *testing.T) {
	u := Vec3{3, 4, 12}.Unit()
	if math.Abs(u.Norm()-1) > 1e-12 {
		t.Errorf("unit vector norm = %f, want 1", u.Norm())
	}
}

func TestDot(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, -5, 6}
	if got := a.Dot(b); got != 12 {
		t.Errorf("dot = %f, want 12", got)
	}
}

func TestDist(t *testing.T) {
	if d := Dist(Vec3{1, 0, 0}, Vec3{-2, 4, 0}); math.Abs(d-5) > 1e-12 {
		t.Errorf("dist = %f, want 5", d)
	}
}

func TestIsValid(t *testing.T) {
	if !(Vec3{1, 2, 3}).IsValid() {
		t.Error("finite vector reported invalid")
	}
	if (Vec3{math.NaN(), 0, 0}).IsValid() {
		t.Error("NaN vector reported valid")
	}
	if (Vec3{0, math.Inf(1), 0}).IsValid() {
		t.Error("Inf vector reported valid")
	}
}
