// Package vec provides the small 3-vector arithmetic used throughout the
// simulation. Vectors are value types; every operation returns a new value.
package vec

import "math"

type Vec3 [3]float64

func (a Vec3) Add(b Vec3) Vec3 {
	return Vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func (a Vec3) Sub(b Vec3) Vec3 {
	return Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func (a Vec3) Scale(s float64) Vec3 {
	return Vec3{a[0] * s, a[1] * s, a[2] * s}
}

func (a Vec3) Dot(b Vec3) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func (a Vec3) Norm() float64 {
	return math.Sqrt(a.Dot(a))
}

// Unit returns the direction of a, or the zero vector when |a| = 0.
func (a Vec3) Unit() Vec3 {
	n := a.Norm()
	if n == 0 {
		return Vec3{}
	}
	return a.Scale(1 / n)
}

func (a Vec3) IsZero() bool {
	return a[0] == 0 && a[1] == 0 && a[2] == 0
}

func (a Vec3) IsValid() bool {
	for _, v := range a {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func Dist(a, b Vec3) float64 {
	return a.Sub(b).Norm()
}
