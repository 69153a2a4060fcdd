// Package vmath holds the small amount of vector math the arena needs. Ground
// navigation works on the horizontal xz plane; Y is height.
package vmath

import "math"

// Vec2 is a horizontal-plane vector. X maps to world X, Y maps to world Z.
type Vec2 struct {
	X, Y float64
}

// Vec3 is a world-space vector with Y up.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }
func (v Vec2) IsZero() bool { return v.X == 0 && v.Y == 0 }
func (v Vec2) Distance(o Vec2) float64 { return v.Sub(o).Len() }

// Normalize returns the unit vector, or zero for vectors too short to normalize.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l < normalizeEpsilon {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// XZ lifts the vector into world space at height y.
func (v Vec2) XZ(y float64) Vec3 {
	return Vec3{X: v.X, Y: y, Z: v.Y}
}

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }
func (v Vec3) Len() float64 { return math.Sqrt(v.Dot(v)) }
func (v Vec3) Distance(o Vec3) float64 { return v.Sub(o).Len() }

// Normalize returns the unit vector, or zero for vectors too short to normalize.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l < normalizeEpsilon {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// XZ drops the vertical axis.
func (v Vec3) XZ() Vec2 {
	return Vec2{X: v.X, Y: v.Z}
}

const normalizeEpsilon = 1e-5

// Distance2D is the distance between a and b measured on the horizontal plane.
func Distance2D(a, b Vec3) float64 {
	return a.XZ().Distance(b.XZ())
}

// Angle returns the unsigned angle between a and b in degrees. It is 0 when
// either vector is too short to have a direction.
func Angle(a, b Vec2) float64 {
	denom := math.Sqrt(a.Dot(a) * b.Dot(b))
	if denom < 1e-15 {
		return 0
	}
	cos := math.Max(-1, math.Min(1, a.Dot(b)/denom))
	return math.Acos(cos) * 180 / math.Pi
}

// SignedAngle returns the angle from a to b in degrees, counter-clockwise positive.
func SignedAngle(a, b Vec2) float64 {
	angle := Angle(a, b)
	if a.X*b.Y-a.Y*b.X < 0 {
		return -angle
	}
	return angle
}

// Rotate rotates v counter-clockwise by the given number of degrees.
func Rotate(v Vec2, degrees float64) Vec2 {
	sin, cos := math.Sincos(degrees * math.Pi / 180)
	return Vec2{X: v.X*cos - v.Y*sin, Y: v.X*sin + v.Y*cos}
}

// RotateTowards turns the direction from toward to by at most maxDegrees and
// returns a unit vector. A zero from snaps straight to to.
func RotateTowards(from, to Vec2, maxDegrees float64) Vec2 {
	target := to.Normalize()
	if target.IsZero() {
		return from.Normalize()
	}
	current := from.Normalize()
	if current.IsZero() {
		return target
	}
	delta := SignedAngle(current, target)
	if math.Abs(delta) <= maxDegrees {
		return target
	}
	if delta < 0 {
		maxDegrees = -maxDegrees
	}
	return Rotate(current, maxDegrees).Normalize()
}
