package physics

import "math"

// Vec2 is a 2D vector in arena units (meters).
type Vec2 struct{ X, Y float64 }

// Up is the default forward axis of an unrotated entity.
var Up = Vec2{X: 0, Y: 1}

func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{X: v.X - o.X, Y: v.Y - o.Y} }

func (v Vec2) Scale(s float64) Vec2 { return Vec2{X: v.X * s, Y: v.Y * s} }

func (v Vec2) Neg() Vec2 { return Vec2{X: -v.X, Y: -v.Y} }

func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

func (v Vec2) Cross(o Vec2) float64 { return v.X*o.Y - v.Y*o.X }

func (v Vec2) LenSq() float64 { return v.X*v.X + v.Y*v.Y }

func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

func (v Vec2) IsZero() bool { return v.X == 0 && v.Y == 0 }

func (v Vec2) IsFinite() bool { return isFinite(v.X) && isFinite(v.Y) }

func (v Vec2) Perp() Vec2 { return Vec2{X: -v.Y, Y: v.X} }

func (v Vec2) Distance(o Vec2) float64 { return math.Hypot(o.X-v.X, o.Y-v.Y) }

// Normalized returns the unit vector in the direction of v, or the zero
// vector when v is zero or not finite.
func (v Vec2) Normalized() Vec2 {
	if !v.IsFinite() {
		return Vec2{}
	}
	l := v.Len()
	if l < 1e-12 {
		return Vec2{}
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

// Rotate rotates v counter-clockwise by deg degrees.
func (v Vec2) Rotate(deg float64) Vec2 {
	s, c := math.Sincos(deg * math.Pi / 180)
	return Vec2{X: v.X*c - v.Y*s, Y: v.X*s + v.Y*c}
}

// FromAngle returns the unit vector at deg degrees counter-clockwise from +X.
func FromAngle(deg float64) Vec2 {
	s, c := math.Sincos(deg * math.Pi / 180)
	return Vec2{X: c, Y: s}
}

// Sanitize replaces a non-finite vector with zero.
func Sanitize(v Vec2) Vec2 {
	if !v.IsFinite() {
		return Vec2{}
	}
	return v
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
