package physics

import "math"

const (
	degPerRad = 180 / math.Pi
	radPerDeg = math.Pi / 180
)

// Deg2Rad converts degrees to radians.
func Deg2Rad(deg float64) float64 { return deg * radPerDeg }

// Angle returns the unsigned angle between a and b in degrees, in [0, 180].
// Zero-length or non-finite inputs yield 0.
func Angle(a, b Vec2) float64 {
	if !a.IsFinite() || !b.IsFinite() {
		return 0
	}
	den := math.Sqrt(a.LenSq() * b.LenSq())
	if den < 1e-15 {
		return 0
	}
	cos := math.Max(-1, math.Min(1, a.Dot(b)/den))
	return math.Acos(cos) * degPerRad
}

// SignedAngle returns the angle from a to b in degrees, in [-180, 180].
// Counter-clockwise is positive; a zero cross product counts as positive.
func SignedAngle(from, to Vec2) float64 {
	unsigned := Angle(from, to)
	if from.Cross(to) < 0 {
		return -unsigned
	}
	return unsigned
}

// ImpactAngle is the angle between the reversed flight direction and the
// surface normal, in [0, 180]. 0 is a head-on hit, 90 is a grazing path
// parallel to the surface.
func ImpactAngle(velocity, normal Vec2) float64 {
	return Angle(velocity.Neg().Normalized(), normal.Normalized())
}

// Reflect mirrors v about the surface with unit normal n: v - 2(v·n)n.
func Reflect(v, n Vec2) Vec2 {
	return v.Sub(n.Scale(2 * v.Dot(n)))
}
