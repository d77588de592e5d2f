package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImpactAngleConvention(t *testing.T) {
	up := V(0, 1)

	// flying straight down into a floor facing up is head-on
	assert.InDelta(t, 0, ImpactAngle(V(0, -10), up), 1e-9)
	// flying along the surface is grazing
	assert.InDelta(t, 90, ImpactAngle(V(5, 0), up), 1e-9)
	// flying away from the surface
	assert.InDelta(t, 180, ImpactAngle(V(0, 3), up), 1e-9)
	// 60 degrees off the normal
	v := V(math.Sin(Deg2Rad(60)), -math.Cos(Deg2Rad(60))).Scale(40)
	assert.InDelta(t, 60, ImpactAngle(v, up), 1e-9)
}

func TestImpactAngleIgnoresMagnitude(t *testing.T) {
	n := V(1, 1)
	a := ImpactAngle(V(-1, -0.2), n)
	b := ImpactAngle(V(-100, -20), n.Scale(7))
	assert.InDelta(t, a, b, 1e-9)
}

func TestAngleDegenerate(t *testing.T) {
	assert.Equal(t, 0.0, Angle(Vec2{}, V(1, 0)))
	assert.Equal(t, 0.0, Angle(V(math.NaN(), 0), V(1, 0)))
	assert.Equal(t, 0.0, ImpactAngle(Vec2{}, V(0, 1)))
}

func TestSignedAngle(t *testing.T) {
	assert.InDelta(t, 90, SignedAngle(V(0, 1), V(-1, 0)), 1e-9)
	assert.InDelta(t, -90, SignedAngle(V(0, 1), V(1, 0)), 1e-9)
	assert.InDelta(t, 180, SignedAngle(V(0, 1), V(0, -1)), 1e-9)
	assert.InDelta(t, 0, SignedAngle(V(0, 1), V(0, 2)), 1e-9)
}

func TestReflect(t *testing.T) {
	got := Reflect(V(3, -4), V(0, 1))
	assert.InDelta(t, 3, got.X, 1e-12)
	assert.InDelta(t, 4, got.Y, 1e-12)
}

func TestReflectRoundTrip(t *testing.T) {
	velocities := []Vec2{V(3, -4), V(-120, 7), V(0.001, 0.5), V(55, 55)}
	for deg := 0.0; deg < 360; deg += 15 {
		n := FromAngle(deg)
		for _, v := range velocities {
			back := Reflect(Reflect(v, n), n)
			require.InDelta(t, v.X, back.X, 1e-9, "normal %v velocity %v", n, v)
			require.InDelta(t, v.Y, back.Y, 1e-9, "normal %v velocity %v", n, v)
		}
	}
}

func TestReflectPreservesSpeed(t *testing.T) {
	v := V(12, -5)
	n := V(1, 2).Normalized()
	assert.InDelta(t, v.Len(), Reflect(v, n).Len(), 1e-9)
}

func TestNormalized(t *testing.T) {
	assert.Equal(t, Vec2{}, Vec2{}.Normalized())
	assert.Equal(t, Vec2{}, V(math.Inf(1), 0).Normalized())
	assert.InDelta(t, 1, V(3, 4).Normalized().Len(), 1e-12)
}

func TestClosest(t *testing.T) {
	hits := []Hit{
		{Collider: 1, Distance: 4},
		{Collider: 2, Distance: math.NaN()},
		{Collider: 3, Distance: 1.5},
		{Collider: 4, Distance: 1.5},
	}
	h, ok := Closest(hits)
	require.True(t, ok)
	assert.Equal(t, ColliderID(3), h.Collider)

	_, ok = Closest(nil)
	assert.False(t, ok)
}

func TestLayerMask(t *testing.T) {
	m := LayerMask(1<<0 | 1<<3)
	assert.True(t, m.Contains(0))
	assert.True(t, m.Contains(3))
	assert.False(t, m.Contains(1))
	assert.False(t, m.Contains(40))
	assert.True(t, AllLayers.Contains(31))
}
