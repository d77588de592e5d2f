package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticWorldSegment(t *testing.T) {
	w := NewStaticWorld()
	w.AddSegment(7, 0, V(-5, 10), V(5, 10))

	hits := w.Cast(V(0, 0), V(0, 1), 20, AllLayers)
	require.Len(t, hits, 1)
	assert.Equal(t, ColliderID(7), hits[0].Collider)
	assert.InDelta(t, 10, hits[0].Distance, 1e-9)
	assert.InDelta(t, 0, hits[0].Point.X, 1e-9)
	assert.InDelta(t, 10, hits[0].Point.Y, 1e-9)
	// normal faces the incoming ray
	assert.InDelta(t, -1, hits[0].Normal.Y, 1e-9)

	assert.Empty(t, w.Cast(V(0, 0), V(0, 1), 9.5, AllLayers))
	assert.Empty(t, w.Cast(V(0, 0), V(0, -1), 20, AllLayers))
}

func TestStaticWorldMask(t *testing.T) {
	w := NewStaticWorld()
	w.AddSegment(1, 2, V(-5, 10), V(5, 10))

	assert.Empty(t, w.Cast(V(0, 0), V(0, 1), 20, LayerMask(1<<1)))
	assert.Len(t, w.Cast(V(0, 0), V(0, 1), 20, LayerMask(1<<2)), 1)
}

func TestStaticWorldCircle(t *testing.T) {
	w := NewStaticWorld()
	w.AddCircle(3, 0, V(10, 0), 2)

	hits := w.Cast(V(0, 0), V(1, 0), 50, AllLayers)
	require.Len(t, hits, 1)
	assert.InDelta(t, 8, hits[0].Distance, 1e-9)
	assert.InDelta(t, -1, hits[0].Normal.X, 1e-9)

	inside := w.Cast(V(10, 0.5), V(1, 0), 50, AllLayers)
	require.Len(t, inside, 1)
	assert.Equal(t, 0.0, inside[0].Distance)
}

func TestStaticWorldBoxReportsAllCrossings(t *testing.T) {
	w := NewStaticWorld()
	w.AddBox(9, 0, V(0, 10), 2, 1, 0)

	hits := w.Cast(V(0, 0), V(0, 1), 30, AllLayers)
	require.Len(t, hits, 2)
	h, ok := Closest(hits)
	require.True(t, ok)
	assert.InDelta(t, 9, h.Distance, 1e-9)
	assert.InDelta(t, -1, h.Normal.Y, 1e-9)
}

func TestStaticWorldClosestExceptFromInsideOwner(t *testing.T) {
	w := NewStaticWorld()
	w.AddCircle(7, 0, V(0, 0), 1.5)
	w.AddBox(9, 0, V(0, 10), 2, 1, 0)

	hits := w.Cast(V(0, 0), V(0, 1), 30, AllLayers)
	h, ok := Closest(hits)
	require.True(t, ok)
	assert.Equal(t, ColliderID(7), h.Collider)
	assert.Equal(t, 0.0, h.Distance)

	h, ok = ClosestExcept(hits, 7)
	require.True(t, ok)
	assert.Equal(t, ColliderID(9), h.Collider)
	assert.InDelta(t, 9, h.Distance, 1e-9)

	_, ok = ClosestExcept(w.Cast(V(0, 0), V(0, -1), 30, AllLayers), 7)
	assert.False(t, ok)
}

func TestStaticWorldRemove(t *testing.T) {
	w := NewStaticWorld()
	w.AddBox(1, 0, V(0, 10), 2, 1, 0)
	w.AddCircle(2, 0, V(0, 20), 1)
	w.Remove(1)

	hits := w.Cast(V(0, 0), V(0, 1), 30, AllLayers)
	require.Len(t, hits, 1)
	assert.Equal(t, ColliderID(2), hits[0].Collider)
}

func TestStaticWorldDegenerateRay(t *testing.T) {
	w := NewStaticWorld()
	w.AddCircle(1, 0, V(0, 0), 1)
	assert.Nil(t, w.Cast(V(5, 5), Vec2{}, 10, AllLayers))
}
