package physics

import (
	"math"
	"sync"

	"github.com/zeusync/ricochet/pkg/generic"
)

// StaticWorld is a small reference Caster over circles and line segments.
// It backs tests and the CLI scene; a real host supplies its own broad-phase.
// Safe for concurrent casts; mutations take the write lock.
type StaticWorld struct {
	mu       sync.RWMutex
	circles  []circleShape
	segments []segmentShape
	scratch  *generic.Pool[*[]int]
}

type circleShape struct {
	id     ColliderID
	layer  uint8
	center Vec2
	radius float64
}

type segmentShape struct {
	id    ColliderID
	layer uint8
	a, b  Vec2
}

func NewStaticWorld() *StaticWorld {
	return &StaticWorld{
		scratch: generic.NewPool(func() *[]int {
			buf := make([]int, 0, 16)
			return &buf
		}).WithReset(func(buf *[]int) { *buf = (*buf)[:0] }),
	}
}

// AddCircle registers a circular collider.
func (w *StaticWorld) AddCircle(id ColliderID, layer uint8, center Vec2, radius float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.circles = append(w.circles, circleShape{id: id, layer: layer, center: center, radius: math.Abs(radius)})
}

// AddSegment registers a one-segment wall.
func (w *StaticWorld) AddSegment(id ColliderID, layer uint8, a, b Vec2) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.segments = append(w.segments, segmentShape{id: id, layer: layer, a: a, b: b})
}

// AddBox registers an oriented rectangle as four segments sharing one collider.
// rotationDeg turns the box counter-clockwise around its center.
func (w *StaticWorld) AddBox(id ColliderID, layer uint8, center Vec2, halfW, halfH, rotationDeg float64) {
	corners := [4]Vec2{
		V(-halfW, -halfH), V(halfW, -halfH), V(halfW, halfH), V(-halfW, halfH),
	}
	for i := range corners {
		corners[i] = center.Add(corners[i].Rotate(rotationDeg))
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	for i := range corners {
		w.segments = append(w.segments, segmentShape{id: id, layer: layer, a: corners[i], b: corners[(i+1)%4]})
	}
}

// Remove drops every shape belonging to the collider.
func (w *StaticWorld) Remove(id ColliderID) {
	w.mu.Lock()
	defer w.mu.Unlock()
	circles := w.circles[:0]
	for _, c := range w.circles {
		if c.id != id {
			circles = append(circles, c)
		}
	}
	w.circles = circles
	segments := w.segments[:0]
	for _, s := range w.segments {
		if s.id != id {
			segments = append(segments, s)
		}
	}
	w.segments = segments
}

// Cast implements Caster. Every shape crossed within maxDistance is reported,
// unordered. A ray starting inside a circle reports a zero-distance hit.
func (w *StaticWorld) Cast(origin, direction Vec2, maxDistance float64, mask LayerMask) []Hit {
	dir := direction.Normalized()
	if dir.IsZero() || !(maxDistance >= 0) || !origin.IsFinite() {
		return nil
	}
	end := origin.Add(dir.Scale(maxDistance))
	minX, maxX := math.Min(origin.X, end.X), math.Max(origin.X, end.X)
	minY, maxY := math.Min(origin.Y, end.Y), math.Max(origin.Y, end.Y)

	w.mu.RLock()
	defer w.mu.RUnlock()

	candidates := w.scratch.Get()
	defer w.scratch.Put(candidates)

	var hits []Hit
	for i, c := range w.circles {
		if !mask.Contains(c.layer) {
			continue
		}
		if c.center.X+c.radius < minX || c.center.X-c.radius > maxX ||
			c.center.Y+c.radius < minY || c.center.Y-c.radius > maxY {
			continue
		}
		*candidates = append(*candidates, i)
	}
	for _, i := range *candidates {
		if h, ok := castCircle(w.circles[i], origin, dir, maxDistance); ok {
			hits = append(hits, h)
		}
	}

	*candidates = (*candidates)[:0]
	for i, s := range w.segments {
		if !mask.Contains(s.layer) {
			continue
		}
		if math.Max(s.a.X, s.b.X) < minX || math.Min(s.a.X, s.b.X) > maxX ||
			math.Max(s.a.Y, s.b.Y) < minY || math.Min(s.a.Y, s.b.Y) > maxY {
			continue
		}
		*candidates = append(*candidates, i)
	}
	for _, i := range *candidates {
		if h, ok := castSegment(w.segments[i], origin, dir, maxDistance); ok {
			hits = append(hits, h)
		}
	}
	return hits
}

func castCircle(c circleShape, origin, dir Vec2, maxDistance float64) (Hit, bool) {
	f := origin.Sub(c.center)
	b := f.Dot(dir)
	cc := f.LenSq() - c.radius*c.radius
	if cc <= 0 {
		return Hit{Collider: c.id, Layer: c.layer, Point: origin, Normal: dir.Neg(), Distance: 0}, true
	}
	disc := b*b - cc
	if disc < 0 {
		return Hit{}, false
	}
	t := -b - math.Sqrt(disc)
	if t < 0 || t > maxDistance {
		return Hit{}, false
	}
	p := origin.Add(dir.Scale(t))
	return Hit{Collider: c.id, Layer: c.layer, Point: p, Normal: p.Sub(c.center).Normalized(), Distance: t}, true
}

func castSegment(s segmentShape, origin, dir Vec2, maxDistance float64) (Hit, bool) {
	e := s.b.Sub(s.a)
	den := dir.Cross(e)
	if math.Abs(den) < 1e-12 {
		return Hit{}, false
	}
	ao := s.a.Sub(origin)
	t := ao.Cross(e) / den
	u := ao.Cross(dir) / den
	if t < 0 || t > maxDistance || u < 0 || u > 1 {
		return Hit{}, false
	}
	n := e.Perp().Normalized()
	if n.Dot(dir) > 0 {
		n = n.Neg()
	}
	return Hit{Collider: s.id, Layer: s.layer, Point: origin.Add(dir.Scale(t)), Normal: n, Distance: t}, true
}
