package physics

// Lightweight physics abstractions for the 2D arena.
// Broad-phase and rigid-body state live in the host; the ballistics core
// only needs a cast primitive and collider identity.

// ColliderID identifies a collider in the host scene. Zero means "none".
type ColliderID uint64

// LayerMask selects collider layers. Bit N set means layer N is included.
type LayerMask uint32

// AllLayers matches every layer.
const AllLayers LayerMask = ^LayerMask(0)

// Contains reports whether the given layer is part of the mask.
func (m LayerMask) Contains(layer uint8) bool {
	if layer >= 32 {
		return false
	}
	return m&(1<<layer) != 0
}

// Hit is a single cast result.
type Hit struct {
	Collider ColliderID
	Layer    uint8
	Point    Vec2
	Normal   Vec2
	Distance float64
}

// Caster is the host's shape/ray cast primitive. Implementations may return
// candidates in any order; callers reduce them with Closest.
type Caster interface {
	Cast(origin, direction Vec2, maxDistance float64, mask LayerMask) []Hit
}

// CasterFunc adapts a function to the Caster interface.
type CasterFunc func(origin, direction Vec2, maxDistance float64, mask LayerMask) []Hit

func (f CasterFunc) Cast(origin, direction Vec2, maxDistance float64, mask LayerMask) []Hit {
	return f(origin, direction, maxDistance, mask)
}

// Closest returns the hit with the smallest distance. Ties keep the earliest
// candidate. Hits with a non-finite distance are skipped.
func Closest(hits []Hit) (Hit, bool) {
	return ClosestExcept(hits, 0)
}

// ClosestExcept is Closest ignoring every hit on collider skip. A zero skip
// ignores nothing.
func ClosestExcept(hits []Hit, skip ColliderID) (Hit, bool) {
	best := -1
	for i := range hits {
		if !isFinite(hits[i].Distance) {
			continue
		}
		if skip != 0 && hits[i].Collider == skip {
			continue
		}
		if best < 0 || hits[i].Distance < hits[best].Distance {
			best = i
		}
	}
	if best < 0 {
		return Hit{}, false
	}
	return hits[best], true
}
