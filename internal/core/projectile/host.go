package projectile

import (
	"sync"

	"github.com/zeusync/ricochet/internal/core/armor"
	"github.com/zeusync/ricochet/internal/core/systems/physics"
)

//go:generate go tool mockgen -destination=./mocks/damage_sink_mock.go -package=mocks . DamageSink

// DamageSink receives penetration damage. Delivery is fire and forget.
type DamageSink interface {
	ApplyDamage(amount float64)
}

// Host is what the stepper needs from the scene: a cast primitive plus
// per-collider capability lookups. Missing capabilities are normal (walls
// carry neither armor nor health).
type Host interface {
	physics.Caster
	Armor(id physics.ColliderID) (*armor.Profile, bool)
	DamageSink(id physics.ColliderID) (DamageSink, bool)
}

var _ Host = (*Scene)(nil)

// Scene is a Host over a StaticWorld with capability registries keyed by
// collider. Several colliders may share one profile or sink (a hull built
// from a box and a turret circle).
type Scene struct {
	*physics.StaticWorld

	mu    sync.RWMutex
	armor map[physics.ColliderID]*armor.Profile
	sinks map[physics.ColliderID]DamageSink
}

func NewScene(world *physics.StaticWorld) *Scene {
	if world == nil {
		world = physics.NewStaticWorld()
	}
	return &Scene{
		StaticWorld: world,
		armor:       make(map[physics.ColliderID]*armor.Profile),
		sinks:       make(map[physics.ColliderID]DamageSink),
	}
}

func (s *Scene) AttachArmor(id physics.ColliderID, profile *armor.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if profile == nil {
		delete(s.armor, id)
		return
	}
	s.armor[id] = profile
}

func (s *Scene) AttachDamageSink(id physics.ColliderID, sink DamageSink) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sink == nil {
		delete(s.sinks, id)
		return
	}
	s.sinks[id] = sink
}

// Detach drops the collider and every capability bound to it.
func (s *Scene) Detach(id physics.ColliderID) {
	s.StaticWorld.Remove(id)
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.armor, id)
	delete(s.sinks, id)
}

func (s *Scene) Armor(id physics.ColliderID) (*armor.Profile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.armor[id]
	return p, ok
}

func (s *Scene) DamageSink(id physics.ColliderID) (DamageSink, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sink, ok := s.sinks[id]
	return sink, ok
}
