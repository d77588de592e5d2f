package armor

import (
	"math"
	"sync"
)

// Hitpoints is a simple health pool that receives penetration damage.
// It satisfies the projectile damage sink capability.
type Hitpoints struct {
	mu      sync.Mutex
	max     float64
	current float64
	dead    bool
	onDeath func()
}

func NewHitpoints(max float64) *Hitpoints {
	if math.IsNaN(max) || max < 0 {
		max = 0
	}
	return &Hitpoints{max: max, current: max, dead: max == 0}
}

// OnDeath installs a callback fired once, on the hit that empties the pool.
func (h *Hitpoints) OnDeath(fn func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onDeath = fn
}

// ApplyDamage subtracts dmg. Non-positive or non-finite amounts and hits on
// a dead pool are ignored.
func (h *Hitpoints) ApplyDamage(dmg float64) {
	if !(dmg > 0) || math.IsInf(dmg, 1) {
		return
	}
	h.mu.Lock()
	if h.dead {
		h.mu.Unlock()
		return
	}
	h.current -= dmg
	var fire func()
	if h.current <= 0 {
		h.current = 0
		h.dead = true
		fire = h.onDeath
	}
	h.mu.Unlock()

	if fire != nil {
		fire()
	}
}

func (h *Hitpoints) Current() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

func (h *Hitpoints) Max() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.max
}

func (h *Hitpoints) IsDead() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.dead
}
