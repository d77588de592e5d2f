package projectile

import (
	"sync"

	"github.com/zeusync/ricochet/internal/core/ballistics"
	"github.com/zeusync/ricochet/internal/core/events/bus"
	"github.com/zeusync/ricochet/internal/core/systems/physics"
)

// HitTally counts impacts against one collider. Ricochets count as
// non-penetrations.
type HitTally struct {
	Hits            int
	Penetrations    int
	NonPenetrations int
	Ricochets       int
	Damage          float64
}

// HitStats aggregates Impact events per collider.
type HitStats struct {
	mu     sync.Mutex
	tally  map[physics.ColliderID]HitTally
	totals HitTally
	sub    bus.Subscription
}

func NewHitStats() *HitStats {
	return &HitStats{tally: make(map[physics.ColliderID]HitTally)}
}

// Attach subscribes to impact events on b. Call Close to detach.
func (h *HitStats) Attach(b bus.EventBus) error {
	sub, err := b.Subscribe(EventImpact, h.handle)
	if err != nil {
		return err
	}
	h.mu.Lock()
	h.sub = sub
	h.mu.Unlock()
	return nil
}

func (h *HitStats) Close() error {
	h.mu.Lock()
	sub := h.sub
	h.sub = nil
	h.mu.Unlock()
	if sub == nil {
		return nil
	}
	return sub.Cancel()
}

func (h *HitStats) handle(e bus.Event) error {
	impact, ok := e.Data().(Impact)
	if !ok {
		return nil
	}
	h.Record(impact)
	return nil
}

// Record adds one impact.
func (h *HitStats) Record(i Impact) {
	h.mu.Lock()
	defer h.mu.Unlock()
	t := h.tally[i.Collider]
	t.add(i)
	h.tally[i.Collider] = t
	h.totals.add(i)
}

func (t *HitTally) add(i Impact) {
	t.Hits++
	switch i.Verdict {
	case ballistics.VerdictPenetrated:
		t.Penetrations++
		t.Damage += i.Damage
	case ballistics.VerdictRicochet:
		t.Ricochets++
		t.NonPenetrations++
	default:
		t.NonPenetrations++
	}
}

func (h *HitStats) For(id physics.ColliderID) HitTally {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.tally[id]
}

func (h *HitStats) Totals() HitTally {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.totals
}

func (h *HitStats) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	clear(h.tally)
	h.totals = HitTally{}
}
