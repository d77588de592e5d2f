package projectile

import (
	"context"
	"slices"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	"github.com/zeusync/ricochet/internal/core/ballistics"
	"github.com/zeusync/ricochet/internal/core/observability/log"
	"github.com/zeusync/ricochet/internal/core/observability/metrics"
	"github.com/zeusync/ricochet/internal/core/systems"
	"github.com/zeusync/ricochet/internal/core/systems/physics"
	"github.com/zeusync/ricochet/pkg/concurrent"
)

var _ systems.System = (*System)(nil)

// SpawnRequest fires one round.
type SpawnRequest struct {
	Shell     *ballistics.ShellSpec
	Owner     physics.ColliderID
	Position  physics.Vec2
	Direction physics.Vec2
}

// System owns every live projectile and steps them each fixed tick.
// Projectiles are partitioned into shards by ID; with more than one worker
// shards are stepped in parallel, each projectile always by the same shard.
// No shard lock is held while stepping, so event handlers and damage sinks
// may call Spawn, Count and Snapshot. Rounds spawned mid-tick fly from the
// next tick.
type System struct {
	stepper *Stepper
	shards  []*shard
	workers int
	logger  log.Log
	metrics *metrics.Recorder
}

type shard struct {
	mu   sync.Mutex
	live []*Projectile
	// view holds copies of live as of the last tick plus later spawns.
	view []Projectile
	// epoch changes on Shutdown so an in-flight tick discards its batch.
	epoch uint64
}

// NewSystem builds a system over stepper. workers <= 1 keeps the whole tick
// on the calling goroutine.
func NewSystem(stepper *Stepper, workers int, logger log.Log, rec *metrics.Recorder) (*System, error) {
	if stepper == nil {
		return nil, ErrNilStepper
	}
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = log.NewNop()
	}
	s := &System{
		stepper: stepper,
		shards:  make([]*shard, workers),
		workers: workers,
		logger:  logger.With(log.String("component", "projectile.system")),
		metrics: rec,
	}
	for i := range s.shards {
		s.shards[i] = &shard{}
	}
	return s, nil
}

func (s *System) Name() string { return "projectiles" }

func (s *System) Priority() systems.Priority { return systems.PriorityHigh }

func (s *System) Initialize(_ context.Context) error {
	return s.metrics.ObserveLive(func() int64 { return int64(s.Count()) })
}

// Spawn creates a projectile and hands it to its shard.
func (s *System) Spawn(req SpawnRequest) (*Projectile, error) {
	if req.Shell == nil {
		return nil, ErrNilShell
	}
	p := New(*req.Shell, req.Owner, req.Position, req.Direction)
	sh := s.shardFor(p.ID)
	sh.mu.Lock()
	sh.live = append(sh.live, p)
	sh.view = append(sh.view, *p)
	sh.mu.Unlock()

	s.logger.Debug("projectile spawned",
		log.Stringer("projectile", p.ID),
		log.String("shell", p.Shell.Name),
		log.Uint64("owner", uint64(p.Owner)),
	)
	return p, nil
}

// FixedUpdate steps every live projectile by dt and drops destroyed ones.
func (s *System) FixedUpdate(ctx context.Context, dt float64) error {
	return concurrent.ForEach(ctx, s.shards, s.workers, func(_ context.Context, sh *shard) error {
		sh.tick(s.stepper, dt)
		return nil
	})
}

func (s *System) Shutdown(_ context.Context) error {
	for _, sh := range s.shards {
		sh.mu.Lock()
		sh.epoch++
		sh.live = nil
		sh.view = nil
		sh.mu.Unlock()
	}
	return nil
}

// Count is the number of live projectiles.
func (s *System) Count() int {
	n := 0
	for _, sh := range s.shards {
		sh.mu.Lock()
		n += len(sh.live)
		sh.mu.Unlock()
	}
	return n
}

// Snapshot copies every live projectile. Order is stable per shard.
func (s *System) Snapshot() []Projectile {
	var out []Projectile
	for _, sh := range s.shards {
		sh.mu.Lock()
		out = append(out, sh.view...)
		sh.mu.Unlock()
	}
	return out
}

func (s *System) shardFor(id uuid.UUID) *shard {
	if len(s.shards) == 1 {
		return s.shards[0]
	}
	return s.shards[xxhash.Sum64(id[:])%uint64(len(s.shards))]
}

func (sh *shard) tick(stepper *Stepper, dt float64) {
	sh.mu.Lock()
	batch := slices.Clone(sh.live)
	epoch := sh.epoch
	sh.mu.Unlock()

	kept := batch[:0]
	for _, p := range batch {
		stepper.Step(p, dt)
		if p.Alive() {
			kept = append(kept, p)
		}
	}

	sh.mu.Lock()
	defer sh.mu.Unlock()
	if sh.epoch != epoch {
		return
	}
	// only Spawn appends while unlocked, so anything past the batch is new
	kept = append(kept, sh.live[len(batch):]...)
	sh.live = kept
	sh.view = sh.view[:0]
	for _, p := range kept {
		sh.view = append(sh.view, *p)
	}
}
