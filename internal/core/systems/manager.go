package systems

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/zeusync/ricochet/internal/core/observability/log"
)

var (
	ErrDuplicateSystem = errors.New("systems: duplicate system name")
	ErrInvalidTickRate = errors.New("systems: tick rate must be positive")
)

// Manager runs registered systems in priority order on a fixed step.
type Manager struct {
	mu      sync.RWMutex
	systems []System
	states  map[string]StateIdentity
	logger  log.Log
	ticks   uint64
}

func NewManager(logger log.Log) *Manager {
	if logger == nil {
		logger = log.NewNop()
	}
	return &Manager{
		states: make(map[string]StateIdentity),
		logger: logger.With(log.String("component", "systems.manager")),
	}
}

func (m *Manager) Register(s System) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.states[s.Name()]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateSystem, s.Name())
	}
	m.systems = append(m.systems, s)
	// stable: equal priorities keep registration order
	slices.SortStableFunc(m.systems, func(a, b System) int {
		return int(b.Priority()) - int(a.Priority())
	})
	m.states[s.Name()] = StateUninitialized
	return nil
}

// ExecutionOrder returns system names in the order they run.
func (m *Manager) ExecutionOrder() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, len(m.systems))
	for i, s := range m.systems {
		out[i] = s.Name()
	}
	return out
}

func (m *Manager) State(name string) StateIdentity {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.states[name]
}

func (m *Manager) InitializeAll(ctx context.Context) error {
	for _, s := range m.snapshot() {
		if err := s.Initialize(ctx); err != nil {
			m.setState(s.Name(), StateFailed)
			return fmt.Errorf("initialize %s: %w", s.Name(), err)
		}
		m.setState(s.Name(), StateRunning)
	}
	return nil
}

// FixedUpdate runs one tick across running systems. Errors from individual
// systems are joined; a failing system does not stop the others.
func (m *Manager) FixedUpdate(ctx context.Context, dt float64) error {
	var all error
	for _, s := range m.snapshot() {
		if m.State(s.Name()) != StateRunning {
			continue
		}
		if err := s.FixedUpdate(ctx, dt); err != nil {
			all = errors.Join(all, fmt.Errorf("%s: %w", s.Name(), err))
		}
	}
	m.mu.Lock()
	m.ticks++
	m.mu.Unlock()
	return all
}

// Run ticks at tickRate Hz until ctx is done or maxTicks ticks have run
// (zero means unbounded). The step passed to systems is always 1/tickRate.
func (m *Manager) Run(ctx context.Context, tickRate float64, maxTicks uint64) error {
	if !(tickRate > 0) {
		return ErrInvalidTickRate
	}
	dt := 1 / tickRate
	ticker := time.NewTicker(time.Duration(float64(time.Second) * dt))
	defer ticker.Stop()

	var n uint64
	for maxTicks == 0 || n < maxTicks {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		if err := m.FixedUpdate(ctx, dt); err != nil {
			m.logger.Warn("tick failed", log.Uint64("tick", n), log.Error(err))
		}
		n++
	}
	return nil
}

func (m *Manager) Ticks() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ticks
}

// ShutdownAll stops systems in reverse execution order.
func (m *Manager) ShutdownAll(ctx context.Context) error {
	var all error
	systems := m.snapshot()
	for i := len(systems) - 1; i >= 0; i-- {
		s := systems[i]
		if m.State(s.Name()) != StateRunning {
			continue
		}
		if err := s.Shutdown(ctx); err != nil {
			all = errors.Join(all, fmt.Errorf("shutdown %s: %w", s.Name(), err))
			m.setState(s.Name(), StateFailed)
			continue
		}
		m.setState(s.Name(), StateShutdown)
	}
	return all
}

func (m *Manager) snapshot() []System {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.systems)
}

func (m *Manager) setState(name string, state StateIdentity) {
	m.mu.Lock()
	m.states[name] = state
	m.mu.Unlock()
}
