package systems

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type journal struct {
	mu      sync.Mutex
	entries []string
}

func (j *journal) add(s string) {
	j.mu.Lock()
	j.entries = append(j.entries, s)
	j.mu.Unlock()
}

func (j *journal) all() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]string(nil), j.entries...)
}

type fakeSystem struct {
	name     string
	priority Priority
	j        *journal
	initErr  error
	tickErr  error
	ticks    int
}

func (f *fakeSystem) Name() string       { return f.name }
func (f *fakeSystem) Priority() Priority { return f.priority }

func (f *fakeSystem) Initialize(context.Context) error {
	f.j.add("init:" + f.name)
	return f.initErr
}

func (f *fakeSystem) FixedUpdate(context.Context, float64) error {
	f.ticks++
	f.j.add("tick:" + f.name)
	return f.tickErr
}

func (f *fakeSystem) Shutdown(context.Context) error {
	f.j.add("stop:" + f.name)
	return nil
}

func TestManagerOrdersByPriority(t *testing.T) {
	j := &journal{}
	m := NewManager(nil)
	require.NoError(t, m.Register(&fakeSystem{name: "render", priority: PriorityLow, j: j}))
	require.NoError(t, m.Register(&fakeSystem{name: "projectiles", priority: PriorityHigh, j: j}))
	require.NoError(t, m.Register(&fakeSystem{name: "ai", priority: PriorityLow, j: j}))

	assert.Equal(t, []string{"projectiles", "render", "ai"}, m.ExecutionOrder())

	err := m.Register(&fakeSystem{name: "ai", j: j})
	assert.ErrorIs(t, err, ErrDuplicateSystem)
}

func TestManagerLifecycle(t *testing.T) {
	j := &journal{}
	m := NewManager(nil)
	a := &fakeSystem{name: "a", priority: PriorityHighest, j: j}
	b := &fakeSystem{name: "b", priority: PriorityNormal, j: j}
	require.NoError(t, m.Register(b))
	require.NoError(t, m.Register(a))

	ctx := context.Background()
	require.NoError(t, m.InitializeAll(ctx))
	assert.Equal(t, StateRunning, m.State("a"))

	require.NoError(t, m.FixedUpdate(ctx, 0.02))
	require.NoError(t, m.ShutdownAll(ctx))

	assert.Equal(t, []string{"init:a", "init:b", "tick:a", "tick:b", "stop:b", "stop:a"}, j.all())
	assert.Equal(t, StateShutdown, m.State("b"))
	assert.Equal(t, uint64(1), m.Ticks())
}

func TestManagerInitFailure(t *testing.T) {
	j := &journal{}
	boom := errors.New("boom")
	m := NewManager(nil)
	require.NoError(t, m.Register(&fakeSystem{name: "ok", priority: PriorityHigh, j: j}))
	require.NoError(t, m.Register(&fakeSystem{name: "bad", priority: PriorityLow, j: j, initErr: boom}))

	err := m.InitializeAll(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, StateFailed, m.State("bad"))

	// only running systems tick
	require.NoError(t, m.FixedUpdate(context.Background(), 0.02))
	assert.Equal(t, []string{"init:ok", "init:bad", "tick:ok"}, j.all())
}

func TestManagerJoinsTickErrors(t *testing.T) {
	j := &journal{}
	e1, e2 := errors.New("first"), errors.New("second")
	m := NewManager(nil)
	require.NoError(t, m.Register(&fakeSystem{name: "a", j: j, tickErr: e1}))
	require.NoError(t, m.Register(&fakeSystem{name: "b", j: j, tickErr: e2}))
	require.NoError(t, m.InitializeAll(context.Background()))

	err := m.FixedUpdate(context.Background(), 0.02)
	assert.ErrorIs(t, err, e1)
	assert.ErrorIs(t, err, e2)
}

func TestManagerRun(t *testing.T) {
	j := &journal{}
	m := NewManager(nil)
	s := &fakeSystem{name: "a", j: j}
	require.NoError(t, m.Register(s))
	require.NoError(t, m.InitializeAll(context.Background()))

	assert.ErrorIs(t, m.Run(context.Background(), 0, 1), ErrInvalidTickRate)

	require.NoError(t, m.Run(context.Background(), 1000, 3))
	assert.Equal(t, 3, s.ticks)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, m.Run(ctx, 1, 0), context.DeadlineExceeded)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "running", StateRunning.String())
	assert.Equal(t, "failed", StateFailed.String())
}
