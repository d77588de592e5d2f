package metrics

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

type recordingCounter struct {
	noop.Int64Counter
	mu     sync.Mutex
	byAttr map[attribute.Distinct]int64
	sets   map[attribute.Distinct]attribute.Set
}

func (c *recordingCounter) Add(_ context.Context, incr int64, opts ...metric.AddOption) {
	set := metric.NewAddConfig(opts).Attributes()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byAttr[set.Equivalent()] += incr
	c.sets[set.Equivalent()] = set
}

func (c *recordingCounter) count(kv ...attribute.KeyValue) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	set := attribute.NewSet(kv...)
	return c.byAttr[set.Equivalent()]
}

type recordingMeter struct {
	noop.Meter
	counters  map[string]*recordingCounter
	callbacks int
}

func newRecordingMeter() *recordingMeter {
	return &recordingMeter{counters: map[string]*recordingCounter{}}
}

func (m *recordingMeter) Int64Counter(name string, _ ...metric.Int64CounterOption) (metric.Int64Counter, error) {
	c := &recordingCounter{byAttr: map[attribute.Distinct]int64{}, sets: map[attribute.Distinct]attribute.Set{}}
	m.counters[name] = c
	return c, nil
}

func (m *recordingMeter) RegisterCallback(f metric.Callback, instruments ...metric.Observable) (metric.Registration, error) {
	m.callbacks++
	return m.Meter.RegisterCallback(f, instruments...)
}

func TestRecorderCounts(t *testing.T) {
	m := newRecordingMeter()
	r, err := NewRecorder(m)
	require.NoError(t, err)

	ctx := context.Background()
	r.RecordImpact(ctx, "AP", "ricochet", "front")
	r.RecordImpact(ctx, "AP", "ricochet", "front")
	r.RecordImpact(ctx, "HEAT", "penetrated", "rear")
	r.RecordTermination(ctx, "ricochet_limit")
	r.RecordRicochet(ctx, "AP")

	impacts := m.counters["ballistics.impacts"]
	require.NotNil(t, impacts)
	assert.Equal(t, int64(2), impacts.count(
		attribute.String("shell", "AP"),
		attribute.String("verdict", "ricochet"),
		attribute.String("arc", "front"),
	))
	assert.Equal(t, int64(1), impacts.count(
		attribute.String("shell", "HEAT"),
		attribute.String("verdict", "penetrated"),
		attribute.String("arc", "rear"),
	))
	assert.Equal(t, int64(1), m.counters["ballistics.projectiles.terminated"].count(attribute.String("reason", "ricochet_limit")))
	assert.Equal(t, int64(1), m.counters["ballistics.ricochets.granted"].count(attribute.String("shell", "AP")))
}

func TestObserveLiveOnce(t *testing.T) {
	m := newRecordingMeter()
	r, err := NewRecorder(m)
	require.NoError(t, err)

	require.NoError(t, r.ObserveLive(func() int64 { return 3 }))
	assert.ErrorIs(t, r.ObserveLive(func() int64 { return 0 }), ErrAlreadyObserved)
	assert.Equal(t, 1, m.callbacks)
}

func TestNilAndNopRecorder(t *testing.T) {
	var r *Recorder
	ctx := context.Background()
	r.RecordImpact(ctx, "AP", "absorbed", "side")
	r.RecordTermination(ctx, "expired")
	r.RecordDamage(ctx, "AP", 10)
	assert.NoError(t, r.ObserveLive(nil))

	n := Nop()
	require.NotNil(t, n)
	n.RecordDamage(ctx, "AP", -1)
	n.RecordDamage(ctx, "AP", 12)
}
