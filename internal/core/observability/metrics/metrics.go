package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const instrumentationName = "github.com/zeusync/ricochet/internal/core/observability/metrics"

// Recorder owns the ballistics instruments. A nil *Recorder is valid and
// records nothing.
type Recorder struct {
	impacts      metric.Int64Counter
	terminations metric.Int64Counter
	ricochets    metric.Int64Counter
	damage       metric.Float64Counter
	live         metric.Int64ObservableGauge
	meter        metric.Meter
}

// NewRecorder builds the instruments on the given meter. A nil meter uses the
// global OTel provider, which is a no-op until one is installed.
func NewRecorder(m metric.Meter) (*Recorder, error) {
	if m == nil {
		m = otel.Meter(instrumentationName)
	}
	r := &Recorder{meter: m}

	var err error
	r.impacts, err = m.Int64Counter(
		"ballistics.impacts",
		metric.WithDescription("Solved impacts by verdict"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating impacts counter: %w", err)
	}

	r.terminations, err = m.Int64Counter(
		"ballistics.projectiles.terminated",
		metric.WithDescription("Destroyed projectiles by reason"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating terminations counter: %w", err)
	}

	r.ricochets, err = m.Int64Counter(
		"ballistics.ricochets.granted",
		metric.WithDescription("Reflections applied to live projectiles"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating ricochets counter: %w", err)
	}

	r.damage, err = m.Float64Counter(
		"ballistics.damage.applied",
		metric.WithDescription("Damage handed to damage sinks"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating damage counter: %w", err)
	}

	return r, nil
}

// Nop returns a recorder backed by the no-op meter.
func Nop() *Recorder {
	r, _ := NewRecorder(noop.NewMeterProvider().Meter(instrumentationName))
	return r
}

func (r *Recorder) RecordImpact(ctx context.Context, shellKind, verdict, arc string) {
	if r == nil {
		return
	}
	r.impacts.Add(ctx, 1, metric.WithAttributes(
		attribute.String("shell", shellKind),
		attribute.String("verdict", verdict),
		attribute.String("arc", arc),
	))
}

func (r *Recorder) RecordRicochet(ctx context.Context, shellKind string) {
	if r == nil {
		return
	}
	r.ricochets.Add(ctx, 1, metric.WithAttributes(attribute.String("shell", shellKind)))
}

func (r *Recorder) RecordDamage(ctx context.Context, shellKind string, amount float64) {
	if r == nil || !(amount > 0) {
		return
	}
	r.damage.Add(ctx, amount, metric.WithAttributes(attribute.String("shell", shellKind)))
}

func (r *Recorder) RecordTermination(ctx context.Context, reason string) {
	if r == nil {
		return
	}
	r.terminations.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}

// ObserveLive registers a gauge reporting the number of live projectiles.
// Only one source may be registered per recorder.
func (r *Recorder) ObserveLive(count func() int64) error {
	if r == nil {
		return nil
	}
	if r.live != nil {
		return ErrAlreadyObserved
	}

	gauge, err := r.meter.Int64ObservableGauge(
		"ballistics.projectiles.live",
		metric.WithDescription("Projectiles currently in flight"),
	)
	if err != nil {
		return fmt.Errorf("creating live gauge: %w", err)
	}

	_, err = r.meter.RegisterCallback(
		func(_ context.Context, o metric.Observer) error {
			o.ObserveInt64(gauge, count())
			return nil
		},
		gauge,
	)
	if err != nil {
		return fmt.Errorf("registering live callback: %w", err)
	}
	r.live = gauge
	return nil
}
