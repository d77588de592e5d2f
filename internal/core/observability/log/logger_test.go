package log

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observed(level Level) (*Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return FromZap(zap.New(core), level), logs
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, LevelWarn, ParseLevel(" warning "))
	assert.Equal(t, LevelError, ParseLevel("error"))
	assert.Equal(t, LevelInfo, ParseLevel("verbose"))
	assert.Equal(t, "warn", LevelWarn.String())
}

func TestLevelFiltering(t *testing.T) {
	l, logs := observed(LevelWarn)

	l.Debug("dropped")
	l.Info("dropped")
	l.Warn("kept")
	assert.False(t, l.Enabled(LevelInfo))
	require.Equal(t, 1, logs.Len())

	l.SetLevel(LevelDebug)
	assert.Equal(t, LevelDebug, l.GetLevel())
	l.Debug("now kept")
	assert.Equal(t, 2, logs.Len())
}

func TestFieldConversion(t *testing.T) {
	l, logs := observed(LevelDebug)

	l.With(String("component", "stepper")).Info("impact",
		Bool("ricochet", true),
		Float64("angle", 61.5),
		Int("count", 2),
		Int64("tick", 9),
		Uint64("collider", 7),
		Duration("dt", 20*time.Millisecond),
		Stringer("level", LevelWarn),
		Error(errors.New("boom")),
		Any("extra", []int{1}),
	)

	require.Equal(t, 1, logs.Len())
	ctx := logs.All()[0].ContextMap()
	assert.Equal(t, "stepper", ctx["component"])
	assert.Equal(t, true, ctx["ricochet"])
	assert.Equal(t, 61.5, ctx["angle"])
	assert.Equal(t, int64(2), ctx["count"])
	assert.Equal(t, uint64(7), ctx["collider"])
	assert.Equal(t, "warn", ctx["level"])
	assert.Equal(t, "boom", ctx["error"])
}

func TestNopAndProvide(t *testing.T) {
	n := NewNop()
	n.Error("nothing happens")
	assert.NotNil(t, Provide())
}
