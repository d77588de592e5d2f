package bus

import (
	"errors"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type testObserver struct {
	mu             sync.Mutex
	publishCount   int
	deliveredCount int
	lastErr        error
}

func (o *testObserver) OnPublish(_ string, _ Event) {
	o.mu.Lock()
	o.publishCount++
	o.mu.Unlock()
}

func (o *testObserver) OnDelivered(_ string, handlers int, err error, _ time.Duration) {
	o.mu.Lock()
	o.deliveredCount += handlers
	o.lastErr = err
	o.mu.Unlock()
}

func TestBasicPublishSubscribe(t *testing.T) {
	b := New()
	var got any
	_, err := b.Subscribe("ballistics.impact", func(e Event) error {
		got = e.Data()
		return nil
	})
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if err = b.Publish(NewEvent("ballistics.impact", "tester", 123)); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if got != 123 {
		t.Fatalf("handler not called with payload, got %v", got)
	}
}

func TestOnlyMatchingTypeDelivered(t *testing.T) {
	b := New()
	var a, c int
	_, _ = b.Subscribe("a", func(Event) error { a++; return nil })
	_, _ = b.Subscribe("c", func(Event) error { c++; return nil })
	_ = b.Publish(NewEvent("a", "src", nil))
	if a != 1 || c != 0 {
		t.Fatalf("type routing failed: %d %d", a, c)
	}
	if !b.HasSubscribers("a") || b.HasSubscribers("zzz") {
		t.Fatalf("HasSubscribers mismatch")
	}
}

func TestHandlerErrorsJoined(t *testing.T) {
	b := New()
	e1 := errors.New("first")
	e2 := errors.New("second")
	_, _ = b.Subscribe("x", func(Event) error { return e1 })
	_, _ = b.Subscribe("x", func(Event) error { return e2 })
	_, _ = b.Subscribe("x", func(Event) error { return nil })

	err := b.Publish(NewEvent("x", "src", nil))
	if !errors.Is(err, e1) || !errors.Is(err, e2) {
		t.Fatalf("expected joined error, got %v", err)
	}

	err = b.PublishBatch(NewEvent("x", "src", nil), NewEvent("none", "src", nil))
	if !errors.Is(err, e1) {
		t.Fatalf("batch should surface handler errors, got %v", err)
	}
}

func TestCancelStopsDelivery(t *testing.T) {
	b := New()
	count := 0
	sub, _ := b.Subscribe("x", func(Event) error { count++; return nil })
	_ = b.Publish(NewEvent("x", "src", nil))
	if err := b.Unsubscribe(sub); err != nil {
		t.Fatalf("unsubscribe: %v", err)
	}
	_ = sub.Cancel()
	_ = b.Unsubscribe(nil)
	_ = b.Publish(NewEvent("x", "src", nil))
	if count != 1 {
		t.Fatalf("expected 1 delivery, got %d", count)
	}
	if sub.IsActive() || b.HasSubscribers("x") {
		t.Fatalf("subscription still active")
	}
}

func TestNilArguments(t *testing.T) {
	b := New()
	if _, err := b.Subscribe("x", nil); !errors.Is(err, ErrNilHandler) {
		t.Fatalf("expected ErrNilHandler, got %v", err)
	}
	if err := b.Publish(nil); !errors.Is(err, ErrNilEvent) {
		t.Fatalf("expected ErrNilEvent, got %v", err)
	}
}

func TestFiltersDropSilently(t *testing.T) {
	b := New()
	obs := &testObserver{}
	b.AddObserver(obs)
	count := 0
	_, _ = b.Subscribe("x", func(Event) error { count++; return nil })

	pass := func(Event) bool { return true }
	drop := func(Event) bool { return false }
	if err := b.PublishWithFilters(NewEvent("x", "src", nil), pass, drop); err != nil {
		t.Fatalf("filtered publish should not error: %v", err)
	}
	_ = b.PublishWithFilters(NewEvent("x", "src", nil), pass)
	if count != 1 {
		t.Fatalf("expected 1 delivery, got %d", count)
	}
	if m := b.GetMetrics(); m.DroppedByFilters != 1 {
		t.Fatalf("expected one drop, got %+v", m)
	}
}

func TestObserverMetricsOptional(t *testing.T) {
	b := New()
	_, _ = b.Subscribe("e", func(e Event) error { return nil })
	_ = b.Publish(NewEvent("e", "s", nil))
	if m := b.GetMetrics(); m.Published != 0 || m.DeliveredHandlers != 0 {
		t.Fatalf("metrics should be zero without observers: %+v", m)
	}

	obs := &testObserver{}
	b.AddObserver(obs)
	_ = b.Publish(NewEvent("e", "s", nil))
	m := b.GetMetrics()
	if m.Published != 1 || m.DeliveredHandlers != 1 || m.SubscribersActive != 1 {
		t.Fatalf("metrics should update with observer: %+v", m)
	}
	if obs.publishCount != 1 || obs.deliveredCount != 1 {
		t.Fatalf("observer not called: %+v", obs)
	}

	b.RemoveObserver(obs)
	_ = b.Publish(NewEvent("e", "s", nil))
	if obs.publishCount != 1 {
		t.Fatalf("removed observer still notified")
	}
}

func TestConcurrentPublishAndSubscribe(t *testing.T) {
	b := New()
	var delivered atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = b.Publish(NewEvent("tick", "p", j))
			}
		}()
		go func() {
			defer wg.Done()
			sub, _ := b.Subscribe("tick", func(Event) error { delivered.Add(1); return nil })
			_ = sub.Cancel()
		}()
	}
	wg.Wait()
	if b.HasSubscribers("tick") {
		t.Fatalf("all subscriptions were cancelled")
	}
}

func BenchmarkPublishManySubscribers(b *testing.B) {
	for _, subs := range []int{1, 16, 256} {
		b.Run("subs="+strconv.Itoa(subs), func(b *testing.B) {
			bus := New()
			var c atomic.Int64
			for i := 0; i < subs; i++ {
				_, _ = bus.Subscribe("tick", func(Event) error { c.Add(1); return nil })
			}
			e := NewEvent("tick", "bench", nil)
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = bus.Publish(e)
			}
		})
	}
}
