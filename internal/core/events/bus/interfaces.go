package bus

import "time"

// EventBus is a thread-safe, in-process pub/sub bus used for combat feedback
// (impacts, projectile terminations) that visual and statistics collaborators
// consume without the simulation knowing about them.
//
//   - Type-based fan-out: handlers subscribe by Event.Type().
//   - Synchronous delivery: Publish calls handlers in the caller goroutine.
//   - Error aggregation: handler errors are joined and returned from Publish.
//   - Observers receive delivery callbacks; counters are kept only while at
//     least one observer is registered.
type EventBus interface {
	// Publish delivers the event synchronously to all active subscribers of
	// event.Type(). Handler errors are joined.
	Publish(event Event) error
	// PublishWithFilters drops the event silently if any filter rejects it.
	PublishWithFilters(event Event, filters ...EventFilter) error
	// PublishBatch publishes events in order and joins errors across them.
	PublishBatch(events ...Event) error

	Subscribe(eventType string, handler EventHandler) (Subscription, error)
	// Unsubscribe cancels the given Subscription. Nil is a no-op.
	Unsubscribe(Subscription) error
	// HasSubscribers lets publishers skip building events nobody reads.
	HasSubscribers(eventType string) bool

	AddObserver(obs EventBusObserver)
	RemoveObserver(obs EventBusObserver)
	GetMetrics() EventBusMetrics
}

// Event is an immutable message transported by the EventBus.
type Event interface {
	Type() string
	Source() string
	Timestamp() time.Time
	Data() any
}

type (
	EventHandler func(event Event) error
	EventFilter  func(event Event) bool
)

// Subscription is a registered handler bound to an event type.
type Subscription interface {
	ID() string
	EventType() string
	IsActive() bool
	// Cancel de-registers the handler. Multiple calls are safe.
	Cancel() error
}

// EventBusObserver is notified about deliveries. Observers should return quickly.
type EventBusObserver interface {
	OnPublish(eventType string, event Event)
	OnDelivered(eventType string, handlers int, err error, duration time.Duration)
}

type EventBusMetrics struct {
	Published         uint64
	DeliveredHandlers uint64
	Errors            uint64
	DroppedByFilters  uint64
	SubscribersActive uint64
}
