package systems

import (
	"context"
)

// System is a fixed-step simulation processor driven by the Manager.
type System interface {
	Name() string
	Priority() Priority

	Initialize(ctx context.Context) error
	FixedUpdate(ctx context.Context, fixedDeltaTime float64) error
	Shutdown(ctx context.Context) error
}

// Priority defines execution order. Higher runs first within a tick.
type Priority uint16

const (
	PriorityLowest  Priority = 200
	PriorityLow     Priority = 500
	PriorityNormal  Priority = 600
	PriorityHigh    Priority = 1000
	PriorityHighest Priority = 1300
)

// StateIdentity is the lifecycle state the Manager tracks per system.
type StateIdentity uint8

const (
	StateUninitialized StateIdentity = iota
	StateRunning
	StateShutdown
	StateFailed
)

func (s StateIdentity) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateShutdown:
		return "shutdown"
	case StateFailed:
		return "failed"
	default:
		return "uninitialized"
	}
}
