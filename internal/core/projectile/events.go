package projectile

import (
	"github.com/google/uuid"

	"github.com/zeusync/ricochet/internal/core/armor"
	"github.com/zeusync/ricochet/internal/core/ballistics"
	"github.com/zeusync/ricochet/internal/core/systems/physics"
)

// Bus event types. Payloads are Impact and Destroyed values.
const (
	EventImpact    = "ballistics.impact"
	EventDestroyed = "ballistics.destroyed"
)

const eventSource = "projectile.stepper"

// Impact describes one solved hit, for visual and statistics consumers.
type Impact struct {
	Projectile uuid.UUID
	Collider   physics.ColliderID
	Point      physics.Vec2
	Normal     physics.Vec2

	Shell ballistics.ShellKind
	// Armored is false when the collider had no profile and the default
	// thickness was used; Arc is meaningless then.
	Armored        bool
	Arc            armor.Arc
	ArmorNominalMM float64

	RicochetCount    int
	DistanceTraveled float64

	Result ballistics.ImpactResult
	// Verdict is the applied outcome. It differs from Result.Verdict() only
	// when a penetration hit a collider without a damage sink.
	Verdict ballistics.Verdict
	Damage  float64
}

// Destroyed is published once per projectile when it leaves the simulation.
type Destroyed struct {
	Projectile       uuid.UUID
	Reason           TerminalReason
	Position         physics.Vec2
	RicochetCount    int
	DistanceTraveled float64
	// Collider is the last struck collider, zero for expiry.
	Collider physics.ColliderID
}
