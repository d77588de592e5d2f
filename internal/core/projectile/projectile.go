package projectile

import (
	"github.com/google/uuid"

	"github.com/zeusync/ricochet/internal/core/ballistics"
	"github.com/zeusync/ricochet/internal/core/systems/physics"
)

// TerminalReason records why a projectile left the simulation.
type TerminalReason uint8

const (
	ReasonNone TerminalReason = iota
	ReasonExpired
	ReasonPenetrated
	ReasonAbsorbed
	ReasonRicochetLimit
	ReasonNonRicochetSurface
	ReasonTooSlow
)

func (r TerminalReason) String() string {
	switch r {
	case ReasonExpired:
		return "expired"
	case ReasonPenetrated:
		return "penetrated"
	case ReasonAbsorbed:
		return "absorbed"
	case ReasonRicochetLimit:
		return "ricochet_limit"
	case ReasonNonRicochetSurface:
		return "non_ricochet_surface"
	case ReasonTooSlow:
		return "too_slow"
	default:
		return "none"
	}
}

// Projectile is the per-round mutable state. It is owned by exactly one
// goroutine at a time: the System hands each one to a single shard.
type Projectile struct {
	ID       uuid.UUID
	Position physics.Vec2
	Velocity physics.Vec2

	RicochetCount    int
	LifeTimer        float64 // seconds
	DistanceTraveled float64 // metres

	Shell ballistics.ShellSpec
	// Owner is the firer's collider, skipped by casts. Zero means none.
	Owner physics.ColliderID

	reason TerminalReason
}

// New creates a live projectile at position flying along direction at the
// shell's muzzle speed.
func New(shell ballistics.ShellSpec, owner physics.ColliderID, position, direction physics.Vec2) *Projectile {
	shell = shell.Normalized()
	return &Projectile{
		ID:       uuid.New(),
		Position: physics.Sanitize(position),
		Velocity: direction.Normalized().Scale(shell.MuzzleSpeed),
		Shell:    shell,
		Owner:    owner,
	}
}

func (p *Projectile) Alive() bool { return p.reason == ReasonNone }

func (p *Projectile) Reason() TerminalReason { return p.reason }

// Speed is the current velocity magnitude.
func (p *Projectile) Speed() float64 { return p.Velocity.Len() }

func (p *Projectile) destroy(reason TerminalReason) {
	if p.reason == ReasonNone {
		p.reason = reason
	}
}

func (p *Projectile) advance(dir physics.Vec2, distance float64) {
	p.Position = p.Position.Add(dir.Scale(distance))
	p.DistanceTraveled += distance
}

// sanitize zeroes non-finite state so a corrupted round degrades into a
// stationary one instead of poisoning casts.
func (p *Projectile) sanitize() {
	p.Position = physics.Sanitize(p.Position)
	p.Velocity = physics.Sanitize(p.Velocity)
	if !isFinite(p.DistanceTraveled) || p.DistanceTraveled < 0 {
		p.DistanceTraveled = 0
	}
	if !isFinite(p.LifeTimer) || p.LifeTimer < 0 {
		p.LifeTimer = 0
	}
	if p.RicochetCount < 0 {
		p.RicochetCount = 0
	}
}
