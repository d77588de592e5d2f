package armor

import (
	"fmt"
	"math"
	"sync"

	"github.com/zeusync/ricochet/internal/core/ballistics"
	"github.com/zeusync/ricochet/internal/core/systems/physics"
)

// Arc is an armor sector relative to the target's nose.
type Arc uint8

const (
	ArcFront Arc = iota
	ArcSide
	ArcRear
)

func (a Arc) String() string {
	switch a {
	case ArcFront:
		return "front"
	case ArcSide:
		return "side"
	case ArcRear:
		return "rear"
	default:
		return fmt.Sprintf("Arc(%d)", uint8(a))
	}
}

// HitOutcome is the last verdict reported against a profile, kept for UI
// feedback only.
type HitOutcome uint8

const (
	OutcomeNone HitOutcome = iota
	OutcomePenetration
	OutcomeNoPenetration
	OutcomeRicochet
)

func (o HitOutcome) String() string {
	switch o {
	case OutcomePenetration:
		return "penetration"
	case OutcomeNoPenetration:
		return "no_penetration"
	case OutcomeRicochet:
		return "ricochet"
	default:
		return "none"
	}
}

// OutcomeFor maps an applied verdict onto the feedback outcome.
func OutcomeFor(v ballistics.Verdict) HitOutcome {
	switch v {
	case ballistics.VerdictRicochet:
		return OutcomeRicochet
	case ballistics.VerdictPenetrated:
		return OutcomePenetration
	default:
		return OutcomeNoPenetration
	}
}

const (
	DefaultFrontHalfAngleDeg = 45.0
	DefaultSideHalfAngleDeg  = 120.0
)

// Profile is a target's directional armor. Thickness is only changed through
// AddArmor/SetThickness, which keep every arc at or above zero. All methods
// are safe for concurrent use.
type Profile struct {
	mu        sync.RWMutex
	thickness [3]float64
	frontHalf float64
	sideHalf  float64
	facing    func() physics.Vec2

	lastArc     Arc
	lastOutcome HitOutcome
}

type Option func(*Profile)

// WithSectors overrides the front and side half-angles. The values are
// independent: a side half-angle below the front one leaves the side arc
// empty.
func WithSectors(frontHalfDeg, sideHalfDeg float64) Option {
	return func(p *Profile) {
		p.frontHalf = frontHalfDeg
		p.sideHalf = sideHalfDeg
	}
}

// WithFacing fixes the nose direction.
func WithFacing(nose physics.Vec2) Option {
	return func(p *Profile) {
		p.facing = func() physics.Vec2 { return nose }
	}
}

// WithFacingFunc reads the nose direction from the owning entity on every
// lookup, so the profile follows hull rotation.
func WithFacingFunc(nose func() physics.Vec2) Option {
	return func(p *Profile) {
		p.facing = nose
	}
}

func NewProfile(frontMM, sideMM, rearMM float64, opts ...Option) *Profile {
	p := &Profile{
		thickness: [3]float64{clampThickness(frontMM), clampThickness(sideMM), clampThickness(rearMM)},
		frontHalf: DefaultFrontHalfAngleDeg,
		sideHalf:  DefaultSideHalfAngleDeg,
		lastArc:   ArcRear,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Thickness returns the nominal thickness of an arc in mm.
func (p *Profile) Thickness(arc Arc) float64 {
	if arc > ArcRear {
		return 0
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.thickness[arc]
}

// AddArmor changes an arc by amount (negative values thin it) and returns the
// new thickness, never below zero.
func (p *Profile) AddArmor(arc Arc, amount float64) float64 {
	if arc > ArcRear {
		return 0
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.thickness[arc] = clampThickness(p.thickness[arc] + finiteOrZero(amount))
	return p.thickness[arc]
}

// SetThickness overwrites an arc, clamped at zero.
func (p *Profile) SetThickness(arc Arc, mm float64) {
	if arc > ArcRear {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.thickness[arc] = clampThickness(mm)
}

// Sectors returns the front and side half-angles in degrees.
func (p *Profile) Sectors() (frontHalfDeg, sideHalfDeg float64) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.frontHalf, p.sideHalf
}

// Facing returns the current nose direction, defaulting to +Y.
func (p *Profile) Facing() physics.Vec2 {
	p.mu.RLock()
	facing := p.facing
	p.mu.RUnlock()
	if facing == nil {
		return physics.Up
	}
	nose := facing().Normalized()
	if nose.IsZero() {
		return physics.Up
	}
	return nose
}

// SetFacing fixes the nose direction, replacing any facing func.
func (p *Profile) SetFacing(nose physics.Vec2) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.facing = func() physics.Vec2 { return nose }
}

// ArcFor classifies an incoming flight direction without recording it.
func (p *Profile) ArcFor(incoming physics.Vec2) Arc {
	toShooter := incoming.Neg().Normalized()
	delta := math.Abs(physics.SignedAngle(p.Facing(), toShooter))

	frontHalf, sideHalf := p.Sectors()
	switch {
	case delta <= frontHalf:
		return ArcFront
	case delta <= sideHalf:
		return ArcSide
	default:
		return ArcRear
	}
}

// Resolve picks the arc struck by a round flying along incoming and returns
// its nominal thickness. The arc is remembered for feedback and the previous
// outcome cleared until ReportOutcome is called.
func (p *Profile) Resolve(_ physics.Vec2, incoming physics.Vec2) (Arc, float64) {
	arc := p.ArcFor(incoming)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.lastArc = arc
	p.lastOutcome = OutcomeNone
	return arc, p.thickness[arc]
}

// ReportOutcome records the verdict of the hit last resolved.
func (p *Profile) ReportOutcome(outcome HitOutcome) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lastOutcome = outcome
}

// LastHit returns the last resolved arc and its reported outcome.
func (p *Profile) LastHit() (Arc, HitOutcome) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lastArc, p.lastOutcome
}

func clampThickness(mm float64) float64 {
	if math.IsNaN(mm) || mm < 0 {
		return 0
	}
	if math.IsInf(mm, 1) {
		return math.MaxFloat64
	}
	return mm
}

func finiteOrZero(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
