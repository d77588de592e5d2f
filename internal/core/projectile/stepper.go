package projectile

import (
	"context"
	"math"

	"github.com/zeusync/ricochet/internal/core/armor"
	"github.com/zeusync/ricochet/internal/core/ballistics"
	"github.com/zeusync/ricochet/internal/core/events/bus"
	"github.com/zeusync/ricochet/internal/core/observability/log"
	"github.com/zeusync/ricochet/internal/core/observability/metrics"
	"github.com/zeusync/ricochet/internal/core/systems/physics"
)

// Stepper advances projectiles through one physics tick at a time. It holds
// no per-projectile state, so one Stepper can serve many goroutines as long
// as each projectile is stepped by one of them.
type Stepper struct {
	host    Host
	cfg     Config
	logger  log.Log
	events  bus.EventBus
	metrics *metrics.Recorder
}

type Option func(*Stepper)

func WithLogger(l log.Log) Option {
	return func(s *Stepper) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithEventBus publishes Impact and Destroyed events on b.
func WithEventBus(b bus.EventBus) Option {
	return func(s *Stepper) { s.events = b }
}

func WithMetrics(r *metrics.Recorder) Option {
	return func(s *Stepper) { s.metrics = r }
}

func NewStepper(host Host, cfg Config, opts ...Option) (*Stepper, error) {
	if host == nil {
		return nil, ErrNilHost
	}
	s := &Stepper{
		host:   host,
		cfg:    cfg.withDefaults(),
		logger: log.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(log.String("component", "projectile.stepper"))
	return s, nil
}

// Config returns the effective configuration after defaults.
func (s *Stepper) Config() Config { return s.cfg }

// Step advances p by dt seconds. Destroyed projectiles are left untouched;
// check p.Alive afterwards.
func (s *Stepper) Step(p *Projectile, dt float64) {
	if p == nil || !p.Alive() {
		return
	}
	if !(dt > 0) || !isFinite(dt) {
		dt = 0
	}
	p.sanitize()

	p.LifeTimer += dt
	if p.LifeTimer > s.cfg.MaxLifetime.Seconds() {
		s.terminate(p, ReasonExpired, 0)
		return
	}

	speed := p.Velocity.Len()
	remaining := speed * dt
	if !(remaining > 0) {
		return
	}
	dir := p.Velocity.Scale(1 / speed)

	for i := 0; i < s.cfg.MaxIterations && remaining > 0; i++ {
		// the firer's own body never stops its round, even from inside
		hit, ok := physics.ClosestExcept(s.host.Cast(p.Position, dir, remaining, s.cfg.HitMask), p.Owner)
		if !ok {
			p.advance(dir, remaining)
			return
		}

		consumed := clampDistance(hit.Distance, remaining)

		normal := hit.Normal.Normalized()
		if normal.IsZero() {
			normal = dir.Neg()
		}
		p.Position = hit.Point.Add(normal.Scale(s.cfg.Separation))
		p.DistanceTraveled += consumed
		remaining -= consumed

		if !s.resolveHit(p, hit, normal, dir) {
			return
		}

		speed = p.Velocity.Len()
		dir = p.Velocity.Scale(1 / speed)
		if hit.Distance == 0 {
			break
		}
	}
}

// resolveHit solves the impact and applies the verdict. It reports whether
// the projectile survived (a granted ricochet).
func (s *Stepper) resolveHit(p *Projectile, hit physics.Hit, normal, dir physics.Vec2) bool {
	profile, armored := s.host.Armor(hit.Collider)
	armored = armored && profile != nil

	arc := armor.ArcFront
	nominal := s.cfg.DefaultArmorMM
	if armored {
		arc, nominal = profile.Resolve(hit.Point, dir)
	}

	res := ballistics.Solve(ballistics.ImpactInput{
		Velocity:           p.Velocity,
		Normal:             normal,
		DistanceTraveledM:  p.DistanceTraveled,
		ArmorNominalMM:     nominal,
		Shell:              p.Shell,
		RicochetCountSoFar: p.RicochetCount,
	})

	verdict := res.Verdict()
	var sink DamageSink
	if verdict == ballistics.VerdictPenetrated {
		var ok bool
		sink, ok = s.host.DamageSink(hit.Collider)
		if !ok || sink == nil {
			// nothing to receive the damage
			verdict = ballistics.VerdictAbsorbed
		}
	}

	impact := Impact{
		Projectile:       p.ID,
		Collider:         hit.Collider,
		Point:            hit.Point,
		Normal:           normal,
		Shell:            p.Shell.Kind,
		Armored:          armored,
		Arc:              arc,
		ArmorNominalMM:   nominal,
		RicochetCount:    p.RicochetCount,
		DistanceTraveled: p.DistanceTraveled,
		Result:           res,
		Verdict:          verdict,
	}
	if verdict == ballistics.VerdictPenetrated {
		impact.Damage = res.Damage
	}

	if armored {
		profile.ReportOutcome(armor.OutcomeFor(verdict))
	}
	s.logImpact(impact)
	ctx := context.Background()
	s.metrics.RecordImpact(ctx, p.Shell.Kind.String(), verdict.String(), arcLabel(impact))

	switch verdict {
	case ballistics.VerdictPenetrated:
		sink.ApplyDamage(res.Damage)
		s.metrics.RecordDamage(ctx, p.Shell.Kind.String(), res.Damage)
		s.publish(EventImpact, impact)
		s.terminate(p, ReasonPenetrated, hit.Collider)
		return false
	case ballistics.VerdictAbsorbed:
		s.publish(EventImpact, impact)
		s.terminate(p, ReasonAbsorbed, hit.Collider)
		return false
	}

	s.publish(EventImpact, impact)

	if p.RicochetCount >= p.Shell.MaxRicochets {
		s.terminate(p, ReasonRicochetLimit, hit.Collider)
		return false
	}
	if !s.cfg.RicochetMask.Contains(hit.Layer) {
		s.terminate(p, ReasonNonRicochetSurface, hit.Collider)
		return false
	}

	p.RicochetCount++
	p.Velocity = physics.Sanitize(s.exitVelocity(res.NewVelocity, normal))
	s.metrics.RecordRicochet(ctx, p.Shell.Kind.String())

	if speed := p.Velocity.Len(); speed < s.cfg.MinSpeed || speed == 0 {
		s.terminate(p, ReasonTooSlow, hit.Collider)
		return false
	}
	return true
}

// exitVelocity tilts the reflected direction off the surface until its
// normal component is at least MinExitNormalFraction, keeping the tangential
// sense and the speed, then applies damping. The normal faces the side the
// projectile came from.
func (s *Stepper) exitVelocity(reflected, normal physics.Vec2) physics.Vec2 {
	mag := reflected.Len()
	if mag > 1e-4 {
		dir := reflected.Scale(1 / mag)
		minN := s.cfg.MinExitNormalFraction
		if n := dir.Dot(normal); n < minN {
			tangent := dir.Sub(normal.Scale(n)).Normalized()
			if tangent.IsZero() {
				dir = normal
			} else {
				dir = tangent.Scale(math.Sqrt(1 - minN*minN)).Add(normal.Scale(minN))
			}
			reflected = dir.Scale(mag)
		}
	}
	return reflected.Scale(s.cfg.RicochetDamping)
}

func (s *Stepper) terminate(p *Projectile, reason TerminalReason, collider physics.ColliderID) {
	p.destroy(reason)
	s.metrics.RecordTermination(context.Background(), reason.String())

	if s.logger.Enabled(log.LevelDebug) {
		s.logger.Debug("projectile destroyed",
			log.Stringer("projectile", p.ID),
			log.Stringer("reason", reason),
			log.Int("ricochets", p.RicochetCount),
			log.Float64("distance", p.DistanceTraveled),
			log.Float64("lifetime", p.LifeTimer),
		)
	}

	s.publish(EventDestroyed, Destroyed{
		Projectile:       p.ID,
		Reason:           reason,
		Position:         p.Position,
		RicochetCount:    p.RicochetCount,
		DistanceTraveled: p.DistanceTraveled,
		Collider:         collider,
	})
}

func (s *Stepper) publish(eventType string, payload any) {
	if s.events == nil || !s.events.HasSubscribers(eventType) {
		return
	}
	if err := s.events.Publish(bus.NewEvent(eventType, eventSource, payload)); err != nil {
		s.logger.Warn("event handler failed", log.String("event", eventType), log.Error(err))
	}
}

func (s *Stepper) logImpact(i Impact) {
	if !s.logger.Enabled(log.LevelDebug) {
		return
	}
	r := i.Result
	s.logger.Debug("impact",
		log.Stringer("projectile", i.Projectile),
		log.Uint64("collider", uint64(i.Collider)),
		log.Stringer("shell", i.Shell),
		log.Float64("angle", r.Angle),
		log.Float64("angle_normalized", r.AnglePrime),
		log.Float64("threshold", r.RicochetThreshold),
		log.Bool("overmatch_3x", r.Overmatch3x),
		log.Bool("overmatch_2x_relaxed", r.Overmatch2xRelaxed),
		log.String("arc", arcLabel(i)),
		log.Float64("armor_nominal_mm", i.ArmorNominalMM),
		log.Float64("armor_effective_mm", r.EffectiveArmorMM),
		log.Float64("distance", i.DistanceTraveled),
		log.Float64("penetration_mm", r.PenetrationAtDistanceMM),
		log.Int("ricochets", i.RicochetCount),
		log.Stringer("verdict", i.Verdict),
		log.Float64("damage", i.Damage),
	)
}

func arcLabel(i Impact) string {
	if !i.Armored {
		return "none"
	}
	return i.Arc.String()
}

func clampDistance(d, remaining float64) float64 {
	if !(d > 0) {
		return 0
	}
	if d > remaining {
		return remaining
	}
	return d
}
