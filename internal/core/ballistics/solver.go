package ballistics

import (
	"math"

	"github.com/zeusync/ricochet/internal/core/systems/physics"
)

const (
	// squared speed below which a projectile is treated as stationary
	stationarySpeedSq = 1e-6

	overmatchNoRicochet = 3.0
	overmatchRelaxed    = 2.0

	relaxedThresholdMin = 20.0
	relaxedThresholdMax = 89.0

	// damage kept per prior ricochet
	ricochetDamageKeep = 0.8
)

// cosine floor: obliquity beyond 89° is treated as 89°
var minCos = math.Cos(physics.Deg2Rad(89))

// ImpactInput is everything the solver needs about a single hit.
type ImpactInput struct {
	Velocity           physics.Vec2
	Normal             physics.Vec2
	DistanceTraveledM  float64
	ArmorNominalMM     float64
	Shell              ShellSpec
	RicochetCountSoFar int
}

// ImpactResult is the verdict plus the diagnostics that produced it.
// Ricochet and Penetrated are never both true; both false means absorbed.
type ImpactResult struct {
	Ricochet    bool
	Penetrated  bool
	Damage      float64
	NewVelocity physics.Vec2

	Angle                   float64
	AnglePrime              float64
	RicochetThreshold       float64
	EffectiveArmorMM        float64
	PenetrationAtDistanceMM float64
	Overmatch3x             bool
	Overmatch2xRelaxed      bool
}

// Verdict collapses the result flags into the three outcomes.
func (r ImpactResult) Verdict() Verdict {
	switch {
	case r.Ricochet:
		return VerdictRicochet
	case r.Penetrated:
		return VerdictPenetrated
	default:
		return VerdictAbsorbed
	}
}

// Verdict is the outcome of one impact.
type Verdict uint8

const (
	VerdictAbsorbed Verdict = iota
	VerdictRicochet
	VerdictPenetrated
)

func (v Verdict) String() string {
	switch v {
	case VerdictRicochet:
		return "ricochet"
	case VerdictPenetrated:
		return "penetrated"
	default:
		return "absorbed"
	}
}

// Solve decides ricochet, penetration or absorption for one impact. It is a
// pure function: no hidden state, safe for concurrent use.
//
// Degenerate input never faults. A stationary or non-finite velocity, or a
// zero or non-finite normal, returns an absorbed result with the velocity
// unchanged. Non-finite magnitudes are read as zero and then floored the
// same way as any other thin plate or small caliber.
func Solve(in ImpactInput) ImpactResult {
	v := physics.Sanitize(in.Velocity)
	r := ImpactResult{NewVelocity: v}

	if v.LenSq() < stationarySpeedSq {
		return r
	}
	n := in.Normal.Normalized()
	if n.IsZero() {
		return r
	}

	shell := in.Shell.Normalized()
	traits := shell.Kind.traits()

	angle := physics.ImpactAngle(v, n)
	r.Angle = angle

	armor := math.Max(1, nonNegative(in.ArmorNominalMM))
	caliber := math.Max(1, shell.CaliberMM)

	r.Overmatch3x = caliber >= overmatchNoRicochet*armor
	r.Overmatch2xRelaxed = !r.Overmatch3x && caliber >= overmatchRelaxed*armor

	threshold := traits.ricochetThreshold
	if r.Overmatch2xRelaxed {
		threshold = clamp(threshold-traits.relaxBy2x, relaxedThresholdMin, relaxedThresholdMax)
	}
	r.RicochetThreshold = threshold

	anglePrime := math.Max(0, angle-traits.normalization)
	r.AnglePrime = anglePrime

	if !r.Overmatch3x && anglePrime > threshold {
		r.Ricochet = true
		r.NewVelocity = physics.Reflect(v, n).Scale(shell.RicochetSpeedRetention)
		return r
	}

	cosA := math.Max(minCos, math.Cos(physics.Deg2Rad(anglePrime)))
	r.EffectiveArmorMM = armor / cosA

	r.PenetrationAtDistanceMM = shell.PenetrationAt(in.DistanceTraveledM)

	if r.PenetrationAtDistanceMM >= r.EffectiveArmorMM {
		r.Penetrated = true
		r.Damage = DamageAfterRicochets(shell.BaseDamage, in.RicochetCountSoFar)
	}
	return r
}

// DamageAfterRicochets applies the 20% multiplicative loss per prior
// ricochet, floored at 1.
func DamageAfterRicochets(baseDamage float64, ricochets int) float64 {
	if ricochets < 0 {
		ricochets = 0
	}
	return math.Max(1, nonNegative(baseDamage)*math.Pow(ricochetDamageKeep, float64(ricochets)))
}

func penetrationAtDistance(penAt100m, lossPer100m, distanceM float64) float64 {
	loss := nonNegative(lossPer100m) * (nonNegative(distanceM) / 100)
	return math.Max(0, nonNegative(penAt100m)-loss)
}

func nonNegative(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}

func clamp(f, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, f))
}
