package projectile

import (
	"math"
	"time"

	"github.com/zeusync/ricochet/internal/core/systems/physics"
)

const (
	DefaultMaxLifetime           = 8 * time.Second
	DefaultMaxIterations         = 4
	DefaultSeparation            = 0.01
	DefaultMinExitNormalFraction = 0.12
	DefaultRicochetDamping       = 1.0
	DefaultArmorMM               = 30.0
	DefaultMinSpeed              = 10.0
)

// Config tunes the stepper. Zero values are replaced by defaults in
// NewStepper, except the masks where zero means "nothing".
type Config struct {
	MaxLifetime   time.Duration `mapstructure:"maxLifetime"`
	MaxIterations int           `mapstructure:"maxIterations"`
	// Separation is the distance a round is pushed off a surface after a hit.
	Separation float64 `mapstructure:"separation"`
	// MinExitNormalFraction is the least share of a ricochet's direction that
	// must point away from the surface.
	MinExitNormalFraction float64 `mapstructure:"minExitNormalFraction"`
	// RicochetDamping scales speed after every granted ricochet.
	RicochetDamping float64 `mapstructure:"ricochetDamping"`
	// DefaultArmorMM is used for colliders without an armor profile.
	DefaultArmorMM float64 `mapstructure:"defaultArmorMM"`
	MinSpeed       float64 `mapstructure:"minSpeed"`

	HitMask      physics.LayerMask `mapstructure:"hitMask"`
	RicochetMask physics.LayerMask `mapstructure:"ricochetMask"`
}

func DefaultConfig() Config {
	return Config{
		MaxLifetime:           DefaultMaxLifetime,
		MaxIterations:         DefaultMaxIterations,
		Separation:            DefaultSeparation,
		MinExitNormalFraction: DefaultMinExitNormalFraction,
		RicochetDamping:       DefaultRicochetDamping,
		DefaultArmorMM:        DefaultArmorMM,
		MinSpeed:              DefaultMinSpeed,
		HitMask:               physics.AllLayers,
		RicochetMask:          physics.AllLayers,
	}
}

func (c Config) withDefaults() Config {
	if c.MaxLifetime <= 0 {
		c.MaxLifetime = DefaultMaxLifetime
	}
	if c.MaxIterations <= 0 {
		c.MaxIterations = DefaultMaxIterations
	}
	if !(c.Separation >= 0) || math.IsInf(c.Separation, 1) {
		c.Separation = DefaultSeparation
	}
	if !(c.MinExitNormalFraction >= 0) {
		c.MinExitNormalFraction = 0
	}
	if c.MinExitNormalFraction > 1 {
		c.MinExitNormalFraction = 1
	}
	if !(c.RicochetDamping > 0) || math.IsInf(c.RicochetDamping, 1) {
		c.RicochetDamping = DefaultRicochetDamping
	}
	if !(c.DefaultArmorMM >= 0) || math.IsInf(c.DefaultArmorMM, 1) {
		c.DefaultArmorMM = DefaultArmorMM
	}
	if !(c.MinSpeed >= 0) || math.IsInf(c.MinSpeed, 1) {
		c.MinSpeed = 0
	}
	return c
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
