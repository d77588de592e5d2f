package ballistics

import (
	"fmt"
	"math"
	"strings"

	"gopkg.in/yaml.v3"
)

// ShellKind is the projectile family. It selects normalization and the base
// ricochet threshold.
type ShellKind uint8

const (
	ShellAP ShellKind = iota
	ShellAPCR
	ShellHEAT
)

// shellTraits holds the per-kind angle constants, in degrees.
type shellTraits struct {
	normalization     float64
	ricochetThreshold float64
	relaxBy2x         float64
}

var traitsByKind = map[ShellKind]shellTraits{
	ShellAP:   {normalization: 5, ricochetThreshold: 45, relaxBy2x: 10},
	ShellAPCR: {normalization: 2, ricochetThreshold: 70, relaxBy2x: 10},
	ShellHEAT: {normalization: 0, ricochetThreshold: 85, relaxBy2x: 5},
}

// unknown kinds behave like a round with no normalization and a 70° threshold
var fallbackTraits = shellTraits{normalization: 0, ricochetThreshold: 70, relaxBy2x: 10}

func (k ShellKind) traits() shellTraits {
	if t, ok := traitsByKind[k]; ok {
		return t
	}
	return fallbackTraits
}

// NormalizationDeg is the obliquity forgiven before the ricochet test.
func (k ShellKind) NormalizationDeg() float64 { return k.traits().normalization }

// RicochetThresholdDeg is the base angle above which the shell ricochets.
func (k ShellKind) RicochetThresholdDeg() float64 { return k.traits().ricochetThreshold }

func (k ShellKind) String() string {
	switch k {
	case ShellAP:
		return "AP"
	case ShellAPCR:
		return "APCR"
	case ShellHEAT:
		return "HEAT"
	default:
		return fmt.Sprintf("ShellKind(%d)", uint8(k))
	}
}

// ParseShellKind accepts the kind names case-insensitively.
func ParseShellKind(s string) (ShellKind, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "AP":
		return ShellAP, nil
	case "APCR":
		return ShellAPCR, nil
	case "HEAT":
		return ShellHEAT, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownShellKind, s)
	}
}

func (k ShellKind) MarshalYAML() (any, error) {
	return k.String(), nil
}

func (k *ShellKind) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseShellKind(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ShellSpec is the immutable description of a round, owned by a projectile
// from spawn.
type ShellSpec struct {
	Name                   string    `yaml:"name"`
	Kind                   ShellKind `yaml:"kind"`
	CaliberMM              float64   `yaml:"caliber_mm"`
	BaseDamage             float64   `yaml:"damage"`
	PenetrationAt100m      float64   `yaml:"pen_at_100m"`
	PenetrationLossPer100m float64   `yaml:"pen_loss_per_100m"`
	MaxRicochets           int       `yaml:"max_ricochets"`
	RicochetSpeedRetention float64   `yaml:"ricochet_speed_retention"`
	MuzzleSpeed            float64   `yaml:"muzzle_speed"`
}

// Normalized returns a copy with inconsistent values clamped: negative or
// non-finite magnitudes become zero, MaxRicochets is at least zero and
// RicochetSpeedRetention is finite and at least one (anything else is one).
func (s ShellSpec) Normalized() ShellSpec {
	s.CaliberMM = nonNegative(s.CaliberMM)
	s.BaseDamage = nonNegative(s.BaseDamage)
	s.PenetrationAt100m = nonNegative(s.PenetrationAt100m)
	s.PenetrationLossPer100m = nonNegative(s.PenetrationLossPer100m)
	s.MuzzleSpeed = nonNegative(s.MuzzleSpeed)
	if s.MaxRicochets < 0 {
		s.MaxRicochets = 0
	}
	if !(s.RicochetSpeedRetention >= 1) || math.IsInf(s.RicochetSpeedRetention, 1) {
		s.RicochetSpeedRetention = 1
	}
	return s
}

// PenetrationAt is the range-degraded penetration in mm, never negative.
func (s ShellSpec) PenetrationAt(distanceM float64) float64 {
	return penetrationAtDistance(s.PenetrationAt100m, s.PenetrationLossPer100m, distanceM)
}
