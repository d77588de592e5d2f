package ballistics

import (
	"math"

	"github.com/zeusync/ricochet/internal/core/systems/physics"
)

// SweepPoint is one row of an angle sweep.
type SweepPoint struct {
	AngleDeg float64
	Result   ImpactResult
}

// SweepRequest describes an offline balance sweep: one shell against one
// plate at a fixed range, across impact angles.
type SweepRequest struct {
	Shell          ShellSpec
	ArmorNominalMM float64
	DistanceM      float64
	Ricochets      int
	FromDeg        float64
	ToDeg          float64
	StepDeg        float64
}

// SweepAngles runs Solve for every angle in [FromDeg, ToDeg] at StepDeg
// spacing. The impact is built against a surface facing +Y so that the
// requested angle is exactly the impact angle. A non-positive step yields a
// single sample at FromDeg.
func SweepAngles(req SweepRequest) []SweepPoint {
	speed := req.Shell.MuzzleSpeed
	if !(speed > 0) {
		speed = 1
	}
	normal := physics.Up

	var points []SweepPoint
	sample := func(deg float64) {
		rad := physics.Deg2Rad(deg)
		vel := physics.V(-math.Sin(rad), -math.Cos(rad)).Scale(speed)
		res := Solve(ImpactInput{
			Velocity:           vel,
			Normal:             normal,
			DistanceTraveledM:  req.DistanceM,
			ArmorNominalMM:     req.ArmorNominalMM,
			Shell:              req.Shell,
			RicochetCountSoFar: req.Ricochets,
		})
		points = append(points, SweepPoint{AngleDeg: deg, Result: res})
	}

	if !(req.StepDeg > 0) || req.ToDeg < req.FromDeg {
		sample(req.FromDeg)
		return points
	}
	steps := int(math.Floor((req.ToDeg-req.FromDeg)/req.StepDeg + 1e-9))
	for i := 0; i <= steps; i++ {
		sample(req.FromDeg + float64(i)*req.StepDeg)
	}
	return points
}
