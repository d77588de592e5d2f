package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/zeusync/ricochet/internal/config"
	"github.com/zeusync/ricochet/internal/core/ballistics"
	"github.com/zeusync/ricochet/internal/injector"
)

func runSweep(args []string) error {
	fs, path := commonFlags("sweep")
	shellName := fs.String("shell", "ap-75", "shell preset name")
	armorMM := fs.Float64("armor", 100, "nominal plate thickness in mm")
	distance := fs.Float64("distance", 0, "distance flown before impact in m")
	ricochets := fs.Int("ricochets", 0, "ricochets already taken")
	from := fs.Float64("from", 0, "first impact angle in degrees")
	to := fs.Float64("to", 89, "last impact angle in degrees")
	step := fs.Float64("step", 5, "angle step in degrees")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*path, fs)
	if err != nil {
		return err
	}
	catalog, err := injector.ProvideCatalog(cfg)
	if err != nil {
		return err
	}
	shell, err := catalog.Get(*shellName)
	if err != nil {
		return err
	}

	points := ballistics.SweepAngles(ballistics.SweepRequest{
		Shell:          shell,
		ArmorNominalMM: *armorMM,
		DistanceM:      *distance,
		Ricochets:      *ricochets,
		FromDeg:        *from,
		ToDeg:          *to,
		StepDeg:        *step,
	})

	fmt.Printf("%s (%s, %.0fmm) vs %.0fmm at %.0fm\n\n", shell.Name, shell.Kind, shell.CaliberMM, *armorMM, *distance)
	return writeSweep(os.Stdout, points)
}

func writeSweep(out io.Writer, points []ballistics.SweepPoint) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "angle\tnormalized\tthreshold\teffective mm\tpen mm\tverdict\tdamage\t")
	for _, p := range points {
		r := p.Result
		fmt.Fprintf(w, "%.1f\t%.1f\t%.1f\t%.1f\t%.1f\t%s\t%.1f\t\n",
			p.AngleDeg, r.AnglePrime, r.RicochetThreshold, r.EffectiveArmorMM,
			r.PenetrationAtDistanceMM, r.Verdict(), r.Damage)
	}
	return w.Flush()
}
