package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"sync"
	"text/tabwriter"

	"github.com/zeusync/ricochet/internal/config"
	"github.com/zeusync/ricochet/internal/core/armor"
	"github.com/zeusync/ricochet/internal/core/events/bus"
	"github.com/zeusync/ricochet/internal/core/observability/log"
	"github.com/zeusync/ricochet/internal/core/projectile"
	"github.com/zeusync/ricochet/internal/core/systems/physics"
	"github.com/zeusync/ricochet/internal/injector"
)

// Arena colliders.
const (
	colliderTank physics.ColliderID = iota + 1
	colliderWestWall
	colliderEastWall
	colliderBackWall
	colliderShooter
)

const (
	layerVehicles uint8 = iota
	layerWalls
	layerTerrain
)

var colliderNames = map[physics.ColliderID]string{
	colliderTank:     "tank",
	colliderWestWall: "west wall",
	colliderEastWall: "east wall",
	colliderBackWall: "back wall",
	colliderShooter:  "shooter",
}

func runSim(ctx context.Context, args []string) error {
	fs, path := commonFlags("sim")
	fs.Int("simulation.workers", 0, "projectile shards stepped in parallel")
	fs.Float64("simulation.tickRate", 50, "fixed steps per second")
	shellName := fs.String("shell", "ap-75", "shell preset name")
	shots := fs.Int("shots", 9, "rounds fired")
	angle := fs.Float64("angle", -40, "heading of the first round in degrees, counter-clockwise from +Y")
	spread := fs.Float64("spread", 10, "heading step between rounds in degrees")
	tankRotation := fs.Float64("tank-rotation", 30, "target hull rotation in degrees")
	tankHP := fs.Float64("tank-hp", 1000, "target hitpoints")
	maxTicks := fs.Uint64("ticks", 500, "tick limit")
	realtime := fs.Bool("realtime", false, "tick on a wall clock at the configured rate")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*path, fs)
	if err != nil {
		return err
	}
	rt, err := injector.InitializeRuntime(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = rt.Logger.Sync() }()

	shell, err := rt.Catalog.Get(*shellName)
	if err != nil {
		return err
	}

	hp := buildArena(rt.Scene, *tankRotation, *tankHP)
	hp.OnDeath(func() { rt.Logger.Info("target destroyed") })

	reasons := &reasonTally{counts: map[projectile.TerminalReason]int{}}
	sub, err := rt.Bus.Subscribe(projectile.EventDestroyed, reasons.handle)
	if err != nil {
		return err
	}
	defer func() { _ = sub.Cancel() }()

	if err = rt.Manager.InitializeAll(ctx); err != nil {
		return err
	}
	for i := 0; i < *shots; i++ {
		_, err = rt.Projectiles.Spawn(projectile.SpawnRequest{
			Shell:     &shell,
			Owner:     colliderShooter,
			Position:  physics.Vec2{},
			Direction: physics.Up.Rotate(*angle + float64(i)**spread),
		})
		if err != nil {
			return err
		}
	}

	rt.Logger.Info("simulation started",
		log.String("shell", shell.Name),
		log.Int("shots", *shots),
		log.Int("workers", cfg.Simulation.Workers),
		log.Float64("tick_rate", cfg.Simulation.TickRate),
	)

	if *realtime {
		err = rt.Manager.Run(ctx, cfg.Simulation.TickRate, *maxTicks)
	} else {
		err = stepUntilIdle(ctx, rt, 1/cfg.Simulation.TickRate, *maxTicks)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	if err = rt.Manager.ShutdownAll(context.Background()); err != nil {
		rt.Logger.Warn("shutdown failed", log.Error(err))
	}

	printReport(rt, reasons, hp)
	return nil
}

func buildArena(scene *projectile.Scene, tankRotation, tankHP float64) *armor.Hitpoints {
	scene.AddBox(colliderTank, layerVehicles, physics.V(0, 40), 3, 2, tankRotation)
	scene.AddSegment(colliderWestWall, layerWalls, physics.V(-20, -5), physics.V(-20, 70))
	scene.AddSegment(colliderEastWall, layerWalls, physics.V(20, -5), physics.V(20, 70))
	scene.AddSegment(colliderBackWall, layerTerrain, physics.V(-20, 70), physics.V(20, 70))
	// rounds leave the muzzle from inside the shooter hull
	scene.AddCircle(colliderShooter, layerVehicles, physics.Vec2{}, 1.5)

	// hull nose points back at the shooter before rotation
	nose := physics.V(0, -1).Rotate(tankRotation)
	scene.AttachArmor(colliderTank, armor.NewProfile(90, 70, 50, armor.WithFacing(nose)))
	hp := armor.NewHitpoints(tankHP)
	scene.AttachDamageSink(colliderTank, hp)
	return hp
}

func stepUntilIdle(ctx context.Context, rt *injector.Runtime, dt float64, maxTicks uint64) error {
	for tick := uint64(0); tick < maxTicks && rt.Projectiles.Count() > 0; tick++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := rt.Manager.FixedUpdate(ctx, dt); err != nil {
			return err
		}
	}
	return nil
}

type reasonTally struct {
	mu     sync.Mutex
	counts map[projectile.TerminalReason]int
}

func (r *reasonTally) handle(e bus.Event) error {
	d, ok := e.Data().(projectile.Destroyed)
	if !ok {
		return nil
	}
	r.mu.Lock()
	r.counts[d.Reason]++
	r.mu.Unlock()
	return nil
}

func printReport(rt *injector.Runtime, reasons *reasonTally, hp *armor.Hitpoints) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "ticks\t%d\n", rt.Manager.Ticks())
	fmt.Fprintf(w, "in flight\t%d\n", rt.Projectiles.Count())
	fmt.Fprintf(w, "target hp\t%.1f / %.1f\n\n", hp.Current(), hp.Max())

	fmt.Fprintln(w, "collider\thits\tpenetrations\tricochets\tdamage")
	ids := make([]physics.ColliderID, 0, len(colliderNames))
	for id := range colliderNames {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		t := rt.Stats.For(id)
		if t.Hits == 0 {
			continue
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%.1f\n", colliderNames[id], t.Hits, t.Penetrations, t.Ricochets, t.Damage)
	}

	fmt.Fprintln(w, "\nfate\trounds")
	reasons.mu.Lock()
	defer reasons.mu.Unlock()
	for reason := projectile.ReasonExpired; reason <= projectile.ReasonTooSlow; reason++ {
		if n := reasons.counts[reason]; n > 0 {
			fmt.Fprintf(w, "%s\t%d\n", reason, n)
		}
	}
}
