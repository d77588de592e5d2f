package injector

import (
	"fmt"

	"github.com/google/wire"

	"github.com/zeusync/ricochet/internal/config"
	"github.com/zeusync/ricochet/internal/core/ballistics"
	"github.com/zeusync/ricochet/internal/core/events/bus"
	"github.com/zeusync/ricochet/internal/core/observability/log"
	"github.com/zeusync/ricochet/internal/core/observability/metrics"
	"github.com/zeusync/ricochet/internal/core/projectile"
	"github.com/zeusync/ricochet/internal/core/systems"
	"github.com/zeusync/ricochet/internal/core/systems/physics"
)

// Runtime is the assembled simulation: a scene to populate, the projectile
// system to spawn into and the manager that ticks it.
type Runtime struct {
	Config      *config.Config
	Logger      *log.Logger
	Bus         bus.EventBus
	Metrics     *metrics.Recorder
	Catalog     *ballistics.Catalog
	Scene       *projectile.Scene
	Projectiles *projectile.System
	Stats       *projectile.HitStats
	Manager     *systems.Manager
}

var CoreSet = wire.NewSet(
	ProvideLogger,
	ProvideEventBus,
	ProvideMetrics,
	ProvideCatalog,
	physics.NewStaticWorld,
	projectile.NewScene,
	wire.Bind(new(projectile.Host), new(*projectile.Scene)),
	ProvideStepper,
	ProvideProjectileSystem,
	ProvideHitStats,
	ProvideManager,
	wire.Struct(new(Runtime), "*"),
)

func ProvideLogger(cfg *config.Config) *log.Logger {
	return log.New(cfg.Logging())
}

func ProvideEventBus() bus.EventBus {
	return bus.New()
}

// ProvideMetrics records through the global otel meter provider, or drops
// everything when metrics are disabled.
func ProvideMetrics(cfg *config.Config) (*metrics.Recorder, error) {
	if !cfg.Metrics.Enabled {
		return metrics.Nop(), nil
	}
	return metrics.NewRecorder(nil)
}

func ProvideCatalog(cfg *config.Config) (*ballistics.Catalog, error) {
	catalog := ballistics.DefaultCatalog()
	if cfg.Shells.Catalog == "" {
		return catalog, nil
	}
	custom, err := ballistics.LoadCatalogFile(cfg.Shells.Catalog)
	if err != nil {
		return nil, err
	}
	catalog.Merge(custom)
	return catalog, nil
}

func ProvideStepper(host projectile.Host, cfg *config.Config, logger *log.Logger, b bus.EventBus, rec *metrics.Recorder) (*projectile.Stepper, error) {
	return projectile.NewStepper(host, cfg.Projectile,
		projectile.WithLogger(logger),
		projectile.WithEventBus(b),
		projectile.WithMetrics(rec),
	)
}

func ProvideProjectileSystem(stepper *projectile.Stepper, cfg *config.Config, logger *log.Logger, rec *metrics.Recorder) (*projectile.System, error) {
	return projectile.NewSystem(stepper, cfg.Simulation.Workers, logger, rec)
}

func ProvideHitStats(b bus.EventBus) (*projectile.HitStats, error) {
	stats := projectile.NewHitStats()
	if err := stats.Attach(b); err != nil {
		return nil, err
	}
	return stats, nil
}

func ProvideManager(logger *log.Logger, sys *projectile.System) (*systems.Manager, error) {
	m := systems.NewManager(logger)
	if err := m.Register(sys); err != nil {
		return nil, fmt.Errorf("register %s: %w", sys.Name(), err)
	}
	return m, nil
}
