package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/zeusync/ricochet/internal/core/observability/log"
	"github.com/zeusync/ricochet/internal/core/projectile"
	"github.com/zeusync/ricochet/internal/core/systems/physics"
)

// EnvPrefix is prepended to every environment override, with dots replaced
// by underscores: RICOCHET_PROJECTILE_MINSPEED.
const EnvPrefix = "RICOCHET"

var ErrReadConfig = errors.New("config: read failed")

type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

type SimulationConfig struct {
	TickRate float64 `mapstructure:"tickRate"`
	// Workers above one shard projectiles across goroutines.
	Workers int `mapstructure:"workers"`
}

type ShellsConfig struct {
	// Catalog is a YAML file merged over the built-in presets.
	Catalog string `mapstructure:"catalog"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type Config struct {
	Log        LogConfig         `mapstructure:"log"`
	Projectile projectile.Config `mapstructure:"projectile"`
	Simulation SimulationConfig  `mapstructure:"simulation"`
	Shells     ShellsConfig      `mapstructure:"shells"`
	Metrics    MetricsConfig     `mapstructure:"metrics"`
}

// SetDefaults registers every key with its default value on v.
func SetDefaults(v *viper.Viper) {
	d := projectile.DefaultConfig()

	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)

	v.SetDefault("projectile.maxLifetime", d.MaxLifetime)
	v.SetDefault("projectile.maxIterations", d.MaxIterations)
	v.SetDefault("projectile.separation", d.Separation)
	v.SetDefault("projectile.minExitNormalFraction", d.MinExitNormalFraction)
	v.SetDefault("projectile.ricochetDamping", d.RicochetDamping)
	v.SetDefault("projectile.defaultArmorMM", d.DefaultArmorMM)
	v.SetDefault("projectile.minSpeed", d.MinSpeed)
	v.SetDefault("projectile.hitMask", uint32(physics.AllLayers))
	v.SetDefault("projectile.ricochetMask", uint32(physics.AllLayers))

	v.SetDefault("simulation.tickRate", 50.0)
	v.SetDefault("simulation.workers", 0)

	v.SetDefault("shells.catalog", "")

	v.SetDefault("metrics.enabled", true)
}

// Load resolves configuration from defaults, an optional YAML file at path,
// RICOCHET_* environment variables and, when flags is non-nil, command line
// flags named after their keys ("log.level", "simulation.workers", ...).
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("binding flags: %w", err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrReadConfig, path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return &cfg, nil
}

// Logging converts the log section for log.New.
func (c *Config) Logging() log.Config {
	return log.Config{
		Level:       log.ParseLevel(c.Log.Level),
		Development: c.Log.Development,
	}
}
