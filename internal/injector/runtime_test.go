package injector

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/ricochet/internal/config"
	"github.com/zeusync/ricochet/internal/core/armor"
	"github.com/zeusync/ricochet/internal/core/ballistics"
	"github.com/zeusync/ricochet/internal/core/projectile"
	"github.com/zeusync/ricochet/internal/core/systems/physics"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("", nil)
	require.NoError(t, err)
	cfg.Log.Level = "error"
	cfg.Metrics.Enabled = false
	return cfg
}

func TestRuntimeShootsThroughScene(t *testing.T) {
	rt, err := InitializeRuntime(testConfig(t))
	require.NoError(t, err)

	const tank physics.ColliderID = 1
	rt.Scene.AddBox(tank, 0, physics.V(0, 10), 2, 1, 0)
	rt.Scene.AttachArmor(tank, armor.NewProfile(90, 70, 50, armor.WithFacing(physics.V(0, -1))))
	hp := armor.NewHitpoints(500)
	rt.Scene.AttachDamageSink(tank, hp)

	shell, err := rt.Catalog.Get("ap-75")
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, rt.Manager.InitializeAll(ctx))
	_, err = rt.Projectiles.Spawn(projectile.SpawnRequest{Shell: &shell, Direction: physics.Up})
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		require.NoError(t, rt.Manager.FixedUpdate(ctx, 0.02))
	}

	assert.Zero(t, rt.Projectiles.Count())
	assert.Equal(t, 340.0, hp.Current())
	assert.Equal(t, 1, rt.Stats.For(tank).Penetrations)
	require.NoError(t, rt.Manager.ShutdownAll(ctx))
}

func TestRuntimeMergesShellCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shells.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
shells:
  - name: ap-75
    kind: ap
    caliber_mm: 75
    damage: 999
    pen_at_100m: 120
    max_ricochets: 3
    muzzle_speed: 100
`), 0644))

	cfg := testConfig(t)
	cfg.Shells.Catalog = path
	rt, err := InitializeRuntime(cfg)
	require.NoError(t, err)

	shell, err := rt.Catalog.Get("ap-75")
	require.NoError(t, err)
	assert.Equal(t, 999.0, shell.BaseDamage)
	assert.Equal(t, ballistics.DefaultCatalog().Len(), rt.Catalog.Len())
}

func TestRuntimeBadCatalog(t *testing.T) {
	cfg := testConfig(t)
	cfg.Shells.Catalog = filepath.Join(t.TempDir(), "missing.yaml")
	_, err := InitializeRuntime(cfg)
	assert.Error(t, err)
}
