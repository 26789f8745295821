package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"lintang/locroute/pkg/config"
	"lintang/locroute/pkg/datastructure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("defaults without file", func(t *testing.T) {
		cfg, err := config.Load("")
		require.NoError(t, err)
		assert.Equal(t, ":5000", cfg.Server.ListenAddr)
		assert.Equal(t, 5.0, cfg.Routing.MaxSnapDistanceKm)
		assert.Nil(t, cfg.Bounds)
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		path := writeConfig(t, `
server:
  listen_addr: ":8080"
routing:
  max_snap_distance_km: 2.5
  search_timeout: 750ms
speeds:
  residential: 20
bounds:
  min_lat: 33.965
  min_lon: -118.513
  max_lat: 34.07
  max_lon: -118.385
log:
  level: debug
`)
		cfg, err := config.Load(path)
		require.NoError(t, err)
		assert.Equal(t, ":8080", cfg.Server.ListenAddr)
		assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
		assert.Equal(t, 2.5, cfg.Routing.MaxSnapDistanceKm)
		assert.Equal(t, 750*time.Millisecond, cfg.Routing.SearchTimeout)
		assert.Equal(t, "debug", cfg.Log.Level)
		require.NotNil(t, cfg.Bounds)
		assert.Equal(t, 34.07, cfg.Bounds.MaxLat)

		table, err := cfg.SpeedTable()
		require.NoError(t, err)
		assert.Equal(t, 20.0, table.SpeedMph(datastructure.HighwayResidential))
		assert.Equal(t, 60.0, table.SpeedMph(datastructure.HighwayMotorway))

		rc := cfg.RoutingConfig()
		assert.Equal(t, 2.5, rc.MaxSnapDistanceKm)
	})

	t.Run("invalid values", func(t *testing.T) {
		for _, content := range []string{
			"routing:\n  max_snap_distance_km: 0\n",
			"speeds:\n  footway: 5\n",
			"bounds:\n  min_lat: 10\n  min_lon: 0\n  max_lat: 5\n  max_lon: 1\n",
			"server: [",
		} {
			_, err := config.Load(writeConfig(t, content))
			assert.Error(t, err, content)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}
