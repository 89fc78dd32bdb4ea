package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"locator/internal/domain/lifecycle"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults_EmptyConfig(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
	require.NotNil(t, cfg.Directions)
	assert.Equal(t, defaultDirectionsBaseURL, cfg.Directions.BaseURL)
	assert.Equal(t, defaultDirectionsProfile, cfg.Directions.Profile)
	assert.Equal(t, "geojson", cfg.Directions.Geometries)
	assert.Equal(t, lifecycle.DefaultExternalCallTimeout, cfg.Directions.Timeout)
	assert.Equal(t, lifecycle.DefaultExternalCallTimeout, cfg.Directory.Timeout)
	assert.Equal(t, PlatformProviderReported, cfg.Platform.Provider)
	assert.Equal(t, DefaultMaxFixAge, cfg.Platform.MaxFixAge)
	assert.Equal(t, lifecycle.DefaultExternalCallTimeout, cfg.Catalog.FetchTimeout)
	assert.Equal(t, defaultViewportPadding, cfg.Viewport.Padding.Top)
	assert.Equal(t, SnapshotProviderMemory, cfg.Snapshot.Provider)
}

func TestApplyDefaults_KeepsConfiguredValues(t *testing.T) {
	cfg := &Config{
		Directions: &DirectionsConfig{Timeout: 3 * time.Second, Geometries: "polyline6"},
		Snapshot:   &SnapshotConfig{Provider: SnapshotProviderRedis, Redis: &RedisConfig{Addr: "localhost:6379"}},
	}
	applyDefaults(cfg)

	assert.Equal(t, 3*time.Second, cfg.Directions.Timeout)
	assert.Equal(t, "polyline6", cfg.Directions.Geometries)
	assert.Equal(t, SnapshotProviderRedis, cfg.Snapshot.Provider)
	assert.Equal(t, defaultSnapshotKey, cfg.Snapshot.Redis.Key)
}

func TestLoadWithEnv_EnvOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	content := []byte(`
directions:
  accessToken: from-file
  timeout: 5s
platform:
  provider: static
  static:
    latitude: 13.621
    longitude: 123.194
    granted: true
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "locator.yaml"), content, 0o600))

	t.Chdir(dir)
	t.Setenv("DIRECTIONS_ACCESSTOKEN", "from-env")

	cfg, err := LoadWithEnv[Config]("locator")
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Directions.AccessToken)
	assert.Equal(t, 5*time.Second, cfg.Directions.Timeout)
	assert.Equal(t, PlatformProviderStatic, cfg.Platform.Provider)
	assert.InDelta(t, 13.621, cfg.Platform.Static.Latitude, 1e-9)
	assert.True(t, cfg.Platform.Static.Granted)
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadWithEnv[Config]("absent")
	assert.Error(t, err)
}
