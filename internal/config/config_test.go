package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "ENV", "TOPOLOGY_FILE", "GEM_DATA_DIR", "STRICT_GEM_DATA", "GEM_RADIUS_METERS",
		"GEM_CACHE_TTL_SECONDS", "SEARCH_LIMIT", "HTTP_TIMEOUT_SECONDS",
		"MINUTES_PER_STOP", "TRANSFER_MINUTES", "WALK_METERS_PER_MINUTE",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.True(t, cfg.IsDevelopment())
	assert.Empty(t, cfg.TopologyFile)
	assert.Equal(t, "data/gems", cfg.GemDataDir)
	assert.False(t, cfg.StrictGems)
	assert.Equal(t, 2000.0, cfg.GemRadiusMeters)
	assert.Equal(t, 5*time.Minute, cfg.GemCacheTTL)
	assert.Equal(t, 10, cfg.SearchLimit)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 3, cfg.Route.MinutesPerStop)
	assert.Equal(t, 5, cfg.Route.TransferMins)
	assert.Equal(t, 80.0, cfg.Route.WalkMetersPerMinute)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("ENV", "production")
	t.Setenv("STRICT_GEM_DATA", "true")
	t.Setenv("GEM_RADIUS_METERS", "1500.5")
	t.Setenv("GEM_CACHE_TTL_SECONDS", "60")
	t.Setenv("SEARCH_LIMIT", "25")
	t.Setenv("MINUTES_PER_STOP", "2")
	t.Setenv("TRANSFER_MINUTES", "0")
	t.Setenv("WALK_METERS_PER_MINUTE", "70")
	t.Setenv("HTTP_TIMEOUT_SECONDS", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "8080", cfg.Port)
	assert.False(t, cfg.IsDevelopment())
	assert.True(t, cfg.StrictGems)
	assert.Equal(t, 1500.5, cfg.GemRadiusMeters)
	assert.Equal(t, time.Minute, cfg.GemCacheTTL)
	assert.Equal(t, 25, cfg.SearchLimit)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout, "unparsable values fall back to defaults")
	assert.Equal(t, 2, cfg.Route.MinutesPerStop)
	assert.Equal(t, 0, cfg.Route.TransferMins)
	assert.Equal(t, 70.0, cfg.Route.WalkMetersPerMinute)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"non-numeric port", map[string]string{"PORT": "http"}},
		{"unknown env", map[string]string{"ENV": "staging"}},
		{"negative radius", map[string]string{"GEM_RADIUS_METERS": "-5"}},
		{"search limit too high", map[string]string{"SEARCH_LIMIT": "500"}},
		{"zero minutes per stop", map[string]string{"MINUTES_PER_STOP": "0"}},
		{"zero walking speed", map[string]string{"WALK_METERS_PER_MINUTE": "0"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			cfg, err := Load()
			require.NoError(t, err)
			assert.Error(t, cfg.Validate())
		})
	}
}
