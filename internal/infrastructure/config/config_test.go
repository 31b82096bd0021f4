package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 4000, cfg.Server.Port)
	assert.Equal(t, "/graphql", cfg.Server.GraphQLPath)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "json", cfg.Logger.Format)
	assert.True(t, cfg.Seed.Enabled)
	assert.Equal(t, 15, cfg.Seed.MaxTasksPerDay)
	assert.Equal(t, "0.0.0.0:4000", cfg.Server.GetAddr())
	assert.True(t, cfg.App.IsDevelopment())
	assert.False(t, cfg.App.IsProduction())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "8081")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SEED_RANDOM_SEED", "42")
	t.Setenv("SEED_FIXTURES_FILE", "fixtures.yaml")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, int64(42), cfg.Seed.RandomSeed)
	assert.Equal(t, "fixtures.yaml", cfg.Seed.FixturesFile)
	assert.Equal(t, 30*time.Second, cfg.Security.RateLimitWindow)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"port out of range", "SERVER_PORT", "70000"},
		{"relative graphql path", "GRAPHQL_PATH", "graphql"},
		{"zero tasks per day", "SEED_MAX_TASKS_PER_DAY", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
