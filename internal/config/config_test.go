package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[server]
http_port = 9090

[database]
host = "db"
user = "svc"
dbname = "courts"

[booking]
min_advance_minutes = 30
max_advance_hours = 48
execution_strategy = "fallback"
timezone = "Europe/Moscow"

[schedule]
slot_duration_minutes = 30
weekday_open = "08:00"
weekday_close = "21:00"
break_start = "13:00"
break_end = "14:00"
`

func writeConfig(t *testing.T, body, env string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	if env != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o644))
	}
	return path
}

func unsetEnv(t *testing.T, key string) {
	t.Helper()
	prev, had := os.LookupEnv(key)
	require.NoError(t, os.Unsetenv(key))
	t.Cleanup(func() {
		if had {
			_ = os.Setenv(key, prev)
		} else {
			_ = os.Unsetenv(key)
		}
	})
}

func TestLoad(t *testing.T) {
	unsetEnv(t, "DB_PASSWORD")
	t.Setenv("GAME_SERVICE_TOKEN", "token")
	path := writeConfig(t, sampleConfig, "DB_PASSWORD=from-dotenv\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 5432, cfg.Database.Port, "default kept when key is absent")
	assert.Equal(t, "from-dotenv", cfg.Database.Password)
	assert.Equal(t, "token", cfg.GameService.Token)
	assert.Equal(t, StrategyFallback, cfg.Booking.ExecutionStrategy)
	assert.Contains(t, cfg.Database.DSN(), "host=db")

	policy, err := cfg.Booking.Policy()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, policy.MinAdvance)
	assert.Equal(t, 48*time.Hour, policy.MaxAdvance)
	assert.Equal(t, 24*time.Hour, policy.ProtectionWindow)
	assert.Equal(t, "Europe/Moscow", policy.Location.String())

	defaults, err := cfg.Schedule.Defaults()
	require.NoError(t, err)
	assert.Equal(t, "08:00", defaults.Weekday.Open.String())
	require.NotNil(t, defaults.Break)
	assert.Equal(t, "14:00", defaults.Break.End.String())
	assert.Nil(t, defaults.Weekend)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"unknown strategy", func(c *Config) { c.Booking.ExecutionStrategy = "optimistic" }},
		{"slot width does not divide a day", func(c *Config) { c.Schedule.SlotDurationMinutes = 7 }},
		{"zero slot width", func(c *Config) { c.Schedule.SlotDurationMinutes = 0 }},
		{"max below min advance", func(c *Config) {
			c.Booking.MinAdvanceMinutes = 120
			c.Booking.MaxAdvanceHours = 1
		}},
		{"bad timezone", func(c *Config) { c.Booking.Timezone = "Mars/Olympus" }},
		{"malformed hours", func(c *Config) { c.Schedule.WeekdayOpen = "7am" }},
		{"game service without url", func(c *Config) { c.GameService.Enabled = true }},
	}

	require.NoError(t, Default().Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, ErrReadConfig)
}
