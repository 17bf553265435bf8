package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_MissingToken(t *testing.T) {
	t.Setenv("TELEGRAM_API_TOKEN", "")

	_, err := Load()
	require.ErrorIs(t, err, ErrMissingEnvironmentVariables)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TELEGRAM_API_TOKEN", "token")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("APP_ENV", "")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "token", cfg.TelegramAPIToken)
	require.Equal(t, "local", cfg.Env)
	require.Equal(t, 15*time.Second, cfg.Game.TimerDuration)
	require.Equal(t, 10, cfg.Game.InitialLives)
	require.Equal(t, 2*time.Second, cfg.Game.CorrectDelay)
	require.Equal(t, time.Second, cfg.Game.WrongDelay)
	require.Equal(t, time.Second, cfg.Game.TickInterval)
	require.Equal(t, "@every 1m", cfg.Game.SweepSchedule)
	require.False(t, cfg.Game.AllowRepeats)
	require.Equal(t, "migrations", cfg.DB.MigrationsDir)

	_, err = cfg.DB.DSN()
	require.ErrorIs(t, err, ErrMissingEnvironmentVariables)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("TELEGRAM_API_TOKEN", "token")
	t.Setenv("DATABASE_URL", "postgres://quiz@localhost/quiz")
	t.Setenv("APP_ENV", "production")
	t.Setenv("GAME_INITIAL_LIVES", "3")
	t.Setenv("GAME_TIMER_DURATION", "20s")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "production", cfg.Env)
	require.Equal(t, 3, cfg.Game.InitialLives)
	require.Equal(t, 20*time.Second, cfg.Game.TimerDuration)

	dsn, err := cfg.DB.DSN()
	require.NoError(t, err)
	require.Equal(t, "postgres://quiz@localhost/quiz", dsn)
}

func TestLoad_RejectsNonPositiveLives(t *testing.T) {
	t.Setenv("TELEGRAM_API_TOKEN", "token")
	t.Setenv("GAME_INITIAL_LIVES", "0")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_RejectsInvalidGameSettings(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "negative correct delay", key: "GAME_CORRECT_DELAY", value: "-1s"},
		{name: "negative wrong delay", key: "GAME_WRONG_DELAY", value: "-500ms"},
		{name: "negative tick interval", key: "GAME_TICK_INTERVAL", value: "-1s"},
		{name: "bad sweep schedule", key: "GAME_SWEEP_SCHEDULE", value: "every minute"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TELEGRAM_API_TOKEN", "token")
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			require.Error(t, err)
		})
	}
}

func TestLoad_AcceptsZeroTickInterval(t *testing.T) {
	t.Setenv("TELEGRAM_API_TOKEN", "token")
	t.Setenv("GAME_TICK_INTERVAL", "0s")

	cfg, err := Load()
	require.NoError(t, err)
	require.Zero(t, cfg.Game.TickInterval)
}
