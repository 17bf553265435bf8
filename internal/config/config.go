package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

var ErrMissingEnvironmentVariables = errors.New("missing required environment variables")

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string `mapstructure:"env"`            // current application environment (local, dev, production etc)
	LogLevel         string `mapstructure:"log_level"`      // minimal log level: debug, info, warn, error
	TelegramAPIToken string `mapstructure:"-"`              // Telegram API token loaded from environment
	CountriesPath    string `mapstructure:"countries_path"` // path to the "country,flag" dataset
	FlagsDir         string `mapstructure:"flags_dir"`      // directory with <flag>.png images
	SoundsDir        string `mapstructure:"sounds_dir"`     // directory with correct.ogg and wrong.ogg
	DB               DB     `mapstructure:"database"`       // database configuration section
	Game             Game   `mapstructure:"game"`           // quiz round configuration section
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
	MigrationsDir   string        `mapstructure:"migrations_dir"`    // directory with *.up.sql / *.down.sql files, empty skips migrations
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// Game contains quiz round parameters.
type Game struct {
	TimerDuration time.Duration `mapstructure:"timer_duration"` // answer window per question
	InitialLives  int           `mapstructure:"initial_lives"`  // lives at the start of a round
	CorrectDelay  time.Duration `mapstructure:"correct_delay"`  // pause after a correct answer
	WrongDelay    time.Duration `mapstructure:"wrong_delay"`    // pause after a wrong answer
	TickInterval  time.Duration `mapstructure:"tick_interval"`  // countdown refresh interval, 0 disables it
	AllowRepeats  bool          `mapstructure:"allow_repeats"`  // keep playing after every flag was shown
	IdleTimeout   time.Duration `mapstructure:"idle_timeout"`   // sessions idle longer than this are ended
	SweepSchedule string        `mapstructure:"sweep_schedule"` // cron spec of the idle sweeper
}

// Load reads configuration from config files and environment variables.
func Load() (*Config, error) {
	// Pick up a local .env file if there is one.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("env", "APP_ENV")

	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	cfg, err := decode(v)
	if err != nil {
		return nil, err
	}

	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	if cfg.TelegramAPIToken == "" {
		return nil, ErrMissingEnvironmentVariables
	}

	// An empty URL is allowed: settings are then kept in memory.
	cfg.DB.URL = v.GetString("database_url")

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "local")
	v.SetDefault("log_level", "info")
	v.SetDefault("countries_path", "assets/countries.txt")
	v.SetDefault("flags_dir", "assets/flags")
	v.SetDefault("sounds_dir", "assets/sounds")
	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30s")
	v.SetDefault("database.migrations_dir", "migrations")
	v.SetDefault("game.timer_duration", "15s")
	v.SetDefault("game.initial_lives", 10)
	v.SetDefault("game.correct_delay", "2s")
	v.SetDefault("game.wrong_delay", "1s")
	v.SetDefault("game.tick_interval", "1s")
	v.SetDefault("game.allow_repeats", false)
	v.SetDefault("game.idle_timeout", "10m")
	v.SetDefault("game.sweep_schedule", "@every 1m")
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	if cfg.Game.TimerDuration <= 0 {
		return nil, fmt.Errorf("game.timer_duration must be positive, got %s", cfg.Game.TimerDuration)
	}
	if cfg.Game.InitialLives <= 0 {
		return nil, fmt.Errorf("game.initial_lives must be positive, got %d", cfg.Game.InitialLives)
	}
	if cfg.Game.CorrectDelay < 0 {
		return nil, fmt.Errorf("game.correct_delay must not be negative, got %s", cfg.Game.CorrectDelay)
	}
	if cfg.Game.WrongDelay < 0 {
		return nil, fmt.Errorf("game.wrong_delay must not be negative, got %s", cfg.Game.WrongDelay)
	}
	if cfg.Game.TickInterval < 0 {
		return nil, fmt.Errorf("game.tick_interval must not be negative, got %s", cfg.Game.TickInterval)
	}
	if _, err := cron.ParseStandard(cfg.Game.SweepSchedule); err != nil {
		return nil, fmt.Errorf("invalid game.sweep_schedule %q: %w", cfg.Game.SweepSchedule, err)
	}

	return &cfg, nil
}
