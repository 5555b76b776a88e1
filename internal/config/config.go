package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	ErrMissingEnvironmentVariables = errors.New("missing required environment variables")
	ErrUnknownStorageDriver        = errors.New("unknown storage driver")
)

// Storage drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverCSV      = "csv"
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string   `mapstructure:"env"`      // current application environment (local, dev, production etc)
	TelegramAPIToken string   `mapstructure:"-"`        // Telegram API token loaded from environment
	Learning         Learning `mapstructure:"learning"` // learning session parameters
	Session          Session  `mapstructure:"session"`  // in-memory session lifecycle
	Storage          Storage  `mapstructure:"storage"`  // word store selection
	DB               DB       `mapstructure:"database"` // database configuration section
}

// Learning configures learning sessions.
type Learning struct {
	BatchSize int `mapstructure:"batch_size"` // unlearned words drilled per session
}

// Session configures idle session expiry.
type Session struct {
	IdleTTL       time.Duration `mapstructure:"idle_ttl"`       // sessions untouched for this long are dropped
	SweepSchedule string        `mapstructure:"sweep_schedule"` // cron spec of the idle sweep
}

// Storage selects and configures the word store.
type Storage struct {
	Driver     string `mapstructure:"driver"`      // postgres, sqlite or csv
	CSVDir     string `mapstructure:"csv_dir"`     // directory of {learner}_wordlist.csv files
	SQLitePath string `mapstructure:"sqlite_path"` // SQLite database file
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// Load reads configuration from .env, config files and environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	setDefaults(v)

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("env", "APP_ENV")

	// Try to read configuration file if present.
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

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "local")
	v.SetDefault("learning.batch_size", 3)
	v.SetDefault("session.idle_ttl", "30m")
	v.SetDefault("session.sweep_schedule", "@every 1m")
	v.SetDefault("storage.driver", DriverCSV)
	v.SetDefault("storage.csv_dir", "users")
	v.SetDefault("storage.sqlite_path", "simguistic.db")
	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30s")
}

func decode(v *viper.Viper) (*Config, error) {
	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	cfg.DB.URL = v.GetString("database_url")

	return &cfg, nil
}

// BotToken returns the Telegram API token if it is configured.
func (c *Config) BotToken() (string, error) {
	if c.TelegramAPIToken == "" {
		return "", fmt.Errorf("%w: TELEGRAM_API_TOKEN", ErrMissingEnvironmentVariables)
	}
	return c.TelegramAPIToken, nil
}

// Validate checks that the settings required by the selected driver are present.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverPostgres:
		if _, err := c.DB.DSN(); err != nil {
			return fmt.Errorf("%w: DATABASE_URL", err)
		}
	case DriverSQLite, DriverCSV:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStorageDriver, c.Storage.Driver)
	}

	return nil
}
