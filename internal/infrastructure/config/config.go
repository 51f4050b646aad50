package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/eslsoft/lingodeck/internal/entity"
)

// Config holds all configuration for our application
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	Review   ReviewConfig   `mapstructure:"review"`
	Shuffle  ShuffleConfig  `mapstructure:"shuffle"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"`
	DSN      string `mapstructure:"dsn"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	SSLMode  string `mapstructure:"sslmode"`
	LogSQL   bool   `mapstructure:"log_sql"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ReviewConfig holds the spaced-repetition intervals in days per mastery tier
type ReviewConfig struct {
	Interval entity.ReviewInterval `mapstructure:"interval"`
}

// ShuffleConfig holds workbook shuffle cache settings
type ShuffleConfig struct {
	Capacity   int           `mapstructure:"capacity"`
	Radius     int           `mapstructure:"radius"`
	IdleDelay  time.Duration `mapstructure:"idle_delay"`
	IdleBudget time.Duration `mapstructure:"idle_budget"`
}

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
	DriverPGX      = "pgx"
)

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	if viper.ConfigFileUsed() == "" {
		viper.SetConfigName(".env")
		viper.SetConfigType("env")
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	// Set default values
	setDefaults()

	// Enable reading from environment variables
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read configuration file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Database defaults
	viper.SetDefault("database.driver", DriverSQLite)
	viper.SetDefault("database.dsn", "")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.name", "lingodeck")
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "postgres")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("database.log_sql", false)

	// Log defaults
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "json")

	// Review defaults
	defaults := entity.DefaultReviewInterval()
	viper.SetDefault("review.interval.red", defaults.Red)
	viper.SetDefault("review.interval.yellow", defaults.Yellow)
	viper.SetDefault("review.interval.green", defaults.Green)

	// Shuffle defaults
	viper.SetDefault("shuffle.capacity", 600)
	viper.SetDefault("shuffle.radius", 2)
	viper.SetDefault("shuffle.idle_delay", time.Millisecond)
	viper.SetDefault("shuffle.idle_budget", 50*time.Millisecond)
}

// Validate rejects settings the scheduler and cache cannot work with
func (c *Config) Validate() error {
	if _, err := c.DatabaseDriver(); err != nil {
		return err
	}
	if err := c.Review.Interval.Validate(); err != nil {
		return fmt.Errorf("review.interval: %w", err)
	}
	if c.Shuffle.Capacity <= 0 {
		return fmt.Errorf("shuffle.capacity must be positive, got %d", c.Shuffle.Capacity)
	}
	if c.Shuffle.Radius < 0 {
		return fmt.Errorf("shuffle.radius must not be negative, got %d", c.Shuffle.Radius)
	}
	return nil
}

// DatabaseDriver returns the normalized database/sql driver name
func (c *Config) DatabaseDriver() (string, error) {
	driver := strings.ToLower(strings.TrimSpace(c.Database.Driver))
	switch driver {
	case "", "sqlite", DriverSQLite:
		return DriverSQLite, nil
	case DriverPostgres, "postgresql":
		return DriverPostgres, nil
	case DriverPGX:
		return DriverPGX, nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
}

// DatabaseURL returns the connection string for the configured driver
func (c *Config) DatabaseURL() (string, error) {
	if dsn := strings.TrimSpace(c.Database.DSN); dsn != "" {
		return dsn, nil
	}
	driver, err := c.DatabaseDriver()
	if err != nil {
		return "", err
	}
	if driver == DriverSQLite {
		return "file:" + c.Database.Name + ".db?_foreign_keys=on", nil
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Database.User, c.Database.Password),
		Host:     fmt.Sprintf("%s:%d", c.Database.Host, c.Database.Port),
		Path:     "/" + c.Database.Name,
		RawQuery: "sslmode=" + url.QueryEscape(c.Database.SSLMode),
	}
	return u.String(), nil
}

// Settings returns the learner settings derived from configuration
func (c *Config) Settings() entity.Settings {
	return entity.Settings{ReviewInterval: c.Review.Interval}
}
