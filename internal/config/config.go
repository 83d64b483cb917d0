package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port               string   `mapstructure:"PORT"`
	Env                string   `mapstructure:"ENV"`
	DatabaseURL        string   `mapstructure:"DATABASE_URL"`
	DBMaxConns         int32    `mapstructure:"DB_MAX_CONNS"`
	DBMinConns         int32    `mapstructure:"DB_MIN_CONNS"`
	CORSOrigins        []string `mapstructure:"CORS_ORIGINS"`
	DefaultDurationMin int      `mapstructure:"DEFAULT_SURGERY_DURATION_MIN"`
	ImportDurationMin  int      `mapstructure:"IMPORT_DEFAULT_DURATION_MIN"`
	PollIntervalSec    int      `mapstructure:"POLL_INTERVAL_SEC"`
	RequestTimeoutSec  int      `mapstructure:"REQUEST_TIMEOUT_SEC"`
	DaySheetRowsPage   int      `mapstructure:"DAY_SHEET_ROWS_PER_PAGE"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("DEFAULT_SURGERY_DURATION_MIN", 180)
	v.SetDefault("IMPORT_DEFAULT_DURATION_MIN", 120)
	v.SetDefault("POLL_INTERVAL_SEC", 30)
	v.SetDefault("REQUEST_TIMEOUT_SEC", 30)
	v.SetDefault("DAY_SHEET_ROWS_PER_PAGE", 12)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("DEFAULT_SURGERY_DURATION_MIN")
	v.BindEnv("IMPORT_DEFAULT_DURATION_MIN")
	v.BindEnv("POLL_INTERVAL_SEC")
	v.BindEnv("REQUEST_TIMEOUT_SEC")
	v.BindEnv("DAY_SHEET_ROWS_PER_PAGE")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// DefaultDuration is the planned length assumed for a surgery whose end
// time has not been recorded.
func (c *Config) DefaultDuration() time.Duration {
	return time.Duration(c.DefaultDurationMin) * time.Minute
}

// ImportDefaultDuration is the fallback used by the bulk importer when a
// pasted row carries no duration column.
func (c *Config) ImportDefaultDuration() time.Duration {
	return time.Duration(c.ImportDurationMin) * time.Minute
}

// PollInterval is the cadence of the background window refetch.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalSec) * time.Second
}

// RequestTimeout bounds each HTTP request's context.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSec) * time.Second
}

// Validate checks that the configuration is safe to run.
func (c *Config) Validate() error {
	if c.DefaultDurationMin <= 0 {
		return fmt.Errorf("DEFAULT_SURGERY_DURATION_MIN must be positive, got %d", c.DefaultDurationMin)
	}
	if c.ImportDurationMin <= 0 {
		return fmt.Errorf("IMPORT_DEFAULT_DURATION_MIN must be positive, got %d", c.ImportDurationMin)
	}
	if c.PollIntervalSec <= 0 {
		return fmt.Errorf("POLL_INTERVAL_SEC must be positive, got %d", c.PollIntervalSec)
	}
	if c.DaySheetRowsPage <= 0 {
		return fmt.Errorf("DAY_SHEET_ROWS_PER_PAGE must be positive, got %d", c.DaySheetRowsPage)
	}
	return nil
}
