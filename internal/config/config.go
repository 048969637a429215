// Package config loads the service configuration from YAML with environment
// overrides for secrets and deployment specific values.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Environment overrides
const (
	EnvDatabaseURL = "RECIPECOST_DATABASE_URL"
	EnvJWTSecret   = "RECIPECOST_JWT_SECRET"
	EnvLogLevel    = "RECIPECOST_LOG_LEVEL"
)

// DriverMemory keeps all records in process memory
const DriverMemory = "memory"

// Config represents the application configuration
type Config struct {
	Server struct {
		Port           int      `yaml:"port"`
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Port    int    `yaml:"port"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Database struct {
		Driver string `yaml:"driver"`
		URL    string `yaml:"url"`
		LogSQL bool   `yaml:"log_sql"`
	} `yaml:"database"`
	Auth struct {
		JWTSecret string `yaml:"jwt_secret"`
	} `yaml:"auth"`
	Pricing struct {
		DefaultProfitPercentage float64 `yaml:"default_profit_percentage"`
	} `yaml:"pricing"`
	LogLevel string `yaml:"log_level"`
	SeedFile string `yaml:"seed_file"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	cfg := &Config{}
	cfg.Server.Port = 8080
	cfg.Server.AllowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	cfg.Metrics.Enabled = true
	cfg.Metrics.Port = 9090
	cfg.Metrics.Path = "/metrics"
	cfg.Database.Driver = DriverMemory
	cfg.Pricing.DefaultProfitPercentage = 25
	cfg.LogLevel = "info"
	return cfg
}

// Load reads path on top of the defaults, applies environment overrides and
// validates the result. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvDatabaseURL); v != "" {
		c.Database.URL = v
	}
	if v := os.Getenv(EnvJWTSecret); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
}

// Validate checks for invalid configuration values.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port))
	}
	if c.Metrics.Enabled {
		if c.Metrics.Port <= 0 || c.Metrics.Port > 65535 {
			errs = append(errs, fmt.Errorf("metrics.port must be between 1 and 65535, got %d", c.Metrics.Port))
		}
		if c.Metrics.Port == c.Server.Port {
			errs = append(errs, fmt.Errorf("metrics.port must differ from server.port (%d)", c.Server.Port))
		}
		if c.Metrics.Path == "" || c.Metrics.Path[0] != '/' {
			errs = append(errs, fmt.Errorf("metrics.path must start with '/', got %q", c.Metrics.Path))
		}
	}

	switch c.Database.Driver {
	case DriverMemory:
	case "sqlite3", "postgres":
		if c.Database.URL == "" {
			errs = append(errs, fmt.Errorf("database.url is required for driver %s", c.Database.Driver))
		}
	default:
		errs = append(errs, fmt.Errorf("database.driver must be one of memory, sqlite3, postgres, got %q", c.Database.Driver))
	}

	p := c.Pricing.DefaultProfitPercentage
	if math.IsNaN(p) || math.IsInf(p, 0) {
		errs = append(errs, fmt.Errorf("pricing.default_profit_percentage must be finite, got %v", p))
	}

	return errors.Join(errs...)
}
