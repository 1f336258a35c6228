// Package appconf loads the service configuration from defaults, an optional
// config file and WAYFINDER_* environment variables.
package appconf

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Environment is the operating environment of the server.
type Environment int

const (
	Development Environment = iota
	Test
	Production
)

func (e Environment) String() string {
	switch e {
	case Test:
		return "test"
	case Production:
		return "production"
	default:
		return "development"
	}
}

// EnvFlagToEnvironment maps a flag or config value to an Environment.
// Unknown values map to Development.
func EnvFlagToEnvironment(env string) Environment {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "test":
		return Test
	case "production", "prod":
		return Production
	default:
		return Development
	}
}

// Config holds all the configuration settings for the server.
type Config struct {
	Port       int              `mapstructure:"port"`
	EnvName    string           `mapstructure:"env"`
	ApiKeys    []string         `mapstructure:"apiKeys"`
	RateLimit  int              `mapstructure:"rateLimit"`
	LogLevel   string           `mapstructure:"logLevel"`
	Projection ProjectionConfig `mapstructure:"projection"`
	Sessions   SessionsConfig   `mapstructure:"sessions"`
	Catalog    CatalogConfig    `mapstructure:"catalog"`
}

// ProjectionConfig holds camera settings.
type ProjectionConfig struct {
	FOV            float64 `mapstructure:"fov"`
	Hysteresis     float64 `mapstructure:"hysteresis"`
	ViewportWidth  float64 `mapstructure:"viewportWidth"`
	ViewportHeight float64 `mapstructure:"viewportHeight"`
}

// SessionsConfig holds session expiry settings.
type SessionsConfig struct {
	TTL           time.Duration `mapstructure:"ttl"`
	SweepInterval time.Duration `mapstructure:"sweepInterval"`
}

// CatalogConfig points at the GTFS feed whose stops become targets.
// An empty GtfsSource disables the catalog.
type CatalogConfig struct {
	GtfsSource      string        `mapstructure:"gtfsSource"`
	RefreshInterval time.Duration `mapstructure:"refreshInterval"`
}

// Env returns the parsed operating environment.
func (c Config) Env() Environment {
	return EnvFlagToEnvironment(c.EnvName)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", 4000)
	v.SetDefault("env", "development")
	v.SetDefault("apiKeys", []string{"test"})
	v.SetDefault("rateLimit", 100)
	v.SetDefault("logLevel", "info")

	v.SetDefault("projection.fov", 60.0)
	v.SetDefault("projection.hysteresis", 0.0)
	v.SetDefault("projection.viewportWidth", 390.0)
	v.SetDefault("projection.viewportHeight", 844.0)

	v.SetDefault("sessions.ttl", "30m")
	v.SetDefault("sessions.sweepInterval", "1m")

	v.SetDefault("catalog.gtfsSource", "")
	v.SetDefault("catalog.refreshInterval", "24h")
}

// Load reads configuration. configFile may be empty, in which case only
// defaults and environment variables apply.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// WAYFINDER_PROJECTION_FOV -> projection.fov
	v.SetEnvPrefix("WAYFINDER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// comma separated keys from the environment arrive as one element
	cfg.ApiKeys = splitKeys(cfg.ApiKeys)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func splitKeys(keys []string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		for _, part := range strings.Split(k, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Validate checks that configuration values are sane.
func (c *Config) Validate() error {
	var errs []string

	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Sprintf("port must be 1-65535, got %d", c.Port))
	}
	if len(c.ApiKeys) == 0 {
		errs = append(errs, "apiKeys must contain at least one key")
	}
	if c.RateLimit < 0 {
		errs = append(errs, "rateLimit must be non-negative")
	}
	if c.Projection.FOV <= 0 || c.Projection.FOV > 360 {
		errs = append(errs, fmt.Sprintf("projection.fov must be in (0, 360], got %g", c.Projection.FOV))
	}
	if c.Projection.Hysteresis < 0 {
		errs = append(errs, "projection.hysteresis must be non-negative")
	}
	if c.Projection.ViewportWidth <= 0 || c.Projection.ViewportHeight <= 0 {
		errs = append(errs, "projection viewport must be positive")
	}
	if c.Sessions.TTL < 0 || c.Sessions.SweepInterval < 0 {
		errs = append(errs, "sessions durations must be non-negative")
	}
	if c.Catalog.RefreshInterval < 0 {
		errs = append(errs, "catalog.refreshInterval must be non-negative")
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w:\n  - %s", ErrInvalidConfig, strings.Join(errs, "\n  - "))
	}
	return nil
}
