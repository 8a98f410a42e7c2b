// Package config loads runtime settings from .env, the environment and flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/ngmaloney/weather-terminal/internal/models"
)

// Config holds the dashboard settings
type Config struct {
	APIBaseURL string `validate:"required,url"`

	DefaultLatitude  float64 `validate:"latitude"`
	DefaultLongitude float64 `validate:"longitude"`

	// PastDays is the history length requested when the past-days toggle is on.
	PastDays int `validate:"min=1,max=92"`

	Debounce     time.Duration `validate:"gt=0"`
	ErrorTimeout time.Duration `validate:"gt=0"`

	Geolocation        string        `validate:"oneof=ip static off"`
	GeolocationURL     string        `validate:"omitempty,url"`
	HomeLatitude       float64       `validate:"latitude"`
	HomeLongitude      float64       `validate:"longitude"`
	GeolocationTimeout time.Duration `validate:"gt=0"`

	HTTPTimeout time.Duration `validate:"gt=0"`
	RateLimit   float64       `validate:"min=0"`

	LogFile string

	// EnvFileLoaded is false when no .env file was found.
	EnvFileLoaded bool `validate:"-"`
}

var validate = validator.New()

// Load reads configuration from the environment with defaults. Values in the
// given .env files (default ".env") are loaded first and never override
// variables already set in the environment.
func Load(envFiles ...string) (*Config, error) {
	cfg := &Config{}
	cfg.EnvFileLoaded = godotenv.Load(envFiles...) == nil

	var errs []error
	cfg.APIBaseURL = getenvDefault("WEATHER_API_BASE_URL", "http://localhost:5000")
	cfg.DefaultLatitude = getenvFloat("WEATHER_DEFAULT_LAT", 31.525309, &errs)
	cfg.DefaultLongitude = getenvFloat("WEATHER_DEFAULT_LON", 74.299928, &errs)
	cfg.PastDays = getenvInt("WEATHER_PAST_DAYS", 10, &errs)
	cfg.Debounce = getenvDuration("WEATHER_DEBOUNCE", 300*time.Millisecond, &errs)
	cfg.ErrorTimeout = getenvDuration("WEATHER_ERROR_TIMEOUT", 5*time.Second, &errs)
	cfg.Geolocation = getenvDefault("WEATHER_GEOLOCATION", "ip")
	cfg.GeolocationURL = os.Getenv("WEATHER_GEOLOCATION_URL")
	cfg.HomeLatitude = getenvFloat("WEATHER_HOME_LAT", 0, &errs)
	cfg.HomeLongitude = getenvFloat("WEATHER_HOME_LON", 0, &errs)
	cfg.GeolocationTimeout = getenvDuration("WEATHER_GEOLOCATION_TIMEOUT", 10*time.Second, &errs)
	cfg.HTTPTimeout = getenvDuration("WEATHER_HTTP_TIMEOUT", 30*time.Second, &errs)
	cfg.RateLimit = getenvFloat("WEATHER_RATE_LIMIT", 5, &errs)
	cfg.LogFile = os.Getenv("WEATHER_LOG_FILE")

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return cfg, nil
}

// RegisterFlags binds command line flags to cfg so that parsed flags
// override the environment.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.APIBaseURL, "api", c.APIBaseURL, "weather backend base URL")
	fs.Float64Var(&c.DefaultLatitude, "lat", c.DefaultLatitude, "default latitude")
	fs.Float64Var(&c.DefaultLongitude, "lon", c.DefaultLongitude, "default longitude")
	fs.IntVar(&c.PastDays, "past-days", c.PastDays, "days of history when past days are shown")
	fs.StringVar(&c.Geolocation, "geolocation", c.Geolocation, "position source: ip, static or off")
	fs.DurationVar(&c.GeolocationTimeout, "geolocation-timeout", c.GeolocationTimeout, "position lookup timeout")
	fs.DurationVar(&c.HTTPTimeout, "timeout", c.HTTPTimeout, "backend request timeout")
	fs.StringVar(&c.LogFile, "log-file", c.LogFile, "write JSON logs to this file")
}

// Validate checks field constraints
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.Geolocation == "static" && c.HomeLatitude == 0 && c.HomeLongitude == 0 {
		return errors.New("invalid configuration: static geolocation needs WEATHER_HOME_LAT and WEATHER_HOME_LON")
	}
	return nil
}

// DefaultLocation is the position used when nothing else is known
func (c *Config) DefaultLocation() models.Coordinates {
	return models.Coordinates{Latitude: c.DefaultLatitude, Longitude: c.DefaultLongitude}
}

// HomeLocation is the position reported by static geolocation
func (c *Config) HomeLocation() models.Coordinates {
	return models.Coordinates{Latitude: c.HomeLatitude, Longitude: c.HomeLongitude}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int, errs *[]error) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("invalid %s: %w", key, err))
		return def
	}
	return n
}

func getenvFloat(key string, def float64, errs *[]error) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("invalid %s: %w", key, err))
		return def
	}
	return f
}

func getenvDuration(key string, def time.Duration, errs *[]error) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("invalid %s: %w", key, err))
		return def
	}
	return d
}
