package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/sinergy/chronosync/internal/apperrors"
)

// Config holds the client settings read from the process environment
type Config struct {
	APIBaseURL        string        `env:"API_BASE_URL,required=true"`
	Environment       string        `env:"ENVIRONMENT,default=dev"`
	LogLevel          string        `env:"LOG_LEVEL,default=info"`
	HTTPTimeout       time.Duration `env:"HTTP_TIMEOUT,default=10s"`
	SessionFile       string        `env:"SESSION_FILE"` // defaults to <user config dir>/chronosync/session.json
	RateLimitRPS      float64       `env:"RATE_LIMIT_RPS,default=0"`
	RateLimitBurst    int           `env:"RATE_LIMIT_BURST,default=1"`
	ValidateResponses bool          `env:"VALIDATE_RESPONSES,default=true"`
}

var validEnvs = map[string]bool{
	"dev":     true,
	"test":    true,
	"staging": true,
	"prod":    true,
}

const (
	DefaultEnvFile     = ".env"
	sessionDirName     = "chronosync"
	sessionFileName    = "session.json"
	apiBaseURLVariable = "API_BASE_URL"
)

// NewConfig loads envFile (if it exists) into the process environment and then reads the configuration.
// A missing API_BASE_URL is reported as an *apperrors.ConfigError; callers are expected to treat it as fatal.
func NewConfig(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, &apperrors.ConfigError{Message: fmt.Sprintf("failed to load %s", envFile), Err: err}
		}
	}

	es, err := env.EnvironToEnvSet(os.Environ())
	if err != nil {
		return nil, &apperrors.ConfigError{Message: "failed to read environment", Err: err}
	}

	return FromEnvSet(es)
}

// FromEnvSet builds a Config from an explicit set of variables
func FromEnvSet(es env.EnvSet) (*Config, error) {
	var cfg Config

	if err := env.Unmarshal(es, &cfg); err != nil {
		var missing *env.ErrMissingRequiredValue
		if errors.As(err, &missing) {
			return nil, &apperrors.ConfigError{Message: fmt.Sprintf("%s is not defined in the environment variables", apiBaseURLVariable)}
		}
		return nil, &apperrors.ConfigError{Message: "failed to unmarshal environment variables", Err: err}
	}

	if cfg.SessionFile == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, &apperrors.ConfigError{Message: "SESSION_FILE is not set and no user config directory is available", Err: err}
		}
		cfg.SessionFile = filepath.Join(dir, sessionDirName, sessionFileName)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, &apperrors.ConfigError{Message: "configuration validation failed", Err: err}
	}

	return &cfg, nil
}

func validateConfig(cfg *Config) error {
	if strings.TrimSpace(cfg.APIBaseURL) == "" {
		return fmt.Errorf("%s cannot be empty", apiBaseURLVariable)
	}

	u, err := url.ParseRequestURI(cfg.APIBaseURL)
	if err != nil {
		return fmt.Errorf("%s is not a valid URL: %s", apiBaseURLVariable, cfg.APIBaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must use http or https: %s", apiBaseURLVariable, cfg.APIBaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("%s does not include a host: %s", apiBaseURLVariable, cfg.APIBaseURL)
	}
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")

	if !validEnvs[cfg.Environment] {
		return fmt.Errorf("invalid environment '%s'. Valid environments: dev, test, staging, prod", cfg.Environment)
	}

	if cfg.HTTPTimeout <= 0 {
		return fmt.Errorf("http timeout must be positive, got %v", cfg.HTTPTimeout)
	}

	if cfg.RateLimitRPS < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must be 0 (disabled) or greater, got %v", cfg.RateLimitRPS)
	}
	if cfg.RateLimitRPS > 0 && cfg.RateLimitBurst < 1 {
		return fmt.Errorf("RATE_LIMIT_BURST must be at least 1 when rate limiting is enabled, got %d", cfg.RateLimitBurst)
	}

	return nil
}

// APIURL maps a path relative to the API root to an absolute URL
func (c *Config) APIURL(path string) string {
	return c.APIBaseURL + path
}
