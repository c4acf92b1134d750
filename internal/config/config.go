package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

type Config struct {
	DB     DB     `yaml:"db"`
	Server Server `yaml:"server"`
	Remote Remote `yaml:"remote"`
	Log    Log    `yaml:"log"`
}

type DB struct {
	// Path of the sqlite file, or ":memory:"
	Path string `yaml:"path" example:"~/.rapport/rapport.db" validate:"required"`
}

type Server struct {
	// Listen address of the HTTP API
	Addr string `yaml:"addr" example:"localhost:5000" validate:"required,hostname_port"`
	// Requests per second allowed per client
	RateLimit float64 `yaml:"rate_limit" example:"20" validate:"gt=0"`
	// Burst size of the per-client token bucket
	Burst int `yaml:"burst" example:"40" validate:"gte=1"`
	// Seconds a request may take before the server gives up
	WriteTimeoutSec int `yaml:"write_timeout_sec" example:"15" validate:"gte=1"`
}

type Remote struct {
	// Send commands to another rapport server instead of the local engine
	Enabled bool `yaml:"enabled" example:"false"`
	// Base URL of the remote server
	BaseURL string `yaml:"base_url" example:"http://localhost:5000" validate:"omitempty,url"`
	// Per-attempt timeout
	TimeoutMs int `yaml:"timeout_ms" example:"3000" validate:"gt=0"`
	// Extra attempts after the first failure
	MaxRetries int `yaml:"max_retries" example:"1" validate:"gte=0,lte=5"`
	// Consecutive failures that open the circuit breaker
	BreakerMaxFailures uint32 `yaml:"breaker_max_failures" example:"3" validate:"gte=1"`
	// Time the breaker stays open before probing again
	BreakerTimeoutMs int `yaml:"breaker_timeout_ms" example:"30000" validate:"gt=0"`
}

// Timeout returns the per-attempt timeout as a duration.
func (r Remote) Timeout() time.Duration {
	return time.Duration(r.TimeoutMs) * time.Millisecond
}

// BreakerTimeout returns the open-state duration of the breaker.
func (r Remote) BreakerTimeout() time.Duration {
	return time.Duration(r.BreakerTimeoutMs) * time.Millisecond
}

type Log struct {
	// Minimum level: debug, info, warn or error
	Level string `yaml:"level" example:"info" validate:"oneof=debug info warn error"`
	// Telegram logging config
	Telegram TelegramLog `yaml:"telegram"`
}

type TelegramLog struct {
	// Chat bot token, obtain it via BotFather
	Token string `yaml:"token" example:"1234567890:ABCdefGHIjklMNopQRstUVwxyZ-123456789"`
	// Chat or channel to send error records to
	Username string `yaml:"username" example:"@rapport_alerts" validate:"required_with=Token"`
}

// DefaultPath is the config file read when RAPPORT_CONFIG is unset.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "rapport.yaml"
	}
	return filepath.Join(home, ".rapport", "config.yaml")
}

// Default returns a config that works without any file or environment.
func Default() Config {
	dbPath := "rapport.db"
	if home, err := os.UserHomeDir(); err == nil {
		dbPath = filepath.Join(home, ".rapport", "rapport.db")
	}
	return Config{
		DB: DB{Path: dbPath},
		Server: Server{
			Addr:            "localhost:5000",
			RateLimit:       20,
			Burst:           40,
			WriteTimeoutSec: 15,
		},
		Remote: Remote{
			TimeoutMs:          3000,
			MaxRetries:         1,
			BreakerMaxFailures: 3,
			BreakerTimeoutMs:   30000,
		},
		Log: Log{Level: "info"},
	}
}

// Load builds the effective config: defaults, then the YAML file at path,
// then RAPPORT_* environment variables. A missing file is only an error
// when required is true.
func Load(path string, required bool) (*Config, error) {
	result := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err = yaml.Unmarshal(data, &result); err != nil {
			return nil, oops.In("config").With("path", path).Errorf("failed to parse YAML config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist) && !required:
	default:
		return nil, oops.In("config").With("path", path).Errorf("failed to read config file: %w", err)
	}

	if err = applyEnv(&result, os.LookupEnv); err != nil {
		return nil, err
	}
	if err = Validate(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Validate checks field constraints and cross-field rules.
func Validate(cfg *Config) error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(cfg); err != nil {
		return oops.In("config").Errorf("failed to validate config: %w", err)
	}
	if cfg.Remote.Enabled && cfg.Remote.BaseURL == "" {
		return oops.In("config").With("field", "remote.base_url").Errorf("remote engine enabled without a base URL")
	}
	return nil
}

type lookupFunc func(key string) (string, bool)

func applyEnv(cfg *Config, lookup lookupFunc) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	str("RAPPORT_DB", &cfg.DB.Path)
	str("RAPPORT_ADDR", &cfg.Server.Addr)
	str("RAPPORT_REMOTE_URL", &cfg.Remote.BaseURL)
	str("RAPPORT_LOG_LEVEL", &cfg.Log.Level)
	str("RAPPORT_TELEGRAM_TOKEN", &cfg.Log.Telegram.Token)
	str("RAPPORT_TELEGRAM_USERNAME", &cfg.Log.Telegram.Username)

	if v, ok := lookup("RAPPORT_REMOTE_ENABLED"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return oops.In("config").With("env", "RAPPORT_REMOTE_ENABLED").Errorf("invalid boolean %q: %w", v, err)
		}
		cfg.Remote.Enabled = b
	}
	if v, ok := lookup("RAPPORT_RATE_LIMIT"); ok && v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return oops.In("config").With("env", "RAPPORT_RATE_LIMIT").Errorf("invalid number %q: %w", v, err)
		}
		cfg.Server.RateLimit = f
	}
	if v, ok := lookup("RAPPORT_REMOTE_TIMEOUT_MS"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return oops.In("config").With("env", "RAPPORT_REMOTE_TIMEOUT_MS").Errorf("invalid integer %q: %w", v, err)
		}
		cfg.Remote.TimeoutMs = n
	}
	return nil
}
