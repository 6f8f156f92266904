package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Log formats accepted by XAPI_LOG_FORMAT.
const (
	LogFormatJSON = "json"
	LogFormatText = "text"
)

// Server captures gateway level configuration.
type Server struct {
	Addr            string        `yaml:"addr"`
	LogFormat       string        `yaml:"log_format"`
	PrettyJSON      bool          `yaml:"pretty_json"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Server {
	return Server{
		Addr:            ":8080",
		LogFormat:       LogFormatJSON,
		MaxBodyBytes:    1 << 20,
		ShutdownTimeout: 10 * time.Second,
	}
}

// FromEnv builds a Server config from environment variables so main stays lean.
// When XAPI_CONFIG_FILE names a YAML file its values are applied first and the
// individual variables override them.
func FromEnv() (Server, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (Server, error) {
	cfg := Defaults()

	if path := getenv("XAPI_CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Server{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Server{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if addr := getenv("XAPI_GATEWAY_ADDR"); addr != "" {
		cfg.Addr = addr
	}
	if format := getenv("XAPI_LOG_FORMAT"); format != "" {
		cfg.LogFormat = format
	}
	if v := getenv("XAPI_PRETTY_JSON"); v != "" {
		pretty, err := strconv.ParseBool(v)
		if err != nil {
			return Server{}, fmt.Errorf("XAPI_PRETTY_JSON: %w", err)
		}
		cfg.PrettyJSON = pretty
	}
	if v := getenv("XAPI_MAX_BODY_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return Server{}, fmt.Errorf("XAPI_MAX_BODY_BYTES: %w", err)
		}
		cfg.MaxBodyBytes = n
	}
	if v := getenv("XAPI_SHUTDOWN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Server{}, fmt.Errorf("XAPI_SHUTDOWN_TIMEOUT: %w", err)
		}
		cfg.ShutdownTimeout = d
	}

	return cfg, cfg.validate()
}

func (s Server) validate() error {
	switch s.LogFormat {
	case LogFormatJSON, LogFormatText:
	default:
		return fmt.Errorf("unknown log format %q", s.LogFormat)
	}
	if s.MaxBodyBytes <= 0 {
		return fmt.Errorf("max body bytes must be positive, got %d", s.MaxBodyBytes)
	}
	if s.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive, got %s", s.ShutdownTimeout)
	}
	return nil
}
