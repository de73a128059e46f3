package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Store backends.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Transport modes.
const (
	TransportHTTP  = "http"
	TransportStdio = "stdio"
)

// Config defines server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Transport TransportConfig `yaml:"transport"`
	Store     StoreConfig     `yaml:"store"`
	Auth      AuthConfig      `yaml:"auth"`
	Log       LogConfig       `yaml:"log"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type TransportConfig struct {
	Mode string `yaml:"mode"`
}

type StoreConfig struct {
	// Backend is "json" (one file per collection under Dir) or "sqlite" (Path).
	Backend    string `yaml:"backend"`
	Dir        string `yaml:"dir"`
	Path       string `yaml:"path"`
	Collection string `yaml:"collection"`
}

type AuthConfig struct {
	Enabled bool   `yaml:"enabled"`
	Token   string `yaml:"token"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Transport: TransportConfig{
			Mode: TransportHTTP,
		},
		Store: StoreConfig{
			Backend:    BackendJSON,
			Dir:        "data",
			Path:       "activitylog.db",
			Collection: "activities",
		},
		Log: LogConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: "activitylog",
		},
	}
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("ACTIVITYLOG_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the configuration contains usable values.
func (c Config) Validate() error {
	switch c.Store.Backend {
	case BackendJSON:
		if strings.TrimSpace(c.Store.Dir) == "" {
			return fmt.Errorf("store.dir is required for the %s backend", BackendJSON)
		}
	case BackendSQLite:
		if strings.TrimSpace(c.Store.Path) == "" {
			return fmt.Errorf("store.path is required for the %s backend", BackendSQLite)
		}
	default:
		return fmt.Errorf("invalid store.backend %q: must be %s or %s", c.Store.Backend, BackendJSON, BackendSQLite)
	}
	if strings.TrimSpace(c.Store.Collection) == "" {
		return fmt.Errorf("store.collection is required")
	}
	if c.Transport.Mode != TransportHTTP && c.Transport.Mode != TransportStdio {
		return fmt.Errorf("invalid transport.mode %q: must be %s or %s", c.Transport.Mode, TransportHTTP, TransportStdio)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d", c.Server.Port)
	}
	if c.Auth.Enabled && c.Auth.Token == "" {
		return fmt.Errorf("auth.token is required when auth is enabled")
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if host := os.Getenv("ACTIVITYLOG_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("ACTIVITYLOG_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return fmt.Errorf("invalid ACTIVITYLOG_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if mode := os.Getenv("ACTIVITYLOG_TRANSPORT_MODE"); mode != "" {
		cfg.Transport.Mode = mode
	}
	if backend := os.Getenv("ACTIVITYLOG_STORE_BACKEND"); backend != "" {
		cfg.Store.Backend = backend
	}
	if dir := os.Getenv("ACTIVITYLOG_STORE_DIR"); dir != "" {
		cfg.Store.Dir = dir
	}
	if path := os.Getenv("ACTIVITYLOG_STORE_PATH"); path != "" {
		cfg.Store.Path = path
	}
	if name := os.Getenv("ACTIVITYLOG_STORE_COLLECTION"); name != "" {
		cfg.Store.Collection = name
	}
	if token := os.Getenv("ACTIVITYLOG_AUTH_TOKEN"); token != "" {
		cfg.Auth.Token = token
		cfg.Auth.Enabled = true
	}
	if level := os.Getenv("ACTIVITYLOG_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if path := os.Getenv("ACTIVITYLOG_LOG_PATH"); path != "" {
		cfg.Log.Path = path
	}
	if enabled := os.Getenv("ACTIVITYLOG_METRICS_ENABLED"); enabled != "" {
		v, err := strconv.ParseBool(enabled)
		if err != nil {
			return fmt.Errorf("invalid ACTIVITYLOG_METRICS_ENABLED: %w", err)
		}
		cfg.Metrics.Enabled = v
	}
	return nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
