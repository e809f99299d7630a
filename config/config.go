// Package config loads the application configuration from a TOML file whose
// path is taken from the MICROBLOG_CONFIG environment variable.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

type LogLevel string

const (
	Debug  LogLevel = "debug"
	Info   LogLevel = "info"
	Notice LogLevel = "notice"
	Warn   LogLevel = "warn"
	Error  LogLevel = "error"
)

const (
	defaultConfigPath = "microblog.toml"
	defaultPort       = 8080
	defaultDBPath     = "db/microblog.db"
	defaultPendingTTL = 72 // hours a pending registration is kept
)

// Config holds everything the application needs at startup. It is constructed
// once in main and handed to the web server rather than read through package
// globals.
type Config struct {
	DBPath     string   `toml:"db_path"`
	Secret     string   `toml:"secret"`
	Listen     string   `toml:"listen"`
	Port       int      `toml:"port"`
	LogLevel   LogLevel `toml:"log_level"`
	LogFolder  string   `toml:"log_folder"`
	BaseURL    string   `toml:"base_url"`
	PendingTTL int      `toml:"pending_ttl_hours"`
}

// Load reads the config file pointed to by MICROBLOG_CONFIG. A .env file in
// the working directory is honored first so the variable can live there
// during development. The secret has no default: sessions cannot be signed
// without one.
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("load .env: %w", err)
		}
	}

	path := os.Getenv("MICROBLOG_CONFIG")
	if path == "" {
		path = defaultConfigPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := &Config{
		DBPath:     defaultDBPath,
		Port:       defaultPort,
		LogLevel:   Info,
		PendingTTL: defaultPendingTTL,
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if cfg.Secret == "" {
		return nil, fmt.Errorf("config %s: secret must be set", path)
	}
	return cfg, nil
}

// GetLogLevel resolves the effective log level, letting MICROBLOG_LOG_LEVEL
// override the config file and debug mode force everything on.
func (c *Config) GetLogLevel() LogLevel {
	if IsDebug() {
		return Debug
	}
	if level := os.Getenv("MICROBLOG_LOG_LEVEL"); level != "" {
		return LogLevel(strings.ToLower(level))
	}
	if c.LogLevel != "" {
		return c.LogLevel
	}
	return Info
}

func IsDebug() bool {
	return os.Getenv("MICROBLOG_DEBUG") == "true"
}
