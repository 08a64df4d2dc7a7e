package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/aevon-lab/chartline/internal/core/chartdef"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config represents the top-level application config plus resolved chart definitions.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Charts    ChartsConfig    `koanf:"charts"`
	Retention RetentionConfig `koanf:"retention"`

	// ChartLoading is populated by Load after parsing chart definition files.
	ChartLoading ChartLoadingConfig `koanf:"-"`
}

type ServerConfig struct {
	Port          int    `koanf:"port"`
	Host          string `koanf:"host"`
	MaxBodySizeMB int    `koanf:"max_body_size_mb"`
	Mode          string `koanf:"mode"` // debug | release
}

type DatabaseConfig struct {
	Type         string `koanf:"type"`
	DSN          string `koanf:"dsn"`
	MaxOpenConns int    `koanf:"max_open_conns"`
	MaxIdleConns int    `koanf:"max_idle_conns"`
	AutoMigrate  bool   `koanf:"auto_migrate"`
}

type ChartsConfig struct {
	ConfigDir          string   `koanf:"config_dir"`
	RequireDefinitions bool     `koanf:"require_definitions"`
	Timezone           string   `koanf:"timezone"` // IANA name or "Local"; decides calendar days
	DefaultRange       int      `koanf:"default_range"`
	MaxRange           int      `koanf:"max_range"`
	DefaultHeight      int      `koanf:"default_height"`
	MaxRecords         int      `koanf:"max_records"` // per render load
	Palette            []string `koanf:"palette"`
}

type RetentionConfig struct {
	Enabled  bool   `koanf:"enabled"`
	Interval string `koanf:"interval"` // parsed and validated on startup
	Days     int    `koanf:"days"`
}

type ChartLoadingConfig struct {
	ConfigDir   string
	Location    *time.Location
	Definitions []chartdef.Definition
}

// Location resolves the configured timezone. An empty name means host local time.
func (c ChartsConfig) Location() (*time.Location, error) {
	if c.Timezone == "" || strings.EqualFold(c.Timezone, "local") {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// Defaults returns the values chart definitions fall back to.
func (c ChartsConfig) Defaults() chartdef.Defaults {
	return chartdef.Defaults{
		Range:    c.DefaultRange,
		MaxRange: c.MaxRange,
		Height:   c.DefaultHeight,
	}
}

func (c RetentionConfig) IntervalDuration() time.Duration {
	d, err := time.ParseDuration(c.Interval)
	if err != nil {
		return time.Hour
	}
	return d
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d (must be 1-65535)", c.Server.Port)
	}
	if strings.TrimSpace(c.Server.Host) == "" {
		return fmt.Errorf("server.host is required")
	}
	if c.Server.MaxBodySizeMB <= 0 {
		return fmt.Errorf("server.max_body_size_mb must be > 0")
	}
	if c.Server.Mode != "debug" && c.Server.Mode != "release" {
		return fmt.Errorf("invalid server.mode %q (must be debug or release)", c.Server.Mode)
	}

	if strings.TrimSpace(c.Database.DSN) == "" {
		return fmt.Errorf("database.dsn is required")
	}
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be > 0")
	}
	if c.Database.MaxIdleConns <= 0 {
		return fmt.Errorf("database.max_idle_conns must be > 0")
	}
	if c.Database.Type != "" && c.Database.Type != "postgres" {
		return fmt.Errorf("unsupported database.type %q", c.Database.Type)
	}

	if strings.TrimSpace(c.Charts.ConfigDir) == "" {
		return fmt.Errorf("charts.config_dir is required")
	}
	if _, err := c.Charts.Location(); err != nil {
		return fmt.Errorf("invalid charts.timezone %q: %w", c.Charts.Timezone, err)
	}
	if c.Charts.DefaultRange < 0 {
		return fmt.Errorf("charts.default_range must be >= 0")
	}
	if c.Charts.MaxRange < c.Charts.DefaultRange {
		return fmt.Errorf("charts.max_range (%d) must be >= charts.default_range (%d)", c.Charts.MaxRange, c.Charts.DefaultRange)
	}
	if c.Charts.DefaultHeight <= 0 {
		return fmt.Errorf("charts.default_height must be > 0")
	}
	if c.Charts.MaxRecords <= 0 {
		return fmt.Errorf("charts.max_records must be > 0")
	}

	if c.Retention.Enabled {
		interval, err := time.ParseDuration(c.Retention.Interval)
		if err != nil {
			return fmt.Errorf("invalid retention.interval %q: %w", c.Retention.Interval, err)
		}
		if interval <= 0 {
			return fmt.Errorf("retention.interval must be > 0")
		}
		if c.Retention.Days <= c.Charts.MaxRange {
			return fmt.Errorf("retention.days (%d) must exceed charts.max_range (%d)", c.Retention.Days, c.Charts.MaxRange)
		}
	}

	return nil
}

// Load parses config from file + env, validates it, then loads chart definitions.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	defaults := map[string]interface{}{
		"server.port":                8080,
		"server.host":                "0.0.0.0",
		"server.max_body_size_mb":    1,
		"server.mode":                "release",
		"database.type":              "postgres",
		"database.dsn":               "postgres://localhost:5432/chartline?sslmode=disable",
		"database.max_open_conns":    25,
		"database.max_idle_conns":    25,
		"database.auto_migrate":      true,
		"charts.config_dir":          "./config/charts",
		"charts.require_definitions": false,
		"charts.timezone":            "Local",
		"charts.default_range":       30,
		"charts.max_range":           366,
		"charts.default_height":      300,
		"charts.max_records":         100000,
		"charts.palette":             []string{},
		"retention.enabled":          false,
		"retention.interval":         "1h",
		"retention.days":             400,
	}
	for key, value := range defaults {
		k.Set(key, value)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := k.Load(env.Provider("CHARTLINE_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "CHARTLINE_")), "__", ".", -1)
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	loc, err := cfg.Charts.Location()
	if err != nil {
		return nil, err
	}

	repo, err := chartdef.NewFileSystemRepository(cfg.Charts.ConfigDir, cfg.Charts.Defaults())
	if err != nil {
		return nil, fmt.Errorf("failed to load chart definitions: %w", err)
	}
	definitions := repo.Definitions()
	if cfg.Charts.RequireDefinitions && len(definitions) == 0 {
		return nil, fmt.Errorf("no chart definitions found in %q", cfg.Charts.ConfigDir)
	}

	cfg.ChartLoading = ChartLoadingConfig{
		ConfigDir:   cfg.Charts.ConfigDir,
		Location:    loc,
		Definitions: definitions,
	}

	return &cfg, nil
}
