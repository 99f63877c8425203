// Package config loads the diskinfo TOML configuration. Every section maps
// to a typed struct; fields the file omits keep their defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"

	"diskinfo/pkg/diskstat"
	"diskinfo/pkg/render"
)

// Config is the top-level configuration, mirroring the TOML sections.
type Config struct {
	Disk     DiskConfig     `toml:"disk"     json:"disk"`
	Timeline TimelineConfig `toml:"timeline" json:"timeline"`
	Server   ServerConfig   `toml:"server"   json:"server"`
	Logging  LoggingConfig  `toml:"logging"  json:"logging"`
	Display  DisplayConfig  `toml:"display"  json:"display"`
	Client   ClientConfig   `toml:"client"   json:"client"`
}

type DiskConfig struct {
	MountPoint string `toml:"mount_point" json:"mount_point"`
	Source     string `toml:"source"      json:"source"`
}

type TimelineConfig struct {
	RefreshMinutes int `toml:"refresh_minutes" json:"refresh_minutes"`
}

type ServerConfig struct {
	Bind string `toml:"bind" json:"bind"`
}

type LoggingConfig struct {
	Level string `toml:"level" json:"level"`
}

type DisplayConfig struct {
	Color  string `toml:"color"  json:"color"`
	Family string `toml:"family" json:"family"`
}

type ClientConfig struct {
	URL                   string `toml:"url"                     json:"url"`
	RetryMax              int    `toml:"retry_max"               json:"retry_max"`
	RetryWaitMinMillis    int    `toml:"retry_wait_min_ms"       json:"retry_wait_min_ms"`
	RetryWaitMaxMillis    int    `toml:"retry_wait_max_ms"       json:"retry_wait_max_ms"`
	RequestTimeoutSeconds int    `toml:"request_timeout_seconds" json:"request_timeout_seconds"`
}

// Default returns a Config populated with the built-in defaults.
func Default() Config {
	return Config{
		Disk: DiskConfig{
			MountPoint: diskstat.DefaultMountPoint,
			Source:     diskstat.SourcePsutil,
		},
		Timeline: TimelineConfig{
			RefreshMinutes: 15,
		},
		Server: ServerConfig{
			Bind: "127.0.0.1:8780",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Display: DisplayConfig{
			Color:  render.ColorAuto,
			Family: string(render.FamilySmall),
		},
		Client: ClientConfig{
			RetryMax:              3,
			RetryWaitMinMillis:    500,
			RetryWaitMaxMillis:    5000,
			RequestTimeoutSeconds: 5,
		},
	}
}

// Load reads the TOML file at path on top of the defaults and validates it.
// An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := toml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := Validate(cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Validate checks cross-field constraints.
func Validate(cfg Config) error {
	if cfg.Disk.MountPoint == "" {
		return errors.New("disk.mount_point must not be empty")
	}
	if _, err := diskstat.SourceByName(cfg.Disk.Source); err != nil {
		return fmt.Errorf("disk.source: %w", err)
	}
	if cfg.Timeline.RefreshMinutes <= 0 {
		return errors.New("timeline.refresh_minutes must be > 0")
	}
	if cfg.Server.Bind == "" {
		return errors.New("server.bind must not be empty")
	}
	if _, err := zerolog.ParseLevel(cfg.Logging.Level); err != nil || cfg.Logging.Level == "" {
		return fmt.Errorf("logging.level %q is not a valid level", cfg.Logging.Level)
	}
	switch cfg.Display.Color {
	case render.ColorAuto, render.ColorAlways, render.ColorNever:
	default:
		return fmt.Errorf("display.color must be one of auto, always, never, got %q", cfg.Display.Color)
	}
	if _, err := render.ParseFamily(cfg.Display.Family); err != nil {
		return fmt.Errorf("display.family: %w", err)
	}
	if cfg.Client.RetryMax < 0 {
		return errors.New("client.retry_max must be >= 0")
	}
	if cfg.Client.RetryWaitMinMillis < 0 || cfg.Client.RetryWaitMaxMillis < cfg.Client.RetryWaitMinMillis {
		return errors.New("client.retry_wait_max_ms must be >= client.retry_wait_min_ms >= 0")
	}
	if cfg.Client.RequestTimeoutSeconds <= 0 {
		return errors.New("client.request_timeout_seconds must be > 0")
	}
	return nil
}

// RefreshInterval is the widget timeline cadence.
func (c Config) RefreshInterval() time.Duration {
	return time.Duration(c.Timeline.RefreshMinutes) * time.Minute
}

// RetryWaitMin is the shortest backoff between client retries.
func (c ClientConfig) RetryWaitMin() time.Duration {
	return time.Duration(c.RetryWaitMinMillis) * time.Millisecond
}

// RetryWaitMax is the longest backoff between client retries.
func (c ClientConfig) RetryWaitMax() time.Duration {
	return time.Duration(c.RetryWaitMaxMillis) * time.Millisecond
}

// RequestTimeout bounds a single request to the daemon.
func (c ClientConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}
