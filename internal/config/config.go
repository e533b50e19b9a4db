// Package config loads server settings from the environment and layout
// overrides from YAML.
package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cristianadrielbraun/qrframe/internal/encoder"
	"github.com/cristianadrielbraun/qrframe/internal/render"
)

type Config struct {
	Host             string
	Port             string
	RequestTimeout   time.Duration
	LogoFetchTimeout time.Duration
	MaxLogoBytes     int64
	Encoder          string
	Layout           string
	LayoutFile       string
	FontRegular      string
	FontBold         string
	LogLevel         string
}

func (c *Config) ServerAddress() string {
	host := strings.TrimSpace(c.Host)
	port := strings.TrimSpace(c.Port)
	return net.JoinHostPort(host, port)
}

func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Host:             getEnvOrDefault("HOST", "0.0.0.0"),
		Port:             getEnvOrDefault("PORT", "8080"),
		RequestTimeout:   parseDurationOrDefault("REQUEST_TIMEOUT", 30*time.Second),
		LogoFetchTimeout: parseDurationOrDefault("LOGO_FETCH_TIMEOUT", 10*time.Second),
		MaxLogoBytes:     parseIntOrDefault("MAX_LOGO_BYTES", 5*1024*1024), // 5MB
		Encoder:          getEnvOrDefault("QR_ENCODER", "matrix"),
		Layout:           getEnvOrDefault("QR_LAYOUT", "classic"),
		LayoutFile:       os.Getenv("LAYOUT_FILE"),
		FontRegular:      os.Getenv("FONT_REGULAR"),
		FontBold:         os.Getenv("FONT_BOLD"),
		LogLevel:         getEnvOrDefault("LOG_LEVEL", "info"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks ranges and names. Flags may change fields after
// LoadFromEnv, so callers run it again before use.
func (c *Config) Validate() error {
	p, err := strconv.Atoi(strings.TrimSpace(c.Port))
	if err != nil || p < 1 || p > 65535 {
		return fmt.Errorf("invalid PORT: %q", c.Port)
	}
	if c.MaxLogoBytes <= 0 {
		return fmt.Errorf("MAX_LOGO_BYTES must be > 0 (got %d)", c.MaxLogoBytes)
	}
	if c.RequestTimeout <= 0 || c.LogoFetchTimeout <= 0 {
		return fmt.Errorf("timeouts must be > 0 (got request=%s, logo=%s)",
			c.RequestTimeout, c.LogoFetchTimeout)
	}
	if _, err := encoder.ByName(c.Encoder); err != nil {
		return fmt.Errorf("invalid QR_ENCODER: %w", err)
	}
	if _, err := render.LayoutByName(c.Layout); err != nil {
		return fmt.Errorf("invalid QR_LAYOUT: %w", err)
	}
	if (c.FontRegular == "") != (c.FontBold == "") {
		return fmt.Errorf("FONT_REGULAR and FONT_BOLD must be set together")
	}
	return nil
}

// ResolveLayout returns the named preset with LayoutFile applied on top.
func (c *Config) ResolveLayout() (render.Layout, error) {
	base, err := render.LayoutByName(c.Layout)
	if err != nil {
		return render.Layout{}, err
	}
	if c.LayoutFile == "" {
		return base, nil
	}
	return LoadLayout(c.LayoutFile, base)
}

// LoadLayout overlays the YAML file at path on base. Keys absent from the
// file keep their base values.
func LoadLayout(path string, base render.Layout) (render.Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return render.Layout{}, fmt.Errorf("read layout file: %w", err)
	}
	layout := base
	if err := yaml.Unmarshal(data, &layout); err != nil {
		return render.Layout{}, fmt.Errorf("parse layout file %s: %w", path, err)
	}
	if err := layout.Validate(); err != nil {
		return render.Layout{}, fmt.Errorf("layout file %s: %w", path, err)
	}
	return layout, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(strings.TrimSpace(value)); err == nil && duration > 0 {
			return duration
		}
	}
	return defaultValue
}

func parseIntOrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
