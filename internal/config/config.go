package config

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/bytedance/sonic"

	"github.com/tgifai/sessiond/internal/session"
)

type (
	Config struct {
		Server  ServerConfig  `yaml:"server" json:"server"`
		Session SessionConfig `yaml:"session" json:"session"`
		Sweeper SweeperConfig `yaml:"sweeper" json:"sweeper"`
		Logging LoggingConfig `yaml:"logging" json:"logging"`
	}

	ServerConfig struct {
		Bind           string `yaml:"bind" json:"bind"`
		RequestTimeout int    `yaml:"request_timeout" json:"request_timeout"` // seconds
		MetricsAddr    string `yaml:"metrics_addr" json:"metrics_addr"`
		MetricsPath    string `yaml:"metrics_path" json:"metrics_path"`
	}

	SessionConfig struct {
		CookieName string `yaml:"cookie_name" json:"cookie_name"`
		TTL        string `yaml:"ttl" json:"ttl"` // Go duration, e.g. "30m"
		Secure     bool   `yaml:"secure" json:"secure"`
		HTTPOnly   *bool  `yaml:"http_only" json:"http_only"`
		SameSite   string `yaml:"same_site" json:"same_site"` // strict, lax, none
	}

	SweeperConfig struct {
		Enabled  *bool  `yaml:"enabled" json:"enabled"`
		Schedule string `yaml:"schedule" json:"schedule"`
	}

	LoggingConfig struct {
		Level      string `yaml:"level" json:"level"`   // debug, info, warn, error
		Format     string `yaml:"format" json:"format"` // json, text
		Output     string `yaml:"output" json:"output"` // stdout, file, both
		File       string `yaml:"file" json:"file"`
		MaxSize    int    `yaml:"max_size" json:"max_size"` // MB
		MaxBackups int    `yaml:"max_backups" json:"max_backups"`
		MaxAge     int    `yaml:"max_age" json:"max_age"` // days
		Compress   bool   `yaml:"compress" json:"compress"`
	}
)

// Default returns a validated config with every default applied.
func Default() *Config {
	cfg := &Config{}
	_ = cfg.Validate()
	return cfg
}

// TTLDuration returns the parsed session TTL. Validate must have run.
func (c SessionConfig) TTLDuration() time.Duration {
	d, err := time.ParseDuration(c.TTL)
	if err != nil || d <= 0 {
		return session.DefaultTTL
	}
	return d
}

// CookieOptions converts the session section into the manager's cookie
// settings.
func (c SessionConfig) CookieOptions() session.CookieOptions {
	sameSite, _ := session.ParseSameSite(c.SameSite)
	return session.CookieOptions{
		Name:     c.CookieName,
		Secure:   c.Secure,
		HTTPOnly: c.HTTPOnly == nil || *c.HTTPOnly,
		SameSite: sameSite,
	}
}

func (c SweeperConfig) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

func (c *Config) Clone() (*Config, error) {
	if c == nil {
		return nil, fmt.Errorf("config is nil")
	}

	raw, err := sonic.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}

	var cloned Config
	if err := sonic.Unmarshal(raw, &cloned); err != nil {
		return nil, fmt.Errorf("unmarshal config clone: %w", err)
	}
	return &cloned, nil
}

// Hash fingerprints the config so the running instance can log which
// revision it booted with.
func (c *Config) Hash() (string, error) {
	if c == nil {
		return "", fmt.Errorf("hash nil config")
	}
	api := sonic.Config{SortMapKeys: true, UseNumber: true}.Froze()
	raw, err := api.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("marshal config for hash: %w", err)
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}
