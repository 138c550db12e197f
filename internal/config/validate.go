package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/tgifai/sessiond/internal/consts"
	"github.com/tgifai/sessiond/internal/session"
)

const (
	defaultBind           = "0.0.0.0:8080"
	defaultRequestTimeout = 30
	defaultMetricsAddr    = "127.0.0.1:9091"
	defaultMetricsPath    = "/metrics"
	defaultSweepSchedule  = "@every 1m"
)

// Validate fills defaults in place and rejects values that cannot work.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config cannot be nil")
	}

	c.Server.Bind = strings.TrimSpace(c.Server.Bind)
	if c.Server.Bind == "" {
		c.Server.Bind = defaultBind
	}
	if c.Server.RequestTimeout <= 0 {
		c.Server.RequestTimeout = defaultRequestTimeout
	}
	c.Server.MetricsAddr = strings.TrimSpace(c.Server.MetricsAddr)
	if c.Server.MetricsAddr == "" {
		c.Server.MetricsAddr = defaultMetricsAddr
	}
	if c.Server.MetricsPath == "" {
		c.Server.MetricsPath = defaultMetricsPath
	}
	if !strings.HasPrefix(c.Server.MetricsPath, "/") {
		return fmt.Errorf("server.metrics_path must start with '/', got %q", c.Server.MetricsPath)
	}

	if err := c.Session.validate(); err != nil {
		return fmt.Errorf("session: %w", err)
	}

	if c.Sweeper.Enabled == nil {
		enabled := true
		c.Sweeper.Enabled = &enabled
	}
	c.Sweeper.Schedule = strings.TrimSpace(c.Sweeper.Schedule)
	if c.Sweeper.Schedule == "" {
		c.Sweeper.Schedule = defaultSweepSchedule
	}
	if _, err := cron.ParseStandard(c.Sweeper.Schedule); err != nil {
		return fmt.Errorf("sweeper.schedule %q: %w", c.Sweeper.Schedule, err)
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stdout"
	}
	if c.Logging.Output != "stdout" && strings.TrimSpace(c.Logging.File) == "" {
		c.Logging.File = consts.DefaultLogFile()
	}
	return nil
}

func (c *SessionConfig) validate() error {
	c.CookieName = strings.TrimSpace(c.CookieName)
	if c.CookieName == "" {
		c.CookieName = session.DefaultCookieName
	}
	if strings.ContainsAny(c.CookieName, "=; \t") {
		return fmt.Errorf("cookie_name %q contains a reserved character", c.CookieName)
	}

	c.TTL = strings.TrimSpace(c.TTL)
	if c.TTL == "" {
		c.TTL = session.DefaultTTL.String()
	}
	ttl, err := time.ParseDuration(c.TTL)
	if err != nil {
		return fmt.Errorf("ttl %q: %w", c.TTL, err)
	}
	if ttl <= 0 {
		return fmt.Errorf("ttl must be positive, got %s", c.TTL)
	}

	if c.HTTPOnly == nil {
		httpOnly := true
		c.HTTPOnly = &httpOnly
	}

	sameSite, err := session.ParseSameSite(c.SameSite)
	if err != nil {
		return err
	}
	c.SameSite = strings.ToLower(sameSite.String())

	// browsers drop SameSite=None cookies that are not Secure
	if sameSite == session.SameSiteNone && !c.Secure {
		return errors.New("same_site=none requires secure=true")
	}
	return nil
}
