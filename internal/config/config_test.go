package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tgifai/sessiond/internal/session"
)

func mustHash(t *testing.T, cfg *Config) string {
	t.Helper()
	h, err := cfg.Hash()
	require.NoError(t, err)
	return h
}

func TestHash(t *testing.T) {
	a := Default()
	b := Default()
	assert.Len(t, mustHash(t, a), 64)
	assert.Equal(t, mustHash(t, a), mustHash(t, b))

	b.Session.CookieName = "sid"
	assert.NotEqual(t, mustHash(t, a), mustHash(t, b))

	var missing *Config
	_, err := missing.Hash()
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, defaultBind, cfg.Server.Bind)
	assert.Equal(t, session.DefaultCookieName, cfg.Session.CookieName)
	assert.Equal(t, session.DefaultTTL, cfg.Session.TTLDuration())
	assert.Equal(t, "lax", cfg.Session.SameSite)
	assert.True(t, cfg.Sweeper.IsEnabled())
	assert.Equal(t, defaultSweepSchedule, cfg.Sweeper.Schedule)

	opts := cfg.Session.CookieOptions()
	assert.True(t, opts.HTTPOnly)
	assert.False(t, opts.Secure)
	assert.Equal(t, session.SameSiteLax, opts.SameSite)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	mgr := &InstanceManager{}
	cfg, err := mgr.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, mustHash(t, Default()), mustHash(t, cfg))
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := `
server:
  bind: 127.0.0.1:9000
session:
  cookie_name: sid
  ttl: 15m
  secure: true
  http_only: false
  same_site: Strict
sweeper:
  enabled: false
  schedule: "*/2 * * * *"
`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	mgr := &InstanceManager{}
	cfg, err := mgr.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Bind)
	assert.Equal(t, 15*time.Minute, cfg.Session.TTLDuration())
	assert.False(t, cfg.Sweeper.IsEnabled())
	assert.Equal(t, session.CookieOptions{
		Name:     "sid",
		Secure:   true,
		HTTPOnly: false,
		SameSite: session.SameSiteStrict,
	}, cfg.Session.CookieOptions())

	got, err := mgr.Get()
	require.NoError(t, err)
	assert.Equal(t, mustHash(t, cfg), mustHash(t, got))
	assert.Equal(t, path, mgr.Path())
}

func TestValidate_Rejects(t *testing.T) {
	tests := map[string]Config{
		"bad ttl":          {Session: SessionConfig{TTL: "soon"}},
		"negative ttl":     {Session: SessionConfig{TTL: "-1m"}},
		"bad same site":    {Session: SessionConfig{SameSite: "sometimes"}},
		"none without tls": {Session: SessionConfig{SameSite: "none"}},
		"cookie name":      {Session: SessionConfig{CookieName: "a=b"}},
		"bad schedule":     {Sweeper: SweeperConfig{Schedule: "whenever"}},
		"bad metrics path": {Server: ServerConfig{MetricsPath: "metrics"}},
	}
	for name, cfg := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestGet_NotLoaded(t *testing.T) {
	_, err := (&InstanceManager{}).Get()
	assert.Error(t, err)
}

func TestWriteFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Session.CookieName = "sid"

	require.NoError(t, WriteFile(path, cfg))

	loaded, err := (&InstanceManager{}).Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sid", loaded.Session.CookieName)
	assert.Equal(t, mustHash(t, cfg), mustHash(t, loaded))
}

func TestClone_Independent(t *testing.T) {
	cfg := Default()
	cloned, err := cfg.Clone()
	require.NoError(t, err)

	cloned.Session.CookieName = "other"
	*cloned.Sweeper.Enabled = false

	assert.Equal(t, session.DefaultCookieName, cfg.Session.CookieName)
	assert.True(t, cfg.Sweeper.IsEnabled())
}
