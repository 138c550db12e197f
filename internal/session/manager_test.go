package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(opts CookieOptions) (*Manager, *ManualClock) {
	store, clock := newTestStore(time.Second)
	return NewManager(store, ManagerOptions{Cookie: opts}), clock
}

func TestManager_GetOrCreateEmpty(t *testing.T) {
	mgr, _ := newTestManager(CookieOptions{Name: "sid"})

	sess := mgr.GetOrCreate("")
	assert.True(t, sess.IsNew())
	assert.True(t, IsValidID(sess.ID()))
	assert.True(t, mgr.Store().Exists(sess.ID()))

	other := mgr.GetOrCreate("")
	assert.NotEqual(t, sess.ID(), other.ID())
}

func TestManager_GetOrCreateExisting(t *testing.T) {
	mgr, _ := newTestManager(CookieOptions{Name: "sid"})

	sess := mgr.GetOrCreate("")
	sess.Set("cart", "3 items")
	mgr.Save(sess)

	got := mgr.GetOrCreate(sess.ID())
	assert.False(t, got.IsNew())
	assert.Equal(t, sess.ID(), got.ID())
	assert.Equal(t, "3 items", got.GetOr("cart", ""))
}

func TestManager_GetOrCreateExpiredOrUnknown(t *testing.T) {
	mgr, clock := newTestManager(CookieOptions{Name: "sid"})

	sess := mgr.GetOrCreate("")
	clock.Advance(2 * time.Second)

	got := mgr.GetOrCreate(sess.ID())
	assert.True(t, got.IsNew())
	assert.NotEqual(t, sess.ID(), got.ID())

	unknown := mgr.GetOrCreate("0123456789abcdef0123456789abcdef")
	assert.True(t, unknown.IsNew())
	assert.NotEqual(t, "0123456789abcdef0123456789abcdef", unknown.ID())
}

func TestManager_Destroy(t *testing.T) {
	mgr, _ := newTestManager(CookieOptions{Name: "sid"})

	sess := mgr.GetOrCreate("")
	mgr.Destroy(sess.ID())
	assert.False(t, mgr.Store().Exists(sess.ID()))

	assert.NotPanics(t, func() { mgr.Destroy(sess.ID()) })
}

func TestManager_Rotate(t *testing.T) {
	mgr, _ := newTestManager(CookieOptions{Name: "sid"})

	sess := mgr.GetOrCreate("")
	sess.Set("user", "alice")
	oldID := sess.ID()

	mgr.Rotate(sess)

	assert.NotEqual(t, oldID, sess.ID())
	assert.False(t, mgr.Store().Exists(oldID))
	loaded, ok := mgr.Store().Load(sess.ID())
	require.True(t, ok)
	assert.Equal(t, "alice", loaded.GetOr("user", ""))
}

func TestManager_SetCookieHeader(t *testing.T) {
	const id = "0123456789abcdef0123456789abcdef"
	sess := &Session{id: id, values: map[string]string{}}

	tests := []struct {
		name string
		opts CookieOptions
		want string
	}{
		{
			name: "all flags",
			opts: CookieOptions{Name: "sid", HTTPOnly: true, Secure: true, SameSite: SameSiteStrict},
			want: "sid=" + id + "; HttpOnly; Secure; SameSite=Strict; Path=/",
		},
		{
			name: "http only",
			opts: CookieOptions{Name: "sid", HTTPOnly: true, SameSite: SameSiteLax},
			want: "sid=" + id + "; HttpOnly; SameSite=Lax; Path=/",
		},
		{
			name: "secure only",
			opts: CookieOptions{Name: "sid", Secure: true, SameSite: SameSiteNone},
			want: "sid=" + id + "; Secure; SameSite=None; Path=/",
		},
		{
			name: "no flags",
			opts: CookieOptions{Name: "sid", SameSite: SameSiteLax},
			want: "sid=" + id + "; SameSite=Lax; Path=/",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mgr, _ := newTestManager(tt.opts)
			assert.Equal(t, tt.want, mgr.SetCookieHeader(sess))
		})
	}
}

func TestManager_DefaultCookie(t *testing.T) {
	mgr := NewManager(nil)
	assert.Equal(t, DefaultCookieName, mgr.CookieName())

	sess := mgr.GetOrCreate("")
	assert.Equal(t, "sessionid="+sess.ID()+"; HttpOnly; SameSite=Lax; Path=/", mgr.SetCookieHeader(sess))
}

func TestManager_SetCookieHeaderNil(t *testing.T) {
	mgr := NewManager(nil)
	assert.NotPanics(t, func() {
		assert.Equal(t, "", mgr.SetCookieHeader(nil))
	})
}

func TestManager_ParseCookie(t *testing.T) {
	mgr, _ := newTestManager(CookieOptions{Name: "name"})

	assert.Equal(t, "abc123", mgr.ParseCookie("name=abc123; other=value"))
	assert.Equal(t, "", mgr.ParseCookie("other=value"))
	assert.Equal(t, "abc123", mgr.ParseCookie("other=value; name=abc123"))
	assert.Equal(t, "abc", mgr.ParseCookie("name=abc other=value"))
	assert.Equal(t, "", mgr.ParseCookie(""))
	assert.Equal(t, "", mgr.ParseCookie("name="))
	// substring match: a longer cookie name ending in the target still matches
	assert.Equal(t, "zzz", mgr.ParseCookie("othername=zzz; name=abc"))
}

func TestManager_CookieRoundTrip(t *testing.T) {
	mgr, _ := newTestManager(CookieOptions{Name: "sid", HTTPOnly: true, Secure: true, SameSite: SameSiteStrict})

	sess := mgr.GetOrCreate("")
	header := mgr.SetCookieHeader(sess)
	assert.Equal(t, sess.ID(), mgr.ParseCookie(header))
}

func TestParseSameSite(t *testing.T) {
	for in, want := range map[string]SameSite{
		"Strict": SameSiteStrict,
		"lax":    SameSiteLax,
		"":       SameSiteLax,
		" NONE ": SameSiteNone,
	} {
		got, err := ParseSameSite(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseSameSite("sometimes")
	assert.Error(t, err)
}
