package session

// ManagerOptions configures the cookie a Manager issues. Fixed after
// construction.
type ManagerOptions struct {
	Cookie CookieOptions
}

// Manager layers find-or-create and the cookie protocol over a Store.
type Manager struct {
	store  *Store
	cookie CookieOptions
}

func NewManager(store *Store, opts ...ManagerOptions) *Manager {
	if store == nil {
		store = NewStore()
	}
	m := &Manager{
		store: store,
		cookie: CookieOptions{
			Name:     DefaultCookieName,
			HTTPOnly: true,
			SameSite: SameSiteLax,
		},
	}
	if len(opts) > 0 {
		m.cookie = opts[0].Cookie
		if m.cookie.Name == "" {
			m.cookie.Name = DefaultCookieName
		}
	}
	return m
}

func (m *Manager) Store() *Store {
	return m.store
}

func (m *Manager) CookieName() string {
	return m.cookie.Name
}

// GetOrCreate loads the live session for id. When id is empty, unknown or
// expired it starts a new session and saves it right away, so the returned
// session always has a backing record.
func (m *Manager) GetOrCreate(id string) *Session {
	if id != "" {
		if sess, ok := m.store.Load(id); ok {
			return sess
		}
	}

	sess := New(m.store.Generator())
	m.store.Save(sess)
	m.store.metrics.created.Inc()
	return sess
}

func (m *Manager) Save(sess *Session) {
	m.store.Save(sess)
}

// Destroy removes the record for id; a missing record is not an error.
func (m *Manager) Destroy(id string) {
	_ = m.store.Delete(id)
}

// Rotate moves sess to a new identifier: the session is saved under the new
// id and the record under the old one is deleted.
func (m *Manager) Rotate(sess *Session) {
	if sess == nil {
		return
	}
	oldID := sess.ID()
	sess.RegenerateID()
	m.store.Save(sess)
	m.store.Delete(oldID)
}

// SetCookieHeader returns the Set-Cookie value for sess, or "" for nil.
func (m *Manager) SetCookieHeader(sess *Session) string {
	if sess == nil {
		return ""
	}
	return buildCookieHeader(m.cookie, sess.ID())
}

// ParseCookie returns the session id carried in a Cookie header, or "".
func (m *Manager) ParseCookie(header string) string {
	return extractCookieValue(header, m.cookie.Name)
}
