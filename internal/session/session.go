package session

import "time"

// Session is a detached working copy of one session's data. Changes stay
// local until the session is passed to Store.Save. A Session is owned by a
// single request handler and is not safe for concurrent use.
type Session struct {
	id string

	keys   []string
	values map[string]string

	isNew      bool
	isModified bool

	createdAt    time.Time
	lastAccessed time.Time
	expiresAt    time.Time

	gen *Generator
}

// New returns an empty session under a freshly generated id.
func New(gen *Generator) *Session {
	if gen == nil {
		gen = defaultGenerator
	}
	return &Session{
		id:     gen.Generate(),
		values: make(map[string]string),
		isNew:  true,
		gen:    gen,
	}
}

// Restore returns an empty session under an existing id without consulting
// any store. IsNew reports false.
func Restore(id string) *Session {
	return &Session{
		id:     id,
		values: make(map[string]string),
		gen:    defaultGenerator,
	}
}

func (s *Session) ID() string              { return s.id }
func (s *Session) IsNew() bool             { return s.isNew }
func (s *Session) IsModified() bool        { return s.isModified }
func (s *Session) CreatedAt() time.Time    { return s.createdAt }
func (s *Session) LastAccessed() time.Time { return s.lastAccessed }
func (s *Session) ExpiresAt() time.Time    { return s.expiresAt }

// Set inserts or overwrites key. Overwriting keeps the key's position.
func (s *Session) Set(key, value string) {
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
	s.isModified = true
}

func (s *Session) Get(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

func (s *Session) GetOr(key, def string) string {
	if v, ok := s.values[key]; ok {
		return v
	}
	return def
}

func (s *Session) Contains(key string) bool {
	_, ok := s.values[key]
	return ok
}

// Remove deletes key and reports whether it was present.
func (s *Session) Remove(key string) bool {
	if _, ok := s.values[key]; !ok {
		return false
	}
	delete(s.values, key)
	for i, k := range s.keys {
		if k == key {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			break
		}
	}
	s.isModified = true
	return true
}

func (s *Session) Clear() {
	s.keys = s.keys[:0]
	clear(s.values)
	s.isModified = true
}

func (s *Session) Size() int {
	return len(s.keys)
}

// Keys returns the keys in insertion order.
func (s *Session) Keys() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

// Data returns a copy of the key/value pairs.
func (s *Session) Data() map[string]string {
	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// RegenerateID swaps in a new identifier, e.g. after login. The store is not
// touched: save under the new id and delete the old record separately.
func (s *Session) RegenerateID() {
	gen := s.gen
	if gen == nil {
		gen = defaultGenerator
	}
	s.id = gen.Generate()
	s.isModified = true
}

// markSaved mirrors the stored record's timestamps back onto the copy.
func (s *Session) markSaved(rec *record) {
	s.createdAt = rec.createdAt
	s.lastAccessed = rec.savedAt
	s.expiresAt = rec.expiresAt
	s.isModified = false
}
