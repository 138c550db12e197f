package session

import (
	"sync"
	"time"
)

const (
	DefaultTTL = 30 * time.Minute
	// DefaultStoreName labels the metrics of a store built without a Name.
	DefaultStoreName = "default"
)

// record is the store's own snapshot of a session. It never escapes the
// store; callers only ever see Sessions built from it.
type record struct {
	keys   []string
	values map[string]string

	createdAt time.Time
	savedAt   time.Time
	expiresAt time.Time
}

func newRecord(s *Session, createdAt, now time.Time, ttl time.Duration) *record {
	rec := &record{
		keys:      make([]string, len(s.keys)),
		values:    make(map[string]string, len(s.values)),
		createdAt: createdAt,
		savedAt:   now,
		expiresAt: now.Add(ttl),
	}
	copy(rec.keys, s.keys)
	for k, v := range s.values {
		rec.values[k] = v
	}
	return rec
}

func (r *record) live(now time.Time) bool {
	return r.expiresAt.After(now)
}

func (r *record) toSession(id string, gen *Generator) *Session {
	sess := &Session{
		id:           id,
		keys:         make([]string, len(r.keys)),
		values:       make(map[string]string, len(r.values)),
		createdAt:    r.createdAt,
		lastAccessed: r.savedAt,
		expiresAt:    r.expiresAt,
		gen:          gen,
	}
	copy(sess.keys, r.keys)
	for k, v := range r.values {
		sess.values[k] = v
	}
	return sess
}

type StoreOptions struct {
	// TTL is how long a record stays visible after its last save.
	// Zero selects DefaultTTL.
	TTL       time.Duration
	Clock     Clock
	Generator *Generator
	// Name labels this store's metric series. Zero selects DefaultStoreName.
	Name string
}

// Store owns every session record. A single mutex guards the whole
// collection; expired records are invisible to Load and Exists until
// Cleanup or Delete removes them.
type Store struct {
	mu      sync.Mutex
	records map[string]*record

	name    string
	ttl     time.Duration
	clock   Clock
	gen     *Generator
	metrics storeMetrics
}

func NewStore(opts ...StoreOptions) *Store {
	s := &Store{
		records: make(map[string]*record),
		name:    DefaultStoreName,
		ttl:     DefaultTTL,
		clock:   SystemClock,
		gen:     defaultGenerator,
	}
	if len(opts) > 0 {
		o := opts[0]
		if o.TTL > 0 {
			s.ttl = o.TTL
		}
		if o.Clock != nil {
			s.clock = o.Clock
		}
		if o.Generator != nil {
			s.gen = o.Generator
		}
		if o.Name != "" {
			s.name = o.Name
		}
	}
	s.metrics = newStoreMetrics(s.name)
	return s
}

// Name returns the label under which this store reports metrics.
func (s *Store) Name() string {
	return s.name
}

func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Generator returns the generator handed to sessions built by this store.
func (s *Store) Generator() *Generator {
	return s.gen
}

// Save copies sess into the store and pushes its expiry to now+TTL.
func (s *Store) Save(sess *Session) {
	if sess == nil || sess.id == "" {
		return
	}

	s.mu.Lock()
	now := s.clock.Now()
	createdAt := now
	prev, existed := s.records[sess.id]
	if existed && prev.live(now) {
		createdAt = prev.createdAt
	}
	rec := newRecord(sess, createdAt, now, s.ttl)
	s.records[sess.id] = rec
	s.mu.Unlock()

	if !existed {
		s.metrics.records.Inc()
	}
	s.metrics.saves.Inc()
	sess.markSaved(rec)
}

// Load returns a detached copy of the record for id, if it is still live.
// Loading does not extend the expiry.
func (s *Store) Load(id string) (*Session, bool) {
	s.mu.Lock()
	rec, ok := s.records[id]
	if !ok {
		s.mu.Unlock()
		s.metrics.loadMiss.Inc()
		return nil, false
	}
	if !rec.live(s.clock.Now()) {
		s.mu.Unlock()
		s.metrics.loadExpired.Inc()
		return nil, false
	}
	sess := rec.toSession(id, s.gen)
	s.mu.Unlock()

	s.metrics.loadHit.Inc()
	return sess, true
}

// Delete removes the record for id and reports whether one was present.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	_, ok := s.records[id]
	if ok {
		delete(s.records, id)
	}
	s.mu.Unlock()

	if ok {
		s.metrics.records.Dec()
		s.metrics.deletes.Inc()
	}
	return ok
}

func (s *Store) Exists(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	return ok && rec.live(s.clock.Now())
}

// Cleanup drops every expired record and returns how many were removed.
func (s *Store) Cleanup() int {
	s.mu.Lock()
	now := s.clock.Now()
	removed := 0
	for id, rec := range s.records {
		if !rec.live(now) {
			delete(s.records, id)
			removed++
		}
	}
	s.mu.Unlock()

	if removed > 0 {
		s.metrics.records.Sub(float64(removed))
		s.metrics.swept.Add(float64(removed))
	}
	return removed
}

// Count returns the number of records held, including expired ones that
// have not been swept yet.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// IDs lists the ids of live records.
func (s *Store) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.clock.Now()
	ids := make([]string, 0, len(s.records))
	for id, rec := range s.records {
		if rec.live(now) {
			ids = append(ids, id)
		}
	}
	return ids
}
