package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/careerlift/resume-coach/backend/internal/model/interview"
)

// ErrNotFound is returned for unknown or already-expired session ids.
var ErrNotFound = errors.New("session not found")

// Store owns the in-memory session map. It is the only component that
// holds live session values; everything it hands out is a copy, and
// Mutate is the only write path.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*interview.Session
	now      func() time.Time
}

// NewStore bootstraps an empty in-memory store.
func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*interview.Session),
		now:      time.Now,
	}
}

// NewStoreWithClock is like NewStore but with an injectable clock.
func NewStoreWithClock(now func() time.Time) *Store {
	s := NewStore()
	if now != nil {
		s.now = now
	}
	return s
}

// Create assigns an identifier and timestamps to the supplied session,
// inserts it, and returns the stored copy. Identifier collisions are a
// correctness bug; uuid keeps them out of reach, and the regeneration
// loop makes the store responsible for uniqueness rather than the
// generator.
func (s *Store) Create(sess interview.Session) interview.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	for {
		if _, exists := s.sessions[id]; !exists {
			break
		}
		id = uuid.NewString()
	}

	now := s.now().UTC()
	sess.ID = id
	if sess.StartedAt.IsZero() {
		sess.StartedAt = now
	}
	sess.LastActivityAt = now
	sess.Version = 1

	stored := sess.Clone()
	s.sessions[id] = &stored
	return sess
}

// Get returns a deep copy of the session, or ErrNotFound.
func (s *Store) Get(sessionID string) (interview.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return interview.Session{}, ErrNotFound
	}
	return sess.Clone(), nil
}

// Mutate applies fn to the session under the store lock. fn receives a
// working copy; a nil return commits it with a bumped Version and a
// refreshed LastActivityAt, any error discards it. Concurrent Mutate
// calls on the same id are serialized, so read-modify-write sequences
// inside fn cannot interleave.
func (s *Store) Mutate(sessionID string, fn func(*interview.Session) error) (interview.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return interview.Session{}, ErrNotFound
	}

	working := sess.Clone()
	if err := fn(&working); err != nil {
		return interview.Session{}, err
	}

	working.Version = sess.Version + 1
	working.LastActivityAt = s.now().UTC()

	committed := working.Clone()
	s.sessions[sessionID] = &committed
	return working, nil
}

// Delete removes the session if present.
func (s *Store) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

// Expired returns the ids of sessions idle past the threshold. It only
// snapshots under the read lock; deletion is the caller's call, so a
// full sweep never blocks individual session mutations.
func (s *Store) Expired(idleThreshold time.Duration) []string {
	cutoff := s.now().UTC().Add(-idleThreshold)

	s.mu.RLock()
	defer s.mu.RUnlock()

	var ids []string
	for id, sess := range s.sessions {
		if sess.LastActivityAt.Before(cutoff) {
			ids = append(ids, id)
		}
	}
	return ids
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
