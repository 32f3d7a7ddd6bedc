// Package session holds the process-scoped volatile session store, the
// only mutable state shared across concurrent requests.
package session

import (
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/intervue/intervue-backend/internal/model"
)

// ErrSessionNotFound is returned for unknown session identifiers.
var ErrSessionNotFound = errors.New("interview session not found")

// Entry pairs a session with its own mutex. Submissions against the
// same session serialize on this lock; submissions against different
// sessions never contend with each other beyond the store map.
type Entry struct {
	// Mu guards Session. Callers must hold it across state reads and
	// transitions, but never across the analysis pipeline.
	Mu      sync.Mutex
	Session *model.InterviewSession
}

// Store maps session IDs to live sessions. Constructed once at startup
// and passed by handle to the service layer; there is no package-level
// global state. Sessions are volatile: reclaimed at process exit or
// evicted by the capacity policy.
type Store struct {
	mu          sync.RWMutex
	sessions    map[uuid.UUID]*Entry
	maxSessions int
	log         zerolog.Logger
}

// NewStore creates a Store. maxSessions <= 0 disables eviction.
func NewStore(maxSessions int, log zerolog.Logger) *Store {
	return &Store{
		sessions:    make(map[uuid.UUID]*Entry),
		maxSessions: maxSessions,
		log:         log.With().Str("component", "session_store").Logger(),
	}
}

// Put registers a new session, evicting the oldest completed sessions
// first when the store is at capacity.
func (s *Store) Put(sess *model.InterviewSession) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.maxSessions > 0 && len(s.sessions) >= s.maxSessions {
		s.evictLocked()
	}
	s.sessions[sess.ID] = &Entry{Session: sess}
}

// Get returns the entry for id or ErrSessionNotFound.
func (s *Store) Get(id uuid.UUID) (*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return entry, nil
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// evictLocked drops the oldest completed sessions, falling back to the
// oldest active one when nothing has completed yet. Caller holds s.mu.
func (s *Store) evictLocked() {
	type candidate struct {
		id        uuid.UUID
		completed bool
		started   int64
	}

	candidates := make([]candidate, 0, len(s.sessions))
	for id, e := range s.sessions {
		candidates = append(candidates, candidate{
			id:        id,
			completed: e.Session.State == model.SessionStateCompleted,
			started:   e.Session.StartedAt.UnixNano(),
		})
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].completed != candidates[j].completed {
			return candidates[i].completed
		}
		return candidates[i].started < candidates[j].started
	})

	if len(candidates) == 0 {
		return
	}
	victim := candidates[0]
	delete(s.sessions, victim.id)
	s.log.Warn().
		Str("interview_id", victim.id.String()).
		Bool("completed", victim.completed).
		Msg("Session evicted at capacity")
}
