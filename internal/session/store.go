package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"jobforge-backend/internal/jobinfo"
	"jobforge-backend/internal/synthesis"
)

// ErrNoActiveSession is returned when a download is requested before any
// generation has completed.
var ErrNoActiveSession = errors.New("no active session")

// Entry is the outcome of one completed generation.
type Entry struct {
	ID             string
	JobDescription string
	Record         jobinfo.Record
	Content        synthesis.Content
	GeneratedAt    time.Time
}

// Store holds the single most recent generation. A new generation always
// replaces the previous one; there is no history.
type Store struct {
	mu      sync.RWMutex
	current *Entry
}

func NewStore() *Store {
	return &Store{}
}

// Put replaces the active entry.
func (s *Store) Put(ctx context.Context, entry Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = &entry
	return nil
}

// Get returns a snapshot of the active entry.
func (s *Store) Get(ctx context.Context) (Entry, error) {
	if err := ctx.Err(); err != nil {
		return Entry{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return Entry{}, ErrNoActiveSession
	}
	return *s.current, nil
}
