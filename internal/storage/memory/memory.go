package memory

// Package memory provides a simple in-memory implementation used for development and tests.
// It keeps code paths easy to follow while allowing us to plug in a real DB later.
import (
	"context"
	"sync"
	"time"

	"github.com/tinoosan/journal/internal/errs"
	"github.com/tinoosan/journal/internal/journal"
)

// Store is an in-memory entry store guarded by an RWMutex. List returns
// entries in insertion order, the natural storage order for this backend.
type Store struct {
	mu      sync.RWMutex
	entries map[string]journal.Entry
	order   []string
}

// New constructs an empty in-memory store.
func New() *Store {
	return &Store{entries: make(map[string]journal.Entry)}
}

// Seed inserts an entry directly, bypassing create-time rules. Test helper.
func (s *Store) Seed(e journal.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[e.ID]; !ok {
		s.order = append(s.order, e.ID)
	}
	s.entries[e.ID] = e
}

// Reset drops all state. Test helper.
func (s *Store) Reset() {
	s.mu.Lock()
	s.entries = make(map[string]journal.Entry)
	s.order = nil
	s.mu.Unlock()
}

// Create persists a new entry, failing with ErrConflict on id reuse.
func (s *Store) Create(_ context.Context, e journal.Entry) (journal.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[e.ID]; ok {
		return journal.Entry{}, errs.ErrConflict
	}
	s.entries[e.ID] = e
	s.order = append(s.order, e.ID)
	return e, nil
}

// List returns all entries in insertion order.
func (s *Store) List(_ context.Context) ([]journal.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]journal.Entry, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.entries[id])
	}
	return out, nil
}

// Get is a point lookup; absence is a value, not an error.
func (s *Store) Get(_ context.Context, id string) (journal.Entry, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[id]
	return e, ok, nil
}

// Update merges the patch into the stored entry and refreshes updated_at.
func (s *Store) Update(_ context.Context, id string, p journal.Patch) (journal.Entry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok {
		return journal.Entry{}, false, nil
	}
	merged := e.Merge(p, time.Now().UTC())
	s.entries[id] = merged
	return merged, true, nil
}

// Delete removes an entry, reporting whether it existed.
func (s *Store) Delete(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[id]; !ok {
		return false, nil
	}
	delete(s.entries, id)
	for i, cur := range s.order {
		if cur == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true, nil
}

// DeleteAll removes every entry and returns how many were deleted.
func (s *Store) DeleteAll(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.entries)
	s.entries = make(map[string]journal.Entry)
	s.order = nil
	return n, nil
}
