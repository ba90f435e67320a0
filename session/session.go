// Package session keeps each user's recent exchanges for the lifetime of the
// process. Nothing is persisted across restarts.
package session

import "sync"

// MaxEntries bounds every user's history to the most recent dialogue lines.
const MaxEntries = 20

// Store tracks labeled dialogue lines ("Human: ..." / "Assistant: ...") per
// user identifier.
type Store interface {
	Append(userID int64, entry string)
	History(userID int64) []string
	Clear(userID int64)
}

// MemoryStore is the in-process implementation: one bounded slice per user
// behind a single lock. Users never observe each other's entries.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[int64][]string
	limit   int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[int64][]string),
		limit:   MaxEntries,
	}
}

// Append adds an entry and truncates the user's history to the bound.
func (s *MemoryStore) Append(userID int64, entry string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := append(s.entries[userID], entry)
	if len(history) > s.limit {
		history = history[len(history)-s.limit:]
	}
	s.entries[userID] = history
}

// History returns a copy of the user's entries, oldest first.
func (s *MemoryStore) History(userID int64) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := s.entries[userID]
	if len(history) == 0 {
		return nil
	}
	out := make([]string, len(history))
	copy(out, history)
	return out
}

// Clear forgets the user entirely. Clearing an unknown user is a no-op.
func (s *MemoryStore) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, userID)
}

var _ Store = (*MemoryStore)(nil)
