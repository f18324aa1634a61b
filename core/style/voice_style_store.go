package style

import (
	"sync"

	"voice_server/core/domain"
)

// Store holds merged style records keyed by correspondent identity.
// A later extraction run fully replaces the prior record for the same key.
// Guarded by a RWMutex so learn and read paths can interleave safely.
type Store struct {
	mu      sync.RWMutex
	records map[string]*domain.StyleRecord
}

// NewStore creates an empty style profile store.
func NewStore() *Store {
	return &Store{records: make(map[string]*domain.StyleRecord)}
}

// Put replaces the record for its contact key.
func (s *Store) Put(rec *domain.StyleRecord) {
	if rec == nil {
		return
	}
	key := rec.ContactKey()
	if key == "" {
		return
	}
	s.mu.Lock()
	s.records[key] = rec
	s.mu.Unlock()
}

// Get returns the record for a contact key, or nil.
func (s *Store) Get(key string) *domain.StyleRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records[key]
}

// All returns a snapshot of every stored record.
func (s *Store) All() []*domain.StyleRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.StyleRecord, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, r)
	}
	return out
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Clear drops every stored record.
func (s *Store) Clear() {
	s.mu.Lock()
	s.records = make(map[string]*domain.StyleRecord)
	s.mu.Unlock()
}
