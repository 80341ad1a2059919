package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps hit timestamps in process memory. Each client's slice is
// pruned lazily on its own next hit, so idle clients cost nothing until the
// periodic Prune sweeps them.
type MemoryStore struct {
	mu   sync.Mutex
	hits map[string][]time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{hits: make(map[string][]time.Time)}
}

// Record appends a hit and returns the in-window count for the client.
func (s *MemoryStore) Record(_ context.Context, clientID string, at time.Time, window time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := at.Add(-window)
	kept := s.hits[clientID][:0]
	for _, hit := range s.hits[clientID] {
		if hit.After(cutoff) {
			kept = append(kept, hit)
		}
	}

	kept = append(kept, at)
	s.hits[clientID] = kept
	return len(kept), nil
}

// Prune drops hits at or before cutoff for every client and forgets clients
// with no remaining hits.
func (s *MemoryStore) Prune(_ context.Context, cutoff time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for clientID, hits := range s.hits {
		kept := hits[:0]
		for _, hit := range hits {
			if hit.After(cutoff) {
				kept = append(kept, hit)
			}
		}
		if len(kept) == 0 {
			delete(s.hits, clientID)
		} else {
			s.hits[clientID] = kept
		}
	}
	return nil
}
