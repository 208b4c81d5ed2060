package registration

import (
	"sync"
	"time"
)

// Store holds in-flight flows in memory. Drafts are never persisted before
// payment succeeds, so losing them on restart is acceptable; abandoned flows
// are pruned after TTL.
type Store struct {
	mu   sync.Mutex
	ttl  time.Duration
	now  func() time.Time
	data map[string]*Flow
}

const DefaultTTL = 2 * time.Hour

func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		ttl:  ttl,
		now:  time.Now,
		data: map[string]*Flow{},
	}
}

func (s *Store) Put(f *Flow) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prune()
	s.data[f.ID] = f
}

// Get returns the flow or nil if unknown or expired.
func (s *Store) Get(id string) *Flow {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prune()
	return s.data[id]
}

func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prune()
	return len(s.data)
}

// prune is called with the lock held.
func (s *Store) prune() {
	cutoff := s.now().Add(-s.ttl)
	for id, f := range s.data {
		if f.UpdatedAt.Before(cutoff) {
			delete(s.data, id)
		}
	}
}
