package memory

import (
	"sync"

	"wikiracer/linkcache"
)

// Compile-time check for ensuring InMemoryStore implements Store.
var _ linkcache.Store = (*InMemoryStore)(nil)

// InMemoryStore implements an in-memory link cache store that can be
// concurrently accessed by multiple clients.
type InMemoryStore struct {
	mu sync.RWMutex

	links map[string][]string
}

// NewInMemoryStore returns an empty InMemoryStore.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		links: make(map[string][]string),
	}
}

// Get returns the stored link set for the specified title.
func (s *InMemoryStore) Get(title string) ([]string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	links, exists := s.links[title]
	if !exists {
		return nil, false, nil
	}

	// Hand out a copy so callers cannot mutate the stored entry.
	linksCopy := make([]string, len(links))
	copy(linksCopy, links)
	return linksCopy, true, nil
}

// Put stores the link set for the specified title, replacing any existing
// entry.
func (s *InMemoryStore) Put(title string, links []string) error {
	linksCopy := make([]string, len(links))
	copy(linksCopy, links)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.links[title] = linksCopy
	return nil
}

// Close implements linkcache.Store.
func (s *InMemoryStore) Close() error { return nil }
