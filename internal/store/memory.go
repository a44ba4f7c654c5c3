package store

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/mkarlsen/blink/internal/text"
)

// Memory keeps everything in process memory. It backs environments
// without a usable filesystem and doubles as the test store.
type Memory struct {
	mu     sync.RWMutex
	tabs   []TabRecord
	caches map[string][]text.Word
}

func NewMemory() *Memory {
	return &Memory{caches: make(map[string][]text.Word)}
}

func (s *Memory) SaveTabs(records []TabRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tabs = append([]TabRecord(nil), records...)
	return nil
}

func (s *Memory) LoadTabs() ([]TabRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]TabRecord(nil), s.tabs...), nil
}

func (s *Memory) NewCacheID() string { return uuid.NewString() }

func (s *Memory) WriteWordCache(id string, words []text.Word) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.caches[id] = append([]text.Word(nil), words...)
	return nil
}

func (s *Memory) ReadWordCache(id string) ([]text.Word, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	words, ok := s.caches[id]
	if !ok {
		return nil, fmt.Errorf("no word cache %s", id)
	}
	return append([]text.Word(nil), words...), nil
}

func (s *Memory) DeleteWordCache(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.caches, id)
	return nil
}

func (s *Memory) CacheIDs() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.caches))
	for id := range s.caches {
		ids = append(ids, id)
	}
	return ids, nil
}
