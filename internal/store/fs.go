package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/mkarlsen/blink/internal/text"
)

const (
	tabsFileName = "tabs.json"
	cacheDirName = "cache"
)

// FS stores tabs as JSON under the user state directory: tabs.json for
// metadata, cache/<id>.json per word cache.
type FS struct {
	dir string
	mu  sync.RWMutex
}

// NewFS creates a filesystem store under $XDG_STATE_HOME/blink (or
// ~/.local/state/blink).
func NewFS() (*FS, error) {
	dir := StateDir()
	if err := os.MkdirAll(filepath.Join(dir, cacheDirName), 0755); err != nil {
		return nil, err
	}
	return &FS{dir: dir}, nil
}

// StateDir is where mutable application state lives. Logs land here too,
// regardless of which storage backend is configured.
func StateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "blink")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", "blink")
}

// Dir returns the directory the store writes under.
func (s *FS) Dir() string { return s.dir }

func (s *FS) SaveTabs(records []TabRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, tabsFileName), data, 0644)
}

func (s *FS) LoadTabs() ([]TabRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, err := os.ReadFile(filepath.Join(s.dir, tabsFileName))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var records []TabRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse %s: %w", tabsFileName, err)
	}
	return records, nil
}

func (s *FS) NewCacheID() string { return uuid.NewString() }

func (s *FS) cachePath(id string) string {
	return filepath.Join(s.dir, cacheDirName, id+".json")
}

func (s *FS) WriteWordCache(id string, words []text.Word) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := json.Marshal(words)
	if err != nil {
		return err
	}
	return os.WriteFile(s.cachePath(id), data, 0644)
}

func (s *FS) ReadWordCache(id string) ([]text.Word, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, err := os.ReadFile(s.cachePath(id))
	if err != nil {
		return nil, err
	}
	var words []text.Word
	if err := json.Unmarshal(data, &words); err != nil {
		return nil, fmt.Errorf("parse word cache %s: %w", id, err)
	}
	return words, nil
}

func (s *FS) DeleteWordCache(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := os.Remove(s.cachePath(id))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (s *FS) CacheIDs() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries, err := os.ReadDir(filepath.Join(s.dir, cacheDirName))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if id, ok := strings.CutSuffix(e.Name(), ".json"); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}
