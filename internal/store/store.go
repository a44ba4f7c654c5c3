// Package store persists tabs across runs. Tab metadata (one small
// record per tab) and word caches (one entry per tab, keyed by an opaque
// id) are kept separately so large texts never sit in the metadata file.
package store

import (
	"fmt"

	"github.com/mkarlsen/blink/internal/text"
)

// TabRecord is the persisted metadata for one tab. The words themselves
// live in the cache entry named by CacheID.
type TabRecord struct {
	ID          uint64  `json:"id"`
	Name        string  `json:"name"`
	FilePath    string  `json:"file_path,omitempty"`
	FontName    string  `json:"font_name,omitempty"`
	FontSize    float64 `json:"font_size,omitempty"`
	WPM         int     `json:"wpm"`
	CursorIndex int     `json:"cursor_index"`
	CacheID     string  `json:"cache_id,omitempty"`
	Active      bool    `json:"active,omitempty"`
	Home        bool    `json:"home,omitempty"`
}

// Store is the persistence gateway for tabs and their word caches. The
// engine only ever talks to this interface; which backend backs it is a
// configuration value read at startup.
type Store interface {
	SaveTabs(records []TabRecord) error
	LoadTabs() ([]TabRecord, error)

	NewCacheID() string
	WriteWordCache(id string, words []text.Word) error
	ReadWordCache(id string) ([]text.Word, error)
	DeleteWordCache(id string) error

	// CacheIDs lists every stored cache entry, for orphan cleanup.
	CacheIDs() ([]string, error)
}

// Open selects a backend by its configured name.
func Open(backend string) (Store, error) {
	switch backend {
	case "", "fs":
		return NewFS()
	case "memory":
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
