// Package tabs owns the live reading tabs: creation, the unique active
// designation, display order, closing, and the persistence round trip.
//
// The engine is single-threaded: every Manager call happens on the
// front-end's update loop. The one goroutine here is the async file
// load, which touches no shared state and hands its result back to the
// loop for delivery into Create.
package tabs

import (
	"path/filepath"

	"github.com/mkarlsen/blink/internal/fonts"
	"github.com/mkarlsen/blink/internal/reader"
	"github.com/mkarlsen/blink/internal/text"
)

// ID uniquely identifies a tab for its lifetime. Tabs are referenced by
// id everywhere; positions in the display order shift.
type ID uint64

// Tab is one reading session.
type Tab struct {
	ID       ID
	Name     string
	FilePath string
	Font     fonts.Settings
	CacheID  string
	Home     bool

	// Session is nil for the homepage tab, which has no content.
	Session *reader.Session
}

// HasWords reports whether the tab has anything to read.
func (t *Tab) HasWords() bool {
	return t.Session != nil && t.Session.Len() > 0
}

// Defaults seed tabs created without explicit settings.
type Defaults struct {
	WPM  int
	Font fonts.Settings
}

// Request configures one tab creation. Restoring from disk and the
// interactive new-tab flow both build one of these; there is no other
// way to make a tab.
type Request struct {
	Name string
	Home bool

	// Content, by priority: pre-segmented words (restore and async file
	// loads), else raw text to segment (pasted input).
	Words []text.Word
	Text  string

	FilePath string
	Font     *fonts.Settings
	WPM      int // 0 means the default
	Position int
	CacheID  string // reuse an existing cache entry instead of writing one
	Activate bool
}

func (r Request) displayName() string {
	switch {
	case r.Name != "":
		return r.Name
	case r.Home:
		return "Home"
	case r.FilePath != "":
		return filepath.Base(r.FilePath)
	default:
		return "Untitled"
	}
}
