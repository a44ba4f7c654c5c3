// Package fonts tracks which fonts reading tabs can use. Discovery scans
// the user font directory; glyph rendering stays in the front-ends.
package fonts

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Display size bounds for the reading view.
const (
	DefaultSize = 48.0
	MinSize     = 20.0
	MaxSize     = 200.0
	SizeStep    = 5.0
)

// DefaultName is always available, whatever the font directory holds. It
// names the front-end's built-in face.
const DefaultName = "Default"

// Settings is one tab's font identity and size.
type Settings struct {
	Name string
	Size float64
}

func DefaultSettings() Settings {
	return Settings{Name: DefaultName, Size: DefaultSize}
}

// ClampSize keeps a display size inside the supported range.
func ClampSize(size float64) float64 {
	if size < MinSize {
		return MinSize
	}
	if size > MaxSize {
		return MaxSize
	}
	return size
}

// Dir returns the user font directory, $XDG_DATA_HOME/blink/fonts.
func Dir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "blink", "fonts")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "blink", "fonts")
}

// Catalog is the set of usable font names: the built-in default plus any
// font files found in one directory.
type Catalog struct {
	dir string

	mu    sync.RWMutex
	names []string
}

// Discover scans dir for font files. A missing or empty dir still yields
// a usable catalog holding only the built-in default.
func Discover(dir string) *Catalog {
	c := &Catalog{dir: dir}
	c.rescan()
	return c
}

func (c *Catalog) rescan() {
	names := []string{DefaultName}
	if entries, err := os.ReadDir(c.dir); err == nil {
		var found []string
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			ext := strings.ToLower(filepath.Ext(e.Name()))
			if ext == ".ttf" || ext == ".otf" {
				found = append(found, strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())))
			}
		}
		sort.Strings(found)
		names = append(names, found...)
	}

	c.mu.Lock()
	c.names = names
	c.mu.Unlock()
}

// Names returns the available font names, default first.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.names...)
}

// Default returns the fallback font name.
func (c *Catalog) Default() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.names[0]
}

// Resolve returns name when the catalog has it, otherwise the default.
// Restored tabs may reference fonts that are gone.
func (c *Catalog) Resolve(name string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, n := range c.names {
		if n == name {
			return n
		}
	}
	return c.names[0]
}
