// Package source loads reading material from files and raw text.
//
// File formats register themselves in init; lookup is by file extension.
// Unlike a pager there is no plain-text fallback: an extension no format
// claims is a load failure, so binary files never end up segmented.
package source

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mkarlsen/blink/internal/text"
)

// Format defines a file format reader for extracting text.
type Format interface {
	Name() string
	Extensions() []string
	Extract(path string) (string, error)
}

// ErrUnsupported marks load failures caused by an unrecognized extension.
var ErrUnsupported = errors.New("unsupported file type")

// ParseError reports why a source could not be loaded. A failed load
// produces no words at all.
type ParseError struct {
	Path   string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Err }

var registry []Format

// Register adds a format reader to the registry.
func Register(f Format) {
	registry = append(registry, f)
}

// Registered returns the registered formats in registration order.
func Registered() []Format {
	out := make([]Format, len(registry))
	copy(out, registry)
	return out
}

func lookup(ext string) Format {
	for _, f := range registry {
		for _, e := range f.Extensions() {
			if ext == e {
				return f
			}
		}
	}
	return nil
}

// Supported reports whether some registered format claims the file's extension.
func Supported(path string) bool {
	return lookup(strings.ToLower(filepath.Ext(path))) != nil
}

// Load extracts text from a file and segments it into words.
func Load(path string) ([]text.Word, error) {
	ext := strings.ToLower(filepath.Ext(path))
	f := lookup(ext)
	if f == nil {
		return nil, &ParseError{Path: path, Reason: "unsupported file type", Err: ErrUnsupported}
	}
	raw, err := f.Extract(path)
	if err != nil {
		return nil, &ParseError{Path: path, Reason: "cannot extract text", Err: err}
	}
	return text.Segment(raw), nil
}

// FromText segments raw text, e.g. pasted from the clipboard.
func FromText(raw string) []text.Word {
	return text.Segment(raw)
}

// TOC returns the table of contents for a file, if its format provides one.
// Word indices refer to the word sequence Load produces for the same file.
func TOC(path string) ([]TOCEntry, error) {
	ext := strings.ToLower(filepath.Ext(path))
	f := lookup(ext)
	if f == nil {
		return nil, &ParseError{Path: path, Reason: "unsupported file type", Err: ErrUnsupported}
	}
	p, ok := f.(TOCProvider)
	if !ok {
		return nil, nil
	}
	return p.TOC(path)
}
