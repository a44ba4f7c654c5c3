package source

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mkarlsen/blink/internal/text"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	t.Run("plain text", func(t *testing.T) {
		path := filepath.Join(dir, "sample.txt")
		os.WriteFile(path, []byte("one two\n\nthree"), 0644)

		words, err := Load(path)
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if len(words) != 3 {
			t.Fatalf("got %d words, want 3", len(words))
		}
		if !words[1].IsParagraphEnd {
			t.Error("second word should end its paragraph")
		}
	})

	t.Run("markdown", func(t *testing.T) {
		path := filepath.Join(dir, "sample.md")
		os.WriteFile(path, []byte("# Title\n\nbody text"), 0644)

		words, err := Load(path)
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if len(words) != 4 {
			t.Fatalf("got %d words, want 4", len(words))
		}
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := filepath.Join(dir, "binary.bin")
		os.WriteFile(path, []byte{0x00, 0x01}, 0644)

		words, err := Load(path)
		if !errors.Is(err, ErrUnsupported) {
			t.Fatalf("err = %v, want ErrUnsupported", err)
		}
		if words != nil {
			t.Errorf("failed load produced words: %v", words)
		}
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Fatal("error is not a *ParseError")
		}
		if pe.Path != path {
			t.Errorf("ParseError.Path = %q, want %q", pe.Path, path)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "nope.txt"))
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Fatalf("err = %v, want *ParseError", err)
		}
		if errors.Is(err, ErrUnsupported) {
			t.Error("missing file should not read as unsupported")
		}
	})
}

func TestFromText(t *testing.T) {
	words := FromText("pasted words here")
	if len(words) != 3 {
		t.Fatalf("got %d words, want 3", len(words))
	}
	if words[0] != (text.Word{Text: "pasted"}) {
		t.Errorf("words[0] = %v", words[0])
	}
}

func TestSupported(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"book.epub", true},
		{"notes.txt", true},
		{"notes.TXT", true},
		{"readme.md", true},
		{"image.png", false},
		{"noext", false},
	}

	for _, tt := range tests {
		if got := Supported(tt.path); got != tt.want {
			t.Errorf("Supported(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestRegistered(t *testing.T) {
	var names []string
	for _, f := range Registered() {
		names = append(names, f.Name())
	}
	for _, want := range []string{"Plain text", "EPUB", "Markdown"} {
		found := false
		for _, n := range names {
			if n == want {
				found = true
			}
		}
		if !found {
			t.Errorf("%s not registered: %v", want, names)
		}
	}
}
