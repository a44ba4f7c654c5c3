package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMarkdownTOC(t *testing.T) {
	content := `# First Chapter

Some opening words here.

## A Section

More body text follows.

# Second Chapter

The end.
`
	path := filepath.Join(t.TempDir(), "doc.md")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	f := &MarkdownFormat{}
	entries, err := f.TOC(path)
	if err != nil {
		t.Fatalf("TOC: %v", err)
	}

	want := []TOCEntry{
		{Title: "First Chapter", WordIndex: 0, Level: 0},
		{Title: "A Section", WordIndex: 7, Level: 1},
		{Title: "Second Chapter", WordIndex: 14, Level: 0},
	}
	if len(entries) != len(want) {
		t.Fatalf("got %d entries, want %d: %v", len(entries), len(want), entries)
	}
	for i, w := range want {
		if entries[i] != w {
			t.Errorf("entry %d = %+v, want %+v", i, entries[i], w)
		}
	}
}

// TOC indices must address the same word sequence Load produces.
func TestMarkdownTOCAlignsWithLoad(t *testing.T) {
	content := "# Alpha\n\none two three\n\n## Beta\n\nfour five\n"
	path := filepath.Join(t.TempDir(), "doc.md")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	words, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	entries, err := (&MarkdownFormat{}).TOC(path)
	if err != nil {
		t.Fatalf("TOC: %v", err)
	}

	for _, e := range entries {
		if e.WordIndex < 0 || e.WordIndex >= len(words) {
			t.Fatalf("entry %q index %d out of range (%d words)", e.Title, e.WordIndex, len(words))
		}
		if words[e.WordIndex].Text != "#" && words[e.WordIndex].Text != "##" {
			t.Errorf("entry %q points at %q, want a header marker", e.Title, words[e.WordIndex].Text)
		}
	}
}
