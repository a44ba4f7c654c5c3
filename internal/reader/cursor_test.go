package reader

import (
	"testing"

	"github.com/mkarlsen/blink/internal/text"
)

func wordSeq(ss ...string) []text.Word {
	words := make([]text.Word, len(ss))
	for i, s := range ss {
		words[i] = text.Word{Text: s}
	}
	return words
}

func TestCursorAdvance(t *testing.T) {
	c := NewCursor(wordSeq("a", "b", "c"))
	if !c.Advance() {
		t.Fatal("Advance from first word failed")
	}
	if !c.Advance() {
		t.Fatal("Advance to last word failed")
	}
	if c.Advance() {
		t.Error("Advance past last word succeeded")
	}
	if c.Index() != 2 {
		t.Errorf("index = %d after failed advance, want 2", c.Index())
	}
}

func TestCursorEmpty(t *testing.T) {
	c := NewCursor(nil)
	if c.Advance() {
		t.Error("empty cursor advanced")
	}
	if !c.AtEnd() {
		t.Error("empty cursor not at end")
	}
	c.SkipForward(3)
	c.SkipBackward(3)
	c.Seek(7)
	c.Restart()
	if c.Index() != 0 {
		t.Errorf("index = %d, want 0", c.Index())
	}
	if c.Current() != (text.Word{}) {
		t.Errorf("Current() = %v, want zero word", c.Current())
	}
}

func TestCursorSkip(t *testing.T) {
	tests := []struct {
		name    string
		start   int
		n       int
		forward bool
		want    int
	}{
		{"forward in range", 0, 2, true, 2},
		{"forward saturates at last", 3, 100, true, 4},
		{"backward in range", 3, 2, false, 1},
		{"backward saturates at zero", 1, 5, false, 0},
		{"backward at zero stays", 0, 1, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCursor(wordSeq("v", "w", "x", "y", "z"))
			c.Seek(tt.start)
			if tt.forward {
				c.SkipForward(tt.n)
			} else {
				c.SkipBackward(tt.n)
			}
			if c.Index() != tt.want {
				t.Errorf("index = %d, want %d", c.Index(), tt.want)
			}
		})
	}
}

func TestCursorSeekClamps(t *testing.T) {
	c := NewCursor(wordSeq("a", "b", "c"))
	c.Seek(99)
	if c.Index() != 2 {
		t.Errorf("Seek(99) landed on %d, want 2", c.Index())
	}
	c.Seek(-1)
	if c.Index() != 0 {
		t.Errorf("Seek(-1) landed on %d, want 0", c.Index())
	}
}

func TestCursorSentenceJumps(t *testing.T) {
	c := NewCursor(wordSeq("one.", "two", "three.", "four"))
	// sentence starts: 0, 1, 3

	c.NextSentence()
	if c.Index() != 1 {
		t.Fatalf("first NextSentence landed on %d, want 1", c.Index())
	}
	c.NextSentence()
	if c.Index() != 3 {
		t.Fatalf("second NextSentence landed on %d, want 3", c.Index())
	}
	c.NextSentence()
	if c.Index() != 3 {
		t.Errorf("NextSentence past the last start moved to %d", c.Index())
	}

	c.PrevSentence()
	if c.Index() != 1 {
		t.Fatalf("PrevSentence landed on %d, want 1", c.Index())
	}
	c.PrevSentence()
	if c.Index() != 0 {
		t.Fatalf("PrevSentence landed on %d, want 0", c.Index())
	}
	c.PrevSentence()
	if c.Index() != 0 {
		t.Errorf("PrevSentence at start moved to %d", c.Index())
	}
}

func TestCursorProgress(t *testing.T) {
	c := NewCursor(wordSeq("a", "b", "c", "d"))
	cur, total := c.Progress()
	if cur != 1 || total != 4 {
		t.Errorf("Progress() = %d/%d, want 1/4", cur, total)
	}
	if c.Fraction() != 0 {
		t.Errorf("Fraction() = %v at start, want 0", c.Fraction())
	}

	c.Seek(3)
	cur, total = c.Progress()
	if cur != 4 || total != 4 {
		t.Errorf("Progress() = %d/%d, want 4/4", cur, total)
	}
	if c.Fraction() != 1 {
		t.Errorf("Fraction() = %v at end, want 1", c.Fraction())
	}

	single := NewCursor(wordSeq("only"))
	if single.Fraction() != 0 {
		t.Errorf("single-word Fraction() = %v, want 0", single.Fraction())
	}
}
