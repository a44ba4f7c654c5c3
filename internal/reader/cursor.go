// Package reader drives RSVP playback: a cursor over a word sequence and
// a per-tab session owning the play/pause state machine and display timer.
package reader

import "github.com/mkarlsen/blink/internal/text"

// Cursor tracks the reading position within an immutable word sequence.
type Cursor struct {
	words  []text.Word
	starts []int
	index  int
}

// NewCursor creates a cursor at the first word.
func NewCursor(words []text.Word) *Cursor {
	return &Cursor{words: words, starts: text.SentenceStarts(words)}
}

// Words returns the underlying word sequence.
func (c *Cursor) Words() []text.Word { return c.words }

func (c *Cursor) Len() int   { return len(c.words) }
func (c *Cursor) Index() int { return c.index }

// Current returns the word under the cursor, or the zero Word when the
// sequence is empty.
func (c *Cursor) Current() text.Word {
	if c.index >= 0 && c.index < len(c.words) {
		return c.words[c.index]
	}
	return text.Word{}
}

// Advance moves to the next word. It reports false at the last word (and
// on an empty sequence) and leaves the position unchanged.
func (c *Cursor) Advance() bool {
	if c.index < len(c.words)-1 {
		c.index++
		return true
	}
	return false
}

// SkipForward moves n words forward, saturating at the last word.
func (c *Cursor) SkipForward(n int) {
	if len(c.words) == 0 {
		return
	}
	c.index += n
	if c.index > len(c.words)-1 {
		c.index = len(c.words) - 1
	}
}

// SkipBackward moves n words backward, saturating at the first word.
func (c *Cursor) SkipBackward(n int) {
	c.index -= n
	if c.index < 0 {
		c.index = 0
	}
}

// Restart moves back to the first word.
func (c *Cursor) Restart() { c.index = 0 }

// Seek moves to index i, clamped into range.
func (c *Cursor) Seek(i int) {
	if len(c.words) == 0 {
		return
	}
	if i < 0 {
		i = 0
	}
	if i > len(c.words)-1 {
		i = len(c.words) - 1
	}
	c.index = i
}

// PrevSentence moves to the start of the previous sentence.
func (c *Cursor) PrevSentence() {
	for i := len(c.starts) - 1; i >= 0; i-- {
		if c.starts[i] < c.index {
			c.index = c.starts[i]
			return
		}
	}
	c.index = 0
}

// NextSentence moves to the start of the next sentence, or to the last
// word when no sentence follows.
func (c *Cursor) NextSentence() {
	for _, s := range c.starts {
		if s > c.index {
			c.index = s
			return
		}
	}
	if len(c.words) > 0 {
		c.index = len(c.words) - 1
	}
}

// AtEnd reports whether the cursor sits on the last word. An empty
// cursor is at the end.
func (c *Cursor) AtEnd() bool {
	return c.index >= len(c.words)-1
}

// Progress returns the 1-based position and the total word count.
func (c *Cursor) Progress() (current, total int) {
	return c.index + 1, len(c.words)
}

// Fraction returns reading progress in [0, 1].
func (c *Cursor) Fraction() float64 {
	if len(c.words) <= 1 {
		return 0
	}
	return float64(c.index) / float64(len(c.words)-1)
}
