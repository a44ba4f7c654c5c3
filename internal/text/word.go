// Package text turns raw text into timed word units for RSVP display.
package text

import (
	"math"
	"strings"
	"time"
	"unicode/utf8"
)

// Word is a single display unit. Words are immutable once produced by Segment;
// only a cursor ever moves over them.
type Word struct {
	Text           string `json:"text"`
	IsParagraphEnd bool   `json:"paragraph_end,omitempty"`
}

// Duration multipliers. The highest applicable one wins; they never stack, so a
// long sentence-ending word gets the sentence pause, not sentence × length.
const (
	longWordFactor      = 1.3
	clausePauseFactor   = 2.0
	sentencePauseFactor = 3.0
	paraPauseFactor     = 4.0
)

// ORPIndex returns the rune index of the Optimal Recognition Point, the letter
// the eye should fixate on. Longer words need the fixation point further in.
func ORPIndex(word string) int {
	n := utf8.RuneCountInString(word)
	var idx int
	switch {
	case n <= 1:
		idx = 0
	case n <= 5:
		idx = 1
	case n <= 9:
		idx = 2
	case n <= 13:
		idx = 3
	default:
		idx = 4
	}
	if n > 0 && idx > n-1 {
		idx = n - 1
	}
	return idx
}

// DisplayDuration returns how long w stays on screen at the given
// words-per-minute rate.
func DisplayDuration(w Word, wpm int) time.Duration {
	base := 60_000.0 / float64(wpm)
	mult := 1.0
	if utf8.RuneCountInString(w.Text) > 10 {
		mult = math.Max(mult, longWordFactor)
	}
	if strings.HasSuffix(w.Text, ",") || strings.HasSuffix(w.Text, ";") {
		mult = math.Max(mult, clausePauseFactor)
	}
	if strings.HasSuffix(w.Text, ".") || strings.HasSuffix(w.Text, "?") || strings.HasSuffix(w.Text, "!") {
		mult = math.Max(mult, sentencePauseFactor)
	}
	if w.IsParagraphEnd {
		mult = math.Max(mult, paraPauseFactor)
	}
	return time.Duration(math.Round(base*mult)) * time.Millisecond
}

// Split divides word into the text before the fixation letter, the letter
// itself, and the text after it. All three are empty only for empty input.
func Split(word string) (before, focus, after string) {
	if word == "" {
		return "", "", ""
	}
	runes := []rune(word)
	orp := ORPIndex(word)
	return string(runes[:orp]), string(runes[orp]), string(runes[orp+1:])
}
