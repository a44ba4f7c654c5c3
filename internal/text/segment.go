package text

import "strings"

// Segment splits raw text into Words. Whitespace separates words and a single
// newline reads like a space. A blank line is a paragraph break: the last word
// before the gap is flagged, so the long pause lands at the end of the
// paragraph, not on the first word of the next one.
func Segment(raw string) []Word {
	words := []Word{}
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			if len(words) > 0 {
				words[len(words)-1].IsParagraphEnd = true
			}
			continue
		}
		for _, tok := range strings.Fields(trimmed) {
			words = append(words, Word{Text: tok})
		}
	}
	return words
}

// SentenceStarts returns indices of words that begin sentences. Index 0 is
// always included for non-empty input.
func SentenceStarts(words []Word) []int {
	if len(words) == 0 {
		return nil
	}
	starts := []int{0}
	for i, w := range words {
		if w.Text == "" {
			continue
		}
		switch w.Text[len(w.Text)-1] {
		case '.', '!', '?':
			if i+1 < len(words) {
				starts = append(starts, i+1)
			}
		}
	}
	return starts
}
