package text

import (
	"reflect"
	"testing"
)

func TestSegment(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected []Word
	}{
		{
			name:     "empty input",
			raw:      "",
			expected: []Word{},
		},
		{
			name:     "whitespace only",
			raw:      "  \n\t\n  ",
			expected: []Word{},
		},
		{
			name:     "single word",
			raw:      "hello",
			expected: []Word{{Text: "hello"}},
		},
		{
			name: "blank line flags previous word",
			raw:  "a b\n\nc",
			expected: []Word{
				{Text: "a"},
				{Text: "b", IsParagraphEnd: true},
				{Text: "c"},
			},
		},
		{
			name: "single newline is a space",
			raw:  "a\nb",
			expected: []Word{
				{Text: "a"},
				{Text: "b"},
			},
		},
		{
			name: "windows line endings",
			raw:  "a b\r\n\r\nc",
			expected: []Word{
				{Text: "a"},
				{Text: "b", IsParagraphEnd: true},
				{Text: "c"},
			},
		},
		{
			name: "multiple blank lines collapse",
			raw:  "a\n\n\n\nb",
			expected: []Word{
				{Text: "a", IsParagraphEnd: true},
				{Text: "b"},
			},
		},
		{
			name: "leading blank lines flag nothing",
			raw:  "\n\na b",
			expected: []Word{
				{Text: "a"},
				{Text: "b"},
			},
		},
		{
			name: "trailing blank line flags last word",
			raw:  "a b\n\n",
			expected: []Word{
				{Text: "a"},
				{Text: "b", IsParagraphEnd: true},
			},
		},
		{
			name: "tabs and runs of spaces",
			raw:  "a\t \tb   c",
			expected: []Word{
				{Text: "a"},
				{Text: "b"},
				{Text: "c"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Segment(tt.raw)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Segment(%q) = %v, want %v", tt.raw, got, tt.expected)
			}
		})
	}
}

func TestSentenceStarts(t *testing.T) {
	words := func(ss ...string) []Word {
		out := make([]Word, len(ss))
		for i, s := range ss {
			out[i] = Word{Text: s}
		}
		return out
	}

	tests := []struct {
		name     string
		words    []Word
		expected []int
	}{
		{"empty", nil, nil},
		{"single sentence", words("one", "two", "three"), []int{0}},
		{"period starts next", words("one.", "two", "three."), []int{0, 1}},
		{"question and exclamation", words("what?", "yes!", "ok"), []int{0, 1, 2}},
		{"trailing terminator adds nothing", words("done."), []int{0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SentenceStarts(tt.words)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("SentenceStarts() = %v, want %v", got, tt.expected)
			}
		})
	}
}
