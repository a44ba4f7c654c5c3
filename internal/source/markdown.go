package source

import (
	"bufio"
	"os"
	"regexp"
	"strings"
)

// MarkdownFormat implements Format for Markdown files. The markup is left
// in place; it reads fine word by word.
type MarkdownFormat struct{}

func init() {
	Register(&MarkdownFormat{})
}

func (f *MarkdownFormat) Name() string         { return "Markdown" }
func (f *MarkdownFormat) Extensions() []string { return []string{".md", ".markdown"} }

func (f *MarkdownFormat) Extract(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// headerRegex matches markdown headers (# to ######).
var headerRegex = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)

// TOC builds a table of contents from markdown headers. Word counting
// mirrors segmentation so indices land on the header's first word.
func (f *MarkdownFormat) TOC(path string) ([]TOCEntry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var entries []TOCEntry
	wordCount := 0

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if m := headerRegex.FindStringSubmatch(line); m != nil {
			entries = append(entries, TOCEntry{
				Title:     strings.TrimSpace(m[2]),
				WordIndex: wordCount,
				Level:     len(m[1]) - 1,
			})
		}
		wordCount += len(strings.Fields(line))
	}

	return entries, scanner.Err()
}
