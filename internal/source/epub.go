package source

import (
	"fmt"
	"io"
	"strings"

	"github.com/taylorskalyo/goreader/epub"
	"golang.org/x/net/html"
)

// EPUBFormat implements Format for EPUB files.
type EPUBFormat struct{}

func init() {
	Register(&EPUBFormat{})
}

func (f *EPUBFormat) Name() string         { return "EPUB" }
func (f *EPUBFormat) Extensions() []string { return []string{".epub"} }

// Extract walks the spine in order and concatenates the text of every
// content document.
func (f *EPUBFormat) Extract(path string) (string, error) {
	rc, err := epub.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("open epub: %w", err)
	}
	defer rc.Close()

	if len(rc.Rootfiles) == 0 {
		return "", fmt.Errorf("epub has no rootfiles")
	}

	var out strings.Builder
	for _, ref := range rc.Rootfiles[0].Spine.Itemrefs {
		out.WriteString(spineItemText(ref))
		out.WriteString(" ")
	}
	return out.String(), nil
}

// spineItemText reads one spine item and flattens it to text. Unreadable
// items contribute nothing rather than failing the whole book.
func spineItemText(ref epub.Itemref) string {
	if ref.Item == nil {
		return ""
	}
	r, err := ref.Item.Open()
	if err != nil {
		return ""
	}
	data, err := io.ReadAll(r)
	r.Close()
	if err != nil {
		return ""
	}
	return htmlText(string(data))
}

func htmlText(s string) string {
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return ""
	}

	var out strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				out.WriteString(t)
				out.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return out.String()
}
