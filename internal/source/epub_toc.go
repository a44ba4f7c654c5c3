package source

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/taylorskalyo/goreader/epub"
)

// NCX structures for parsing toc.ncx.
type ncx struct {
	NavMap navMap `xml:"navMap"`
}

type navMap struct {
	NavPoints []navPoint `xml:"navPoint"`
}

type navPoint struct {
	Label    navLabel   `xml:"navLabel"`
	Content  navContent `xml:"content"`
	Children []navPoint `xml:"navPoint"`
}

type navLabel struct {
	Text string `xml:"text"`
}

type navContent struct {
	Src string `xml:"src,attr"`
}

// TOC extracts the table of contents from the EPUB's NCX document. Word
// indices are counted per spine item so they line up with the word
// sequence Extract produces.
func (f *EPUBFormat) TOC(file string) ([]TOCEntry, error) {
	rc, err := epub.OpenReader(file)
	if err != nil {
		return nil, fmt.Errorf("open epub: %w", err)
	}
	defer rc.Close()

	if len(rc.Rootfiles) == 0 {
		return nil, fmt.Errorf("epub has no rootfiles")
	}
	book := rc.Rootfiles[0]

	data, err := readNCX(file, book)
	if err != nil {
		return nil, err
	}

	var toc ncx
	if err := xml.Unmarshal(data, &toc); err != nil {
		return nil, fmt.Errorf("parse NCX: %w", err)
	}

	return flattenNavPoints(toc.NavMap.NavPoints, spineWordIndex(book), 0), nil
}

// spineWordIndex maps each spine item's href to the index of its first word.
func spineWordIndex(book *epub.Rootfile) map[string]int {
	m := make(map[string]int)
	words := 0
	for _, ref := range book.Spine.Itemrefs {
		if ref.Item != nil && ref.Item.HREF != "" {
			m[ref.Item.HREF] = words
			m[path.Base(ref.Item.HREF)] = words
		}
		words += len(strings.Fields(spineItemText(ref)))
	}
	return m
}

// readNCX locates the NCX document, via the manifest media type or by
// falling back to any .ncx entry in the archive.
func readNCX(file string, book *epub.Rootfile) ([]byte, error) {
	zr, err := zip.OpenReader(file)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	var ncxPath string
	for _, item := range book.Manifest.Items {
		if item.MediaType == "application/x-dtbncx+xml" {
			ncxPath = item.HREF
			break
		}
	}
	if ncxPath == "" {
		for _, f := range zr.File {
			if strings.HasSuffix(strings.ToLower(f.Name), ".ncx") {
				ncxPath = f.Name
				break
			}
		}
	}
	if ncxPath == "" {
		return nil, fmt.Errorf("no NCX document in epub")
	}

	for _, f := range zr.File {
		if f.Name == ncxPath || strings.HasSuffix(f.Name, "/"+ncxPath) || path.Base(f.Name) == path.Base(ncxPath) {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}

	return nil, fmt.Errorf("NCX document %s not in archive", ncxPath)
}

func flattenNavPoints(points []navPoint, index map[string]int, level int) []TOCEntry {
	var entries []TOCEntry
	for _, np := range points {
		href := np.Content.Src
		if i := strings.Index(href, "#"); i != -1 {
			href = href[:i]
		}
		wordIndex, ok := index[href]
		if !ok {
			wordIndex = index[path.Base(href)]
		}
		entries = append(entries, TOCEntry{
			Title:     strings.TrimSpace(np.Label.Text),
			WordIndex: wordIndex,
			Level:     level,
		})
		entries = append(entries, flattenNavPoints(np.Children, index, level+1)...)
	}
	return entries
}
