package source

// TOCEntry is a jump target within a source: a title and the index of the
// first word of that section.
type TOCEntry struct {
	Title     string
	WordIndex int
	Level     int
}

// TOCProvider is an optional interface for formats that can extract a
// table of contents.
type TOCProvider interface {
	TOC(path string) ([]TOCEntry, error)
}
