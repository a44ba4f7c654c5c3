package source

import "os"

// PlainFormat implements Format for plain text files.
type PlainFormat struct{}

func init() {
	Register(&PlainFormat{})
}

func (f *PlainFormat) Name() string         { return "Plain text" }
func (f *PlainFormat) Extensions() []string { return []string{".txt", ".text"} }

func (f *PlainFormat) Extract(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
