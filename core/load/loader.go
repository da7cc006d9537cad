// Package load implements the Loader interface.
// It reads transcript exports from disk with sensible handling of the legacy
// encodings the AIM client produced.
package load

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/gaurav-prasanna/chatpipe/core"
)

// FileLoader reads transcript files into memory.
type FileLoader struct{}

// New creates a FileLoader.
func New() *FileLoader {
	return &FileLoader{}
}

// Load reads the file at path and returns its text. Files that are not valid
// UTF-8 are decoded as Windows/Latin-1, which covers every export the old
// client is known to have written.
func (l *FileLoader) Load(path string) (*core.LoadResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	text := string(data)
	if !utf8.ValidString(text) {
		text = decodeLatin1(data)
	}

	return &core.LoadResult{Path: path, Text: text}, nil
}

// decodeLatin1 maps each byte to the equivalent Unicode code point.
func decodeLatin1(data []byte) string {
	var b strings.Builder
	b.Grow(len(data))
	for _, c := range data {
		b.WriteRune(rune(c))
	}
	return b.String()
}
