// Package output handles file naming and writing for chatpipe outputs.
// By default an output lands beside its source transcript with the renderer's
// extension; --rename switches to generated "YYYY-MM-DD Title [a, b]" names.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
)

var (
	unsafeFilenameRe = regexp.MustCompile(`[<>:"/\\|?*]`)
	spaceRunRe       = regexp.MustCompile(`\s+`)
)

// Writer writes rendered output to disk.
type Writer struct {
	// OutputDir receives all outputs when set; otherwise each output is
	// written beside its source transcript.
	OutputDir string
}

// New creates a Writer targeting the given output directory, creating it if
// needed. An empty outputDir means "beside the source".
func New(outputDir string) (*Writer, error) {
	if outputDir != "" {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return nil, fmt.Errorf("creating output directory: %w", err)
		}
	}
	return &Writer{OutputDir: outputDir}, nil
}

// Write stores data under name+ext, either in OutputDir or beside the source.
func (w *Writer) Write(sourcePath, name string, data []byte, ext string) (string, error) {
	dir := w.OutputDir
	if dir == "" {
		dir = filepath.Dir(sourcePath)
	}
	path := filepath.Join(dir, name+ext)

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

// DerivedName is the default output name: the source filename without its
// extension ("2004-05-18 [Tuesday].htm" → "2004-05-18 [Tuesday]").
func DerivedName(sourcePath string) string {
	base := filepath.Base(sourcePath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// GeneratedName builds the standardized "YYYY-MM-DD Title [user1, user2]"
// name used in --rename mode. An undated conversation uses today's date.
func GeneratedName(date *time.Time, title string, participants []string) string {
	day := time.Now()
	if date != nil {
		day = *date
	}

	sorted := append([]string(nil), participants...)
	sort.Strings(sorted)

	return fmt.Sprintf("%s %s [%s]",
		day.Format("2006-01-02"),
		SanitizeTitle(title),
		strings.Join(sorted, ", "))
}

// SanitizeTitle makes a generated title safe for filenames: problematic
// characters become spaces and whitespace runs collapse.
func SanitizeTitle(title string) string {
	s := unsafeFilenameRe.ReplaceAllString(title, " ")
	s = spaceRunRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
