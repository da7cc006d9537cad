// Package walk discovers transcript files to process. It walks directories
// breadth-first with a dedup queue so symlink cycles cannot loop the run,
// keeping traversal logic separate from the conversion pipeline.
package walk

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/sirupsen/logrus"
)

// Discover returns the transcript files reachable from root. A file root is
// returned as-is (after an extension check); a directory root is scanned,
// descending into subdirectories only when recursive is set.
func Discover(root string, recursive bool) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("reading input path: %w", err)
	}

	if !info.IsDir() {
		if !IsTranscript(root) {
			return nil, fmt.Errorf("input file must be an HTML transcript (.htm or .html): %s", root)
		}
		return []string{root}, nil
	}

	queue := NewQueue()
	queue.Add(resolveDir(root), root)

	var files []string
	for queue.HasNext() {
		dir := queue.Next()

		entries, err := os.ReadDir(dir)
		if err != nil {
			continue // Skip unreadable directories, don't block the walk.
		}

		for _, entry := range entries {
			path := filepath.Join(dir, entry.Name())
			if IsHidden(entry.Name()) {
				continue
			}
			if isDir(path, entry) {
				if recursive {
					queue.Add(resolveDir(path), path)
				}
				continue
			}
			if IsTranscript(path) {
				files = append(files, path)
			}
		}
	}

	logrus.Debugf("scanned %d directories under %s", queue.Visited(), root)

	sort.Strings(files)
	return files, nil
}

// isDir follows symlinked directories so exports organized via links are
// still found; the queue's dedup keeps cycles finite.
func isDir(path string, entry os.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// resolveDir canonicalizes a directory path for deduplication.
func resolveDir(path string) string {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return path
	}
	return resolved
}
