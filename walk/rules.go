// Package walk — path filtering rules.
package walk

import (
	"path/filepath"
	"strings"
)

// transcriptExtensions are the export extensions the old client wrote.
var transcriptExtensions = map[string]bool{
	".htm":  true,
	".html": true,
}

// IsTranscript checks whether a path looks like an HTML transcript export.
func IsTranscript(path string) bool {
	return transcriptExtensions[strings.ToLower(filepath.Ext(path))]
}

// IsHidden checks for dotfiles and dot-directories, which never hold exports.
func IsHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
