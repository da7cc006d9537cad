// Package normalize cleans message body text extracted from transcript
// markup. It is not an HTML parser: tags are removed (or, in keep-styles
// mode, converted to Markdown emphasis) without any attribute interpretation.
package normalize

import (
	"html"
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

var (
	tagRe          = regexp.MustCompile(`<[^>]+>`)
	newlineRunRe   = regexp.MustCompile(`\s*\n\s*`)
	wideSpaceRunRe = regexp.MustCompile(`   +`)
)

// Normalizer flattens markup fragments into message text.
type Normalizer struct {
	// KeepStyles converts inline formatting tags (<B>, <I>, ...) to Markdown
	// instead of stripping them.
	KeepStyles bool
}

// New creates a Normalizer in the default strip mode.
func New() *Normalizer {
	return &Normalizer{}
}

// Flatten removes the markup from a fragment of message body text.
// In keep-styles mode the fragment is converted to Markdown; conversion
// failures fall back to plain stripping.
func (n *Normalizer) Flatten(fragment string) string {
	if n.KeepStyles {
		md, err := htmltomarkdown.ConvertString(fragment)
		if err == nil {
			return md
		}
	}
	return StripTags(fragment)
}

// StripTags removes every <...> span verbatim.
func StripTags(s string) string {
	return tagRe.ReplaceAllString(s, "")
}

// Clean decodes HTML entities and applies the whitespace rules: any run of
// whitespace containing a newline collapses to a single space, runs of 3+
// plain spaces collapse to exactly 2, and the result is trimmed.
// Clean is idempotent on its own output.
func Clean(s string) string {
	s = html.UnescapeString(s)
	s = newlineRunRe.ReplaceAllString(s, " ")
	s = wideSpaceRunRe.ReplaceAllString(s, "  ")
	return strings.TrimSpace(s)
}
