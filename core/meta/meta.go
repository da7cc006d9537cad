// Package meta extracts document-level metadata from a transcript's export
// header. Unlike the message parser, this is ordinary (if sloppy) HTML head
// markup, so goquery's lenient tree parsing is the right tool here.
package meta

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// buddyPrefixes are the title prefixes the exporter's versions are known to
// write, e.g. "IM History with buddyname".
var buddyPrefixes = []string{
	"IM History with ",
	"Conversation with ",
}

// SourceMeta holds metadata recovered from the export header.
type SourceMeta struct {
	Title string // full <TITLE> text
	Buddy string // buddy handle parsed out of the title, if recognizable
}

// Extract parses the document head and pulls the export title. The message
// markup below the head is frequently non-well-formed; goquery tolerates it
// and this function never fails on malformed input.
func Extract(html string) SourceMeta {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return SourceMeta{}
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	return SourceMeta{
		Title: title,
		Buddy: buddyFromTitle(title),
	}
}

func buddyFromTitle(title string) string {
	for _, prefix := range buddyPrefixes {
		if strings.HasPrefix(title, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(title, prefix))
		}
	}
	return ""
}
