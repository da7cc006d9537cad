// Package parse implements the transcript parsing layer: it recognizes the
// HTML dialects produced by the legacy AIM client's export feature and
// recovers a normalized, ordered message sequence from each.
//
// The package never builds a DOM. Each dialect is recognized by a fixed set
// of tag idioms and scanned with forward-only cursors, which keeps parsing
// tolerant of the unbalanced and inconsistently nested markup the exporter
// actually produced.
package parse

import (
	"strings"

	"github.com/gaurav-prasanna/chatpipe/core"
	"github.com/gaurav-prasanna/chatpipe/core/normalize"
)

// Dialect markers. Detection is a single substring test per dialect; the
// nested-markup signature is more specific, so it is checked first.
const (
	nestedWrapperOpen  = `<SPAN style="background-color: #ffffff;">`
	nestedWrapperClose = `</SPAN>`
	commentOpen        = "<!-- ("
	commentClose       = ")-->"
)

// autoResponsePrefix marks away-message replies in both dialects.
const autoResponsePrefix = "Auto response from "

// located pairs a message with its byte offset in the source document so the
// session-concluded merge can interleave markers dialect-independently.
type located struct {
	msg core.Message
	pos int
}

// dialect is the capability contract a variant parser implements. The first
// matching entry in the dialect table wins; the last entry is the permissive
// fallback and must always handle.
type dialect struct {
	name      string
	canHandle func(text string) bool
	parse     func(p *Parser, text string) []located
}

var dialects = []dialect{
	{
		name:      "nested-markup",
		canHandle: func(text string) bool { return strings.Contains(text, nestedWrapperOpen) },
		parse:     (*Parser).parseNested,
	},
	{
		name: "comment-annotated",
		canHandle: func(text string) bool {
			open := strings.Index(text, commentOpen)
			return open != -1 && strings.Contains(text[open:], commentClose)
		},
		parse: (*Parser).parseComment,
	},
}

// fallback is the dialect applied when no signature matches.
var fallback = dialects[len(dialects)-1]

// Parser is the facade over the dialect parsers. The zero value is not
// usable; construct with New or NewWithNormalizer.
type Parser struct {
	normalizer *normalize.Normalizer
}

// New creates a Parser with the default (tag-stripping) normalizer.
func New() *Parser {
	return NewWithNormalizer(normalize.New())
}

// NewWithNormalizer creates a Parser using the given content normalizer.
func NewWithNormalizer(n *normalize.Normalizer) *Parser {
	return &Parser{normalizer: n}
}

// Dialect reports which dialect grammar applies to the document.
func Dialect(text string) string {
	return selectDialect(text).name
}

func selectDialect(text string) dialect {
	for _, d := range dialects {
		if d.canHandle(text) {
			return d
		}
	}
	return fallback
}

// Parse recovers the ordered message sequence from a raw transcript
// document. Malformed blocks are dropped; Parse never fails.
func (p *Parser) Parse(text string) []core.Message {
	msgs := selectDialect(text).parse(p, text)
	msgs = mergeSessionMarkers(text, msgs)

	out := make([]core.Message, 0, len(msgs))
	for _, lm := range msgs {
		out = append(out, lm.msg)
	}
	return out
}
