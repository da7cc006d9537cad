// Package render provides output renderers for the chatpipe pipeline.
// This file implements the Markdown renderer, the canonical output format:
// YAML frontmatter followed by grouped message blocks.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/gaurav-prasanna/chatpipe/core"
)

// maxGroupGap is the largest timestamp gap between consecutive messages from
// the same sender that still merges them into one visual block.
const maxGroupGap = 2 * time.Minute

// timestampLayout matches the exporter's time-of-day strings ("10:57:26 PM").
const timestampLayout = "3:04:05 PM"

// escapeChars are the Markdown specials escaped inside quoted content lines.
const escapeChars = "*_`[]()#+-.!"

// MarkdownRenderer writes a conversation as frontmatter plus message blocks.
type MarkdownRenderer struct {
	// KeepInlineMarkdown disables escaping of content lines. Set when the
	// normalizer ran in keep-styles mode and the content already is Markdown.
	KeepInlineMarkdown bool
}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render produces the Markdown document. Consecutive regular messages from
// the same sender merge into one block when their timestamps are at most two
// minutes apart; any system message closes the current block.
func (r *MarkdownRenderer) Render(conv *core.Conversation) ([]byte, error) {
	var b strings.Builder

	writeFrontmatter(&b, conv)

	if conv.Date != nil {
		fmt.Fprintf(&b, "# AIM Conversation - %s\n\n", conv.Date.Format("January 2, 2006"))
	}

	var prev *core.Message
	var prevTime time.Time
	var prevTimeOK bool

	for i := range conv.Messages {
		msg := &conv.Messages[i]

		if msg.IsSystemMessage {
			if prev != nil {
				b.WriteString("\n")
			}
			fmt.Fprintf(&b, "*[System: %s]*\n\n", msg.Content)
			prev = nil
			continue
		}

		content := msg.Content
		if !r.KeepInlineMarkdown {
			content = escapeMarkdown(content)
		}

		ts, tsOK := parseTimestamp(msg.Timestamp)
		if sameGroup(prev, msg, prevTime, prevTimeOK, ts, tsOK) {
			// Continue the open block with just the quoted line.
			fmt.Fprintf(&b, "> %s\n", content)
		} else {
			if prev != nil {
				b.WriteString("\n")
			}
			fmt.Fprintf(&b, "**%s** (%s):\n", msg.Sender, msg.Timestamp)
			fmt.Fprintf(&b, "> %s\n", content)
		}
		prev = msg
		prevTime, prevTimeOK = ts, tsOK
	}
	if prev != nil {
		b.WriteString("\n")
	}

	return []byte(strings.TrimRight(b.String(), "\n") + "\n"), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}

// sameGroup reports whether msg continues prev's visual block.
func sameGroup(prev, msg *core.Message, prevTime time.Time, prevTimeOK bool, ts time.Time, tsOK bool) bool {
	if prev == nil || prev.Sender != msg.Sender {
		return false
	}
	if !prevTimeOK || !tsOK {
		return false
	}
	gap := ts.Sub(prevTime)
	// A negative gap means the clock rolled past midnight; start a new block.
	return gap >= 0 && gap <= maxGroupGap
}

func parseTimestamp(s string) (time.Time, bool) {
	t, err := time.Parse(timestampLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// writeFrontmatter emits the YAML frontmatter block, omitting absent fields.
func writeFrontmatter(b *strings.Builder, conv *core.Conversation) {
	b.WriteString("---\n")
	if conv.Date != nil {
		fmt.Fprintf(b, "date: %s\n", conv.Date.Format("2006-01-02"))
	}
	if conv.SourceTitle != "" {
		fmt.Fprintf(b, "source: %s\n", quoteYAML(conv.SourceTitle))
	}
	if conv.Description != "" {
		fmt.Fprintf(b, "description: %s\n", quoteYAML(conv.Description))
	}
	if len(conv.Tags) > 0 {
		b.WriteString("tags:\n")
		for _, tag := range conv.Tags {
			fmt.Fprintf(b, "  - %s\n", tag)
		}
	}
	if len(conv.Participants) > 0 {
		b.WriteString("participants:\n")
		for _, p := range conv.Participants {
			fmt.Fprintf(b, "  - %s\n", quoteYAML(p))
		}
	}
	b.WriteString("---\n\n")
}

// quoteYAML double-quotes a scalar so frontmatter survives colons, brackets,
// and leading specials in generated text.
func quoteYAML(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}

// escapeMarkdown escapes Markdown specials inside a content line.
func escapeMarkdown(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, ch := range s {
		if strings.ContainsRune(escapeChars, ch) {
			b.WriteByte('\\')
		}
		b.WriteRune(ch)
	}
	return b.String()
}
