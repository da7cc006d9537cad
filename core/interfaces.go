// Package core defines the pipeline interfaces for chatpipe.
// Each stage of the pipeline is a clean, testable interface.
package core

import (
	"context"
	"time"
)

// Message is a single normalized chat message recovered from a transcript.
// Exactly one of {regular, sign-off, auto-response, session-concluded}
// applies; IsSystemMessage is the union of the latter three.
type Message struct {
	Sender             string `json:"sender"`
	Timestamp          string `json:"timestamp,omitempty"` // time-of-day as it appeared in the source
	Content            string `json:"content"`
	IsSystemMessage    bool   `json:"is_system_message,omitempty"`
	IsAutoResponse     bool   `json:"is_auto_response,omitempty"`
	IsSessionConcluded bool   `json:"is_session_concluded,omitempty"`
}

// SystemSender is the sender recorded for non-chat events (sign-offs and
// session-concluded markers).
const SystemSender = "System"

// IsRegular reports whether the message is ordinary chat content.
func (m Message) IsRegular() bool {
	return !m.IsSystemMessage
}

// Conversation holds one parsed transcript plus the metadata renderers need.
type Conversation struct {
	Messages []Message

	// Date extracted from the source filename; nil when the filename
	// carried no usable date.
	Date *time.Time

	SourcePath  string
	SourceTitle string // <TITLE> of the export header, if any

	Description  string   // generated, optional
	Tags         []string // evaluated custom tags, optional
	Participants []string // display names for the frontmatter
}

// Handles returns the unique sender handles of regular messages, in order of
// first appearance.
func (c *Conversation) Handles() []string {
	seen := make(map[string]bool)
	var handles []string
	for _, m := range c.Messages {
		if !m.IsRegular() || m.Sender == "" {
			continue
		}
		if !seen[m.Sender] {
			seen[m.Sender] = true
			handles = append(handles, m.Sender)
		}
	}
	return handles
}

// LoadResult holds the decoded transcript text and source metadata.
type LoadResult struct {
	Path string
	Text string
}

// Loader reads a transcript file into memory, handling legacy encodings.
type Loader interface {
	Load(path string) (*LoadResult, error)
}

// Parser turns raw transcript text into an ordered message sequence.
type Parser interface {
	Parse(text string) []Message
}

// Renderer converts a parsed conversation into a final output format.
type Renderer interface {
	Render(conv *Conversation) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".md", ".pdf").
	Extension() string
}

// Generator produces a short title and a 1-2 sentence description for a
// conversation via an external text-generation call.
type Generator interface {
	Title(ctx context.Context, messages []Message, names map[string]string) (string, error)
	Description(ctx context.Context, messages []Message, names map[string]string) (string, error)
}
