// Package render — JSON renderer.
// Emits the parsed conversation as structured JSON for downstream search
// tooling: document metadata plus the full normalized message array.
package render

import (
	"encoding/json"
	"fmt"

	"github.com/gaurav-prasanna/chatpipe/core"
)

// conversationMeta is the metadata block of the JSON output.
type conversationMeta struct {
	Source       string   `json:"source,omitempty"`
	SourceTitle  string   `json:"source_title,omitempty"`
	Date         string   `json:"date,omitempty"`
	Description  string   `json:"description,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	Participants []string `json:"participants,omitempty"`
	MessageCount int      `json:"message_count"`
}

// conversationJSON is the complete JSON output for one transcript.
type conversationJSON struct {
	Metadata conversationMeta `json:"metadata"`
	Messages []core.Message   `json:"messages"`
}

// JSONRenderer produces structured JSON output.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render marshals the conversation and its metadata.
func (r *JSONRenderer) Render(conv *core.Conversation) ([]byte, error) {
	meta := conversationMeta{
		Source:       conv.SourcePath,
		SourceTitle:  conv.SourceTitle,
		Description:  conv.Description,
		Tags:         conv.Tags,
		Participants: conv.Participants,
		MessageCount: len(conv.Messages),
	}
	if conv.Date != nil {
		meta.Date = conv.Date.Format("2006-01-02")
	}

	data, err := json.MarshalIndent(conversationJSON{
		Metadata: meta,
		Messages: conv.Messages,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}
