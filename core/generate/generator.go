// Package generate produces conversation titles and descriptions by invoking
// an external text-generation model with a transcript sample. The model is
// injected as a langchaingo llms.Model; production code wires the Gemini
// backend, tests substitute a fake.
package generate

import (
	"context"
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/chatpipe/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

// DefaultModel is the Gemini model used when the config names none.
const DefaultModel = "gemini-2.5-flash-lite"

const (
	maxTitleLen       = 50
	maxDescriptionLen = 300

	// Per-operation caps on the number of transcript lines sent to the
	// model; longer conversations are sampled (see Sample).
	titleMessageCap       = 20
	descriptionMessageCap = 30
)

const titlePrompt = `Based on this AIM conversation, generate a concise, descriptive title (3-6 words) that captures the main topic or theme of the conversation. The title should be suitable for a filename.

Conversation:
%s

Examples of good titles:
- "Planning first trip to beach"
- "Birthday wishes for Alice"
- "Catching up during COVID lockdown"
- "Gaming session discussion"
- "Weekend dinner plans"

Generate only the title, nothing else:`

const descriptionPrompt = `Based on this AIM conversation, generate a concise description (1-2 sentences) that summarizes the main topics, themes, and key events discussed. This description will be used by other LLMs to quickly understand whether the conversation is relevant to their search criteria.

Focus on:
- Main topics or subjects discussed
- Key events mentioned
- Overall themes or purposes of the conversation
- Important decisions or conclusions reached

Conversation:
%s

Examples of good descriptions:
- "In this conversation Bob and Alice discuss planning their summer vacation to Italy, comparing flight options and hotel recommendations before deciding on travel dates."
- "Alice and Bob catch up after a long time apart, sharing updates about their jobs, discussing mutual friends, and making plans to meet up next weekend."
- "The conversation focuses on troubleshooting a software bug, with Bob helping Alice debug her Python code and suggesting alternative approaches to the problem."

Generate only the description, nothing else:`

// Config holds the settings for the Gemini-backed generator. The API key is
// passed in explicitly; this package never reads ambient state.
type Config struct {
	APIKey string
	Model  string
}

// Generator generates titles and descriptions for conversations.
type Generator struct {
	model llms.Model
}

// NewGeminiModel creates the Gemini-backed model shared by the generator and
// the tag evaluator.
func NewGeminiModel(ctx context.Context, cfg Config) (llms.Model, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required (set GEMINI_API_KEY)")
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(cfg.APIKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return llm, nil
}

// New creates a Generator on top of an arbitrary model.
func New(model llms.Model) *Generator {
	return &Generator{model: model}
}

// Title generates a 3-6 word conversation title. Failures are returned to
// the caller: a missing title defeats the rename feature's purpose.
func (g *Generator) Title(ctx context.Context, messages []core.Message, names map[string]string) (string, error) {
	lines := TranscriptLines(messages, names)
	if len(lines) == 0 {
		return "Conversation", nil
	}

	prompt := fmt.Sprintf(titlePrompt, Sample(lines, titleMessageCap))
	resp, err := llms.GenerateFromSinglePrompt(ctx, g.model, prompt)
	if err != nil {
		return "", fmt.Errorf("generating title: %w", err)
	}

	title := cleanResponse(resp)
	if len(title) > maxTitleLen {
		title = strings.TrimSpace(title[:maxTitleLen])
	}
	if title == "" {
		return "General conversation", nil
	}
	return title, nil
}

// Description generates a 1-2 sentence conversation summary.
func (g *Generator) Description(ctx context.Context, messages []core.Message, names map[string]string) (string, error) {
	if len(messages) == 0 {
		return "Empty conversation", nil
	}
	lines := TranscriptLines(messages, names)
	if len(lines) == 0 {
		return "Conversation with only system messages", nil
	}

	prompt := fmt.Sprintf(descriptionPrompt, Sample(lines, descriptionMessageCap))
	resp, err := llms.GenerateFromSinglePrompt(ctx, g.model, prompt)
	if err != nil {
		return "", fmt.Errorf("generating description: %w", err)
	}

	desc := cleanResponse(resp)
	switch {
	case len(desc) < 20:
		return "Brief conversation between participants", nil
	case len(desc) > maxDescriptionLen:
		desc = strings.TrimSpace(desc[:maxDescriptionLen])
		// Prefer ending at a complete sentence.
		if last := strings.LastIndex(desc, "."); last > 200 {
			desc = desc[:last+1]
		}
	}
	return desc, nil
}

// TranscriptLines flattens regular messages into "sender: content" lines,
// applying the optional handle to display-name mapping. System messages are
// filtered out before prompting.
func TranscriptLines(messages []core.Message, names map[string]string) []string {
	var lines []string
	for _, m := range messages {
		if !m.IsRegular() {
			continue
		}
		sender := m.Sender
		if name, ok := names[sender]; ok && name != "" {
			sender = name
		}
		lines = append(lines, sender+": "+m.Content)
	}
	return lines
}

// cleanResponse strips the quoting and stray newlines models wrap answers in.
func cleanResponse(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"'`)
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}
