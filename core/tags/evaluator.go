// Package tags evaluates which configured custom tags apply to a
// conversation, and maps AIM handles to configured display names and
// Markdown links. Tag evaluation is an enhancement: model failures degrade
// to "no custom tags" instead of failing the conversation.
package tags

import (
	"context"
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/chatpipe/core"
	"github.com/gaurav-prasanna/chatpipe/core/config"
	"github.com/gaurav-prasanna/chatpipe/core/generate"
	"github.com/sirupsen/logrus"
	"github.com/tmc/langchaingo/llms"
)

// evaluationMessageCap bounds the transcript sample sent for tag evaluation.
const evaluationMessageCap = 100

const evaluationPrompt = `Based on this AIM conversation, determine which of the following custom tags apply to the conversation content. Only return the tag names that clearly match the conversation, one per line.

Available tags:
%s

Conversation:
%s

Instructions:
- Analyze the conversation content carefully
- Only apply tags where the conversation clearly contains the described content
- If a tag's description doesn't match the conversation, don't include it
- Return only the tag names that match, one per line
- If no tags match, return nothing

Matching tag names:`

// Evaluator applies configured tags and participant mappings.
type Evaluator struct {
	model llms.Model // nil disables LLM evaluation
	cfg   *config.Config
}

// New creates an Evaluator. A nil model disables tag evaluation while the
// participant mapping helpers keep working.
func New(model llms.Model, cfg *config.Config) *Evaluator {
	return &Evaluator{model: model, cfg: cfg}
}

// Evaluate returns the configured tag names that match the conversation.
// Any failure degrades gracefully to no custom tags.
func (e *Evaluator) Evaluate(ctx context.Context, messages []core.Message) []string {
	if e.model == nil || len(e.cfg.Tags) == 0 {
		return nil
	}
	lines := generate.TranscriptLines(messages, e.DisplayNames(handlesOf(messages)))
	if len(lines) == 0 {
		return nil
	}

	var descriptions []string
	for _, t := range e.cfg.Tags {
		descriptions = append(descriptions, fmt.Sprintf("- %s: %s", t.Name, t.Description))
	}

	prompt := fmt.Sprintf(evaluationPrompt,
		strings.Join(descriptions, "\n"),
		generate.Sample(lines, evaluationMessageCap))

	resp, err := llms.GenerateFromSinglePrompt(ctx, e.model, prompt)
	if err != nil {
		logrus.Warnf("tag evaluation failed, continuing without custom tags: %v", err)
		return nil
	}

	return e.matchNames(resp)
}

// matchNames keeps only response lines that exactly name a configured tag.
func (e *Evaluator) matchNames(resp string) []string {
	known := make(map[string]bool, len(e.cfg.Tags))
	for _, t := range e.cfg.Tags {
		known[t.Name] = true
	}

	var matched []string
	seen := make(map[string]bool)
	for _, line := range strings.Split(resp, "\n") {
		name := strings.TrimSpace(line)
		if known[name] && !seen[name] {
			seen[name] = true
			matched = append(matched, name)
		}
	}
	return matched
}

// MapParticipants maps AIM handles to their configured Markdown links,
// falling back to the handle itself.
func (e *Evaluator) MapParticipants(handles []string) []string {
	mapped := make([]string, 0, len(handles))
	for _, h := range handles {
		if p, ok := e.participant(h); ok && p.MD != "" {
			mapped = append(mapped, p.MD)
			continue
		}
		mapped = append(mapped, h)
	}
	return mapped
}

// DisplayNames maps AIM handles to configured human-readable names, falling
// back to the handle itself.
func (e *Evaluator) DisplayNames(handles []string) map[string]string {
	names := make(map[string]string, len(handles))
	for _, h := range handles {
		if p, ok := e.participant(h); ok {
			names[h] = p.Name
			continue
		}
		names[h] = h
	}
	return names
}

func (e *Evaluator) participant(handle string) (config.Participant, bool) {
	for _, p := range e.cfg.Participants {
		if p.AIM == handle {
			return p, true
		}
	}
	return config.Participant{}, false
}

func handlesOf(messages []core.Message) []string {
	conv := core.Conversation{Messages: messages}
	return conv.Handles()
}
