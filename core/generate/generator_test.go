package generate

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/gaurav-prasanna/chatpipe/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

// fakeModel is an llms.Model that returns a canned reply and records the
// prompt it was given.
type fakeModel struct {
	reply  string
	err    error
	prompt string
}

func (f *fakeModel) GenerateContent(ctx context.Context, msgs []llms.MessageContent, opts ...llms.CallOption) (*llms.ContentResponse, error) {
	if len(msgs) > 0 && len(msgs[0].Parts) > 0 {
		if part, ok := msgs[0].Parts[0].(llms.TextContent); ok {
			f.prompt = part.Text
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: f.reply}},
	}, nil
}

func (f *fakeModel) Call(ctx context.Context, prompt string, opts ...llms.CallOption) (string, error) {
	f.prompt = prompt
	return f.reply, f.err
}

func regularMsgs(contents ...string) []core.Message {
	msgs := make([]core.Message, len(contents))
	for i, c := range contents {
		msgs[i] = core.Message{Sender: "alice99", Timestamp: "1:00:00 PM", Content: c}
	}
	return msgs
}

func TestTitle(t *testing.T) {
	model := &fakeModel{reply: "\"Weekend dinner plans\"\n"}
	g := New(model)

	title, err := g.Title(context.Background(), regularMsgs("want to grab dinner?"), nil)
	require.NoError(t, err)
	assert.Equal(t, "Weekend dinner plans", title)
	assert.Contains(t, model.prompt, "alice99: want to grab dinner?")
}

func TestTitleTruncated(t *testing.T) {
	model := &fakeModel{reply: strings.Repeat("long ", 30)}
	g := New(model)

	title, err := g.Title(context.Background(), regularMsgs("hi"), nil)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(title), 50)
	assert.Equal(t, title, strings.TrimSpace(title))
}

func TestTitleNoRegularMessages(t *testing.T) {
	g := New(&fakeModel{err: errors.New("must not be called")})

	title, err := g.Title(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "Conversation", title)
}

func TestTitleEmptyResponse(t *testing.T) {
	g := New(&fakeModel{reply: "  \n "})

	title, err := g.Title(context.Background(), regularMsgs("hi"), nil)
	require.NoError(t, err)
	assert.Equal(t, "General conversation", title)
}

func TestTitleModelError(t *testing.T) {
	g := New(&fakeModel{err: errors.New("quota exceeded")})

	_, err := g.Title(context.Background(), regularMsgs("hi"), nil)
	assert.ErrorContains(t, err, "generating title")
}

func TestDescription(t *testing.T) {
	reply := "Alice and Bob catch up about school and make plans for the weekend."
	g := New(&fakeModel{reply: reply})

	desc, err := g.Description(context.Background(), regularMsgs("hey", "how was school"), nil)
	require.NoError(t, err)
	assert.Equal(t, reply, desc)
}

func TestDescriptionEmptyConversation(t *testing.T) {
	g := New(&fakeModel{err: errors.New("must not be called")})

	desc, err := g.Description(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "Empty conversation", desc)
}

func TestDescriptionOnlySystemMessages(t *testing.T) {
	g := New(&fakeModel{err: errors.New("must not be called")})
	msgs := []core.Message{
		{Sender: "System", Content: "alice99 signed off at 1:00:00 PM", IsSystemMessage: true},
	}

	desc, err := g.Description(context.Background(), msgs, nil)
	require.NoError(t, err)
	assert.Equal(t, "Conversation with only system messages", desc)
}

func TestDescriptionTooShort(t *testing.T) {
	g := New(&fakeModel{reply: "Chat."})

	desc, err := g.Description(context.Background(), regularMsgs("hi"), nil)
	require.NoError(t, err)
	assert.Equal(t, "Brief conversation between participants", desc)
}

func TestDescriptionTruncatedAtSentence(t *testing.T) {
	first := strings.Repeat("a", 248) + "."  // sentence ends at byte 249
	reply := first + " " + strings.Repeat("b", 100)
	g := New(&fakeModel{reply: reply})

	desc, err := g.Description(context.Background(), regularMsgs("hi"), nil)
	require.NoError(t, err)
	assert.Equal(t, first, desc)
}

func TestTranscriptLinesMapsNames(t *testing.T) {
	msgs := []core.Message{
		{Sender: "alice99", Content: "hi"},
		{Sender: "System", Content: "noise", IsSystemMessage: true},
		{Sender: "bob2004", Content: "hey"},
	}
	names := map[string]string{"alice99": "Alice"}

	lines := TranscriptLines(msgs, names)
	require.Len(t, lines, 2)
	assert.Equal(t, "Alice: hi", lines[0])
	assert.Equal(t, "bob2004: hey", lines[1])
}
