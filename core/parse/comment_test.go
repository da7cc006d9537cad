package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentDialectSingleMessage(t *testing.T) {
	doc := `<B><FONT COLOR="#0000ff">UserA<!-- (10:56:59 PM)--></B></FONT>: <FONT>hello</FONT><BR>`

	msgs := New().Parse(doc)
	require.Len(t, msgs, 1)

	assert.Equal(t, "UserA", msgs[0].Sender)
	assert.Equal(t, "10:56:59 PM", msgs[0].Timestamp)
	assert.Equal(t, "hello", msgs[0].Content)
	assert.False(t, msgs[0].IsSystemMessage)
	assert.False(t, msgs[0].IsAutoResponse)
	assert.False(t, msgs[0].IsSessionConcluded)
}

func TestCommentDialectMessagesInSourceOrder(t *testing.T) {
	doc := `<B><FONT COLOR="#0000ff">UserA<!-- (10:56:59 PM)--></B></FONT>: <FONT>first</FONT><BR>
<B><FONT COLOR="#ff0000">UserB<!-- (10:57:26 PM)--></B></FONT>: <FONT>second</FONT><BR>
<B><FONT COLOR="#0000ff">UserA<!-- (10:58:01 PM)--></B></FONT>: <FONT>third</FONT><BR>`

	msgs := New().Parse(doc)
	require.Len(t, msgs, 3)

	assert.Equal(t, []string{"UserA", "UserB", "UserA"},
		[]string{msgs[0].Sender, msgs[1].Sender, msgs[2].Sender})
	assert.Equal(t, []string{"first", "second", "third"},
		[]string{msgs[0].Content, msgs[1].Content, msgs[2].Content})
}

func TestCommentDialectBodySpansLineBreaks(t *testing.T) {
	// The body itself contains a <BR>; the pieces accumulate into one block
	// until the next sender+timestamp header.
	doc := `<B><FONT>UserA<!-- (10:00:00 PM)--></B></FONT>: <FONT>line one<BR>
line two</FONT><BR>
<B><FONT>UserB<!-- (10:00:05 PM)--></B></FONT>: <FONT>reply</FONT><BR>`

	msgs := New().Parse(doc)
	require.Len(t, msgs, 2)

	assert.Equal(t, "line one line two", msgs[0].Content)
	assert.Equal(t, "reply", msgs[1].Content)
}

func TestCommentDialectConcatenatesAllContainers(t *testing.T) {
	doc := `<B><FONT>UserA<!-- (10:00:00 PM)--></B></FONT>: <FONT>part one </FONT><FONT COLOR="#888888">and part two</FONT><BR>`

	msgs := New().Parse(doc)
	require.Len(t, msgs, 1)
	assert.Equal(t, "part one and part two", msgs[0].Content)
}

func TestCommentDialectStripsInnerTagsAndDecodesEntities(t *testing.T) {
	doc := `<B><FONT>UserA<!-- (10:00:00 PM)--></B></FONT>: <FONT><I>so</I> she said &quot;ok&quot;</FONT><BR>`

	msgs := New().Parse(doc)
	require.Len(t, msgs, 1)
	assert.Equal(t, `so she said "ok"`, msgs[0].Content)
}

func TestCommentDialectDropsLeadingColonRun(t *testing.T) {
	doc := `<B><FONT>UserA<!-- (10:00:00 PM)--></B></FONT><FONT>: hello</FONT><BR>`

	msgs := New().Parse(doc)
	require.Len(t, msgs, 1)
	assert.Equal(t, "hello", msgs[0].Content)
}

func TestCommentDialectSignOff(t *testing.T) {
	doc := `<B><FONT>UserA<!-- (12:20:00 AM)--></B></FONT>: <FONT>good night</FONT><BR>
<B><FONT>UserA signed off at 12:28:30 AM</B>.</FONT><BR>`

	msgs := New().Parse(doc)
	require.Len(t, msgs, 2)

	signOff := msgs[1]
	assert.Equal(t, "System", signOff.Sender)
	assert.Equal(t, "UserA signed off at 12:28:30 AM", signOff.Content)
	assert.Empty(t, signOff.Timestamp)
	assert.True(t, signOff.IsSystemMessage)
	assert.False(t, signOff.IsAutoResponse)
	assert.False(t, signOff.IsSessionConcluded)
}

func TestCommentDialectSignOffKeepsSurroundingMessages(t *testing.T) {
	// The sign-off line carries no sender+timestamp header; it must still
	// start its own block instead of gluing onto the pending message.
	doc := `<B><FONT>UserA<!-- (12:20:00 AM)--></B></FONT>: <FONT>good night</FONT><BR>
<B><FONT>UserA signed off at 12:28:30 AM</B>.</FONT><BR>
<B><FONT>UserB<!-- (12:29:00 AM)--></B></FONT>: <FONT>talk tomorrow</FONT><BR>`

	msgs := New().Parse(doc)
	require.Len(t, msgs, 3)

	assert.Equal(t, "good night", msgs[0].Content)
	assert.False(t, msgs[0].IsSystemMessage)

	assert.Equal(t, "System", msgs[1].Sender)
	assert.Equal(t, "UserA signed off at 12:28:30 AM", msgs[1].Content)
	assert.True(t, msgs[1].IsSystemMessage)

	assert.Equal(t, "UserB", msgs[2].Sender)
	assert.Equal(t, "talk tomorrow", msgs[2].Content)
}

func TestCommentDialectAutoResponse(t *testing.T) {
	doc := `<B><FONT>Auto response from UserB<!-- (11:15:02 PM)--></B></FONT>: <FONT>brb, dinner</FONT><BR>`

	msgs := New().Parse(doc)
	require.Len(t, msgs, 1)

	assert.Equal(t, "UserB", msgs[0].Sender)
	assert.Equal(t, "11:15:02 PM", msgs[0].Timestamp)
	assert.Equal(t, "brb, dinner", msgs[0].Content)
	assert.True(t, msgs[0].IsSystemMessage)
	assert.True(t, msgs[0].IsAutoResponse)
}

func TestCommentDialectDropsMalformedBlocks(t *testing.T) {
	doc := `just some stray text<BR>
<B><FONT>UserA<!-- (10:00:00 PM)--></B></FONT>: <FONT>real message</FONT><BR>
stray trailing text with no header<BR>`

	msgs := New().Parse(doc)
	require.Len(t, msgs, 1)
	assert.Equal(t, "real message", msgs[0].Content)
}

func TestCommentDialectDropsEmptyContent(t *testing.T) {
	// A header with nothing extractable after it is dropped, not emitted
	// with empty content.
	doc := `<B><FONT>UserA<!-- (10:00:00 PM)--></B></FONT>: <FONT>   </FONT><BR>`

	msgs := New().Parse(doc)
	assert.Empty(t, msgs)
}

func TestCommentDialectToleratesUnclosedInnerTags(t *testing.T) {
	doc := `<B><FONT>UserA<!-- (10:00:00 PM)--></B></FONT>: <FONT><I>leaning text</FONT><BR>`

	msgs := New().Parse(doc)
	require.Len(t, msgs, 1)
	assert.Equal(t, "leaning text", msgs[0].Content)
}
