package parse

import (
	"regexp"
	"strings"

	"github.com/gaurav-prasanna/chatpipe/core"
	"github.com/gaurav-prasanna/chatpipe/core/normalize"
)

// Nested-markup dialect: each message is wrapped in a SPAN carrying the
// exporter's background-color style, and the timestamp is a nested SPAN
// holding " (HH:MM:SS AM/PM)". Two header idioms occur, sometimes mixed in
// one document:
//
//	(a) <B>SenderName<SPAN ...> (10:54:39 PM)</SPAN></B>
//	(b) <FONT ...>SenderName<SPAN ...> (10:54:39 PM)</SPAN></FONT> ... </B>
//
// with (b)'s closing bold tag sitting outside the styled-text tag.
var (
	nestedBoldHeaderRe = regexp.MustCompile(
		`(?s)<B>(?:<FONT[^>]*>)?([^<]+?)<SPAN[^>]*>\s*\(([^)]+)\)</SPAN>\s*(?:</FONT>\s*)?</B>`)
	nestedFontHeaderRe = regexp.MustCompile(
		`(?s)<FONT[^>]*>([^<]+?)<SPAN[^>]*>\s*\(([^)]+)\)</SPAN>\s*</FONT>[^<]*</B>`)
)

func (p *Parser) parseNested(text string) []located {
	var msgs []located

	pieces := strings.Split(text, nestedWrapperOpen)
	// pieces[0] precedes the first wrapper and holds no messages.
	offset := len(pieces[0])

	for _, piece := range pieces[1:] {
		wrapperPos := offset
		offset += len(nestedWrapperOpen) + len(piece)

		slice, ok := wrapperBody(piece)
		if !ok {
			// Unterminated wrapper: malformed, skip.
			continue
		}

		if lm, ok := p.nestedMessage(slice, wrapperPos); ok {
			msgs = append(msgs, lm)
		}
	}

	return msgs
}

// wrapperBody isolates the message slice by scanning forward with a nesting
// counter over <SPAN ... />SPAN> tokens. The split already consumed the
// wrapper's opening tag, so the scan starts at depth 1 and ends where the
// counter returns to zero.
func wrapperBody(piece string) (string, bool) {
	depth := 1
	i := 0
	for i < len(piece) {
		openIdx := strings.Index(piece[i:], "<SPAN")
		closeIdx := strings.Index(piece[i:], nestedWrapperClose)
		if closeIdx == -1 {
			return "", false
		}
		if openIdx != -1 && openIdx < closeIdx {
			depth++
			i += openIdx + len("<SPAN")
			continue
		}
		depth--
		if depth == 0 {
			return piece[:i+closeIdx], true
		}
		i += closeIdx + len(nestedWrapperClose)
	}
	return "", false
}

// nestedMessage classifies one isolated message slice.
func (p *Parser) nestedMessage(slice string, pos int) (located, bool) {
	if msg, ok := signOffMessage(slice); ok {
		return located{msg: msg, pos: pos}, true
	}

	header := nestedBoldHeaderRe.FindStringSubmatch(slice)
	if header == nil {
		header = nestedFontHeaderRe.FindStringSubmatch(slice)
	}
	if header == nil {
		return located{}, false
	}
	sender := strings.TrimSpace(header[1])
	timestamp := strings.TrimSpace(header[2])
	sender, isAuto := stripAutoResponse(sender)

	content := p.nestedContent(slice)
	if content == "" {
		return located{}, false
	}

	return located{
		msg: core.Message{
			Sender:          sender,
			Timestamp:       timestamp,
			Content:         content,
			IsSystemMessage: isAuto,
			IsAutoResponse:  isAuto,
		},
		pos: pos,
	}, true
}

// nestedContent picks the first styled-text container that plausibly holds
// the message body: non-empty once stripped, longer than one character, not
// just the header separator colon, free of parenthesis characters (residual
// timestamp fragments), and not embedding another wrapper marker.
//
// Known limitation inherited from the exporter's idiom: a legitimate body
// whose first container text contains parentheses is passed over in favor of
// a later container.
func (p *Parser) nestedContent(slice string) string {
	for _, m := range fontRe.FindAllStringSubmatch(slice, -1) {
		raw := m[1]
		stripped := strings.TrimSpace(normalize.StripTags(raw))
		if len(stripped) <= 1 || stripped == ":" {
			continue
		}
		if strings.ContainsAny(stripped, "()") {
			continue
		}
		if strings.Contains(raw, nestedWrapperOpen) {
			continue
		}
		return normalize.Clean(p.normalizer.Flatten(raw))
	}
	return ""
}
