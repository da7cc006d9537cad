package parse

import (
	"regexp"
	"strings"

	"github.com/gaurav-prasanna/chatpipe/core"
	"github.com/gaurav-prasanna/chatpipe/core/normalize"
)

// Comment-annotated dialect: each message header embeds the sender name
// followed by an HTML comment holding the timestamp, immediately before the
// bold closing tag:
//
//	<B><FONT ...>SenderName<!-- (10:57:26 PM)--></B></FONT>: <FONT ...>body</FONT><BR>
//
// Messages are delimited by <BR>, but a body may legitimately span several
// <BR>-delimited pieces, so pieces accumulate into a block until the next
// sender+timestamp header appears.
const lineBreak = "<BR>"

// signOffPhrase marks "X signed off at TIME" notices. They carry no
// sender+timestamp header, so they need their own block-boundary rule.
const signOffPhrase = "signed off at"

var (
	commentHeaderRe = regexp.MustCompile(`(?s)<B>.*?<FONT[^>]*>([^<]+)<!-- \(([^)]+)\)--></B>`)
	signOffRe       = regexp.MustCompile(`([^>]+signed off at[^<]+)`)
	fontRe          = regexp.MustCompile(`(?s)<FONT[^>]*>(.*?)</FONT>`)
	leadingColonRe  = regexp.MustCompile(`^[:\s]+`)
)

func (p *Parser) parseComment(text string) []located {
	var msgs []located

	var block string
	blockPos := 0
	offset := 0

	for _, piece := range strings.Split(text, lineBreak) {
		piecePos := offset
		offset += len(piece) + len(lineBreak)

		if strings.TrimSpace(piece) == "" {
			continue
		}

		hasHeader := strings.Contains(piece, commentOpen) && strings.Contains(piece, commentClose)
		// A sign-off notice has no header but still starts its own block;
		// otherwise it would glue onto the pending message and swallow it.
		startsBlock := hasHeader || strings.Contains(piece, signOffPhrase)
		if startsBlock && block != "" {
			// A fresh block starts: flush the accumulated one.
			if lm, ok := p.flushCommentBlock(block, blockPos); ok {
				msgs = append(msgs, lm)
			}
			block = piece
			blockPos = piecePos
			continue
		}

		if block == "" {
			blockPos = piecePos
		}
		block += piece
	}

	if block != "" {
		if lm, ok := p.flushCommentBlock(block, blockPos); ok {
			msgs = append(msgs, lm)
		}
	}

	return msgs
}

// flushCommentBlock classifies and normalizes one candidate block. Blocks
// with no recognizable header and blocks whose content normalizes to nothing
// are dropped.
func (p *Parser) flushCommentBlock(block string, pos int) (located, bool) {
	if msg, ok := signOffMessage(block); ok {
		return located{msg: msg, pos: pos}, true
	}

	header := commentHeaderRe.FindStringSubmatch(block)
	if header == nil {
		return located{}, false
	}
	sender := strings.TrimSpace(header[1])
	timestamp := strings.TrimSpace(header[2])
	sender, isAuto := stripAutoResponse(sender)

	// Everything after the bold-header closing tag is the content region.
	headerEnd := strings.Index(block, "</B>")
	if headerEnd == -1 {
		return located{}, false
	}
	contentRegion := block[headerEnd:]

	// Concatenate the text of every styled-text container in the region.
	// Containers may carry stray unclosed inner tags; Flatten tolerates them.
	var combined strings.Builder
	for _, m := range fontRe.FindAllStringSubmatch(contentRegion, -1) {
		combined.WriteString(p.normalizer.Flatten(m[1]))
	}

	// The ": " separator between header and body leaks into the first
	// container; drop a single leading run of colon/whitespace characters.
	content := leadingColonRe.ReplaceAllString(combined.String(), "")
	content = normalize.Clean(content)
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

// signOffMessage recognizes "X signed off at TIME" notices, which both
// dialects emit identically.
func signOffMessage(block string) (core.Message, bool) {
	if !strings.Contains(block, signOffPhrase) {
		return core.Message{}, false
	}
	m := signOffRe.FindStringSubmatch(block)
	if m == nil {
		return core.Message{}, false
	}
	return core.Message{
		Sender:          core.SystemSender,
		Content:         strings.TrimSpace(m[1]),
		IsSystemMessage: true,
	}, true
}

// stripAutoResponse removes the away-reply prefix from a sender name and
// reports whether it was present.
func stripAutoResponse(sender string) (string, bool) {
	if !strings.HasPrefix(sender, autoResponsePrefix) {
		return sender, false
	}
	return strings.TrimPrefix(sender, autoResponsePrefix), true
}
