package parse

import (
	"regexp"
	"strings"

	"github.com/gaurav-prasanna/chatpipe/core"
)

// Session-concluded markers are a document-level idiom shared by both
// dialects: a bold "Session concluded at TIME" line between horizontal rules.
// Every occurrence becomes a system message, positioned by its offset in the
// raw document relative to the parsed messages around it.
var sessionConcludedRe = regexp.MustCompile(`(?s)<HR>\s*<B>\s*(Session concluded at[^<]+?)\s*</B>\s*<HR>`)

func mergeSessionMarkers(text string, msgs []located) []located {
	matches := sessionConcludedRe.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return msgs
	}

	markers := make([]located, 0, len(matches))
	for _, m := range matches {
		markers = append(markers, located{
			msg: core.Message{
				Sender:             core.SystemSender,
				Content:            strings.TrimSpace(text[m[2]:m[3]]),
				IsSystemMessage:    true,
				IsSessionConcluded: true,
			},
			pos: m[0],
		})
	}

	// Both inputs are already in source order; merge by offset, keeping a
	// message before a marker that starts at the same position.
	merged := make([]located, 0, len(msgs)+len(markers))
	i, j := 0, 0
	for i < len(msgs) && j < len(markers) {
		if msgs[i].pos <= markers[j].pos {
			merged = append(merged, msgs[i])
			i++
		} else {
			merged = append(merged, markers[j])
			j++
		}
	}
	merged = append(merged, msgs[i:]...)
	merged = append(merged, markers[j:]...)
	return merged
}
