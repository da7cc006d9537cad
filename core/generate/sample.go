package generate

import "strings"

// Separator literals inserted where sampling elided content. Downstream
// consumers key off these exact strings.
const (
	ContinuesSeparator = "... [conversation continues] ..."
	EndSeparator       = "... [end of conversation] ..."
)

// Sample reduces a long conversation to at most max lines while keeping its
// shape: the first ~10 lines, an evenly stratified sample of the middle, and
// the last ~10 lines, joined with the separator literals. Conversations that
// already fit are returned whole with no separators.
func Sample(lines []string, max int) string {
	if len(lines) <= max {
		return strings.Join(lines, "\n")
	}

	startCount := min(10, max/4)
	remaining := max - startCount
	endCount := min(10, remaining/3)
	remaining -= endCount

	middle := lines[startCount : len(lines)-endCount]
	var middleSampled []string
	if len(middle) <= remaining {
		middleSampled = middle
	} else if remaining > 0 {
		step := float64(len(middle)) / float64(remaining)
		for i := 0; i < remaining; i++ {
			middleSampled = append(middleSampled, middle[int(float64(i)*step)])
		}
	}

	out := make([]string, 0, max+2)
	out = append(out, lines[:startCount]...)
	out = append(out, ContinuesSeparator)
	out = append(out, middleSampled...)
	out = append(out, EndSeparator)
	out = append(out, lines[len(lines)-endCount:]...)
	return strings.Join(out, "\n")
}
