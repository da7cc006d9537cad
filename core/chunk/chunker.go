// Package chunk splits transcript lines into token-sized chunks for
// embedding. A chunk never splits a message line: lines accumulate until the
// word budget is reached, so each chunk is a readable run of whole messages.
package chunk

import "strings"

// Chunker groups transcript lines into fixed-size token chunks.
type Chunker struct {
	ChunkSize int // approximate number of tokens (words) per chunk
}

// New creates a Chunker with the given chunk size.
// Defaults to 512 if chunkSize <= 0.
func New(chunkSize int) *Chunker {
	if chunkSize <= 0 {
		chunkSize = 512
	}
	return &Chunker{ChunkSize: chunkSize}
}

// ChunkLines groups lines into chunks of at most ChunkSize words each. A
// single line longer than the budget becomes its own chunk rather than being
// split mid-message.
func (c *Chunker) ChunkLines(lines []string) []string {
	var chunks []string
	var current []string
	words := 0

	for _, line := range lines {
		n := len(strings.Fields(line))
		if n == 0 {
			continue
		}
		if words > 0 && words+n > c.ChunkSize {
			chunks = append(chunks, strings.Join(current, "\n"))
			current = nil
			words = 0
		}
		current = append(current, line)
		words += n
	}
	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, "\n"))
	}
	return chunks
}
