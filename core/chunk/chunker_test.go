package chunk

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkLinesRespectsBudget(t *testing.T) {
	c := New(5)
	lines := []string{
		"alice: one two three", // 4 words
		"bob: four five",       // 3 words, overflows: new chunk
		"alice: six",           // 2 words, fits with previous
	}

	chunks := c.ChunkLines(lines)
	require.Len(t, chunks, 2)
	assert.Equal(t, "alice: one two three", chunks[0])
	assert.Equal(t, "bob: four five\nalice: six", chunks[1])
}

func TestChunkLinesNeverSplitsALine(t *testing.T) {
	c := New(3)
	long := "alice: " + strings.Repeat("word ", 20)

	chunks := c.ChunkLines([]string{long})
	require.Len(t, chunks, 1)
	assert.Equal(t, long, chunks[0])
}

func TestChunkLinesSkipsEmptyLines(t *testing.T) {
	chunks := New(10).ChunkLines([]string{"", "  ", "alice: hi"})
	require.Len(t, chunks, 1)
	assert.Equal(t, "alice: hi", chunks[0])
}

func TestChunkLinesEmptyInput(t *testing.T) {
	assert.Empty(t, New(10).ChunkLines(nil))
}

func TestNewDefaultsChunkSize(t *testing.T) {
	assert.Equal(t, 512, New(0).ChunkSize)
	assert.Equal(t, 512, New(-1).ChunkSize)
	assert.Equal(t, 64, New(64).ChunkSize)
}
