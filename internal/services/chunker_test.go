package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunkText(t *testing.T) {
	chunker := NewTextChunker()

	t.Run("short text stays in one chunk", func(t *testing.T) {
		chunks := chunker.ChunkText("A short guideline paragraph.", 1000, 200)
		assert.Equal(t, []string{"A short guideline paragraph."}, chunks)
	})

	t.Run("empty text yields no chunks", func(t *testing.T) {
		assert.Empty(t, chunker.ChunkText("", 1000, 200))
		assert.Empty(t, chunker.ChunkText("\n\n\n\n", 1000, 200))
	})

	t.Run("paragraphs split across chunks", func(t *testing.T) {
		para := strings.Repeat("word ", 50)
		text := para + "\n\n" + para + "\n\n" + para
		chunks := chunker.ChunkText(text, 300, 0)
		assert.Greater(t, len(chunks), 1)
		for _, chunk := range chunks {
			assert.LessOrEqual(t, len(chunk), 300)
		}
	})

	t.Run("oversized paragraph splits on sentences", func(t *testing.T) {
		text := strings.Repeat("This is a sentence. ", 100)
		chunks := chunker.ChunkText(text, 200, 0)
		assert.Greater(t, len(chunks), 1)
	})

	t.Run("defaults applied for nonsense sizes", func(t *testing.T) {
		chunks := chunker.ChunkText("tiny", 0, -5)
		assert.Equal(t, []string{"tiny"}, chunks)
	})
}
