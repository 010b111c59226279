package chunking

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecursiveChunkerDefaults(t *testing.T) {
	c := NewRecursiveChunker(0, -1)
	assert.Equal(t, 800, c.ChunkSize)
	assert.Equal(t, 100, c.ChunkOverlap)

	// overlap 不允许大于等于 size
	c = NewRecursiveChunker(10, 20)
	assert.Equal(t, 10, c.ChunkSize)
	assert.Equal(t, 5, c.ChunkOverlap)
}

func TestChunkEmptyText(t *testing.T) {
	c := NewRecursiveChunker(800, 100)
	assert.Empty(t, c.Chunk(""))
	assert.Empty(t, c.Chunk("   \n\n  "))
}

func TestChunkShortTextSingleChunk(t *testing.T) {
	c := NewRecursiveChunker(800, 100)
	chunks := c.Chunk("hello world")
	require.Len(t, chunks, 1)
	assert.Equal(t, "hello world", chunks[0])
}

func TestChunkSplitsOnWords(t *testing.T) {
	c := NewRecursiveChunker(10, 3)
	chunks := c.Chunk("aaaa bbbb cccc")
	require.Equal(t, []string{"aaaa bbbb", "cccc"}, chunks)
}

func TestChunkOverlapRetainsTail(t *testing.T) {
	c := NewRecursiveChunker(10, 6)
	chunks := c.Chunk("aa bb cc dd")
	require.Len(t, chunks, 2)
	assert.Equal(t, "aa bb cc", chunks[0])
	// 第二块保留上一块的尾部作为上下文衔接
	assert.Equal(t, "bb cc dd", chunks[1])
}

func TestChunkPrefersParagraphBoundaries(t *testing.T) {
	c := NewRecursiveChunker(40, 0)
	text := "first paragraph here.\n\nsecond paragraph here.\n\nthird paragraph here."
	chunks := c.Chunk(text)
	require.NotEmpty(t, chunks)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len([]rune(chunk)), 40)
		// 段落内部不应被从中间截断
		assert.NotContains(t, chunk, "paragraph h\n")
	}
}

func TestChunkLongUnbrokenText(t *testing.T) {
	c := NewRecursiveChunker(50, 10)
	text := strings.Repeat("x", 200)
	chunks := c.Chunk(text)
	require.NotEmpty(t, chunks)
	total := 0
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len([]rune(chunk)), 50)
		total += len([]rune(chunk))
	}
	// 有重叠时总长度不少于原文
	assert.GreaterOrEqual(t, total, 200)
}

func TestChunkCountsRunesNotBytes(t *testing.T) {
	c := NewRecursiveChunker(10, 0)
	text := strings.Repeat("中", 8)
	chunks := c.Chunk(text)
	require.Len(t, chunks, 1)
	assert.Equal(t, text, chunks[0])
}

func TestChunkCoversAllContent(t *testing.T) {
	c := NewRecursiveChunker(30, 5)
	text := "alpha beta gamma delta epsilon zeta eta theta iota kappa"
	chunks := c.Chunk(text)
	require.NotEmpty(t, chunks)
	joined := strings.Join(chunks, " ")
	for _, word := range strings.Fields(text) {
		assert.Contains(t, joined, word)
	}
}
