package recursive

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docent-ai/docent/internal/core/domain"
)

func TestStrategy(t *testing.T) {
	assert.Equal(t, domain.StrategyRecursive, New().Strategy())
}

func TestChunk_EmptyText(t *testing.T) {
	passages, err := New().Chunk(context.Background(), "", "empty.txt")
	require.NoError(t, err)
	assert.Empty(t, passages)
}

func TestChunk_ShortTextSinglePassage(t *testing.T) {
	passages, err := New().Chunk(context.Background(), "tiny", "t.txt")
	require.NoError(t, err)
	require.Len(t, passages, 1)
	assert.Equal(t, "tiny", passages[0].Text)
	assert.Equal(t, 0, passages[0].SequenceIndex)
	assert.Equal(t, "t.txt", passages[0].SourceFile)
	assert.Equal(t, domain.StrategyRecursive, passages[0].Strategy)
	assert.NotEmpty(t, passages[0].ID)
}

func TestChunk_SequenceIndexMonotonic(t *testing.T) {
	text := strings.Repeat("The quick brown fox jumps over the lazy dog. ", 60)
	chunker := New(WithChunkSize(200), WithOverlap(40))

	passages, err := chunker.Chunk(context.Background(), text, "fox.txt")
	require.NoError(t, err)
	require.Greater(t, len(passages), 3)

	for i, p := range passages {
		assert.Equal(t, i, p.SequenceIndex)
		assert.Equal(t, "fox.txt", p.SourceFile)
	}
}

func TestChunk_ZeroOverlapReconstructsText(t *testing.T) {
	texts := []string{
		strings.Repeat("Alpha beta gamma delta epsilon. ", 40),
		"Paragraph one.\n\nParagraph two follows here.\n\nAnd a third, somewhat longer paragraph to split.",
		strings.Repeat("x", 497), // no separators at all
	}

	for _, text := range texts {
		chunker := New(WithChunkSize(50), WithOverlap(0))
		passages, err := chunker.Chunk(context.Background(), text, "a.txt")
		require.NoError(t, err)

		var sb strings.Builder
		for _, p := range passages {
			sb.WriteString(p.Text)
		}
		assert.Equal(t, text, sb.String())
	}
}

func TestChunk_OverlapRepeatsTailOfPreviousPassage(t *testing.T) {
	text := strings.Repeat("Content flows across many sentences. Each adds a little more. ", 30)

	pairs := []struct{ size, overlap int }{
		{size: 100, overlap: 20},
		{size: 80, overlap: 10},
		{size: 200, overlap: 50},
	}

	for _, pair := range pairs {
		chunker := New(WithChunkSize(pair.size), WithOverlap(pair.overlap))
		passages, err := chunker.Chunk(context.Background(), text, "o.txt")
		require.NoError(t, err)
		require.Greater(t, len(passages), 1)

		for i := 1; i < len(passages); i++ {
			prev := []rune(passages[i-1].Text)
			curr := []rune(passages[i].Text)
			require.GreaterOrEqual(t, len(prev), pair.overlap)
			tail := string(prev[len(prev)-pair.overlap:])
			head := string(curr[:pair.overlap])
			assert.Equal(t, tail, head, "size=%d overlap=%d passage=%d", pair.size, pair.overlap, i)
		}
	}
}

func TestChunk_WideOverlapStillRepeated(t *testing.T) {
	// Overlap beyond half the chunk size, over separator-rich text:
	// a cut near the passage start must not shrink the overlap.
	text := strings.Repeat("Short words here. ", 40)
	chunker := New(WithChunkSize(20), WithOverlap(12))

	passages, err := chunker.Chunk(context.Background(), text, "w.txt")
	require.NoError(t, err)
	require.Greater(t, len(passages), 2)

	for i := 1; i < len(passages); i++ {
		prev := []rune(passages[i-1].Text)
		curr := []rune(passages[i].Text)
		require.Greater(t, len(prev), 12, "passage %d shorter than the overlap", i-1)
		require.GreaterOrEqual(t, len(curr), 12)
		tail := string(prev[len(prev)-12:])
		head := string(curr[:12])
		assert.Equal(t, tail, head, "passage %d", i)
	}
}

func TestChunk_PrefersSeparatorBoundaries(t *testing.T) {
	text := "First paragraph with some words in it.\n\nSecond paragraph continues the document with more words."
	chunker := New(WithChunkSize(60), WithOverlap(0))

	passages, err := chunker.Chunk(context.Background(), text, "p.txt")
	require.NoError(t, err)
	require.Greater(t, len(passages), 1)
	assert.True(t, strings.HasSuffix(passages[0].Text, "\n\n"),
		"expected first passage to end on the paragraph break, got %q", passages[0].Text)
}

func TestChunk_SpecScenario(t *testing.T) {
	// Small sizes force at least two overlapping passages.
	chunker := New(WithChunkSize(20), WithOverlap(5))

	passages, err := chunker.Chunk(context.Background(), "Alice works at Acme. Acme is in Paris.", "notes.txt")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(passages), 2)
	for _, p := range passages {
		assert.Equal(t, "notes.txt", p.SourceFile)
	}
}

func TestNew_ClampsExcessiveOverlap(t *testing.T) {
	chunker := New(WithChunkSize(100), WithOverlap(100))
	assert.Equal(t, 25, chunker.overlap)
}
