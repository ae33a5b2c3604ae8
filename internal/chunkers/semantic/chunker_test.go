package semantic

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docent-ai/docent/internal/core/domain"
)

// mockEmbedder returns fixed vectors keyed by sentence content so tests
// can steer distances: sentences mentioning "cats" point one way,
// everything else the other.
type mockEmbedder struct {
	batchErr error
	calls    int
}

func (m *mockEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	vecs, err := m.EmbedBatch(context.Background(), []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

func (m *mockEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	m.calls++
	if m.batchErr != nil {
		return nil, m.batchErr
	}
	vectors := make([][]float32, len(texts))
	for i, t := range texts {
		if strings.Contains(strings.ToLower(t), "cat") {
			vectors[i] = []float32{1, 0}
		} else {
			vectors[i] = []float32{0, 1}
		}
	}
	return vectors, nil
}

func (m *mockEmbedder) Dimensions() int    { return 2 }
func (m *mockEmbedder) ModelName() string  { return "mock" }
func (m *mockEmbedder) Close() error       { return nil }

func TestStrategy(t *testing.T) {
	assert.Equal(t, domain.StrategySemantic, New(&mockEmbedder{}).Strategy())
}

func TestChunk_EmptyText(t *testing.T) {
	embedder := &mockEmbedder{}
	passages, err := New(embedder).Chunk(context.Background(), "   \n ", "e.txt")
	require.NoError(t, err)
	assert.Empty(t, passages)
	assert.Zero(t, embedder.calls, "empty text must not hit the embedder")
}

func TestChunk_SingleSentence(t *testing.T) {
	embedder := &mockEmbedder{}
	passages, err := New(embedder).Chunk(context.Background(), "Only one sentence here.", "s.txt")
	require.NoError(t, err)
	require.Len(t, passages, 1)
	assert.Equal(t, "Only one sentence here.", passages[0].Text)
	assert.Equal(t, domain.StrategySemantic, passages[0].Strategy)
	assert.Zero(t, embedder.calls, "a single sentence needs no distance computation")
}

func TestChunk_BoundaryAtTopicShift(t *testing.T) {
	text := "I like cats. My cats sleep all day. Cats are independent. " +
		"The quarterly report is due Friday. Revenue grew by ten percent."

	passages, err := New(&mockEmbedder{}).Chunk(context.Background(), text, "mix.txt")
	require.NoError(t, err)
	require.Len(t, passages, 2)

	assert.Contains(t, passages[0].Text, "cats")
	assert.NotContains(t, passages[0].Text, "report")
	assert.Contains(t, passages[1].Text, "report")

	for i, p := range passages {
		assert.Equal(t, i, p.SequenceIndex)
		assert.Equal(t, "mix.txt", p.SourceFile)
	}
}

func TestChunk_UniformDocumentStaysWhole(t *testing.T) {
	text := "Cats purr. Cats nap. Cats stretch. Cats pounce."

	passages, err := New(&mockEmbedder{}).Chunk(context.Background(), text, "cats.txt")
	require.NoError(t, err)
	// All distances are equal, so none exceeds the percentile threshold.
	require.Len(t, passages, 1)
}

func TestChunk_EmbedderFailure(t *testing.T) {
	embedder := &mockEmbedder{batchErr: errors.New("boom")}
	_, err := New(embedder).Chunk(context.Background(), "One. Two. Three.", "f.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "embed sentences")
}

func TestChunk_NilEmbedder(t *testing.T) {
	_, err := New(nil).Chunk(context.Background(), "One. Two.", "n.txt")
	assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)
}

func TestSplitSentences(t *testing.T) {
	sentences := splitSentences("First. Second! Third? No terminator")
	assert.Equal(t, []string{"First.", "Second!", "Third?", "No terminator"}, sentences)
}

func TestPercentileOf(t *testing.T) {
	assert.InDelta(t, 0.8, percentileOf([]float64{0, 0, 1}, 0.9), 1e-9)
	assert.InDelta(t, 1.0, percentileOf([]float64{1, 1, 1}, 0.9), 1e-9)
	assert.InDelta(t, 0.5, percentileOf([]float64{0, 1}, 0.5), 1e-9)
}
