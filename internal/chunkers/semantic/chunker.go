// Package semantic implements embedding-driven chunking. Sentences are
// embedded individually and a passage boundary is inserted wherever the
// semantic distance between neighbours exceeds a percentile threshold
// computed over the whole document, so the cut points adapt to each
// document rather than following a fixed value. Passage sizes are
// variable and not bounded by a character count.
package semantic

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/docent-ai/docent/internal/core/domain"
	"github.com/docent-ai/docent/internal/core/ports/driven"
)

// Ensure Chunker implements the interface.
var _ driven.Chunker = (*Chunker)(nil)

// DefaultPercentile is the distance percentile above which a boundary
// is inserted.
const DefaultPercentile = 0.90

// sentencePattern splits on sentence-terminating punctuation.
var sentencePattern = regexp.MustCompile(`[^.!?]+[.!?]*`)

// Chunker groups sentences into passages by embedding distance.
type Chunker struct {
	embedder   driven.EmbeddingService
	percentile float64
}

// Option configures the chunker.
type Option func(*Chunker)

// WithPercentile sets the boundary threshold percentile (0, 1].
func WithPercentile(p float64) Option {
	return func(c *Chunker) {
		if p > 0 && p <= 1 {
			c.percentile = p
		}
	}
}

// New creates a semantic chunker. The embedding service is required.
func New(embedder driven.EmbeddingService, opts ...Option) *Chunker {
	c := &Chunker{
		embedder:   embedder,
		percentile: DefaultPercentile,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Strategy returns the chunking strategy this chunker implements.
func (c *Chunker) Strategy() domain.ChunkStrategy {
	return domain.StrategySemantic
}

// Chunk splits text into passages. Empty input yields an empty result.
func (c *Chunker) Chunk(ctx context.Context, text, fileName string) ([]domain.Passage, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	if c.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}

	sentences := splitSentences(text)
	if len(sentences) == 1 {
		return []domain.Passage{c.passage(sentences[0], fileName, 0)}, nil
	}

	vectors, err := c.embedder.EmbedBatch(ctx, sentences)
	if err != nil {
		return nil, fmt.Errorf("embed sentences: %w", err)
	}
	if len(vectors) != len(sentences) {
		return nil, fmt.Errorf("embed sentences: got %d vectors for %d sentences", len(vectors), len(sentences))
	}

	distances := make([]float64, len(sentences)-1)
	for i := range distances {
		distances[i] = 1 - cosine(vectors[i], vectors[i+1])
	}
	threshold := percentileOf(distances, c.percentile)

	var passages []domain.Passage
	group := []string{sentences[0]}
	for i := 1; i < len(sentences); i++ {
		if distances[i-1] > threshold {
			passages = append(passages, c.passage(strings.Join(group, " "), fileName, len(passages)))
			group = group[:0]
		}
		group = append(group, sentences[i])
	}
	passages = append(passages, c.passage(strings.Join(group, " "), fileName, len(passages)))

	return passages, nil
}

func (c *Chunker) passage(text, fileName string, seq int) domain.Passage {
	return domain.Passage{
		ID:            uuid.New().String(),
		Text:          text,
		SourceFile:    fileName,
		SequenceIndex: seq,
		Strategy:      domain.StrategySemantic,
	}
}

// splitSentences breaks text into trimmed sentence units.
func splitSentences(text string) []string {
	matches := sentencePattern.FindAllString(text, -1)
	sentences := make([]string, 0, len(matches))
	for _, m := range matches {
		if s := strings.TrimSpace(m); s != "" {
			sentences = append(sentences, s)
		}
	}
	if len(sentences) == 0 {
		sentences = append(sentences, strings.TrimSpace(text))
	}
	return sentences
}

// percentileOf returns the linearly interpolated percentile of the values.
func percentileOf(values []float64, p float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	rank := p * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if hi >= len(sorted) {
		hi = len(sorted) - 1
	}
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// cosine computes cosine similarity between two vectors.
func cosine(a, b []float32) float64 {
	var dot, normA, normB float64
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
