// Package memory provides an in-process VectorIndex backed by a
// brute-force cosine scan. It is intended for tests and for running
// without an external vector database.
package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/docent-ai/docent/internal/core/domain"
	"github.com/docent-ai/docent/internal/core/ports/driven"
)

var _ driven.VectorIndex = (*Index)(nil)

type entry struct {
	passage domain.Passage
	vector  []float32
}

// Index holds passages and their vectors in memory.
type Index struct {
	mu       sync.RWMutex
	embedder driven.EmbeddingService
	entries  []entry
}

// NewIndex creates an in-memory vector index over the given embedder.
func NewIndex(embedder driven.EmbeddingService) (*Index, error) {
	if embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}
	return &Index{embedder: embedder}, nil
}

// Index embeds and stores the passages. Entries are always appended,
// so re-indexing the same file keeps both copies.
func (x *Index) Index(ctx context.Context, passages []domain.Passage) error {
	if len(passages) == 0 {
		return nil
	}

	texts := make([]string, len(passages))
	for i, p := range passages {
		texts[i] = p.Text
	}
	vectors, err := x.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("memory index: embed passages: %w", err)
	}
	if len(vectors) != len(passages) {
		return fmt.Errorf("memory index: got %d vectors for %d passages", len(vectors), len(passages))
	}

	x.mu.Lock()
	defer x.mu.Unlock()
	for i, p := range passages {
		if p.ID == "" {
			p.ID = uuid.New().String()
		}
		x.entries = append(x.entries, entry{passage: p, vector: vectors[i]})
	}
	return nil
}

// Search embeds the query and returns the k nearest passages by cosine
// similarity, highest first. An empty index yields an empty result.
func (x *Index) Search(ctx context.Context, query string, k int) ([]domain.ScoredPassage, error) {
	if k <= 0 {
		return nil, fmt.Errorf("memory index: k must be positive, got %d", k)
	}

	vector, err := x.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("memory index: embed query: %w", err)
	}

	x.mu.RLock()
	defer x.mu.RUnlock()

	scored := make([]domain.ScoredPassage, 0, len(x.entries))
	for _, e := range x.entries {
		scored = append(scored, domain.ScoredPassage{
			Passage: e.passage,
			Score:   cosine(vector, e.vector),
		})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > k {
		scored = scored[:k]
	}
	return scored, nil
}

// Len reports how many passages are stored.
func (x *Index) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.entries)
}

// Close releases resources.
func (x *Index) Close() error {
	return x.embedder.Close()
}

func cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
