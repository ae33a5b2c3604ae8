package driven

import (
	"context"

	"github.com/docent-ai/docent/internal/core/domain"
)

// VectorIndex stores passages and serves similarity search over them.
// The index owns embedding computation for both writes and queries.
//
// Indexing is not idempotent per passage identity: re-ingesting the
// same file stores duplicate passages. Search returns results ordered
// by descending similarity; an empty index yields an empty result,
// not an error.
type VectorIndex interface {
	// Index embeds and stores the given passages.
	Index(ctx context.Context, passages []domain.Passage) error

	// Search returns the k most similar passages to the query.
	Search(ctx context.Context, query string, k int) ([]domain.ScoredPassage, error)

	// Close releases resources.
	Close() error
}
