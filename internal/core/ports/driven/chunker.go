package driven

import (
	"context"

	"github.com/docent-ai/docent/internal/core/domain"
)

// Chunker splits extracted text into indexable passages.
//
// Implementations must preserve text order, assign SequenceIndex in
// emission order starting at zero, and return an empty slice (not an
// error) for empty input.
type Chunker interface {
	// Strategy returns the chunking strategy this chunker implements.
	Strategy() domain.ChunkStrategy

	// Chunk splits text into passages tagged with the source file name.
	Chunk(ctx context.Context, text, fileName string) ([]domain.Passage, error)
}
