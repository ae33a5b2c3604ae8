// Package recursive implements separator-aware chunking with a fixed
// target size and overlap window.
package recursive

import (
	"context"

	"github.com/google/uuid"

	"github.com/docent-ai/docent/internal/core/domain"
	"github.com/docent-ai/docent/internal/core/ports/driven"
)

// Ensure Chunker implements the interface.
var _ driven.Chunker = (*Chunker)(nil)

// DefaultChunkSize is the default target passage size in characters.
const DefaultChunkSize = 1000

// DefaultOverlap is the default overlap window in characters.
const DefaultOverlap = 200

// separators is the split-point hierarchy, most preferred first:
// paragraph break, line break, sentence end, word boundary.
var separators = []string{"\n\n", "\n", ". ", " "}

// Chunker splits text into overlapping passages. Each passage is a
// contiguous slice of the input, so concatenating passages minus their
// overlap reconstructs the original text exactly.
type Chunker struct {
	size    int
	overlap int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithChunkSize sets the target passage size in characters.
func WithChunkSize(size int) Option {
	return func(c *Chunker) {
		if size > 0 {
			c.size = size
		}
	}
}

// WithOverlap sets the overlap between passages in characters.
func WithOverlap(overlap int) Option {
	return func(c *Chunker) {
		if overlap >= 0 {
			c.overlap = overlap
		}
	}
}

// New creates a recursive chunker with the given options.
func New(opts ...Option) *Chunker {
	c := &Chunker{
		size:    DefaultChunkSize,
		overlap: DefaultOverlap,
	}

	for _, opt := range opts {
		opt(c)
	}

	// Overlap must stay strictly below the chunk size.
	if c.overlap >= c.size {
		c.overlap = c.size / 4
	}

	return c
}

// Strategy returns the chunking strategy this chunker implements.
func (c *Chunker) Strategy() domain.ChunkStrategy {
	return domain.StrategyRecursive
}

// Chunk splits text into passages. Empty input yields an empty result.
func (c *Chunker) Chunk(_ context.Context, text, fileName string) ([]domain.Passage, error) {
	if text == "" {
		return nil, nil
	}

	runes := []rune(text)
	total := len(runes)

	estimated := total/(c.size-c.overlap) + 1
	passages := make([]domain.Passage, 0, estimated)

	start := 0
	seq := 0

	for start < total {
		end := start + c.size
		if end >= total {
			end = total
		} else {
			end = c.splitPoint(runes, start, end)
		}

		passages = append(passages, domain.Passage{
			ID:            uuid.New().String(),
			Text:          string(runes[start:end]),
			SourceFile:    fileName,
			SequenceIndex: seq,
			Strategy:      domain.StrategyRecursive,
		})
		seq++

		if end == total {
			break
		}

		next := end - c.overlap
		if next <= start {
			// Passage shorter than the overlap window; step past it
			// rather than looping forever.
			next = end
		}
		start = next
	}

	return passages, nil
}

// splitPoint finds the preferred cut position within (floor, limit].
// It walks the separator hierarchy and takes the last occurrence of
// the first separator kind found past the floor. When no separator
// fits, the passage is cut hard at the size limit.
//
// The floor keeps every non-final passage longer than the overlap
// window, so the next passage always repeats the full overlap.
func (c *Chunker) splitPoint(runes []rune, start, limit int) int {
	floor := start + c.size/2
	if minEnd := start + c.overlap + 1; floor < minEnd {
		floor = minEnd
	}
	if floor <= start {
		floor = start + 1
	}

	for _, sep := range separators {
		sepRunes := []rune(sep)
		for p := limit - len(sepRunes); p >= floor; p-- {
			if matchAt(runes, p, sepRunes) {
				return p + len(sepRunes)
			}
		}
	}
	return limit
}

// matchAt reports whether sep occurs in runes at position p.
func matchAt(runes []rune, p int, sep []rune) bool {
	if p < 0 || p+len(sep) > len(runes) {
		return false
	}
	for i, r := range sep {
		if runes[p+i] != r {
			return false
		}
	}
	return true
}
