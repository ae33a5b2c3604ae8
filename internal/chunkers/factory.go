// Package chunkers provides the chunking strategies that split
// extracted text into indexable passages, and a factory that resolves
// a strategy name to its implementation.
package chunkers

import (
	"fmt"

	"github.com/docent-ai/docent/internal/core/domain"
	"github.com/docent-ai/docent/internal/core/ports/driven"
)

// Factory resolves chunking strategies to their implementations.
type Factory struct {
	byStrategy map[domain.ChunkStrategy]driven.Chunker
}

// NewFactory creates a factory over the given chunkers.
func NewFactory(chunkers ...driven.Chunker) *Factory {
	byStrategy := make(map[domain.ChunkStrategy]driven.Chunker, len(chunkers))
	for _, c := range chunkers {
		byStrategy[c.Strategy()] = c
	}
	return &Factory{byStrategy: byStrategy}
}

// ForStrategy returns the chunker implementing the given strategy.
// Fails with domain.ErrUnsupportedStrategy for unknown or unregistered names.
func (f *Factory) ForStrategy(strategy domain.ChunkStrategy) (driven.Chunker, error) {
	chunker, ok := f.byStrategy[strategy]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedStrategy, strategy)
	}
	return chunker, nil
}

// ParseStrategy converts a strategy name into a domain.ChunkStrategy.
func ParseStrategy(name string) (domain.ChunkStrategy, error) {
	strategy := domain.ChunkStrategy(name)
	if !strategy.IsValid() {
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedStrategy, name)
	}
	return strategy, nil
}
