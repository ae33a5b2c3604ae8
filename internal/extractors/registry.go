// Package extractors provides text extraction from uploaded file bytes.
// Each media type Docent accepts has one extractor; the registry picks
// the right one during ingestion.
package extractors

import (
	"context"
	"fmt"

	"github.com/docent-ai/docent/internal/core/domain"
	"github.com/docent-ai/docent/internal/core/ports/driven"
)

// Registry selects an extractor by media type.
type Registry struct {
	byType map[domain.MediaType]driven.Extractor
}

// NewRegistry creates a registry over the given extractors.
func NewRegistry(extractors ...driven.Extractor) *Registry {
	byType := make(map[domain.MediaType]driven.Extractor, len(extractors))
	for _, e := range extractors {
		byType[e.SupportedMediaType()] = e
	}
	return &Registry{byType: byType}
}

// Extract decodes the raw document's bytes into text.
// Fails with domain.ErrUnsupportedMediaType for types without an extractor.
func (r *Registry) Extract(ctx context.Context, raw domain.RawDocument) (string, error) {
	extractor, ok := r.byType[raw.MediaType]
	if !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedMediaType, raw.MediaType)
	}
	return extractor.Extract(ctx, raw.Content)
}
