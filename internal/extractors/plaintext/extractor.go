// Package plaintext extracts text from UTF-8 encoded uploads.
package plaintext

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/docent-ai/docent/internal/core/domain"
	"github.com/docent-ai/docent/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor decodes plain text uploads. Decoding is strict: invalid
// UTF-8 byte sequences fail the extraction rather than being replaced.
type Extractor struct{}

// New creates a new plain text extractor.
func New() *Extractor {
	return &Extractor{}
}

// SupportedMediaType returns the media type this extractor handles.
func (e *Extractor) SupportedMediaType() domain.MediaType {
	return domain.MediaTypePlainText
}

// Extract decodes the bytes as UTF-8 text.
func (e *Extractor) Extract(_ context.Context, content []byte) (string, error) {
	if !utf8.Valid(content) {
		return "", fmt.Errorf("%w: content is not valid UTF-8", domain.ErrDecode)
	}
	return string(content), nil
}
