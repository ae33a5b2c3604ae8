package driven

import (
	"context"

	"github.com/docent-ai/docent/internal/core/domain"
)

// Extractor converts raw file bytes into a decoded text stream.
// Extraction is a pure transform with no side effects.
//
// Implementations:
//   - plaintext: strict UTF-8 decoding
//   - pdf: per-page text via pdftotext, concatenated in page order
type Extractor interface {
	// SupportedMediaType returns the media type this extractor handles.
	SupportedMediaType() domain.MediaType

	// Extract returns the decoded text for the given bytes.
	// Fails with domain.ErrDecode when the bytes cannot be decoded.
	Extract(ctx context.Context, content []byte) (string, error)
}
