package driving

import (
	"context"

	"github.com/docent-ai/docent/internal/core/domain"
)

// IngestionService accepts uploads and indexes them in the background.
type IngestionService interface {
	// Enqueue validates the upload and schedules it for ingestion,
	// returning an opaque job id immediately. There is no job-status
	// query; failures after acceptance are logged and dropped.
	Enqueue(ctx context.Context, raw domain.RawDocument, strategy domain.ChunkStrategy) (string, error)

	// Ingest processes an upload synchronously. Used by the CLI and
	// by the background worker.
	Ingest(ctx context.Context, raw domain.RawDocument, strategy domain.ChunkStrategy) error
}
