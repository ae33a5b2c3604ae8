package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/docent-ai/docent/internal/chunkers"
	"github.com/docent-ai/docent/internal/core/domain"
	"github.com/docent-ai/docent/internal/core/ports/driven"
	"github.com/docent-ai/docent/internal/core/ports/driving"
	"github.com/docent-ai/docent/internal/extractors"
	"github.com/docent-ai/docent/internal/logger"
)

// Ensure IngestionService implements the interface.
var _ driving.IngestionService = (*IngestionService)(nil)

// Ingestion defaults.
const (
	DefaultQueueSize     = 16
	DefaultIngestTimeout = 2 * time.Minute
)

// IngestionConfig holds ingestion tuning knobs.
type IngestionConfig struct {
	// QueueSize bounds the upload queue (default: 16).
	QueueSize int

	// Timeout bounds one background ingestion (default: 2m).
	Timeout time.Duration

	// EmbeddingModel names the model recorded with each ingestion.
	EmbeddingModel string
}

// ingestJob is one queued upload.
type ingestJob struct {
	id       string
	raw      domain.RawDocument
	strategy domain.ChunkStrategy
}

// IngestionService runs the extract-chunk-index pipeline. Uploads are
// accepted synchronously after validation and processed by a single
// background worker, so ingestions never race each other.
type IngestionService struct {
	extractors *extractors.Registry
	chunkers   *chunkers.Factory
	index      driven.VectorIndex
	metadata   driven.MetadataStore

	timeout        time.Duration
	embeddingModel string

	jobs chan ingestJob
	wg   sync.WaitGroup
}

// NewIngestionService creates the service and starts its worker.
func NewIngestionService(
	registry *extractors.Registry,
	factory *chunkers.Factory,
	index driven.VectorIndex,
	metadata driven.MetadataStore,
	cfg IngestionConfig,
) *IngestionService {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = DefaultQueueSize
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultIngestTimeout
	}

	s := &IngestionService{
		extractors:     registry,
		chunkers:       factory,
		index:          index,
		metadata:       metadata,
		timeout:        cfg.Timeout,
		embeddingModel: cfg.EmbeddingModel,
		jobs:           make(chan ingestJob, cfg.QueueSize),
	}

	s.wg.Add(1)
	go s.worker()

	return s
}

// Enqueue validates the upload and schedules it, returning a job id.
// Validation failures surface here; failures during processing are
// logged and dropped.
func (s *IngestionService) Enqueue(ctx context.Context, raw domain.RawDocument, strategy domain.ChunkStrategy) (string, error) {
	if err := s.validate(raw, strategy); err != nil {
		return "", err
	}

	job := ingestJob{
		id:       uuid.New().String(),
		raw:      raw,
		strategy: strategy,
	}

	select {
	case s.jobs <- job:
		logger.Debug("ingest %s: queued %s (%s)", job.id, raw.FileName, strategy)
		return job.id, nil
	case <-ctx.Done():
		return "", fmt.Errorf("enqueue %s: %w", raw.FileName, ctx.Err())
	}
}

// Ingest processes an upload synchronously: extract, chunk, index,
// record. A document that yields no passages is skipped without an
// index write or an ingestion record.
func (s *IngestionService) Ingest(ctx context.Context, raw domain.RawDocument, strategy domain.ChunkStrategy) error {
	if err := s.validate(raw, strategy); err != nil {
		return err
	}

	text, err := s.extractors.Extract(ctx, raw)
	if err != nil {
		return fmt.Errorf("ingest %s: %w", raw.FileName, err)
	}

	chunker, err := s.chunkers.ForStrategy(strategy)
	if err != nil {
		return fmt.Errorf("ingest %s: %w", raw.FileName, err)
	}

	passages, err := chunker.Chunk(ctx, text, raw.FileName)
	if err != nil {
		return fmt.Errorf("ingest %s: chunking: %w", raw.FileName, err)
	}
	if len(passages) == 0 {
		logger.Info("ingest %s: no text content, skipping", raw.FileName)
		return nil
	}

	if err := s.index.Index(ctx, passages); err != nil {
		return fmt.Errorf("ingest %s: indexing: %w", raw.FileName, err)
	}

	record := domain.IndexedFileRecord{
		FileName:       raw.FileName,
		Strategy:       strategy,
		EmbeddingModel: s.embeddingModel,
	}
	if err := s.metadata.SaveFileRecord(ctx, record); err != nil {
		return fmt.Errorf("ingest %s: %w", raw.FileName, err)
	}

	logger.Info("ingest %s: indexed %d passages (%s)", raw.FileName, len(passages), strategy)
	return nil
}

// Close stops accepting uploads and waits for queued work to finish.
func (s *IngestionService) Close() error {
	close(s.jobs)
	s.wg.Wait()
	return nil
}

// worker drains the queue one job at a time.
func (s *IngestionService) worker() {
	defer s.wg.Done()
	for job := range s.jobs {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		if err := s.Ingest(ctx, job.raw, job.strategy); err != nil {
			logger.Error("ingest %s (%s): %v", job.id, job.raw.FileName, err)
		}
		cancel()
	}
}

// validate rejects bad uploads before they reach the queue.
func (s *IngestionService) validate(raw domain.RawDocument, strategy domain.ChunkStrategy) error {
	if strings.TrimSpace(raw.FileName) == "" {
		return fmt.Errorf("%w: file name is required", domain.ErrInvalidInput)
	}
	if len(raw.Content) == 0 {
		return fmt.Errorf("%w: %s: file is empty", domain.ErrInvalidInput, raw.FileName)
	}
	if !raw.MediaType.IsValid() {
		return fmt.Errorf("%w: %s", domain.ErrUnsupportedMediaType, raw.MediaType)
	}
	if !strategy.IsValid() {
		return fmt.Errorf("%w: %s", domain.ErrUnsupportedStrategy, strategy)
	}
	return nil
}
