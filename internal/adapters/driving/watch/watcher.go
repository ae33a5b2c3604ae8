// Package watch ingests documents dropped into a directory. Files
// created or renamed into the watched directory are enqueued once
// their writes settle.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/docent-ai/docent/internal/core/domain"
	"github.com/docent-ai/docent/internal/core/ports/driving"
	"github.com/docent-ai/docent/internal/logger"
)

// DefaultSettle is how long a file must stay quiet before ingestion.
// Copies into the drop directory arrive as a create plus a burst of
// writes; enqueueing on the first event would read a partial file.
const DefaultSettle = 500 * time.Millisecond

// Watcher enqueues dropped files for ingestion.
type Watcher struct {
	ingestion driving.IngestionService
	dir       string
	strategy  domain.ChunkStrategy
	settle    time.Duration
}

// NewWatcher creates a drop-directory watcher. The directory is
// created if missing.
func NewWatcher(ingestion driving.IngestionService, dir string, strategy domain.ChunkStrategy) (*Watcher, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: watch directory is required", domain.ErrInvalidInput)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating watch directory: %w", err)
	}
	return &Watcher{
		ingestion: ingestion,
		dir:       dir,
		strategy:  strategy,
		settle:    DefaultSettle,
	}, nil
}

// Run watches the directory until the context is cancelled. Files
// already present at startup are ingested first.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(w.dir); err != nil {
		return fmt.Errorf("watching %s: %w", w.dir, err)
	}

	if err := w.sweep(ctx); err != nil {
		return err
	}

	// Pending settle timers keyed by path; a new write resets the timer.
	timers := make(map[string]*time.Timer)
	defer func() {
		for _, t := range timers {
			t.Stop()
		}
	}()

	logger.Info("watching %s for documents", w.dir)
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			path := event.Name
			if !w.ingestible(path) {
				continue
			}
			if t, exists := timers[path]; exists {
				t.Stop()
			}
			timers[path] = time.AfterFunc(w.settle, func() {
				w.enqueue(ctx, path)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			logger.Error("watch %s: %v", w.dir, err)
		}
	}
}

// sweep enqueues files already sitting in the directory.
func (w *Watcher) sweep(ctx context.Context) error {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return fmt.Errorf("reading watch directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(w.dir, entry.Name())
		if w.ingestible(path) {
			w.enqueue(ctx, path)
		}
	}
	return nil
}

// ingestible reports whether the path looks like a supported document.
func (w *Watcher) ingestible(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".text", ".md", ".pdf":
		return true
	default:
		return false
	}
}

// enqueue reads the file and hands it to the ingestion service.
func (w *Watcher) enqueue(ctx context.Context, path string) {
	content, err := os.ReadFile(path)
	if err != nil {
		logger.Error("watch: reading %s: %v", path, err)
		return
	}

	mediaType := domain.MediaTypePlainText
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		mediaType = domain.MediaTypePDF
	}

	raw := domain.RawDocument{
		FileName:  filepath.Base(path),
		Content:   content,
		MediaType: mediaType,
	}
	jobID, err := w.ingestion.Enqueue(ctx, raw, w.strategy)
	if err != nil {
		logger.Error("watch: enqueue %s: %v", path, err)
		return
	}
	logger.Info("watch: queued %s (job %s)", raw.FileName, jobID)
}
