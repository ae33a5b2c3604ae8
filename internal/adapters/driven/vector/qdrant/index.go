// Package qdrant provides a VectorIndex adapter backed by a Qdrant
// collection over its REST API. The adapter owns embedding computation:
// passages are embedded on write and queries on read, using the
// injected embedding service. The collection uses cosine distance.
package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/docent-ai/docent/internal/core/domain"
	"github.com/docent-ai/docent/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// Default configuration values.
const (
	DefaultBaseURL    = "http://localhost:6333"
	DefaultCollection = "docent_passages"
	DefaultTimeout    = 15 * time.Second
)

// Payload field names stored with each point.
const (
	fieldText       = "text"
	fieldSourceFile = "source_file"
	fieldSequence   = "sequence_index"
	fieldStrategy   = "strategy"
)

// Config holds configuration for the Qdrant index.
type Config struct {
	// BaseURL is the Qdrant REST endpoint (default: http://localhost:6333).
	BaseURL string

	// APIKey is the optional Qdrant API key.
	APIKey string

	// Collection is the collection name (default: docent_passages).
	Collection string

	// Timeout is the per-request timeout (default: 15s).
	Timeout time.Duration
}

// Index stores passages in a Qdrant collection.
type Index struct {
	client     *http.Client
	embedder   driven.EmbeddingService
	baseURL    string
	apiKey     string
	collection string
}

// NewIndex creates a Qdrant-backed vector index.
func NewIndex(cfg Config, embedder driven.EmbeddingService) (*Index, error) {
	if embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultCollection
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Index{
		client:     &http.Client{Timeout: cfg.Timeout},
		embedder:   embedder,
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		collection: cfg.Collection,
	}, nil
}

// EnsureCollection creates the collection if it does not exist.
// Qdrant answers 200 for an existing collection with the same schema.
func (x *Index) EnsureCollection(ctx context.Context) error {
	body := map[string]any{
		"vectors": map[string]any{
			"size":     x.embedder.Dimensions(),
			"distance": "Cosine",
		},
	}
	if err := x.putJSON(ctx, fmt.Sprintf("/collections/%s", x.collection), body, nil); err != nil {
		return fmt.Errorf("qdrant: ensure collection: %w", err)
	}
	return nil
}

// Index embeds and upserts the given passages. Point ids are freshly
// generated, so re-ingesting a file stores duplicate passages.
func (x *Index) Index(ctx context.Context, passages []domain.Passage) error {
	if len(passages) == 0 {
		return nil
	}

	texts := make([]string, len(passages))
	for i, p := range passages {
		texts[i] = p.Text
	}
	vectors, err := x.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("qdrant: embed passages: %w", err)
	}
	if len(vectors) != len(passages) {
		return fmt.Errorf("qdrant: got %d vectors for %d passages", len(vectors), len(passages))
	}

	points := make([]map[string]any, len(passages))
	for i, p := range passages {
		pointID := p.ID
		if pointID == "" {
			pointID = uuid.New().String()
		}
		points[i] = map[string]any{
			"id":     pointID,
			"vector": vectors[i],
			"payload": map[string]any{
				fieldText:       p.Text,
				fieldSourceFile: p.SourceFile,
				fieldSequence:   p.SequenceIndex,
				fieldStrategy:   p.Strategy.String(),
			},
		}
	}

	path := fmt.Sprintf("/collections/%s/points?wait=true", x.collection)
	if err := x.putJSON(ctx, path, map[string]any{"points": points}, nil); err != nil {
		return fmt.Errorf("qdrant: upsert points: %w", err)
	}
	return nil
}

// Search embeds the query and returns the k most similar passages.
// An empty collection yields an empty result.
func (x *Index) Search(ctx context.Context, query string, k int) ([]domain.ScoredPassage, error) {
	if k <= 0 {
		return nil, fmt.Errorf("qdrant: k must be positive, got %d", k)
	}

	vector, err := x.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("qdrant: embed query: %w", err)
	}

	reqBody := map[string]any{
		"vector":       vector,
		"limit":        k,
		"with_payload": true,
	}

	var resp struct {
		Result []struct {
			Score   float64        `json:"score"`
			Payload map[string]any `json:"payload"`
		} `json:"result"`
	}
	path := fmt.Sprintf("/collections/%s/points/search", x.collection)
	if err := x.postJSON(ctx, path, reqBody, &resp); err != nil {
		return nil, fmt.Errorf("qdrant: search: %w", err)
	}

	results := make([]domain.ScoredPassage, 0, len(resp.Result))
	for _, hit := range resp.Result {
		passage := domain.Passage{}
		if v, ok := hit.Payload[fieldText].(string); ok {
			passage.Text = v
		}
		if v, ok := hit.Payload[fieldSourceFile].(string); ok {
			passage.SourceFile = v
		}
		if v, ok := hit.Payload[fieldSequence].(float64); ok {
			passage.SequenceIndex = int(v)
		}
		if v, ok := hit.Payload[fieldStrategy].(string); ok {
			passage.Strategy = domain.ChunkStrategy(v)
		}
		results = append(results, domain.ScoredPassage{Passage: passage, Score: hit.Score})
	}
	return results, nil
}

// Close releases resources.
func (x *Index) Close() error {
	return x.embedder.Close()
}

func (x *Index) putJSON(ctx context.Context, path string, body, out any) error {
	return x.doJSON(ctx, http.MethodPut, path, body, out)
}

func (x *Index) postJSON(ctx context.Context, path string, body, out any) error {
	return x.doJSON(ctx, http.MethodPost, path, body, out)
}

func (x *Index) doJSON(ctx context.Context, method, path string, body, out any) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, x.baseURL+path, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if x.apiKey != "" {
		req.Header.Set("api-key", x.apiKey)
	}

	resp, err := x.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(respBody))
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
