package domain

import "time"

// MediaType identifies the format of an uploaded file.
type MediaType string

// Supported upload formats.
const (
	// MediaTypePDF is a PDF document.
	MediaTypePDF MediaType = "application/pdf"

	// MediaTypePlainText is a UTF-8 text file.
	MediaTypePlainText MediaType = "text/plain"
)

// IsValid returns true if the media type is one Docent can ingest.
func (m MediaType) IsValid() bool {
	switch m {
	case MediaTypePDF, MediaTypePlainText:
		return true
	default:
		return false
	}
}

// String returns the MIME string representation.
func (m MediaType) String() string {
	return string(m)
}

// RawDocument represents the opaque bytes of an uploaded file.
// It exists only for the duration of ingestion and is never persisted.
type RawDocument struct {
	// FileName is the name the file was uploaded under.
	FileName string

	// Content is the raw bytes.
	Content []byte

	// MediaType is the declared format of Content.
	MediaType MediaType
}

// Passage is the unit of text stored in the vector index.
// Passages are immutable once created.
type Passage struct {
	// ID is the unique identifier for the passage.
	ID string

	// Text is the passage content.
	Text string

	// SourceFile is the file name the passage was extracted from.
	SourceFile string

	// SequenceIndex is the ordinal position within the source file for
	// one chunking run. It is unique and monotonically increasing per file.
	SequenceIndex int

	// Strategy is the chunking strategy that produced this passage.
	Strategy ChunkStrategy
}

// ScoredPassage is a passage returned from a similarity search,
// paired with its relevance score.
type ScoredPassage struct {
	// Passage is the matched passage, its fields promoted.
	Passage

	// Score is the similarity score, higher is more relevant.
	Score float64
}

// IndexedFileRecord records one completed ingestion of a file.
// Records are append-only; re-ingesting a file appends a new record.
type IndexedFileRecord struct {
	// ID is the unique identifier for the record.
	ID string

	// FileName is the ingested file name.
	FileName string

	// Strategy is the chunking strategy used for this run.
	Strategy ChunkStrategy

	// EmbeddingModel is the embedding model id the passages were indexed with.
	EmbeddingModel string

	// CreatedAt is when ingestion completed.
	CreatedAt time.Time
}
