package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or missing input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedMediaType indicates a file format Docent cannot ingest.
	// Only PDF and plain text uploads are accepted.
	ErrUnsupportedMediaType = errors.New("unsupported media type")

	// ErrDecode indicates file bytes could not be decoded as text.
	ErrDecode = errors.New("decode failed")

	// ErrUnsupportedStrategy indicates an unknown chunking strategy name.
	ErrUnsupportedStrategy = errors.New("unsupported chunking strategy")

	// ErrUnknownTool indicates the model requested a tool that is not
	// registered. This is recoverable: the failure text is fed back into
	// the reasoning loop instead of aborting the turn.
	ErrUnknownTool = errors.New("unknown tool")

	// ErrInvalidToolArguments indicates tool arguments that failed schema
	// validation. Also recoverable, fed back as a tool result.
	ErrInvalidToolArguments = errors.New("invalid tool arguments")

	// ErrPersistence indicates the metadata store rejected a write.
	// For bookings this is surfaced as tool-output text, never raised
	// to the chat caller.
	ErrPersistence = errors.New("persistence failed")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured. Semantic chunking and vector search are disabled.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// The chat loop cannot run without it.
	ErrLLMUnavailable = errors.New("LLM service unavailable")
)
