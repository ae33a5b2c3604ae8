package domain

// ChunkStrategy defines how extracted text is split into passages.
type ChunkStrategy string

// Available chunking strategies.
const (
	// StrategyRecursive splits on a separator hierarchy with a fixed
	// target size and overlap window.
	StrategyRecursive ChunkStrategy = "recursive"

	// StrategySemantic splits where the embedding distance between
	// adjacent sentences exceeds a per-document threshold.
	StrategySemantic ChunkStrategy = "semantic"
)

// IsValid returns true if the strategy is recognised.
func (s ChunkStrategy) IsValid() bool {
	switch s {
	case StrategyRecursive, StrategySemantic:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s ChunkStrategy) String() string {
	return string(s)
}

// RequiresEmbedding returns true if this strategy needs an embedding provider.
func (s ChunkStrategy) RequiresEmbedding() bool {
	return s == StrategySemantic
}
