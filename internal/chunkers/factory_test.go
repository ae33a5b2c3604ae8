package chunkers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docent-ai/docent/internal/chunkers/recursive"
	"github.com/docent-ai/docent/internal/core/domain"
)

func TestFactoryForStrategy(t *testing.T) {
	factory := NewFactory(recursive.New())

	t.Run("registered strategy", func(t *testing.T) {
		chunker, err := factory.ForStrategy(domain.StrategyRecursive)
		require.NoError(t, err)
		assert.Equal(t, domain.StrategyRecursive, chunker.Strategy())
	})

	t.Run("valid but unregistered strategy", func(t *testing.T) {
		_, err := factory.ForStrategy(domain.StrategySemantic)
		assert.ErrorIs(t, err, domain.ErrUnsupportedStrategy)
	})

	t.Run("unknown strategy", func(t *testing.T) {
		_, err := factory.ForStrategy(domain.ChunkStrategy("markov"))
		assert.ErrorIs(t, err, domain.ErrUnsupportedStrategy)
	})
}

func TestParseStrategy(t *testing.T) {
	strategy, err := ParseStrategy("recursive")
	require.NoError(t, err)
	assert.Equal(t, domain.StrategyRecursive, strategy)

	strategy, err = ParseStrategy("semantic")
	require.NoError(t, err)
	assert.Equal(t, domain.StrategySemantic, strategy)

	_, err = ParseStrategy("fixed")
	assert.ErrorIs(t, err, domain.ErrUnsupportedStrategy)
}
