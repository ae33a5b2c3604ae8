package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptStore_LoadCreatesDefaults(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPromptStore(dir, map[string]string{
		PromptChatSystem: "You are a test agent.",
	})
	require.NoError(t, err)

	prompt, err := store.Load(PromptChatSystem)

	require.NoError(t, err)
	assert.Equal(t, "You are a test agent.", prompt)

	// First load materialises the editable file.
	data, err := os.ReadFile(filepath.Join(dir, PromptChatSystem+".txt"))
	require.NoError(t, err)
	assert.Equal(t, "You are a test agent.", string(data))
}

func TestPromptStore_UserEditWins(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, PromptChatSystem+".txt"),
		[]byte("Custom instructions.\n"), 0o600))

	store, err := NewPromptStore(dir, map[string]string{
		PromptChatSystem: "Default instructions.",
	})
	require.NoError(t, err)

	prompt, err := store.Load(PromptChatSystem)

	require.NoError(t, err)
	assert.Equal(t, "Custom instructions.", prompt)
}

func TestPromptStore_UnknownPromptFails(t *testing.T) {
	store, err := NewPromptStore(t.TempDir(), nil)
	require.NoError(t, err)

	_, err = store.Load("no_such_prompt")

	assert.Error(t, err)
}

func TestPromptStore_ReloadPicksUpEdits(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPromptStore(dir, map[string]string{
		PromptChatSystem: "First.",
	})
	require.NoError(t, err)

	first, err := store.Load(PromptChatSystem)
	require.NoError(t, err)
	require.Equal(t, "First.", first)

	require.NoError(t, os.WriteFile(
		filepath.Join(dir, PromptChatSystem+".txt"),
		[]byte("Second."), 0o600))

	// Cached until reloaded.
	cached, err := store.Load(PromptChatSystem)
	require.NoError(t, err)
	assert.Equal(t, "First.", cached)

	store.Reload()
	fresh, err := store.Load(PromptChatSystem)
	require.NoError(t, err)
	assert.Equal(t, "Second.", fresh)
}

func TestPromptStore_DefaultDir(t *testing.T) {
	store, err := NewPromptStore("", nil)
	require.NoError(t, err)
	assert.Contains(t, store.Dir(), filepath.Join(".docent", "prompts"))
}
