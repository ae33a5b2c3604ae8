package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docent-ai/docent/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestFileRecords_SaveAndList(t *testing.T) {
	store := newTestStore(t)
	meta := store.MetadataStore()
	ctx := context.Background()

	require.NoError(t, meta.SaveFileRecord(ctx, domain.IndexedFileRecord{
		FileName:       "handbook.pdf",
		Strategy:       domain.StrategyRecursive,
		EmbeddingModel: "text-embedding-3-small",
	}))
	require.NoError(t, meta.SaveFileRecord(ctx, domain.IndexedFileRecord{
		FileName:       "notes.txt",
		Strategy:       domain.StrategySemantic,
		EmbeddingModel: "text-embedding-3-small",
	}))

	records, err := meta.ListFileRecords(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "handbook.pdf", records[0].FileName)
	assert.Equal(t, domain.StrategyRecursive, records[0].Strategy)
	assert.NotEmpty(t, records[0].ID)
	assert.False(t, records[0].CreatedAt.IsZero())
	assert.Equal(t, "notes.txt", records[1].FileName)
}

func TestFileRecords_DuplicateFileNameKeepsBothRows(t *testing.T) {
	store := newTestStore(t)
	meta := store.MetadataStore()
	ctx := context.Background()

	record := domain.IndexedFileRecord{
		FileName:       "handbook.pdf",
		Strategy:       domain.StrategyRecursive,
		EmbeddingModel: "text-embedding-3-small",
	}
	require.NoError(t, meta.SaveFileRecord(ctx, record))
	require.NoError(t, meta.SaveFileRecord(ctx, record))

	records, err := meta.ListFileRecords(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestBookings_SaveAndGet(t *testing.T) {
	store := newTestStore(t)
	meta := store.MetadataStore()
	ctx := context.Background()

	id, err := meta.SaveBooking(ctx, domain.Booking{
		FullName: "Bob",
		Email:    "bob@x.com",
		Date:     "2024-09-15",
		Time:     "14:30",
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	booking, err := meta.GetBooking(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Bob", booking.FullName)
	assert.Equal(t, "bob@x.com", booking.Email)
	assert.Equal(t, "2024-09-15", booking.Date)
	assert.Equal(t, "14:30", booking.Time)
	assert.False(t, booking.CreatedAt.IsZero())
}

func TestBookings_GetMissing(t *testing.T) {
	store := newTestStore(t)

	_, err := store.MetadataStore().GetBooking(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConversation_AppendPreservesOrder(t *testing.T) {
	store := newTestStore(t)
	conv := store.ConversationStore()
	ctx := context.Background()

	turns := []domain.Turn{
		{Role: domain.RoleUser, Content: "where is Acme?"},
		{Role: domain.RoleToolCall, Content: `document_search {"query": "Acme location"}`},
		{Role: domain.RoleToolResult, Content: "Acme is in Paris."},
		{Role: domain.RoleAssistant, Content: "Acme is in Paris."},
	}
	for _, turn := range turns {
		require.NoError(t, conv.Append(ctx, "session-1", turn))
	}

	history, err := conv.History(ctx, "session-1")
	require.NoError(t, err)
	require.Len(t, history, 4)
	for i, turn := range turns {
		assert.Equal(t, turn.Role, history[i].Role)
		assert.Equal(t, turn.Content, history[i].Content)
	}
}

func TestConversation_SessionsAreIsolated(t *testing.T) {
	store := newTestStore(t)
	conv := store.ConversationStore()
	ctx := context.Background()

	require.NoError(t, conv.Append(ctx, "session-a", domain.Turn{Role: domain.RoleUser, Content: "hello from a"}))
	require.NoError(t, conv.Append(ctx, "session-b", domain.Turn{Role: domain.RoleUser, Content: "hello from b"}))

	historyA, err := conv.History(ctx, "session-a")
	require.NoError(t, err)
	require.Len(t, historyA, 1)
	assert.Equal(t, "hello from a", historyA[0].Content)

	historyB, err := conv.History(ctx, "session-b")
	require.NoError(t, err)
	require.Len(t, historyB, 1)
	assert.Equal(t, "hello from b", historyB[0].Content)
}

func TestConversation_UnseenSessionIsEmpty(t *testing.T) {
	store := newTestStore(t)

	history, err := store.ConversationStore().History(context.Background(), "never-seen")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestConversation_RejectsEmptySessionID(t *testing.T) {
	store := newTestStore(t)

	err := store.ConversationStore().Append(context.Background(), "", domain.Turn{Role: domain.RoleUser, Content: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
