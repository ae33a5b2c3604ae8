package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docent-ai/docent/internal/core/domain"
	"github.com/docent-ai/docent/internal/core/ports/driven"
)

// mockIndex is a scripted vector index.
type mockIndex struct {
	results   []domain.ScoredPassage
	err       error
	lastQuery string
	lastK     int
}

func (m *mockIndex) Index(_ context.Context, _ []domain.Passage) error { return m.err }

func (m *mockIndex) Search(_ context.Context, query string, k int) ([]domain.ScoredPassage, error) {
	m.lastQuery = query
	m.lastK = k
	return m.results, m.err
}

func (m *mockIndex) Close() error { return nil }

// mockMetadata records bookings.
type mockMetadata struct {
	bookings []domain.Booking
	saveErr  error
}

func (m *mockMetadata) SaveFileRecord(_ context.Context, _ domain.IndexedFileRecord) error {
	return nil
}

func (m *mockMetadata) ListFileRecords(_ context.Context) ([]domain.IndexedFileRecord, error) {
	return nil, nil
}

func (m *mockMetadata) SaveBooking(_ context.Context, booking domain.Booking) (string, error) {
	if m.saveErr != nil {
		return "", m.saveErr
	}
	booking.ID = "booking-1"
	m.bookings = append(m.bookings, booking)
	return booking.ID, nil
}

func (m *mockMetadata) GetBooking(_ context.Context, _ string) (*domain.Booking, error) {
	return nil, domain.ErrNotFound
}

func (m *mockMetadata) Close() error { return nil }

// mockNotifier records confirmation sends.
type mockNotifier struct {
	sent []domain.Booking
	err  error
}

func (m *mockNotifier) SendBookingConfirmation(_ context.Context, booking domain.Booking) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, booking)
	return nil
}

func TestSearchDocuments_JoinsPassages(t *testing.T) {
	index := &mockIndex{results: []domain.ScoredPassage{
		{Passage: domain.Passage{Text: "Alice works at Acme."}, Score: 0.9},
		{Passage: domain.Passage{Text: "Acme is in Paris."}, Score: 0.8},
	}}
	tools := NewToolset(index, &mockMetadata{}, nil)

	result, err := tools.SearchDocuments(context.Background(), "where is Acme?")
	require.NoError(t, err)
	assert.Equal(t, "Alice works at Acme.\n---\nAcme is in Paris.", result)
	assert.Equal(t, SearchResultLimit, index.lastK)
	assert.Equal(t, "where is Acme?", index.lastQuery)
}

func TestSearchDocuments_NoResultsReturnsSentinel(t *testing.T) {
	tools := NewToolset(&mockIndex{}, &mockMetadata{}, nil)

	result, err := tools.SearchDocuments(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, NoInformationFound, result)
}

func TestSearchDocuments_IndexError(t *testing.T) {
	tools := NewToolset(&mockIndex{err: errors.New("qdrant down")}, &mockMetadata{}, nil)

	_, err := tools.SearchDocuments(context.Background(), "anything")
	assert.ErrorContains(t, err, "document search")
}

func TestBookInterview_PersistsThenNotifies(t *testing.T) {
	metadata := &mockMetadata{}
	notifier := &mockNotifier{}
	tools := NewToolset(&mockIndex{}, metadata, notifier)

	result, err := tools.BookInterview(context.Background(), domain.Booking{
		FullName: "Bob", Email: "bob@x.com", Date: "2024-09-15", Time: "14:30",
	})
	require.NoError(t, err)
	assert.Contains(t, result, "booking-1")
	assert.Contains(t, result, "Bob")
	assert.Contains(t, result, "2024-09-15")

	require.Len(t, metadata.bookings, 1)
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "booking-1", notifier.sent[0].ID)
}

func TestBookInterview_NotifyFailureDoesNotFailBooking(t *testing.T) {
	metadata := &mockMetadata{}
	tools := NewToolset(&mockIndex{}, metadata, &mockNotifier{err: errors.New("smtp down")})

	result, err := tools.BookInterview(context.Background(), domain.Booking{
		FullName: "Bob", Email: "bob@x.com", Date: "2024-09-15", Time: "14:30",
	})
	require.NoError(t, err)
	assert.Contains(t, result, "booking-1")
	assert.Len(t, metadata.bookings, 1)
}

func TestBookInterview_MissingFields(t *testing.T) {
	metadata := &mockMetadata{}
	tools := NewToolset(&mockIndex{}, metadata, nil)

	_, err := tools.BookInterview(context.Background(), domain.Booking{FullName: "Bob"})
	assert.ErrorIs(t, err, domain.ErrInvalidToolArguments)
	assert.ErrorContains(t, err, "email")
	assert.Empty(t, metadata.bookings)
}

func TestBookInterview_PersistenceFailure(t *testing.T) {
	notifier := &mockNotifier{}
	tools := NewToolset(&mockIndex{}, &mockMetadata{saveErr: domain.ErrPersistence}, notifier)

	_, err := tools.BookInterview(context.Background(), domain.Booking{
		FullName: "Bob", Email: "bob@x.com", Date: "2024-09-15", Time: "14:30",
	})
	assert.ErrorIs(t, err, domain.ErrPersistence)
	// Persist failed, so no confirmation goes out.
	assert.Empty(t, notifier.sent)
}

func TestDispatch_RoutesAndValidates(t *testing.T) {
	index := &mockIndex{results: []domain.ScoredPassage{
		{Passage: domain.Passage{Text: "found it"}},
	}}
	tools := NewToolset(index, &mockMetadata{}, nil)
	ctx := context.Background()

	result, err := tools.Dispatch(ctx, driven.ToolCall{
		Name:      ToolDocumentSearch,
		Arguments: `{"query": "where is Acme?"}`,
	})
	require.NoError(t, err)
	assert.Equal(t, "found it", result)

	_, err = tools.Dispatch(ctx, driven.ToolCall{
		Name:      ToolDocumentSearch,
		Arguments: `{"query": "   "}`,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidToolArguments)

	_, err = tools.Dispatch(ctx, driven.ToolCall{
		Name:      ToolDocumentSearch,
		Arguments: `{not json`,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidToolArguments)

	_, err = tools.Dispatch(ctx, driven.ToolCall{Name: "delete_everything", Arguments: `{}`})
	assert.ErrorIs(t, err, domain.ErrUnknownTool)
}

func TestSpecs_DeclaresBothTools(t *testing.T) {
	tools := NewToolset(&mockIndex{}, &mockMetadata{}, nil)

	specs := tools.Specs()
	require.Len(t, specs, 2)
	assert.Equal(t, ToolDocumentSearch, specs[0].Name)
	assert.Equal(t, ToolInterviewBooking, specs[1].Name)

	params := specs[1].Parameters
	assert.Equal(t, []string{"full_name", "email", "date", "time"}, params["required"])
}
