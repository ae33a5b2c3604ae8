package mcp

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docent-ai/docent/internal/core/domain"
	"github.com/docent-ai/docent/internal/core/services"
)

// fakeIndex is a scripted vector index.
type fakeIndex struct {
	results []domain.ScoredPassage
	lastK   int
}

func (f *fakeIndex) Index(_ context.Context, _ []domain.Passage) error { return nil }

func (f *fakeIndex) Search(_ context.Context, _ string, k int) ([]domain.ScoredPassage, error) {
	f.lastK = k
	return f.results, nil
}

func (f *fakeIndex) Close() error { return nil }

// fakeMetadata records bookings and lists files.
type fakeMetadata struct {
	records  []domain.IndexedFileRecord
	bookings []domain.Booking
}

func (f *fakeMetadata) SaveFileRecord(_ context.Context, record domain.IndexedFileRecord) error {
	f.records = append(f.records, record)
	return nil
}

func (f *fakeMetadata) ListFileRecords(_ context.Context) ([]domain.IndexedFileRecord, error) {
	return f.records, nil
}

func (f *fakeMetadata) SaveBooking(_ context.Context, booking domain.Booking) (string, error) {
	booking.ID = "bk-1"
	f.bookings = append(f.bookings, booking)
	return booking.ID, nil
}

func (f *fakeMetadata) GetBooking(_ context.Context, _ string) (*domain.Booking, error) {
	return nil, domain.ErrNotFound
}

func (f *fakeMetadata) Close() error { return nil }

func newTestServer(t *testing.T, index *fakeIndex, metadata *fakeMetadata) *Server {
	t.Helper()
	server, err := NewServer(&Ports{
		Index:    index,
		Tools:    services.NewToolset(index, metadata, nil),
		Metadata: metadata,
	})
	require.NoError(t, err)
	return server
}

func TestNewServer_ValidatesPorts(t *testing.T) {
	_, err := NewServer(&Ports{})
	assert.ErrorIs(t, err, ErrMissingIndex)

	_, err = NewServer(&Ports{Index: &fakeIndex{}})
	assert.ErrorIs(t, err, ErrMissingToolset)
}

func TestHandleSearch_ReturnsPassages(t *testing.T) {
	index := &fakeIndex{results: []domain.ScoredPassage{
		{Passage: domain.Passage{Text: "Acme is in Paris.", SourceFile: "acme.txt", SequenceIndex: 2}, Score: 0.88},
	}}
	server := newTestServer(t, index, &fakeMetadata{})

	_, output, err := server.handleSearch(context.Background(), nil, SearchInput{Query: "where is Acme?"})
	require.NoError(t, err)

	assert.Equal(t, services.SearchResultLimit, index.lastK)
	assert.Equal(t, 1, output.Count)
	require.Len(t, output.Passages, 1)
	assert.Equal(t, "Acme is in Paris.", output.Passages[0].Text)
	assert.Equal(t, "acme.txt", output.Passages[0].SourceFile)
	assert.InDelta(t, 0.88, output.Passages[0].Score, 1e-9)
}

func TestHandleSearch_CustomLimit(t *testing.T) {
	index := &fakeIndex{}
	server := newTestServer(t, index, &fakeMetadata{})

	_, output, err := server.handleSearch(context.Background(), nil, SearchInput{Query: "q", Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, index.lastK)
	assert.Equal(t, 0, output.Count)
}

func TestHandleBookInterview(t *testing.T) {
	metadata := &fakeMetadata{}
	server := newTestServer(t, &fakeIndex{}, metadata)

	_, output, err := server.handleBookInterview(context.Background(), nil, BookInput{
		FullName: "Bob", Email: "bob@x.com", Date: "2024-09-15", Time: "14:30",
	})
	require.NoError(t, err)
	assert.Contains(t, output.Confirmation, "bk-1")
	require.Len(t, metadata.bookings, 1)
	assert.Equal(t, "Bob", metadata.bookings[0].FullName)
}

func TestHandleBookInterview_MissingFields(t *testing.T) {
	server := newTestServer(t, &fakeIndex{}, &fakeMetadata{})

	_, _, err := server.handleBookInterview(context.Background(), nil, BookInput{FullName: "Bob"})
	assert.ErrorIs(t, err, domain.ErrInvalidToolArguments)
}

func TestHandleFilesResource(t *testing.T) {
	metadata := &fakeMetadata{records: []domain.IndexedFileRecord{
		{ID: "f1", FileName: "notes.txt", Strategy: domain.StrategyRecursive, EmbeddingModel: "m"},
	}}
	server := newTestServer(t, &fakeIndex{}, metadata)

	req := &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{URI: uriScheme + "files"},
	}

	result, err := server.handleFilesResource(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, result.Contents, 1)
	assert.Contains(t, result.Contents[0].Text, "notes.txt")
	assert.Contains(t, result.Contents[0].Text, "recursive")
}
