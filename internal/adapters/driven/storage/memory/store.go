// Package memory provides in-memory implementations of the metadata
// and conversation stores, for tests and ephemeral runs.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/docent-ai/docent/internal/core/domain"
	"github.com/docent-ai/docent/internal/core/ports/driven"
)

var (
	_ driven.MetadataStore     = (*MetadataStore)(nil)
	_ driven.ConversationStore = (*ConversationStore)(nil)
)

// MetadataStore holds ingestion records and bookings in memory.
type MetadataStore struct {
	mu       sync.RWMutex
	records  []domain.IndexedFileRecord
	bookings map[string]domain.Booking
}

// NewMetadataStore creates an empty in-memory metadata store.
func NewMetadataStore() *MetadataStore {
	return &MetadataStore{
		bookings: make(map[string]domain.Booking),
	}
}

// SaveFileRecord appends a record for one completed ingestion.
func (s *MetadataStore) SaveFileRecord(_ context.Context, record domain.IndexedFileRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	s.records = append(s.records, record)
	return nil
}

// ListFileRecords returns all ingestion records, oldest first.
func (s *MetadataStore) ListFileRecords(_ context.Context) ([]domain.IndexedFileRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.IndexedFileRecord, len(s.records))
	copy(out, s.records)
	return out, nil
}

// SaveBooking persists a booking and returns its generated id.
func (s *MetadataStore) SaveBooking(_ context.Context, booking domain.Booking) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = time.Now().UTC()
	}
	s.bookings[booking.ID] = booking
	return booking.ID, nil
}

// GetBooking retrieves a booking by id.
func (s *MetadataStore) GetBooking(_ context.Context, id string) (*domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	booking, ok := s.bookings[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &booking, nil
}

// Close releases resources.
func (s *MetadataStore) Close() error {
	return nil
}

// ConversationStore holds per-session conversation logs in memory.
type ConversationStore struct {
	mu       sync.RWMutex
	sessions map[string][]domain.Turn
}

// NewConversationStore creates an empty in-memory conversation store.
func NewConversationStore() *ConversationStore {
	return &ConversationStore{
		sessions: make(map[string][]domain.Turn),
	}
}

// Append adds a turn to the end of the session's log.
func (s *ConversationStore) Append(_ context.Context, sessionID string, turn domain.Turn) error {
	if sessionID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if turn.CreatedAt.IsZero() {
		turn.CreatedAt = time.Now().UTC()
	}
	s.sessions[sessionID] = append(s.sessions[sessionID], turn)
	return nil
}

// History returns the session's turns in append order. An unseen
// session yields an empty slice.
func (s *ConversationStore) History(_ context.Context, sessionID string) ([]domain.Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	turns := s.sessions[sessionID]
	out := make([]domain.Turn, len(turns))
	copy(out, turns)
	return out, nil
}

// Close releases resources.
func (s *ConversationStore) Close() error {
	return nil
}
