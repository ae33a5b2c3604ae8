package driven

import (
	"context"

	"github.com/docent-ai/docent/internal/core/domain"
)

// MetadataStore persists ingestion records and interview bookings.
type MetadataStore interface {
	// SaveFileRecord appends a record for one completed ingestion.
	SaveFileRecord(ctx context.Context, record domain.IndexedFileRecord) error

	// ListFileRecords returns all ingestion records, oldest first.
	ListFileRecords(ctx context.Context) ([]domain.IndexedFileRecord, error)

	// SaveBooking persists a booking and returns its generated id.
	SaveBooking(ctx context.Context, booking domain.Booking) (string, error)

	// GetBooking retrieves a booking by id.
	// Returns domain.ErrNotFound if no such booking exists.
	GetBooking(ctx context.Context, id string) (*domain.Booking, error)

	// Close releases resources.
	Close() error
}
