package driven

import (
	"context"

	"github.com/docent-ai/docent/internal/core/domain"
)

// Notifier delivers booking confirmations. Delivery is fire-and-forget:
// a failed send is logged by the caller and never fails the booking,
// since the persisted record is the durable fact.
type Notifier interface {
	// SendBookingConfirmation sends a confirmation for the booking.
	SendBookingConfirmation(ctx context.Context, booking domain.Booking) error
}
