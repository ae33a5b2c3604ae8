package driven

import (
	"context"

	"github.com/docent-ai/docent/internal/core/domain"
)

// ConversationStore is the per-session message log. Sessions are keyed
// by a caller-supplied opaque identifier; the first append or read of
// an unseen session implicitly creates an empty history.
//
// Only two contracts are load-bearing: appends within a session keep
// their order, and sessions never see each other's turns. Retention is
// the backing store's concern; the store must tolerate unbounded
// growth per session.
type ConversationStore interface {
	// Append adds a turn to the end of the session's log.
	Append(ctx context.Context, sessionID string, turn domain.Turn) error

	// History returns the session's turns in append order.
	// An unseen session yields an empty slice, not an error.
	History(ctx context.Context, sessionID string) ([]domain.Turn, error)

	// Close releases resources.
	Close() error
}
