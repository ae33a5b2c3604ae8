package driving

import "context"

// ChatService runs one conversational turn against the agent.
type ChatService interface {
	// Chat answers the query within the given session, reading and
	// appending to that session's conversation memory. Turns within a
	// session are processed strictly sequentially.
	Chat(ctx context.Context, sessionID, query string) (string, error)
}
