// Package messages defines Bubbletea message types for the TUI.
// Messages represent events that flow through the Elm architecture.
package messages

// ChatCompleted carries the agent's answer (or failure) back to the model.
type ChatCompleted struct {
	SessionID string
	Answer    string
	Err       error
}

// SessionStarted is sent when a new conversation session begins.
type SessionStarted struct {
	SessionID string
}
