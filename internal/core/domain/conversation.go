package domain

import "time"

// Role identifies the author of a conversation turn.
type Role string

// Turn roles.
const (
	// RoleUser is a message from the end user.
	RoleUser Role = "user"

	// RoleAssistant is a final answer from the agent.
	RoleAssistant Role = "assistant"

	// RoleToolCall is a tool invocation requested by the agent.
	RoleToolCall Role = "tool_call"

	// RoleToolResult is the output of a dispatched tool.
	RoleToolResult Role = "tool_result"
)

// IsValid returns true if the role is recognised.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAssistant, RoleToolCall, RoleToolResult:
		return true
	default:
		return false
	}
}

// Turn is a single entry in a session's conversation log.
// Turns are append-only and scoped to one session.
type Turn struct {
	// Role is the author of the turn.
	Role Role

	// Content is the message text. For tool calls this is the tool name
	// and its JSON arguments; for tool results it is the tool output.
	Content string

	// CreatedAt is when the turn was recorded.
	CreatedAt time.Time
}
