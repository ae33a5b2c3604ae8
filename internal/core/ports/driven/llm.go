package driven

import "context"

// LLMService is the reasoning model behind the agent loop. It consumes
// the conversation so far plus the declared tool specs, and either
// answers directly or requests tool calls with structured arguments.
//
// Implementations may include:
//   - OpenAI (gpt-4o, gpt-4o-mini)
//   - Gemini (gemini-1.5-flash)
//   - Ollama (local models with tool support)
type LLMService interface {
	// Chat runs one reasoning step over the message transcript.
	Chat(ctx context.Context, messages []Message, tools []ToolSpec) (*Completion, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Close releases resources.
	Close() error
}

// Message is a single entry in the model transcript.
type Message struct {
	// Role is one of "system", "user", "assistant", or "tool".
	Role string

	// Content is the message text.
	Content string

	// ToolCalls carries tool requests on assistant messages.
	ToolCalls []ToolCall

	// ToolCallID links a "tool" role message to the call it answers.
	ToolCallID string
}

// ToolCall is a structured tool request emitted by the model.
type ToolCall struct {
	// ID is the provider-assigned call identifier.
	ID string

	// Name is the requested tool name.
	Name string

	// Arguments is the raw JSON argument payload.
	Arguments string
}

// ToolSpec declares one callable tool to the model.
type ToolSpec struct {
	// Name is the tool identifier the model calls it by.
	Name string

	// Description tells the model when to use the tool.
	Description string

	// Parameters is a JSON Schema object describing the arguments.
	Parameters map[string]any
}

// Completion is the outcome of one reasoning step.
type Completion struct {
	// Content is the model's text output, empty when only tools were called.
	Content string

	// ToolCalls are the tool requests to dispatch, in order.
	ToolCalls []ToolCall
}
