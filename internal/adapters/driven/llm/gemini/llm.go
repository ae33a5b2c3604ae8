// Package gemini provides an LLM service adapter using the Google
// Gemini API with function calling.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/docent-ai/docent/internal/core/domain"
	"github.com/docent-ai/docent/internal/core/ports/driven"
)

// Ensure LLMService implements the interface.
var _ driven.LLMService = (*LLMService)(nil)

// Default configuration values.
const (
	DefaultModel   = "gemini-1.5-flash"
	DefaultTimeout = 120 * time.Second
)

// LLMConfig holds configuration for the Gemini LLM service.
type LLMConfig struct {
	// APIKey is the Gemini API key (required).
	APIKey string

	// Model is the chat model to use (default: gemini-1.5-flash).
	Model string

	// Timeout is the per-request timeout (default: 120s).
	Timeout time.Duration
}

// LLMService provides chat completions with tool calling via Gemini.
type LLMService struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewLLMService creates a new Gemini LLM service.
func NewLLMService(ctx context.Context, cfg LLMConfig) (*LLMService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key is required", domain.ErrLLMUnavailable)
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("gemini error: create client: %w", err)
	}

	return &LLMService{
		client:  client,
		model:   cfg.Model,
		timeout: cfg.Timeout,
	}, nil
}

// Chat sends the conversation and tool definitions to the model and
// returns its completion. Gemini has no system role; a leading system
// message becomes the model's system instruction. Gemini identifies
// function responses by function name, so tool call ids equal names.
func (s *LLMService) Chat(ctx context.Context, messages []driven.Message, tools []driven.ToolSpec) (*driven.Completion, error) {
	if len(messages) == 0 {
		return nil, fmt.Errorf("gemini error: no messages")
	}

	model := s.client.GenerativeModel(s.model)
	if len(tools) > 0 {
		model.Tools = []*genai.Tool{{FunctionDeclarations: declarations(tools)}}
	}

	if messages[0].Role == "system" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(messages[0].Content)},
		}
		messages = messages[1:]
	}
	if len(messages) == 0 {
		return nil, fmt.Errorf("gemini error: no user messages")
	}

	session := model.StartChat()
	for _, m := range messages[:len(messages)-1] {
		session.History = append(session.History, toContent(m))
	}

	last := messages[len(messages)-1]
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	resp, err := session.SendMessage(ctx, lastParts(last)...)
	if err != nil {
		return nil, fmt.Errorf("gemini error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("gemini error: no candidates returned")
	}

	out := &driven.Completion{}
	for _, part := range resp.Candidates[0].Content.Parts {
		switch v := part.(type) {
		case genai.Text:
			out.Content += string(v)
		case genai.FunctionCall:
			args, err := json.Marshal(v.Args)
			if err != nil {
				return nil, fmt.Errorf("gemini error: marshal tool arguments: %w", err)
			}
			out.ToolCalls = append(out.ToolCalls, driven.ToolCall{
				ID:        v.Name,
				Name:      v.Name,
				Arguments: string(args),
			})
		}
	}
	return out, nil
}

// ModelName returns the name of the chat model being used.
func (s *LLMService) ModelName() string {
	return s.model
}

// Close releases the underlying client.
func (s *LLMService) Close() error {
	return s.client.Close()
}

func toContent(m driven.Message) *genai.Content {
	role := "user"
	if m.Role == "assistant" {
		role = "model"
	}
	content := &genai.Content{Role: role}

	if m.ToolCallID != "" {
		content.Role = "user"
		content.Parts = append(content.Parts, genai.FunctionResponse{
			Name:     m.ToolCallID,
			Response: map[string]any{"result": m.Content},
		})
		return content
	}

	if m.Content != "" {
		content.Parts = append(content.Parts, genai.Text(m.Content))
	}
	for _, tc := range m.ToolCalls {
		var args map[string]any
		if err := json.Unmarshal([]byte(tc.Arguments), &args); err != nil {
			args = map[string]any{}
		}
		content.Parts = append(content.Parts, genai.FunctionCall{
			Name: tc.Name,
			Args: args,
		})
	}
	return content
}

func lastParts(m driven.Message) []genai.Part {
	if m.ToolCallID != "" {
		return []genai.Part{genai.FunctionResponse{
			Name:     m.ToolCallID,
			Response: map[string]any{"result": m.Content},
		}}
	}
	return []genai.Part{genai.Text(m.Content)}
}

func declarations(tools []driven.ToolSpec) []*genai.FunctionDeclaration {
	decls := make([]*genai.FunctionDeclaration, len(tools))
	for i, t := range tools {
		decls[i] = &genai.FunctionDeclaration{
			Name:        t.Name,
			Description: t.Description,
			Parameters:  toSchema(t.Parameters),
		}
	}
	return decls
}

// toSchema converts a JSON schema map into the genai schema type.
// Only the subset used by the tool definitions is supported.
func toSchema(m map[string]any) *genai.Schema {
	if m == nil {
		return nil
	}
	schema := &genai.Schema{}
	switch m["type"] {
	case "object":
		schema.Type = genai.TypeObject
	case "string":
		schema.Type = genai.TypeString
	case "integer":
		schema.Type = genai.TypeInteger
	case "number":
		schema.Type = genai.TypeNumber
	case "boolean":
		schema.Type = genai.TypeBoolean
	case "array":
		schema.Type = genai.TypeArray
	}
	if desc, ok := m["description"].(string); ok {
		schema.Description = desc
	}
	if props, ok := m["properties"].(map[string]any); ok {
		schema.Properties = make(map[string]*genai.Schema, len(props))
		for name, raw := range props {
			if sub, ok := raw.(map[string]any); ok {
				schema.Properties[name] = toSchema(sub)
			}
		}
	}
	if required, ok := m["required"].([]string); ok {
		schema.Required = required
	} else if rawRequired, ok := m["required"].([]any); ok {
		for _, r := range rawRequired {
			if name, ok := r.(string); ok {
				schema.Required = append(schema.Required, name)
			}
		}
	}
	return schema
}
