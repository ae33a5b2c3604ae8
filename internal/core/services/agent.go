package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/docent-ai/docent/internal/core/domain"
	"github.com/docent-ai/docent/internal/core/ports/driven"
	"github.com/docent-ai/docent/internal/core/ports/driving"
	"github.com/docent-ai/docent/internal/logger"
)

// Ensure AgentService implements the interface.
var _ driving.ChatService = (*AgentService)(nil)

// MaxToolDispatches caps tool calls within a single user turn. Once
// reached, the model is forced to answer with what it has.
const MaxToolDispatches = 5

// DefaultSystemPrompt is the agent's standing instruction. It binds
// answers to retrieved passages and spells out the booking flow.
const DefaultSystemPrompt = `You are Docent, an assistant that answers questions about uploaded documents and books interviews.

Rules:
- To answer any question about document content, first rephrase the user's request into a standalone search query (resolving pronouns and references from the conversation) and call document_search with it.
- Base document answers only on the returned passages. If the search result says no information was found, say so; never answer document questions from your own knowledge.
- To book an interview, collect the user's full name, email, date and time. Ask for whichever are missing, then call interview_booking_tool. Never invent values for missing fields.
- After booking, relay the confirmation including the booking reference.
- Be concise and direct.`

// AgentService runs the conversational agent loop: it feeds the
// session history and the user query to the model, dispatches the tool
// calls the model requests, and persists the full turn trace.
type AgentService struct {
	llm           driven.LLMService
	tools         *Toolset
	conversations driven.ConversationStore
	prompt        string

	// Per-session locks serialise turns within a session while
	// letting distinct sessions proceed concurrently.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewAgentService creates the agent.
func NewAgentService(llm driven.LLMService, tools *Toolset, conversations driven.ConversationStore) *AgentService {
	return &AgentService{
		llm:           llm,
		tools:         tools,
		conversations: conversations,
		prompt:        DefaultSystemPrompt,
		locks:         make(map[string]*sync.Mutex),
	}
}

// SetSystemPrompt replaces the standing instruction, typically with a
// user-edited prompt file. Empty prompts are ignored.
func (s *AgentService) SetSystemPrompt(prompt string) {
	if strings.TrimSpace(prompt) != "" {
		s.prompt = prompt
	}
}

// Chat answers one user query within a session. The session's history
// is replayed to the model, tool calls are dispatched against the
// closed toolset, and the user turn, tool trace and final answer are
// appended to the session in order.
func (s *AgentService) Chat(ctx context.Context, sessionID, query string) (string, error) {
	if strings.TrimSpace(sessionID) == "" {
		return "", fmt.Errorf("%w: session id is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(query) == "" {
		return "", fmt.Errorf("%w: query is required", domain.ErrInvalidInput)
	}

	lock := s.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	history, err := s.conversations.History(ctx, sessionID)
	if err != nil {
		return "", fmt.Errorf("agent: load history: %w", err)
	}

	messages := []driven.Message{{Role: "system", Content: s.prompt}}
	for _, turn := range history {
		switch turn.Role {
		case domain.RoleUser:
			messages = append(messages, driven.Message{Role: "user", Content: turn.Content})
		case domain.RoleAssistant:
			messages = append(messages, driven.Message{Role: "assistant", Content: turn.Content})
		}
		// Tool turns are audit trace, not model transcript.
	}
	messages = append(messages, driven.Message{Role: "user", Content: query})

	if err := s.conversations.Append(ctx, sessionID, domain.Turn{Role: domain.RoleUser, Content: query}); err != nil {
		return "", fmt.Errorf("agent: record user turn: %w", err)
	}

	answer, err := s.loop(ctx, sessionID, messages)
	if err != nil {
		return "", err
	}

	if err := s.conversations.Append(ctx, sessionID, domain.Turn{Role: domain.RoleAssistant, Content: answer}); err != nil {
		return "", fmt.Errorf("agent: record assistant turn: %w", err)
	}
	return answer, nil
}

// loop drives model reasoning until a text answer arrives or the
// dispatch cap forces one.
func (s *AgentService) loop(ctx context.Context, sessionID string, messages []driven.Message) (string, error) {
	dispatched := 0
	for {
		completion, err := s.llm.Chat(ctx, messages, s.tools.Specs())
		if err != nil {
			return "", fmt.Errorf("agent: %w", err)
		}

		if len(completion.ToolCalls) == 0 {
			return completion.Content, nil
		}

		messages = append(messages, driven.Message{
			Role:      "assistant",
			Content:   completion.Content,
			ToolCalls: completion.ToolCalls,
		})

		for _, call := range completion.ToolCalls {
			if err := s.conversations.Append(ctx, sessionID, domain.Turn{
				Role:    domain.RoleToolCall,
				Content: call.Name + " " + call.Arguments,
			}); err != nil {
				return "", fmt.Errorf("agent: record tool call: %w", err)
			}

			result, err := s.tools.Dispatch(ctx, call)
			if err != nil {
				// Feed the failure back so the model can correct
				// itself instead of aborting the turn.
				logger.Debug("session %s: tool %s failed: %v", sessionID, call.Name, err)
				result = "Error: " + err.Error()
			}
			dispatched++

			if err := s.conversations.Append(ctx, sessionID, domain.Turn{
				Role:    domain.RoleToolResult,
				Content: result,
			}); err != nil {
				return "", fmt.Errorf("agent: record tool result: %w", err)
			}

			messages = append(messages, driven.Message{
				Role:       "tool",
				Content:    result,
				ToolCallID: call.ID,
			})
		}

		if dispatched >= MaxToolDispatches {
			return s.forceAnswer(ctx, messages)
		}
	}
}

// forceAnswer asks for a final text answer with no tools on offer.
func (s *AgentService) forceAnswer(ctx context.Context, messages []driven.Message) (string, error) {
	messages = append(messages, driven.Message{
		Role:    "user",
		Content: "Answer now using the information gathered so far. Do not request any more tools.",
	})
	completion, err := s.llm.Chat(ctx, messages, nil)
	if err != nil {
		return "", fmt.Errorf("agent: %w", err)
	}
	return completion.Content, nil
}

func (s *AgentService) sessionLock(sessionID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[sessionID] = lock
	}
	return lock
}
