package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/docent-ai/docent/internal/core/domain"
	"github.com/docent-ai/docent/internal/core/ports/driven"
	"github.com/docent-ai/docent/internal/logger"
)

// Tool names exposed to the model.
const (
	ToolDocumentSearch   = "document_search"
	ToolInterviewBooking = "interview_booking_tool"
)

// NoInformationFound is returned by document search when retrieval
// yields nothing. The agent prompt instructs the model to relay this
// rather than answer from its own knowledge.
const NoInformationFound = "No information found in the documents for that query."

// SearchResultLimit is how many passages a search returns.
const SearchResultLimit = 5

// passageSeparator joins retrieved passages into one tool result.
const passageSeparator = "\n---\n"

// Toolset is the closed set of tools the agent can dispatch. The
// model cannot add, remove or redefine tools at runtime.
type Toolset struct {
	index    driven.VectorIndex
	metadata driven.MetadataStore
	notifier driven.Notifier
}

// NewToolset creates the agent's toolset. The notifier is optional;
// without one, bookings are persisted but no confirmation is sent.
func NewToolset(index driven.VectorIndex, metadata driven.MetadataStore, notifier driven.Notifier) *Toolset {
	return &Toolset{
		index:    index,
		metadata: metadata,
		notifier: notifier,
	}
}

// Specs declares the tools to the model.
func (t *Toolset) Specs() []driven.ToolSpec {
	return []driven.ToolSpec{
		{
			Name: ToolDocumentSearch,
			Description: "Search the uploaded documents for passages relevant to a query. " +
				"Use this for any question about document content.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"query": map[string]any{
						"type":        "string",
						"description": "Standalone search query, rephrased from the conversation",
					},
				},
				"required": []string{"query"},
			},
		},
		{
			Name: ToolInterviewBooking,
			Description: "Book an interview once the user has provided their full name, " +
				"email, date and time. Never invent missing values; ask the user instead.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"full_name": map[string]any{
						"type":        "string",
						"description": "Interviewee's full name",
					},
					"email": map[string]any{
						"type":        "string",
						"description": "Interviewee's email address",
					},
					"date": map[string]any{
						"type":        "string",
						"description": "Interview date, e.g. 2024-09-15",
					},
					"time": map[string]any{
						"type":        "string",
						"description": "Interview time, e.g. 14:30",
					},
				},
				"required": []string{"full_name", "email", "date", "time"},
			},
		},
	}
}

// Dispatch routes a tool call to its implementation. Unknown tools and
// malformed arguments return errors the agent feeds back to the model
// as tool results, so the model can correct itself.
func (t *Toolset) Dispatch(ctx context.Context, call driven.ToolCall) (string, error) {
	switch call.Name {
	case ToolDocumentSearch:
		var args struct {
			Query string `json:"query"`
		}
		if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
			return "", fmt.Errorf("%w: %s: %v", domain.ErrInvalidToolArguments, call.Name, err)
		}
		if strings.TrimSpace(args.Query) == "" {
			return "", fmt.Errorf("%w: %s: query is required", domain.ErrInvalidToolArguments, call.Name)
		}
		return t.SearchDocuments(ctx, args.Query)

	case ToolInterviewBooking:
		var args struct {
			FullName string `json:"full_name"`
			Email    string `json:"email"`
			Date     string `json:"date"`
			Time     string `json:"time"`
		}
		if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
			return "", fmt.Errorf("%w: %s: %v", domain.ErrInvalidToolArguments, call.Name, err)
		}
		return t.BookInterview(ctx, domain.Booking{
			FullName: args.FullName,
			Email:    args.Email,
			Date:     args.Date,
			Time:     args.Time,
		})

	default:
		return "", fmt.Errorf("%w: %s", domain.ErrUnknownTool, call.Name)
	}
}

// SearchDocuments runs retrieval and formats the passages as one tool
// result. No results is not an error; the sentinel text is the result.
func (t *Toolset) SearchDocuments(ctx context.Context, query string) (string, error) {
	results, err := t.index.Search(ctx, query, SearchResultLimit)
	if err != nil {
		return "", fmt.Errorf("document search: %w", err)
	}
	if len(results) == 0 {
		return NoInformationFound, nil
	}

	texts := make([]string, len(results))
	for i, r := range results {
		texts[i] = r.Text
	}
	return strings.Join(texts, passageSeparator), nil
}

// BookInterview validates, persists and confirms a booking. The
// persisted record is the durable fact: a failed confirmation email is
// logged and never fails the booking.
func (t *Toolset) BookInterview(ctx context.Context, booking domain.Booking) (string, error) {
	if err := booking.Validate(); err != nil {
		return "", fmt.Errorf("%w: %s: %v", domain.ErrInvalidToolArguments, ToolInterviewBooking, err)
	}

	id, err := t.metadata.SaveBooking(ctx, booking)
	if err != nil {
		return "", fmt.Errorf("book interview: %w", err)
	}
	booking.ID = id

	if t.notifier != nil {
		if err := t.notifier.SendBookingConfirmation(ctx, booking); err != nil {
			logger.Warn("booking %s: confirmation email failed: %v", id, err)
		}
	}

	return fmt.Sprintf(
		"Interview booked for %s on %s at %s. Booking reference: %s. A confirmation email will be sent to %s.",
		booking.FullName, booking.Date, booking.Time, id, booking.Email,
	), nil
}
