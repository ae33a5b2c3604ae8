package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/docent-ai/docent/internal/core/domain"
	"github.com/docent-ai/docent/internal/core/services"
)

// SearchInput is the input schema for the document search tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"the search query to run over the indexed documents"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of passages to return (default 5)"`
}

// SearchOutput is the output schema for the document search tool.
type SearchOutput struct {
	Passages []PassageOutput `json:"passages"`
	Count    int             `json:"count"`
}

// PassageOutput represents a single retrieved passage.
type PassageOutput struct {
	Text          string  `json:"text"`
	SourceFile    string  `json:"source_file"`
	SequenceIndex int     `json:"sequence_index"`
	Score         float64 `json:"score"`
}

// BookInput is the input schema for the interview booking tool.
type BookInput struct {
	FullName string `json:"full_name" jsonschema:"interviewee's full name"`
	Email    string `json:"email" jsonschema:"interviewee's email address"`
	Date     string `json:"date" jsonschema:"interview date, e.g. 2024-09-15"`
	Time     string `json:"time" jsonschema:"interview time, e.g. 14:30"`
}

// BookOutput is the output schema for the interview booking tool.
type BookOutput struct {
	Confirmation string `json:"confirmation"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "document_search",
		Description: "Search the indexed documents for relevant passages",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "book_interview",
		Description: "Book an interview with full name, email, date and time",
	}, s.handleBookInterview)
}

// handleSearch handles the document search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = services.SearchResultLimit
	}

	results, err := s.ports.Index.Search(ctx, input.Query, limit)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Passages: make([]PassageOutput, len(results)),
		Count:    len(results),
	}
	for i := range results {
		output.Passages[i] = PassageOutput{
			Text:          results[i].Text,
			SourceFile:    results[i].SourceFile,
			SequenceIndex: results[i].SequenceIndex,
			Score:         results[i].Score,
		}
	}

	return nil, output, nil
}

// handleBookInterview handles the interview booking tool invocation.
func (s *Server) handleBookInterview(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input BookInput,
) (*mcp.CallToolResult, BookOutput, error) {
	confirmation, err := s.ports.Tools.BookInterview(ctx, domain.Booking{
		FullName: input.FullName,
		Email:    input.Email,
		Date:     input.Date,
		Time:     input.Time,
	})
	if err != nil {
		return nil, BookOutput{}, err
	}

	return nil, BookOutput{Confirmation: confirmation}, nil
}
