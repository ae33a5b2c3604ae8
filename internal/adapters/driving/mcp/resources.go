package mcp

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// uriScheme is the custom URI scheme for Docent resources.
const uriScheme = "docent://"

// fileResource is the JSON shape of one indexed-file entry.
type fileResource struct {
	ID             string `json:"id"`
	FileName       string `json:"file_name"`
	Strategy       string `json:"strategy"`
	EmbeddingModel string `json:"embedding_model"`
	CreatedAt      string `json:"created_at"`
}

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "files",
		Name:        "indexed-files",
		Description: "Files that have been ingested and indexed",
		MIMEType:    "application/json",
	}, s.handleFilesResource)
}

// handleFilesResource returns the list of ingested files.
func (s *Server) handleFilesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Metadata == nil {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     "[]",
			}},
		}, nil
	}

	records, err := s.ports.Metadata.ListFileRecords(ctx)
	if err != nil {
		return nil, err
	}

	files := make([]fileResource, len(records))
	for i, r := range records {
		files[i] = fileResource{
			ID:             r.ID,
			FileName:       r.FileName,
			Strategy:       r.Strategy.String(),
			EmbeddingModel: r.EmbeddingModel,
			CreatedAt:      r.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
	}

	data, err := json.MarshalIndent(files, "", "  ")
	if err != nil {
		return nil, err
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
