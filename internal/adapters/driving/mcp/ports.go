package mcp

import (
	"github.com/docent-ai/docent/internal/core/ports/driven"
	"github.com/docent-ai/docent/internal/core/services"
)

// Ports aggregates the capabilities the MCP server exposes. This
// provides a single injection point for dependency injection.
type Ports struct {
	// Index answers document searches with per-passage scores.
	Index driven.VectorIndex

	// Tools books interviews via the agent's toolset.
	Tools *services.Toolset

	// Metadata backs the indexed-files resource. Optional.
	Metadata driven.MetadataStore
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Index == nil {
		return ErrMissingIndex
	}
	if p.Tools == nil {
		return ErrMissingToolset
	}
	return nil
}
