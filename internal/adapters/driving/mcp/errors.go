// Package mcp provides an MCP (Model Context Protocol) server adapter
// for Docent. It lets AI assistants search the indexed documents and
// book interviews through the same closed toolset the agent uses.
package mcp

import "errors"

var (
	// ErrMissingIndex is returned when the vector index is not provided.
	ErrMissingIndex = errors.New("mcp: vector index is required")

	// ErrMissingToolset is returned when the toolset is not provided.
	ErrMissingToolset = errors.New("mcp: toolset is required")
)
