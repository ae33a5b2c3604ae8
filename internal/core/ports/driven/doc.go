// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports): text extraction, chunking, embeddings,
// the vector index, the LLM, conversation memory, the metadata store,
// and booking notifications.
package driven
