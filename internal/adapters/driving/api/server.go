// Package api exposes Docent over HTTP: document upload, chat and a
// health probe.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/docent-ai/docent/internal/chunkers"
	"github.com/docent-ai/docent/internal/core/domain"
	"github.com/docent-ai/docent/internal/core/ports/driving"
	"github.com/docent-ai/docent/internal/logger"
)

// DefaultMaxUploadBytes bounds one upload body.
const DefaultMaxUploadBytes = 20 << 20

// Server is the HTTP API over the chat and ingestion services.
type Server struct {
	chat           driving.ChatService
	ingestion      driving.IngestionService
	maxUploadBytes int64
	httpServer     *http.Server
}

// Config holds HTTP server settings.
type Config struct {
	// Addr is the listen address, e.g. "127.0.0.1:8080".
	Addr string

	// MaxUploadBytes bounds one upload body (default: 20 MiB).
	MaxUploadBytes int64
}

// NewServer creates the HTTP API server.
func NewServer(cfg Config, chat driving.ChatService, ingestion driving.IngestionService) *Server {
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = DefaultMaxUploadBytes
	}

	s := &Server{
		chat:           chat,
		ingestion:      ingestion,
		maxUploadBytes: cfg.MaxUploadBytes,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/upload", s.handleUpload)
	mux.HandleFunc("POST /api/chat", s.handleChat)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the routing handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// ListenAndServe blocks serving requests until Shutdown or failure.
func (s *Server) ListenAndServe() error {
	logger.Info("http api listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http api: %w", err)
	}
	return nil
}

// Listener serves on an already-bound listener.
func (s *Server) Serve(ln net.Listener) error {
	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http api: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// uploadResponse acknowledges an accepted upload.
type uploadResponse struct {
	JobID    string `json:"job_id"`
	FileName string `json:"file_name"`
	Strategy string `json:"strategy"`
}

// handleUpload accepts a multipart document upload and queues it for
// ingestion. The response arrives before indexing finishes.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)

	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "multipart form required: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "reading upload: "+err.Error())
		return
	}

	strategy := domain.StrategyRecursive
	if name := r.FormValue("strategy"); name != "" {
		strategy, err = chunkers.ParseStrategy(name)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	raw := domain.RawDocument{
		FileName:  filepath.Base(header.Filename),
		Content:   content,
		MediaType: mediaTypeFor(header.Filename),
	}

	jobID, err := s.ingestion.Enqueue(r.Context(), raw, strategy)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	writeJSON(w, http.StatusAccepted, uploadResponse{
		JobID:    jobID,
		FileName: raw.FileName,
		Strategy: strategy.String(),
	})
}

// chatRequest is one conversational turn.
type chatRequest struct {
	SessionID string `json:"session_id"`
	Query     string `json:"query"`
}

// chatResponse carries the agent's answer.
type chatResponse struct {
	SessionID string `json:"session_id"`
	Answer    string `json:"answer"`
}

// handleChat runs one agent turn within a session.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.SessionID) == "" {
		writeError(w, http.StatusBadRequest, "session_id is required")
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	answer, err := s.chat.Chat(r.Context(), req.SessionID, req.Query)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{
		SessionID: req.SessionID,
		Answer:    answer,
	})
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// mediaTypeFor maps a file name to its media type. Unknown extensions
// map to an invalid type and are rejected by ingestion validation.
func mediaTypeFor(fileName string) domain.MediaType {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		return domain.MediaTypePDF
	case ".txt", ".text", ".md":
		return domain.MediaTypePlainText
	default:
		return domain.MediaType(strings.TrimPrefix(strings.ToLower(filepath.Ext(fileName)), "."))
	}
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrUnsupportedMediaType),
		errors.Is(err, domain.ErrUnsupportedStrategy):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrEmbeddingUnavailable),
		errors.Is(err, domain.ErrLLMUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
