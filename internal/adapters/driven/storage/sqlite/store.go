// Package sqlite provides SQLite-backed persistence for ingestion
// records, interview bookings and conversation histories.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/docent-ai/docent/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/docent-ai/docent/internal/core/domain"
	"github.com/docent-ai/docent/internal/core/ports/driven"
)

// Store is a unified SQLite-based storage that provides access to
// the metadata and conversation store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.docent/data/docent.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".docent", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "docent.db")

	// WAL mode for better concurrency between the ingestion worker
	// and chat sessions.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// MetadataStore returns a MetadataStore interface backed by this store.
func (s *Store) MetadataStore() driven.MetadataStore {
	return &metadataStore{store: s}
}

// ConversationStore returns a ConversationStore interface backed by this store.
func (s *Store) ConversationStore() driven.ConversationStore {
	return &conversationStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}

		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Metadata Store ====================

// metadataStore implements driven.MetadataStore.
type metadataStore struct {
	store *Store
}

var _ driven.MetadataStore = (*metadataStore)(nil)

// SaveFileRecord appends a record for one completed ingestion. Each
// ingestion gets a fresh row; re-ingesting a file is not deduplicated.
func (s *metadataStore) SaveFileRecord(ctx context.Context, record domain.IndexedFileRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO file_records (id, file_name, strategy, embedding_model, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, record.ID, record.FileName, string(record.Strategy), record.EmbeddingModel, record.CreatedAt)

	if err != nil {
		return fmt.Errorf("%w: saving file record: %v", domain.ErrPersistence, err)
	}
	return nil
}

// ListFileRecords returns all ingestion records, oldest first.
func (s *metadataStore) ListFileRecords(ctx context.Context) ([]domain.IndexedFileRecord, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, file_name, strategy, embedding_model, created_at
		FROM file_records ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: querying file records: %v", domain.ErrPersistence, err)
	}
	defer rows.Close()

	var records []domain.IndexedFileRecord //nolint:prealloc // size unknown from query
	for rows.Next() {
		var record domain.IndexedFileRecord
		var strategy string
		if err := rows.Scan(&record.ID, &record.FileName, &strategy,
			&record.EmbeddingModel, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: scanning file record: %v", domain.ErrPersistence, err)
		}
		record.Strategy = domain.ChunkStrategy(strategy)
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating file records: %v", domain.ErrPersistence, err)
	}

	return records, nil
}

// SaveBooking persists a booking and returns its generated id.
func (s *metadataStore) SaveBooking(ctx context.Context, booking domain.Booking) (string, error) {
	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = time.Now().UTC()
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO bookings (id, full_name, email, date, time, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, booking.ID, booking.FullName, booking.Email, booking.Date, booking.Time, booking.CreatedAt)

	if err != nil {
		return "", fmt.Errorf("%w: saving booking: %v", domain.ErrPersistence, err)
	}
	return booking.ID, nil
}

// GetBooking retrieves a booking by id.
func (s *metadataStore) GetBooking(ctx context.Context, id string) (*domain.Booking, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, full_name, email, date, time, created_at
		FROM bookings WHERE id = ?
	`, id)

	var booking domain.Booking
	if err := row.Scan(&booking.ID, &booking.FullName, &booking.Email,
		&booking.Date, &booking.Time, &booking.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning booking: %v", domain.ErrPersistence, err)
	}

	return &booking, nil
}

// Close is a no-op; the owning Store closes the database.
func (s *metadataStore) Close() error {
	return nil
}

// ==================== Conversation Store ====================

// conversationStore implements driven.ConversationStore.
type conversationStore struct {
	store *Store
}

var _ driven.ConversationStore = (*conversationStore)(nil)

// Append adds a turn to the end of the session's log. An unseen
// session is created implicitly by its first turn.
func (s *conversationStore) Append(ctx context.Context, sessionID string, turn domain.Turn) error {
	if sessionID == "" {
		return fmt.Errorf("%w: session id is required", domain.ErrInvalidInput)
	}
	if turn.CreatedAt.IsZero() {
		turn.CreatedAt = time.Now().UTC()
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO conversation_turns (session_id, role, content, created_at)
		VALUES (?, ?, ?, ?)
	`, sessionID, string(turn.Role), turn.Content, turn.CreatedAt)

	if err != nil {
		return fmt.Errorf("%w: appending turn: %v", domain.ErrPersistence, err)
	}
	return nil
}

// History returns the session's turns in append order. An unseen
// session yields an empty slice.
func (s *conversationStore) History(ctx context.Context, sessionID string) ([]domain.Turn, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT role, content, created_at
		FROM conversation_turns WHERE session_id = ?
		ORDER BY seq
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying turns: %v", domain.ErrPersistence, err)
	}
	defer rows.Close()

	turns := []domain.Turn{}
	for rows.Next() {
		var turn domain.Turn
		var role string
		if err := rows.Scan(&role, &turn.Content, &turn.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: scanning turn: %v", domain.ErrPersistence, err)
		}
		turn.Role = domain.Role(role)
		turns = append(turns, turn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating turns: %v", domain.ErrPersistence, err)
	}

	return turns, nil
}

// Close is a no-op; the owning Store closes the database.
func (s *conversationStore) Close() error {
	return nil
}
