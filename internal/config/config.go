// Package config loads Docent configuration from a TOML file with
// environment variable overrides. Secrets (API keys, SMTP passwords)
// are expected in the environment or a .env file rather than on disk
// in the config.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Provider names accepted in the [ai] section.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	ProviderOllama = "ollama"
)

// Vector index backends accepted in the [vector] section.
const (
	VectorQdrant = "qdrant"
	VectorMemory = "memory"
)

// Config is the full Docent configuration.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	AI      AIConfig      `toml:"ai"`
	Vector  VectorConfig  `toml:"vector"`
	Storage StorageConfig `toml:"storage"`
	SMTP    SMTPConfig    `toml:"smtp"`
	Ingest  IngestConfig  `toml:"ingest"`
}

// ServerConfig holds the HTTP API settings.
type ServerConfig struct {
	// Host is the listen address (default: 127.0.0.1).
	Host string `toml:"host"`

	// Port is the listen port (default: 8080).
	Port int `toml:"port"`

	// MaxUploadBytes bounds one upload body (default: 20 MiB).
	MaxUploadBytes int64 `toml:"max_upload_bytes"`
}

// AIConfig selects the model provider and its models.
type AIConfig struct {
	// Provider is one of "openai", "gemini" or "ollama" (default: openai).
	Provider string `toml:"provider"`

	// APIKey is read from DOCENT_AI_API_KEY, OPENAI_API_KEY or
	// GEMINI_API_KEY; never from the TOML file.
	APIKey string `toml:"-"`

	// ChatModel overrides the provider's default chat model.
	ChatModel string `toml:"chat_model"`

	// EmbeddingModel overrides the provider's default embedding model.
	EmbeddingModel string `toml:"embedding_model"`

	// BaseURL overrides the provider endpoint (proxies, local servers).
	BaseURL string `toml:"base_url"`
}

// VectorConfig selects the vector index backend.
type VectorConfig struct {
	// Backend is "qdrant" or "memory" (default: qdrant).
	Backend string `toml:"backend"`

	// URL is the Qdrant endpoint (default: http://localhost:6333).
	URL string `toml:"url"`

	// APIKey is read from DOCENT_QDRANT_API_KEY or QDRANT_API_KEY.
	APIKey string `toml:"-"`

	// Collection is the Qdrant collection name.
	Collection string `toml:"collection"`
}

// StorageConfig holds persistence settings.
type StorageConfig struct {
	// DataDir is where the SQLite database lives (default:
	// ~/.docent/data). The sentinel ":memory:" keeps metadata and
	// conversations in process memory instead.
	DataDir string `toml:"data_dir"`
}

// SMTPConfig holds booking confirmation email settings. Confirmations
// are disabled when Host is empty.
type SMTPConfig struct {
	Host   string `toml:"host"`
	Port   int    `toml:"port"`
	Sender string `toml:"sender"`

	// Password is read from DOCENT_SMTP_PASSWORD.
	Password string `toml:"-"`

	// Recipient overrides where confirmations are delivered.
	Recipient string `toml:"recipient"`
}

// IngestConfig tunes the ingestion pipeline.
type IngestConfig struct {
	// QueueSize bounds the upload queue.
	QueueSize int `toml:"queue_size"`

	// TimeoutSeconds bounds one background ingestion.
	TimeoutSeconds int `toml:"timeout_seconds"`

	// WatchDir, when set, is polled for dropped files to ingest.
	WatchDir string `toml:"watch_dir"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host:           "127.0.0.1",
			Port:           8080,
			MaxUploadBytes: 20 << 20,
		},
		AI: AIConfig{
			Provider: ProviderOpenAI,
		},
		Vector: VectorConfig{
			Backend:    VectorQdrant,
			URL:        "http://localhost:6333",
			Collection: "docent_passages",
		},
		Ingest: IngestConfig{
			QueueSize:      16,
			TimeoutSeconds: 120,
		},
	}
}

// Load reads the config file, layering defaults underneath and
// environment overrides on top. A missing file is not an error. If
// path is empty, ~/.docent/config.toml is used.
func Load(path string) (Config, error) {
	// .env is a convenience for local runs; absence is fine.
	_ = godotenv.Load()

	cfg := Default()

	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, fmt.Errorf("getting home directory: %w", err)
		}
		path = filepath.Join(home, ".docent", "config.toml")
	}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Defaults plus environment only.
	case err != nil:
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

// applyEnv layers environment variables over the file values.
func applyEnv(cfg *Config) {
	setString(&cfg.AI.Provider, "DOCENT_AI_PROVIDER")
	setString(&cfg.AI.ChatModel, "DOCENT_AI_CHAT_MODEL")
	setString(&cfg.AI.EmbeddingModel, "DOCENT_AI_EMBEDDING_MODEL")
	setString(&cfg.AI.BaseURL, "DOCENT_AI_BASE_URL")

	setString(&cfg.AI.APIKey, "DOCENT_AI_API_KEY")
	if cfg.AI.APIKey == "" {
		switch cfg.AI.Provider {
		case ProviderGemini:
			setString(&cfg.AI.APIKey, "GEMINI_API_KEY")
		default:
			setString(&cfg.AI.APIKey, "OPENAI_API_KEY")
		}
	}

	setString(&cfg.Vector.Backend, "DOCENT_VECTOR_BACKEND")
	setString(&cfg.Vector.URL, "DOCENT_QDRANT_URL")
	setString(&cfg.Vector.APIKey, "DOCENT_QDRANT_API_KEY")
	if cfg.Vector.APIKey == "" {
		setString(&cfg.Vector.APIKey, "QDRANT_API_KEY")
	}
	setString(&cfg.Vector.Collection, "DOCENT_QDRANT_COLLECTION")

	setString(&cfg.Storage.DataDir, "DOCENT_DATA_DIR")

	setString(&cfg.SMTP.Host, "DOCENT_SMTP_HOST")
	setInt(&cfg.SMTP.Port, "DOCENT_SMTP_PORT")
	setString(&cfg.SMTP.Sender, "DOCENT_SMTP_SENDER")
	setString(&cfg.SMTP.Password, "DOCENT_SMTP_PASSWORD")
	setString(&cfg.SMTP.Recipient, "DOCENT_SMTP_RECIPIENT")

	setString(&cfg.Server.Host, "DOCENT_SERVER_HOST")
	setInt(&cfg.Server.Port, "DOCENT_SERVER_PORT")

	setString(&cfg.Ingest.WatchDir, "DOCENT_WATCH_DIR")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
