package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/docent-ai/docent/internal/adapters/driven/config/file"
	ollamaembed "github.com/docent-ai/docent/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/docent-ai/docent/internal/adapters/driven/embedding/openai"
	geminillm "github.com/docent-ai/docent/internal/adapters/driven/llm/gemini"
	ollamallm "github.com/docent-ai/docent/internal/adapters/driven/llm/ollama"
	openaillm "github.com/docent-ai/docent/internal/adapters/driven/llm/openai"
	"github.com/docent-ai/docent/internal/adapters/driven/notify/smtp"
	storagememory "github.com/docent-ai/docent/internal/adapters/driven/storage/memory"
	"github.com/docent-ai/docent/internal/adapters/driven/storage/sqlite"
	vecmemory "github.com/docent-ai/docent/internal/adapters/driven/vector/memory"
	"github.com/docent-ai/docent/internal/adapters/driven/vector/qdrant"
	"github.com/docent-ai/docent/internal/chunkers"
	"github.com/docent-ai/docent/internal/chunkers/recursive"
	"github.com/docent-ai/docent/internal/chunkers/semantic"
	"github.com/docent-ai/docent/internal/config"
	"github.com/docent-ai/docent/internal/core/ports/driven"
	"github.com/docent-ai/docent/internal/core/services"
	"github.com/docent-ai/docent/internal/extractors"
	"github.com/docent-ai/docent/internal/extractors/pdf"
	"github.com/docent-ai/docent/internal/extractors/plaintext"
	"github.com/docent-ai/docent/internal/logger"
)

// application holds the wired core services. It is built per command
// invocation and closed when the command returns.
type application struct {
	cfg config.Config

	metadata      driven.MetadataStore
	conversations driven.ConversationStore

	embedder  driven.EmbeddingService
	index     driven.VectorIndex
	llm       driven.LLMService
	toolset   *services.Toolset
	agent     *services.AgentService
	ingestion *services.IngestionService

	closers []func() error
}

// buildApp wires the full service graph from configuration.
func buildApp(ctx context.Context, cfg config.Config) (*application, error) {
	app := &application{cfg: cfg}

	// ":memory:" keeps all state in process memory for ephemeral runs.
	if cfg.Storage.DataDir == ":memory:" {
		app.metadata = storagememory.NewMetadataStore()
		app.conversations = storagememory.NewConversationStore()
	} else {
		store, err := sqlite.NewStore(cfg.Storage.DataDir)
		if err != nil {
			return nil, fmt.Errorf("opening store: %w", err)
		}
		app.metadata = store.MetadataStore()
		app.conversations = store.ConversationStore()
		app.closers = append(app.closers, store.Close)
	}

	var err error
	app.embedder, err = buildEmbedder(cfg)
	if err != nil {
		app.Close()
		return nil, err
	}

	app.index, err = buildIndex(ctx, cfg, app.embedder)
	if err != nil {
		app.Close()
		return nil, err
	}

	app.llm, err = app.buildLLM(ctx, cfg)
	if err != nil {
		app.Close()
		return nil, err
	}

	var notifier driven.Notifier
	if cfg.SMTP.Host != "" {
		n, err := smtp.NewNotifier(smtp.Config{
			Host:      cfg.SMTP.Host,
			Port:      cfg.SMTP.Port,
			Sender:    cfg.SMTP.Sender,
			Password:  cfg.SMTP.Password,
			Recipient: cfg.SMTP.Recipient,
		})
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("configuring notifier: %w", err)
		}
		notifier = n
	} else {
		logger.Debug("smtp host not configured, booking confirmations disabled")
	}

	app.toolset = services.NewToolset(app.index, app.metadata, notifier)
	app.agent = services.NewAgentService(app.llm, app.toolset, app.conversations)

	// The system prompt is user-editable under ~/.docent/prompts/.
	prompts, err := file.NewPromptStore("", map[string]string{
		file.PromptChatSystem: services.DefaultSystemPrompt,
	})
	if err == nil {
		if prompt, loadErr := prompts.Load(file.PromptChatSystem); loadErr == nil {
			app.agent.SetSystemPrompt(prompt)
		} else {
			logger.Warn("loading chat_system prompt: %v", loadErr)
		}
	}

	registry := extractors.NewRegistry(plaintext.New(), pdf.New())
	factory := chunkers.NewFactory(recursive.New(), semantic.New(app.embedder))
	app.ingestion = services.NewIngestionService(registry, factory, app.index, app.metadata, services.IngestionConfig{
		QueueSize:      cfg.Ingest.QueueSize,
		Timeout:        time.Duration(cfg.Ingest.TimeoutSeconds) * time.Second,
		EmbeddingModel: cfg.AI.EmbeddingModel,
	})
	app.closers = append(app.closers, func() error {
		app.ingestion.Close()
		return nil
	})

	return app, nil
}

// buildEmbedder selects the embedding backend. OpenAI serves its own
// provider; Gemini and Ollama setups embed locally via Ollama.
func buildEmbedder(cfg config.Config) (driven.EmbeddingService, error) {
	switch cfg.AI.Provider {
	case config.ProviderOpenAI:
		return openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:  cfg.AI.APIKey,
			BaseURL: cfg.AI.BaseURL,
			Model:   cfg.AI.EmbeddingModel,
		})
	case config.ProviderGemini:
		return ollamaembed.NewEmbeddingService(ollamaembed.Config{
			Model: cfg.AI.EmbeddingModel,
		}), nil
	case config.ProviderOllama:
		return ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL: cfg.AI.BaseURL,
			Model:   cfg.AI.EmbeddingModel,
		}), nil
	default:
		return nil, fmt.Errorf("unknown ai provider %q", cfg.AI.Provider)
	}
}

// buildIndex selects the vector backend.
func buildIndex(ctx context.Context, cfg config.Config, embedder driven.EmbeddingService) (driven.VectorIndex, error) {
	switch cfg.Vector.Backend {
	case config.VectorQdrant:
		index, err := qdrant.NewIndex(qdrant.Config{
			BaseURL:    cfg.Vector.URL,
			APIKey:     cfg.Vector.APIKey,
			Collection: cfg.Vector.Collection,
		}, embedder)
		if err != nil {
			return nil, fmt.Errorf("configuring qdrant: %w", err)
		}
		if err := index.EnsureCollection(ctx); err != nil {
			return nil, fmt.Errorf("preparing qdrant collection: %w", err)
		}
		return index, nil
	case config.VectorMemory:
		return vecmemory.NewIndex(embedder)
	default:
		return nil, fmt.Errorf("unknown vector backend %q", cfg.Vector.Backend)
	}
}

// buildLLM selects the chat model provider.
func (a *application) buildLLM(ctx context.Context, cfg config.Config) (driven.LLMService, error) {
	switch cfg.AI.Provider {
	case config.ProviderOpenAI:
		return openaillm.NewLLMService(openaillm.LLMConfig{
			APIKey:  cfg.AI.APIKey,
			BaseURL: cfg.AI.BaseURL,
			Model:   cfg.AI.ChatModel,
		})
	case config.ProviderGemini:
		svc, err := geminillm.NewLLMService(ctx, geminillm.LLMConfig{
			APIKey: cfg.AI.APIKey,
			Model:  cfg.AI.ChatModel,
		})
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, svc.Close)
		return svc, nil
	case config.ProviderOllama:
		return ollamallm.NewLLMService(ollamallm.LLMConfig{
			BaseURL: cfg.AI.BaseURL,
			Model:   cfg.AI.ChatModel,
		}), nil
	default:
		return nil, fmt.Errorf("unknown ai provider %q", cfg.AI.Provider)
	}
}

// Close releases all resources in reverse construction order.
func (a *application) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			logger.Warn("closing resource: %v", err)
		}
	}
	a.closers = nil
}
