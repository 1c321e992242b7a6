// Command quarry ingests documents into a local vector store and answers
// questions about them.
package main

import (
	"errors"
	"fmt"
	"os"

	ollamaembed "github.com/corvid-labs/quarry-cli/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/corvid-labs/quarry-cli/internal/adapters/driven/embedding/openai"
	ollamagen "github.com/corvid-labs/quarry-cli/internal/adapters/driven/generator/ollama"
	openaigen "github.com/corvid-labs/quarry-cli/internal/adapters/driven/generator/openai"
	"github.com/corvid-labs/quarry-cli/internal/adapters/driven/storage/sqlite"
	"github.com/corvid-labs/quarry-cli/internal/adapters/driven/tokenizer/tiktoken"
	"github.com/corvid-labs/quarry-cli/internal/adapters/driving/cli"
	"github.com/corvid-labs/quarry-cli/internal/chunker"
	"github.com/corvid-labs/quarry-cli/internal/config"
	"github.com/corvid-labs/quarry-cli/internal/core/ports/driven"
	"github.com/corvid-labs/quarry-cli/internal/core/services"
	"github.com/corvid-labs/quarry-cli/internal/extractors"
	"github.com/corvid-labs/quarry-cli/internal/extractors/pdf"
	"github.com/corvid-labs/quarry-cli/internal/extractors/plaintext"
	"github.com/corvid-labs/quarry-cli/internal/logger"
)

// version is overridden at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetServicesBuilder(buildServices)

	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// buildServices assembles the service bundle from the config file and
// the parsed flag values. Flags take precedence over the file.
func buildServices(dataDir, collection string) (*cli.Services, error) {
	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		return nil, err
	}
	if dataDir == "" {
		dataDir = cfg.DataDir
	}
	if collection == "" {
		collection = cfg.Collection
	}

	embedder, err := newEmbedder(cfg.Embedding)
	if err != nil {
		return nil, err
	}

	store, err := sqlite.NewStore(dataDir, embedder)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	chk, tokenizer, err := newChunker(cfg.Chunker)
	if err != nil {
		store.Close()
		return nil, err
	}

	generator, err := newGenerator(cfg.Generator)
	if err != nil {
		store.Close()
		return nil, err
	}

	extractor := newExtractorRegistry(cfg.Ingest.Formats)

	ingestor := services.NewIngestService(store, extractor, chk, collection)
	answerer := services.NewAnswerService(store, generator, collection)
	admin := services.NewAdminService(store)

	closeAll := func() error {
		var errs []error
		if tokenizer != nil {
			errs = append(errs, tokenizer.Close())
		}
		if generator != nil {
			errs = append(errs, generator.Close())
		}
		if embedder != nil {
			errs = append(errs, embedder.Close())
		}
		errs = append(errs, store.Close())
		return errors.Join(errs...)
	}

	return &cli.Services{
		Ingestor: ingestor,
		Answerer: answerer,
		Admin:    admin,
		Close:    closeAll,
	}, nil
}

func newEmbedder(cfg config.ProviderConfig) (driven.EmbeddingService, error) {
	switch cfg.Provider {
	case "ollama", "":
		return ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		}), nil
	case "openai":
		return openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:  apiKey(cfg),
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		})
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.Provider)
	}
}

func newGenerator(cfg config.ProviderConfig) (driven.AnswerGenerator, error) {
	switch cfg.Provider {
	case "ollama", "":
		return ollamagen.NewGenerator(ollamagen.Config{
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		}), nil
	case "openai":
		return openaigen.NewGenerator(openaigen.Config{
			APIKey:  apiKey(cfg),
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		})
	default:
		return nil, fmt.Errorf("unknown generator provider %q", cfg.Provider)
	}
}

// apiKey resolves the provider key, falling back to the environment.
func apiKey(cfg config.ProviderConfig) string {
	if cfg.APIKey != "" {
		return cfg.APIKey
	}
	return os.Getenv("OPENAI_API_KEY")
}

// newChunker builds the configured chunking strategy. The token
// strategy also returns its tokenizer so it can be closed on shutdown.
func newChunker(cfg config.ChunkerConfig) (driven.Chunker, driven.Tokenizer, error) {
	switch cfg.Strategy {
	case chunker.StrategyToken:
		tok, err := tiktoken.New(cfg.Encoding)
		if err != nil {
			return nil, nil, fmt.Errorf("loading tokenizer: %w", err)
		}
		var opts []chunker.TokenOption
		if cfg.Size > 0 {
			opts = append(opts, chunker.WithTokenChunkSize(cfg.Size))
		}
		if cfg.Overlap >= 0 {
			opts = append(opts, chunker.WithTokenOverlap(cfg.Overlap))
		}
		return chunker.NewToken(tok, opts...), tok, nil

	case chunker.StrategyCharacter, "":
		var opts []chunker.CharOption
		if cfg.Size > 0 {
			opts = append(opts, chunker.WithCharChunkSize(cfg.Size))
		}
		if cfg.Overlap >= 0 {
			opts = append(opts, chunker.WithCharOverlap(cfg.Overlap))
		}
		return chunker.NewCharacter(opts...), nil, nil

	default:
		return nil, nil, fmt.Errorf("unknown chunker strategy %q", cfg.Strategy)
	}
}

func newExtractorRegistry(formats []string) *extractors.Registry {
	registry := extractors.NewRegistry()
	for _, format := range formats {
		switch format {
		case "pdf":
			registry.Register(pdf.New())
		case "text", "txt":
			registry.Register(plaintext.New())
		default:
			logger.Warn("Unknown ingest format %q in config, ignoring", format)
		}
	}
	return registry
}
