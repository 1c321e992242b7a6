// Package config loads and saves the Quarry configuration file.
//
// Configuration lives in a TOML file, default ~/.quarry/config.toml.
// Flags override file values; file values override defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Default values applied when the file is absent or partial.
const (
	DefaultCollection    = "general"
	DefaultChunkStrategy = "character"
	DefaultFileName      = "config.toml"
)

// Config is the full Quarry configuration.
type Config struct {
	// DataDir is the directory holding the collection store's files.
	DataDir string `toml:"data_dir"`

	// Collection is the default collection name.
	Collection string `toml:"collection"`

	Ingest    IngestConfig   `toml:"ingest"`
	Chunker   ChunkerConfig  `toml:"chunker"`
	Embedding ProviderConfig `toml:"embedding"`
	Generator ProviderConfig `toml:"generator"`
}

// IngestConfig controls the ingestion pipeline.
type IngestConfig struct {
	// Formats lists the enabled document formats ("pdf", "text").
	// Files of other formats are skipped with a notice.
	Formats []string `toml:"formats"`
}

// ChunkerConfig selects and sizes the chunking strategy.
type ChunkerConfig struct {
	// Strategy is "character" or "token".
	Strategy string `toml:"strategy"`

	// Size is the chunk size in the strategy's unit.
	// Zero means the strategy default.
	Size int `toml:"size"`

	// Overlap is the chunk overlap in the strategy's unit.
	// Negative means the strategy default.
	Overlap int `toml:"overlap"`

	// Encoding is the tokenizer encoding or model name for the token
	// strategy.
	Encoding string `toml:"encoding"`
}

// ProviderConfig configures one model provider (embedding or generation).
type ProviderConfig struct {
	// Provider is "ollama" or "openai".
	Provider string `toml:"provider"`

	// BaseURL is the provider's API base URL. Empty means the
	// provider's default.
	BaseURL string `toml:"base_url"`

	// Model is the model name. Empty means the provider's default.
	Model string `toml:"model"`

	// APIKey authenticates against providers that require it.
	APIKey string `toml:"api_key"`
}

// Default returns a configuration with all defaults applied.
func Default() *Config {
	return &Config{
		DataDir:    defaultDataDir(),
		Collection: DefaultCollection,
		Ingest: IngestConfig{
			Formats: []string{"pdf"},
		},
		Chunker: ChunkerConfig{
			Strategy: DefaultChunkStrategy,
			Overlap:  -1,
		},
		Embedding: ProviderConfig{
			Provider: "ollama",
		},
		Generator: ProviderConfig{
			Provider: "ollama",
		},
	}
}

// Load reads the configuration file at path, applying defaults for
// anything unset. A missing file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.DataDir == "" {
		cfg.DataDir = defaultDataDir()
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultCollection
	}
	if cfg.Chunker.Strategy == "" {
		cfg.Chunker.Strategy = DefaultChunkStrategy
	}
	if len(cfg.Ingest.Formats) == 0 {
		cfg.Ingest.Formats = []string{"pdf"}
	}

	return cfg, nil
}

// Save writes the configuration to path, creating parent directories.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultFileName
	}
	return filepath.Join(home, ".quarry", DefaultFileName)
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".quarry-data"
	}
	return filepath.Join(home, ".quarry", "data")
}
