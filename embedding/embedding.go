// Package embedding maps text to fixed-dimension vectors via an external
// provider, degrading to zero vectors when the provider misbehaves.
package embedding

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
)

type ProviderType string

const (
	ProviderTypeOllama ProviderType = "ollama"
	ProviderTypeOpenAI ProviderType = "openai"
)

type Config struct {
	Provider  ProviderType  `yaml:"provider"`
	BaseURL   string        `yaml:"baseURL"`
	Model     string        `yaml:"model"`
	APIKey    string        `yaml:"apiKey"`
	Dimension int           `yaml:"dimension"`
	Timeout   time.Duration `yaml:"timeout"`
}

func (cfg *Config) SetDefaults() {
	if cfg.Provider == "" {
		cfg.Provider = ProviderTypeOllama
	}

	if cfg.Model == "" {
		cfg.Model = "nomic-embed-text"
	}

	if cfg.Dimension <= 0 {
		cfg.Dimension = 768
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
}

// Provider encodes text into a dense vector. Implementations wrap remote
// embedding APIs and may fail.
type Provider interface {
	Encode(ctx context.Context, text string) ([]float32, error)
}

// Adapter wraps a Provider with the pipeline's fail-open policy: Embed
// always yields a vector of the configured dimension. Whitespace-only input
// and any provider failure produce the zero vector, the latter logged so
// degraded retrieval quality stays diagnosable.
type Adapter struct {
	provider  Provider
	dimension int
	timeout   time.Duration
	log       *zap.Logger
}

func NewAdapter(provider Provider, cfg Config) *Adapter {
	cfg.SetDefaults()

	log := zap.L().With(
		zap.String("component", "embedding"),
	)

	return &Adapter{
		provider:  provider,
		dimension: cfg.Dimension,
		timeout:   cfg.Timeout,
		log:       log,
	}
}

func (a *Adapter) Dimension() int {
	return a.dimension
}

func (a *Adapter) Embed(ctx context.Context, text string) []float32 {
	if strings.TrimSpace(text) == "" {
		return make([]float32, a.dimension)
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	vec, err := a.provider.Encode(ctx, text)
	if err != nil {
		a.log.Warn("provider failed, substituting zero vector",
			zap.Error(err),
		)

		return make([]float32, a.dimension)
	}

	if len(vec) != a.dimension {
		a.log.Warn("provider returned wrong dimension, substituting zero vector",
			zap.Int("want", a.dimension),
			zap.Int("got", len(vec)),
		)

		return make([]float32, a.dimension)
	}

	return vec
}
