// Package generate augments retrieved context with a generative completion
// provider. The provider is an optional capability: wiring in Disabled keeps
// the orchestrator on the extractive path without a conditional branch.
package generate

import (
	"context"
	"errors"
	"strings"
	"time"
)

// ErrDisabled marks the absence of a generative provider. The orchestrator
// treats it like any other provider failure and falls back to the
// extractive answer.
var ErrDisabled = errors.New("generative provider disabled")

type ProviderType string

const (
	ProviderTypeNone   ProviderType = "none"
	ProviderTypeOllama ProviderType = "ollama"
	ProviderTypeOpenAI ProviderType = "openai"
)

type Config struct {
	Provider ProviderType  `yaml:"provider"`
	BaseURL  string        `yaml:"baseURL"`
	Model    string        `yaml:"model"`
	APIKey   string        `yaml:"apiKey"`
	Timeout  time.Duration `yaml:"timeout"`
}

func (cfg *Config) SetDefaults() {
	if cfg.Provider == "" {
		cfg.Provider = ProviderTypeNone
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
}

// Provider produces a completion for a prompt.
type Provider interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Disabled is the no-op Provider used when no generative backend is
// configured.
type Disabled struct{}

func (Disabled) Complete(ctx context.Context, prompt string) (string, error) {
	return "", ErrDisabled
}

// BuildPrompt renders the question-answering prompt from a document's
// display name, the retrieved context and the user's question.
func BuildPrompt(filename, context, question string) string {
	var sb strings.Builder

	sb.WriteString("You are a helpful assistant that answers questions about an uploaded document.\n\n")
	sb.WriteString("Document: ")
	sb.WriteString(filename)
	sb.WriteString("\nContext:\n")
	sb.WriteString(context)
	sb.WriteString("\n\nQuestion: ")
	sb.WriteString(question)
	sb.WriteString("\n\nAnswer the question based solely on the provided context. ")
	sb.WriteString("If the information is not available in the context, say so. ")
	sb.WriteString("Keep the answer concise.\n\nAnswer:")

	return sb.String()
}
