package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// OpenAIProvider encodes text through an OpenAI-compatible embeddings API.
type OpenAIProvider struct {
	baseURL string
	model   string
	apiKey  string
	client  *http.Client
}

func NewOpenAIProvider(cfg Config) (*OpenAIProvider, error) {
	cfg.SetDefaults()

	if cfg.APIKey == "" {
		return nil, errors.New("openai embeddings: missing API key")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	model := cfg.Model
	if model == "" || model == "nomic-embed-text" {
		model = "text-embedding-3-small"
	}

	return &OpenAIProvider{
		baseURL: baseURL,
		model:   model,
		apiKey:  cfg.APIKey,
		client:  &http.Client{},
	}, nil
}

type openaiEmbedRequest struct {
	Input string `json:"input"`
	Model string `json:"model"`
}

type openaiEmbedResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
}

func (p *OpenAIProvider) Encode(ctx context.Context, text string) ([]float32, error) {
	body, err := json.Marshal(&openaiEmbedRequest{
		Input: text,
		Model: p.model,
	})

	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.baseURL+"/embeddings", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openai embeddings: unexpected status %d", resp.StatusCode)
	}

	var out openaiEmbedResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}

	if len(out.Data) == 0 {
		return nil, errors.New("openai embeddings: empty response")
	}

	return out.Data[0].Embedding, nil
}
