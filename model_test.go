package paperqa

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"

	"github.com/quoria/paperqa/embedding"
	"github.com/quoria/paperqa/generate"
)

func TestConfigYAMLUnmarshal(t *testing.T) {
	assert := assert.New(t)

	input := `chunkSize: 250
topK: 5
embedTimeout: 10s
generateTimeout: 2m
embedding:
  provider: ollama
  model: nomic-embed-text
  dimension: 768
generate:
  provider: openai
  model: gpt-4o-mini
  apiKey: test-key
persistence:
  backend: file
  path: /var/lib/paperqa`

	var cfg Config
	if err := yaml.Unmarshal([]byte(input), &cfg); err != nil {
		assert.Fail(err.Error())
		return
	}

	cfg.SetDefaults()

	assert.Equal(250, cfg.ChunkSize)
	assert.Equal(5, cfg.TopK)
	assert.Equal(embedding.ProviderTypeOllama, cfg.Embedding.Provider)
	assert.Equal(768, cfg.Embedding.Dimension)
	assert.Equal(10*time.Second, cfg.Embedding.Timeout)
	assert.Equal(generate.ProviderTypeOpenAI, cfg.Generate.Provider)
	assert.Equal(2*time.Minute, cfg.Generate.Timeout)
	assert.Equal("file", cfg.Persistence.Backend)
	assert.Equal(768, cfg.Vector.Dimension)
}

func TestConfigDefaults(t *testing.T) {
	assert := assert.New(t)

	var cfg Config
	cfg.SetDefaults()

	assert.Equal(500, cfg.ChunkSize)
	assert.Equal(3, cfg.TopK)
	assert.Equal(embedding.ProviderTypeOllama, cfg.Embedding.Provider)
	assert.Equal(768, cfg.Embedding.Dimension)
	assert.Equal(generate.ProviderTypeNone, cfg.Generate.Provider)
	assert.Equal(cfg.Embedding.Dimension, cfg.Vector.Dimension)
}

func TestDurationJSONRoundTrip(t *testing.T) {
	assert := assert.New(t)

	d := Duration(90 * time.Second)

	bs, err := json.Marshal(d)
	if err != nil {
		assert.Fail(err.Error())
		return
	}

	assert.Equal(`"1m30s"`, string(bs))

	var decoded Duration
	if err := json.Unmarshal(bs, &decoded); err != nil {
		assert.Fail(err.Error())
		return
	}

	assert.Equal(d, decoded)
}
