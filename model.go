package paperqa

import (
	"encoding/json"
	"errors"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/quoria/paperqa/embedding"
	"github.com/quoria/paperqa/generate"
	"github.com/quoria/paperqa/persistence"
	"github.com/quoria/paperqa/vector"
)

var (
	ErrInvalidDocument  = errors.New("document has no content")
	ErrEmptyQuestion    = errors.New("question is empty")
	ErrDocumentNotFound = errors.New("document not found")
)

type Config struct {
	ChunkSize       int                `yaml:"chunkSize"`
	TopK            int                `yaml:"topK"`
	CacheCapacity   int                `yaml:"cacheCapacity"`
	EmbedTimeout    Duration           `yaml:"embedTimeout"`
	GenerateTimeout Duration           `yaml:"generateTimeout"`
	Embedding       embedding.Config   `yaml:"embedding"`
	Generate        generate.Config    `yaml:"generate"`
	Vector          vector.Config      `yaml:"vector"`
	Persistence     persistence.Config `yaml:"persistence"`
}

func (cfg *Config) SetDefaults() {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = 500
	}

	if cfg.TopK <= 0 {
		cfg.TopK = 3
	}

	// Timeouts are written as strings ("30s") in config.yaml and forwarded
	// to the provider configs here.
	if cfg.EmbedTimeout > 0 {
		cfg.Embedding.Timeout = cfg.EmbedTimeout.Duration()
	}

	if cfg.GenerateTimeout > 0 {
		cfg.Generate.Timeout = cfg.GenerateTimeout.Duration()
	}

	cfg.Embedding.SetDefaults()
	cfg.Generate.SetDefaults()

	if cfg.Vector.Dimension <= 0 {
		cfg.Vector.Dimension = cfg.Embedding.Dimension
	}
}

type Duration time.Duration

func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

func (d Duration) MarshalJSON() ([]byte, error) {
	str := d.Duration().String()
	return json.Marshal(str)
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	duration, err := time.ParseDuration(str)
	if err != nil {
		return err
	}

	*d = Duration(duration)
	return nil
}

func (d Duration) MarshalYAML() ([]byte, error) {
	str := d.Duration().String()
	return yaml.Marshal(str)
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var str string
	if err := value.Decode(&str); err != nil {
		return err
	}

	duration, err := time.ParseDuration(str)
	if err != nil {
		return err
	}

	*d = Duration(duration)
	return nil
}

// Document is one uploaded document resident in memory. Once registered it
// is immutable: the chunk sequence and index never change, so concurrent
// searches need no locking.
type Document struct {
	ID       string
	Filename string
	Chunks   []string
	Index    vector.Index
}

type DocumentInfo struct {
	ID       string `json:"document_id"`
	Filename string `json:"filename,omitempty"`
}

type UploadResult struct {
	DocumentID string `json:"document_id"`
	ChunkCount int    `json:"chunk_count"`
}
