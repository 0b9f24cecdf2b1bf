// Package chromem persists document snapshots in a chromem-go database,
// one collection per document. chromem normalizes every embedding it
// stores, so the exact vector travels in each chunk's metadata and the
// embedding field only serves chromem's own similarity search.
package chromem

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/philippgille/chromem-go"

	"github.com/quoria/paperqa/persistence"
)

const collectionPrefix = "doc_"

type Store struct {
	db *chromem.DB
}

// NewStore opens a chromem store. With an empty path the database lives in
// memory only, which is useful in tests.
func NewStore(cfg persistence.Config) (*Store, error) {
	if cfg.Path == "" {
		return &Store{db: chromem.NewDB()}, nil
	}

	db, err := chromem.NewPersistentDB(cfg.Path, false)
	if err != nil {
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Save(ctx context.Context, id string, snap persistence.Snapshot) error {
	name := collectionPrefix + id

	// Recreate the collection so a re-save never mixes old and new chunks.
	if err := s.db.DeleteCollection(name); err != nil {
		return err
	}

	collection, err := s.db.CreateCollection(name, nil, noEmbedding)
	if err != nil {
		return err
	}

	docs := make([]chromem.Document, len(snap.Chunks))
	for i, text := range snap.Chunks {
		vec, err := json.Marshal(snap.Vectors[i])
		if err != nil {
			return err
		}

		docs[i] = chromem.Document{
			ID:        strconv.Itoa(i),
			Content:   text,
			Embedding: searchable(snap.Vectors[i]),
			Metadata: map[string]string{
				"filename":  snap.Filename,
				"dimension": strconv.Itoa(snap.Dimension),
				"vector":    string(vec),
			},
		}
	}

	return collection.AddDocuments(ctx, docs, 1)
}

func (s *Store) Load(ctx context.Context, id string) (persistence.Snapshot, error) {
	collection := s.db.GetCollection(collectionPrefix+id, noEmbedding)
	if collection == nil {
		return persistence.Snapshot{}, persistence.ErrNotFound
	}

	count := collection.Count()

	snap := persistence.Snapshot{
		Chunks:  make([]string, count),
		Vectors: make([][]float32, count),
	}

	for i := 0; i < count; i++ {
		doc, err := collection.GetByID(ctx, strconv.Itoa(i))
		if err != nil {
			return persistence.Snapshot{}, err
		}

		var vec []float32
		if err := json.Unmarshal([]byte(doc.Metadata["vector"]), &vec); err != nil {
			return persistence.Snapshot{}, err
		}

		snap.Chunks[i] = doc.Content
		snap.Vectors[i] = vec

		if i == 0 {
			snap.Filename = doc.Metadata["filename"]
			snap.Dimension, _ = strconv.Atoi(doc.Metadata["dimension"])
		}
	}

	return snap, nil
}

func (s *Store) List(ctx context.Context) ([]string, error) {
	collections := s.db.ListCollections()

	ids := make([]string, 0, len(collections))
	for name := range collections {
		if !strings.HasPrefix(name, collectionPrefix) {
			continue
		}

		ids = append(ids, strings.TrimPrefix(name, collectionPrefix))
	}

	return ids, nil
}

// searchable returns a copy of vec that chromem may normalize in place
// without touching the snapshot's storage. A zero vector has no direction
// for cosine normalization, so it gets a unit stand-in; the exact vector
// is restored from metadata on Load either way.
func searchable(vec []float32) []float32 {
	out := make([]float32, len(vec))
	copy(out, vec)

	for _, v := range out {
		if v != 0 {
			return out
		}
	}

	if len(out) > 0 {
		out[0] = 1
	}

	return out
}

// noEmbedding rejects any attempt to embed through chromem itself; every
// stored document carries a precomputed embedding.
func noEmbedding(ctx context.Context, text string) ([]float32, error) {
	return nil, errors.New("embedding through the store is not supported")
}
