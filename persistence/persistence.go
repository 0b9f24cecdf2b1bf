// Package persistence saves and reloads per-document index snapshots.
package persistence

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("document not persisted")

type Config struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
}

// Snapshot is the durable representation of one document: its chunk texts
// and the embedding vectors in matching order. Loading a snapshot must
// reconstruct an index whose search behaviour is indistinguishable from the
// one that was saved.
type Snapshot struct {
	Filename  string
	Dimension int
	Chunks    []string
	Vectors   [][]float32
}

// Store persists snapshots keyed by document ID. Save must be all-or-nothing:
// a crashed or concurrent partial write never becomes visible to Load.
type Store interface {
	Save(ctx context.Context, id string, snap Snapshot) error
	Load(ctx context.Context, id string) (Snapshot, error)
	List(ctx context.Context) ([]string, error)
}
