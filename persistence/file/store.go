// Package file persists document snapshots as gob blobs on the filesystem.
package file

import (
	"context"
	"encoding/gob"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/quoria/paperqa/persistence"
)

const snapshotExt = ".snapshot"

type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	return &Store{dir: dir}, nil
}

// Save writes the snapshot to a temporary file and renames it into place,
// so a crash mid-write never leaves a readable-but-corrupt snapshot.
func (s *Store) Save(ctx context.Context, id string, snap persistence.Snapshot) error {
	if !validID(id) {
		return errors.New("invalid document id")
	}

	tmp, err := os.CreateTemp(s.dir, id+".tmp-*")
	if err != nil {
		return err
	}

	if err := gob.NewEncoder(tmp).Encode(&snap); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	return os.Rename(tmp.Name(), s.path(id))
}

func (s *Store) Load(ctx context.Context, id string) (persistence.Snapshot, error) {
	if !validID(id) {
		return persistence.Snapshot{}, persistence.ErrNotFound
	}

	f, err := os.Open(s.path(id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return persistence.Snapshot{}, persistence.ErrNotFound
		}

		return persistence.Snapshot{}, err
	}
	defer f.Close()

	var snap persistence.Snapshot
	if err := gob.NewDecoder(f).Decode(&snap); err != nil {
		return persistence.Snapshot{}, err
	}

	return snap, nil
}

func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, snapshotExt) {
			continue
		}

		ids = append(ids, strings.TrimSuffix(name, snapshotExt))
	}

	return ids, nil
}

func (s *Store) path(id string) string {
	return filepath.Join(s.dir, id+snapshotExt)
}

// Document IDs become file names; anything that could walk out of the
// store directory is rejected.
func validID(id string) bool {
	return id != "" && !strings.ContainsAny(id, `/\`) && !strings.Contains(id, "..")
}
