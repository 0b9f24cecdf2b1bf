package chromem

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quoria/paperqa/persistence"
	"github.com/quoria/paperqa/vector"
)

func TestSaveAndLoad(t *testing.T) {
	assert := assert.New(t)

	store, err := NewStore(persistence.Config{Backend: "chromem"})
	if err != nil {
		assert.Fail(err.Error())
		return
	}

	ctx := context.Background()

	// Non-unit and zero vectors must survive exactly; chromem's own
	// normalization must stay invisible to the snapshot.
	snap := persistence.Snapshot{
		Filename:  "doc.txt",
		Dimension: 3,
		Chunks:    []string{"first chunk", "second chunk"},
		Vectors: [][]float32{
			{3, 4, 0},
			{0, 0, 0},
		},
	}

	if err := store.Save(ctx, "id-1", snap); err != nil {
		assert.Fail(err.Error())
		return
	}

	loaded, err := store.Load(ctx, "id-1")
	if err != nil {
		assert.Fail(err.Error())
		return
	}

	assert.Equal("doc.txt", loaded.Filename)
	assert.Equal(3, loaded.Dimension)
	assert.Equal(snap.Chunks, loaded.Chunks)
	assert.Equal([][]float32{{3, 4, 0}, {0, 0, 0}}, loaded.Vectors)
}

func TestSaveKeepsCallerVectors(t *testing.T) {
	assert := assert.New(t)

	store, err := NewStore(persistence.Config{Backend: "chromem"})
	if err != nil {
		assert.Fail(err.Error())
		return
	}

	vectors := [][]float32{{3, 4, 0}}

	snap := persistence.Snapshot{
		Filename:  "doc.txt",
		Dimension: 3,
		Chunks:    []string{"chunk"},
		Vectors:   vectors,
	}

	if err := store.Save(context.Background(), "id-1", snap); err != nil {
		assert.Fail(err.Error())
		return
	}

	assert.Equal([]float32{3, 4, 0}, vectors[0], "saving must not mutate the caller's vectors")
}

func TestLoadPreservesSearchOrdering(t *testing.T) {
	assert := assert.New(t)

	store, err := NewStore(persistence.Config{Backend: "chromem"})
	if err != nil {
		assert.Fail(err.Error())
		return
	}

	ctx := context.Background()

	// Normalizing these would flip their Euclidean ordering against the
	// query, so a reloaded index must search on the original vectors.
	snap := persistence.Snapshot{
		Filename:  "doc.txt",
		Dimension: 2,
		Chunks:    []string{"far", "near"},
		Vectors: [][]float32{
			{10, 0},
			{0.9, 0.1},
		},
	}

	if err := store.Save(ctx, "id-1", snap); err != nil {
		assert.Fail(err.Error())
		return
	}

	loaded, err := store.Load(ctx, "id-1")
	if err != nil {
		assert.Fail(err.Error())
		return
	}

	idx := vector.NewFlat(loaded.Dimension)
	for _, vec := range loaded.Vectors {
		if err := idx.Add(vec); err != nil {
			assert.Fail(err.Error())
			return
		}
	}

	results, err := idx.Search([]float32{1, 0}, 2)
	if err != nil {
		assert.Fail(err.Error())
		return
	}

	assert.Equal(1, results[0].Position)
	assert.Equal(0, results[1].Position)
}

func TestLoadMissing(t *testing.T) {
	assert := assert.New(t)

	store, err := NewStore(persistence.Config{Backend: "chromem"})
	if err != nil {
		assert.Fail(err.Error())
		return
	}

	_, err = store.Load(context.Background(), "no-such-id")
	assert.ErrorIs(err, persistence.ErrNotFound)
}

func TestResaveReplacesChunks(t *testing.T) {
	assert := assert.New(t)

	store, err := NewStore(persistence.Config{Backend: "chromem"})
	if err != nil {
		assert.Fail(err.Error())
		return
	}

	ctx := context.Background()

	first := persistence.Snapshot{
		Filename:  "doc.txt",
		Dimension: 2,
		Chunks:    []string{"one", "two", "three"},
		Vectors: [][]float32{
			{1, 0},
			{0, 1},
			{1, 1},
		},
	}

	if err := store.Save(ctx, "id-1", first); err != nil {
		assert.Fail(err.Error())
		return
	}

	second := persistence.Snapshot{
		Filename:  "doc.txt",
		Dimension: 2,
		Chunks:    []string{"only"},
		Vectors:   [][]float32{{1, 0}},
	}

	if err := store.Save(ctx, "id-1", second); err != nil {
		assert.Fail(err.Error())
		return
	}

	loaded, err := store.Load(ctx, "id-1")
	if err != nil {
		assert.Fail(err.Error())
		return
	}

	assert.Equal([]string{"only"}, loaded.Chunks)
	assert.Equal([][]float32{{1, 0}}, loaded.Vectors)
}

func TestList(t *testing.T) {
	assert := assert.New(t)

	store, err := NewStore(persistence.Config{Backend: "chromem"})
	if err != nil {
		assert.Fail(err.Error())
		return
	}

	ctx := context.Background()

	snap := persistence.Snapshot{
		Filename:  "doc.txt",
		Dimension: 2,
		Chunks:    []string{"chunk"},
		Vectors:   [][]float32{{1, 0}},
	}

	assert.NoError(store.Save(ctx, "id-a", snap))
	assert.NoError(store.Save(ctx, "id-b", snap))

	ids, err := store.List(ctx)
	if err != nil {
		assert.Fail(err.Error())
		return
	}

	assert.ElementsMatch([]string{"id-a", "id-b"}, ids)
}
