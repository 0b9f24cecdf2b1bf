package vector

import (
	"math"
	"sort"
)

// Flat is a brute-force L2 index over dense float32 vectors. It is not
// safe for concurrent mutation; owners publish a fully built index and
// treat it as read-only afterwards.
type Flat struct {
	dimension int
	vectors   [][]float32
}

func NewFlat(dimension int) *Flat {
	return &Flat{dimension: dimension}
}

func (idx *Flat) Dimension() int {
	return idx.dimension
}

func (idx *Flat) Len() int {
	return len(idx.vectors)
}

// Add appends a vector. The vector is copied, so callers may reuse the slice.
func (idx *Flat) Add(vec []float32) error {
	if len(vec) != idx.dimension {
		return ErrDimensionMismatch
	}

	stored := make([]float32, idx.dimension)
	copy(stored, vec)

	idx.vectors = append(idx.vectors, stored)
	return nil
}

// Search returns the min(k, Len()) vectors closest to query, ascending by
// Euclidean distance. Equal distances are broken by insertion position, so
// results are deterministic for a fixed index and query.
func (idx *Flat) Search(query []float32, k int) ([]Result, error) {
	if len(query) != idx.dimension {
		return nil, ErrDimensionMismatch
	}

	if k <= 0 || len(idx.vectors) == 0 {
		return []Result{}, nil
	}

	// Squared distances preserve the Euclidean ordering.
	results := make([]Result, len(idx.vectors))
	for i, vec := range idx.vectors {
		results[i] = Result{
			Position: i,
			Distance: squaredDistance(query, vec),
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Distance != results[j].Distance {
			return results[i].Distance < results[j].Distance
		}

		return results[i].Position < results[j].Position
	})

	if k > len(results) {
		k = len(results)
	}

	results = results[:k]
	for i := range results {
		results[i].Distance = math.Sqrt(results[i].Distance)
	}

	return results, nil
}

// Vectors exposes the stored vectors for snapshotting. The returned slices
// are the index's own storage and must not be mutated.
func (idx *Flat) Vectors() [][]float32 {
	return idx.vectors
}

func squaredDistance(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}

	return sum
}
