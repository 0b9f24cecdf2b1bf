// Package vector provides the per-document nearest-neighbour index.
package vector

import "errors"

var ErrDimensionMismatch = errors.New("vector dimension mismatch")

type Config struct {
	Dimension int `yaml:"dimension"`
}

// Result is a single nearest-neighbour hit. Position refers to the chunk
// the vector was added for; Distance is the Euclidean distance to the query.
type Result struct {
	Position int     `json:"position"`
	Distance float64 `json:"distance"`
}

// Index is an append-only set of fixed-dimension vectors supporting
// k-nearest-neighbour search. Vector i corresponds to chunk i of a document.
type Index interface {
	Dimension() int
	Len() int
	Add(vec []float32) error
	Search(query []float32, k int) ([]Result, error)
}
