// Package chunk splits extracted document text into bounded segments
// suitable for embedding and retrieval.
package chunk

import (
	"errors"
	"strings"
)

var (
	ErrEmptyText   = errors.New("text has no content")
	ErrInvalidSize = errors.New("chunk size must be positive")
)

// Split cuts text into contiguous, non-overlapping windows of at most size
// runes, in original order. Windows that contain only whitespace are dropped;
// the surviving chunks are numbered by their position in the returned slice.
func Split(text string, size int) ([]string, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}

	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	runes := []rune(text)

	chunks := make([]string, 0, (len(runes)+size-1)/size)
	for start := 0; start < len(runes); start += size {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}

		window := string(runes[start:end])
		if strings.TrimSpace(window) == "" {
			continue
		}

		chunks = append(chunks, window)
	}

	if len(chunks) == 0 {
		return nil, ErrEmptyText
	}

	return chunks, nil
}
