// Package extract turns uploaded file bytes into plain text.
package extract

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

var ErrExtractionFailed = errors.New("text extraction failed")

// Extractor converts raw file bytes into text. Implementations for binary
// formats (PDF and friends) plug in here; the core only consumes the text.
type Extractor interface {
	Extract(data []byte) (string, error)
}

// PlainText extracts UTF-8 text files as-is.
type PlainText struct{}

func (PlainText) Extract(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: not valid UTF-8", ErrExtractionFailed)
	}

	return string(data), nil
}
