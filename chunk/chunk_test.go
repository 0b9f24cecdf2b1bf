package chunk

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplit(t *testing.T) {
	assert := assert.New(t)

	text := strings.Repeat("A", 500) + strings.Repeat("B", 500)

	chunks, err := Split(text, 500)
	if err != nil {
		assert.Fail(err.Error())
		return
	}

	assert.Len(chunks, 2)
	assert.Equal(strings.Repeat("A", 500), chunks[0])
	assert.Equal(strings.Repeat("B", 500), chunks[1])
}

func TestSplitCoversText(t *testing.T) {
	assert := assert.New(t)

	text := "The quick brown fox jumps over the lazy dog"

	chunks, err := Split(text, 7)
	if err != nil {
		assert.Fail(err.Error())
		return
	}

	assert.Equal(text, strings.Join(chunks, ""))

	for _, chunk := range chunks {
		assert.LessOrEqual(len([]rune(chunk)), 7)
		assert.NotEmpty(strings.TrimSpace(chunk))
	}
}

func TestSplitDropsWhitespaceWindows(t *testing.T) {
	assert := assert.New(t)

	// The middle window is pure whitespace and must not survive, while the
	// remaining chunks renumber contiguously.
	text := "abcd" + strings.Repeat(" ", 4) + "efgh"

	chunks, err := Split(text, 4)
	if err != nil {
		assert.Fail(err.Error())
		return
	}

	assert.Equal([]string{"abcd", "efgh"}, chunks)
}

func TestSplitShortText(t *testing.T) {
	assert := assert.New(t)

	chunks, err := Split("hi", 500)
	if err != nil {
		assert.Fail(err.Error())
		return
	}

	assert.Equal([]string{"hi"}, chunks)
}

func TestSplitMultibyte(t *testing.T) {
	assert := assert.New(t)

	text := strings.Repeat("ÿ", 10)

	chunks, err := Split(text, 4)
	if err != nil {
		assert.Fail(err.Error())
		return
	}

	assert.Len(chunks, 3)
	assert.Equal(text, strings.Join(chunks, ""))
}

func TestSplitEmptyText(t *testing.T) {
	assert := assert.New(t)

	_, err := Split("", 500)
	assert.ErrorIs(err, ErrEmptyText)

	_, err = Split("   \n\t  ", 500)
	assert.ErrorIs(err, ErrEmptyText)
}

func TestSplitInvalidSize(t *testing.T) {
	assert := assert.New(t)

	_, err := Split("some text", 0)
	assert.ErrorIs(err, ErrInvalidSize)

	_, err = Split("some text", -3)
	assert.ErrorIs(err, ErrInvalidSize)
}
