package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCacheGetPut(t *testing.T) {
	assert := assert.New(t)

	c := New(10)

	_, ok := c.Get("doc1", "what is this?")
	assert.False(ok)

	c.Put("doc1", "what is this?", "an answer")

	answer, ok := c.Get("doc1", "what is this?")
	assert.True(ok)
	assert.Equal("an answer", answer)
}

func TestCacheExactKeyMatch(t *testing.T) {
	assert := assert.New(t)

	c := New(10)
	c.Put("doc1", "What is this?", "an answer")

	// No normalization of case or whitespace.
	_, ok := c.Get("doc1", "what is this?")
	assert.False(ok)

	_, ok = c.Get("doc1", " What is this?")
	assert.False(ok)

	_, ok = c.Get("doc2", "What is this?")
	assert.False(ok)
}

func TestCacheEviction(t *testing.T) {
	assert := assert.New(t)

	c := New(2)
	c.Put("doc", "q1", "a1")
	c.Put("doc", "q2", "a2")

	// Touch q1 so q2 becomes the eviction candidate.
	c.Get("doc", "q1")

	c.Put("doc", "q3", "a3")

	assert.Equal(2, c.Len())

	_, ok := c.Get("doc", "q2")
	assert.False(ok)

	_, ok = c.Get("doc", "q1")
	assert.True(ok)

	_, ok = c.Get("doc", "q3")
	assert.True(ok)
}

func TestCacheStableWithinCapacity(t *testing.T) {
	assert := assert.New(t)

	c := New(100)
	c.Put("doc", "q", "first")

	for i := 0; i < 50; i++ {
		answer, ok := c.Get("doc", "q")
		assert.True(ok)
		assert.Equal("first", answer)
	}
}
