package embedding

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubProvider struct {
	vec   []float32
	err   error
	calls int
}

func (p *stubProvider) Encode(ctx context.Context, text string) ([]float32, error) {
	p.calls++
	return p.vec, p.err
}

func TestAdapterEmbed(t *testing.T) {
	assert := assert.New(t)

	provider := &stubProvider{vec: []float32{0.5, 0.25, 0.125}}

	adapter := NewAdapter(provider, Config{Dimension: 3})

	vec := adapter.Embed(context.Background(), "some text")
	assert.Equal([]float32{0.5, 0.25, 0.125}, vec)
	assert.Equal(1, provider.calls)
}

func TestAdapterEmptyText(t *testing.T) {
	assert := assert.New(t)

	provider := &stubProvider{vec: []float32{1, 1, 1}}

	adapter := NewAdapter(provider, Config{Dimension: 3})

	vec := adapter.Embed(context.Background(), "   \n\t ")
	assert.Equal([]float32{0, 0, 0}, vec)
	assert.Equal(0, provider.calls, "provider must not be called for blank text")
}

func TestAdapterFailOpen(t *testing.T) {
	assert := assert.New(t)

	provider := &stubProvider{err: errors.New("model unavailable")}

	adapter := NewAdapter(provider, Config{Dimension: 4})

	vec := adapter.Embed(context.Background(), "some text")
	assert.Equal([]float32{0, 0, 0, 0}, vec)
}

func TestAdapterWrongDimension(t *testing.T) {
	assert := assert.New(t)

	provider := &stubProvider{vec: []float32{1, 2}}

	adapter := NewAdapter(provider, Config{Dimension: 4})

	vec := adapter.Embed(context.Background(), "some text")
	assert.Equal([]float32{0, 0, 0, 0}, vec)
}
