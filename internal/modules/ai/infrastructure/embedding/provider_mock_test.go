package embedding

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockEmbedderDeterministic(t *testing.T) {
	m := NewMockEmbedder(64)
	ctx := context.Background()

	a, err := m.EmbedStrings(ctx, []string{"hello world"})
	require.NoError(t, err)
	b, err := m.EmbedStrings(ctx, []string{"hello world"})
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestMockEmbedderNormalized(t *testing.T) {
	m := NewMockEmbedder(64)
	vecs, err := m.EmbedStrings(context.Background(), []string{"starter plan pricing details"})
	require.NoError(t, err)
	require.Len(t, vecs, 1)
	require.Len(t, vecs[0], 64)

	var norm float64
	for _, v := range vecs[0] {
		norm += v * v
	}
	assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-9)
}

func TestMockEmbedderWordOverlapCloser(t *testing.T) {
	m := NewMockEmbedder(128)
	ctx := context.Background()
	vecs, err := m.EmbedStrings(ctx, []string{
		"starter plan pricing",
		"starter plan pricing details here",
		"completely unrelated gibberish words",
	})
	require.NoError(t, err)

	// 词汇重叠的文本距离更近
	assert.Less(t, l2(vecs[0], vecs[1]), l2(vecs[0], vecs[2]))
}

func TestMockEmbedderEmptyText(t *testing.T) {
	m := NewMockEmbedder(16)
	vecs, err := m.EmbedStrings(context.Background(), []string{""})
	require.NoError(t, err)
	require.Len(t, vecs, 1)
	for _, v := range vecs[0] {
		assert.Zero(t, v)
	}
}

func l2(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}
