package vectordb

import (
	"context"
	"testing"

	"github.com/warrior-ram/demo-ai-chatbot/internal/modules/ai/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItem(id string, vec []float32, docID int64) repository.VectorUpsertItem {
	return repository.VectorUpsertItem{
		ID:         id,
		Vector:     vec,
		DocumentID: docID,
		Filename:   "doc.txt",
		ChunkIndex: 0,
		ChunkCount: 1,
		Content:    "content of " + id,
	}
}

func TestMemoryStoreUpsertAndSearch(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(3)

	_, err := s.Upsert(ctx, 1, []repository.VectorUpsertItem{
		testItem("a", []float32{1, 0, 0}, 10),
		testItem("b", []float32{0, 1, 0}, 10),
		testItem("c", []float32{0, 0, 1}, 11),
	})
	require.NoError(t, err)

	hits, err := s.Search(ctx, 1, []float32{1, 0, 0}, 2)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "a", hits[0].ID)
	assert.InDelta(t, 0.0, float64(hits[0].Distance), 1e-6)
	assert.Equal(t, int64(10), hits[0].DocumentID)
	assert.Equal(t, "doc.txt", hits[0].Filename)
}

func TestMemoryStoreBotIsolation(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(2)

	_, err := s.Upsert(ctx, 1, []repository.VectorUpsertItem{testItem("a", []float32{1, 0}, 1)})
	require.NoError(t, err)
	_, err = s.Upsert(ctx, 2, []repository.VectorUpsertItem{testItem("b", []float32{0, 1}, 2)})
	require.NoError(t, err)

	hits, err := s.Search(ctx, 1, []float32{0, 1}, 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "a", hits[0].ID)

	n, err := s.CountVectors(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestMemoryStoreUpsertOverwritesByID(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(2)

	_, err := s.Upsert(ctx, 1, []repository.VectorUpsertItem{testItem("a", []float32{1, 0}, 1)})
	require.NoError(t, err)
	_, err = s.Upsert(ctx, 1, []repository.VectorUpsertItem{testItem("a", []float32{0, 1}, 1)})
	require.NoError(t, err)

	n, err := s.CountVectors(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestMemoryStoreDimMismatch(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(4)

	_, err := s.Upsert(ctx, 1, []repository.VectorUpsertItem{testItem("a", []float32{1, 0}, 1)})
	assert.Error(t, err)

	_, err = s.Search(ctx, 1, []float32{1, 0}, 5)
	assert.Error(t, err)
}

func TestMemoryStoreHasCollection(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(2)

	has, err := s.HasCollection(ctx, 1)
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, s.EnsureCollection(ctx, 1))
	has, err = s.HasCollection(ctx, 1)
	require.NoError(t, err)
	assert.True(t, has)

	// 未知机器人检索返回空结果而不是报错
	hits, err := s.Search(ctx, 99, []float32{1, 0}, 5)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestCollectionName(t *testing.T) {
	assert.Equal(t, "knowledge_base_bot_42", CollectionName(42))
}
