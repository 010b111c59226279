package vectordb

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/warrior-ram/demo-ai-chatbot/internal/modules/ai/domain/repository"
)

// MemoryStore 进程内向量存储，暴力 L2 检索。
// 未配置 Milvus 时作为兜底，也用于本地开发与测试。
type MemoryStore struct {
	mu        sync.RWMutex
	vectorDim int
	// botID -> vectorID -> 记录
	collections map[int64]map[string]memoryRecord
}

type memoryRecord struct {
	item repository.VectorUpsertItem
}

func NewMemoryStore(vectorDim int) *MemoryStore {
	if vectorDim <= 0 {
		vectorDim = 384
	}
	return &MemoryStore{
		vectorDim:   vectorDim,
		collections: make(map[int64]map[string]memoryRecord),
	}
}

func (s *MemoryStore) EnsureCollection(ctx context.Context, botID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.collections[botID]; !ok {
		s.collections[botID] = make(map[string]memoryRecord)
	}
	return nil
}

func (s *MemoryStore) HasCollection(ctx context.Context, botID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.collections[botID]
	return ok, nil
}

func (s *MemoryStore) Upsert(ctx context.Context, botID int64, items []repository.VectorUpsertItem) ([]string, error) {
	if len(items) == 0 {
		return []string{}, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	col, ok := s.collections[botID]
	if !ok {
		col = make(map[string]memoryRecord)
		s.collections[botID] = col
	}

	ids := make([]string, 0, len(items))
	for _, it := range items {
		if it.ID == "" {
			return nil, fmt.Errorf("upsert item missing ID")
		}
		if len(it.Vector) != s.vectorDim {
			return nil, fmt.Errorf("vector dim mismatch for id=%s, got=%d want=%d", it.ID, len(it.Vector), s.vectorDim)
		}
		col[it.ID] = memoryRecord{item: it}
		ids = append(ids, it.ID)
	}
	return ids, nil
}

func (s *MemoryStore) Search(ctx context.Context, botID int64, vector []float32, topK int) ([]repository.VectorSearchHit, error) {
	if len(vector) != s.vectorDim {
		return nil, fmt.Errorf("vector dim mismatch, got=%d want=%d", len(vector), s.vectorDim)
	}
	if topK <= 0 {
		topK = 5
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	col, ok := s.collections[botID]
	if !ok {
		return []repository.VectorSearchHit{}, nil
	}

	hits := make([]repository.VectorSearchHit, 0, len(col))
	for _, rec := range col {
		hits = append(hits, repository.VectorSearchHit{
			ID:         rec.item.ID,
			Distance:   l2Distance(vector, rec.item.Vector),
			DocumentID: rec.item.DocumentID,
			Filename:   rec.item.Filename,
			ChunkIndex: rec.item.ChunkIndex,
			Content:    rec.item.Content,
		})
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Distance == hits[j].Distance {
			return hits[i].ID < hits[j].ID
		}
		return hits[i].Distance < hits[j].Distance
	})
	if len(hits) > topK {
		hits = hits[:topK]
	}
	return hits, nil
}

func (s *MemoryStore) CountVectors(ctx context.Context, botID int64) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	col, ok := s.collections[botID]
	if !ok {
		return 0, nil
	}
	return int64(len(col)), nil
}

func l2Distance(a, b []float32) float32 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return float32(math.Sqrt(sum))
}

var _ repository.VectorStore = (*MemoryStore)(nil)
