package embedding

import (
	"context"
	"hash/fnv"
	"math"
	"strings"

	"github.com/cloudwego/eino/components/embedding"
)

// MockEmbedder 离线向量化实现：按词哈希到固定维度并做 L2 归一化。
// 词汇重叠的文本向量距离更近，保证本地开发与测试时检索结果有意义。
type MockEmbedder struct {
	Dim int
}

func NewMockEmbedder(dim int) *MockEmbedder {
	if dim <= 0 {
		dim = 384
	}
	return &MockEmbedder{Dim: dim}
}

func (m *MockEmbedder) EmbedStrings(ctx context.Context, texts []string, opts ...embedding.Option) ([][]float64, error) {
	result := make([][]float64, len(texts))
	for i, text := range texts {
		result[i] = m.embed(text)
	}
	return result, nil
}

func (m *MockEmbedder) embed(text string) []float64 {
	vec := make([]float64, m.Dim)
	words := strings.Fields(strings.ToLower(text))
	for _, w := range words {
		h := fnv.New32a()
		_, _ = h.Write([]byte(w))
		idx := int(h.Sum32()) % m.Dim
		if idx < 0 {
			idx += m.Dim
		}
		vec[idx] += 1.0
	}

	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}

// 确保实现接口
var _ embedding.Embedder = (*MockEmbedder)(nil)
