package repository

import "context"

// VectorStore 是 domain 层定义的"向量库能力抽象"。
//
// 设计约束：
// 1) application / domain 只能依赖本接口，不应直接依赖 Milvus SDK。
// 2) infrastructure 通过适配器实现本接口（MilvusStore / MemoryStore），从而做到可替换。
//
// 隔离约定：每个机器人一个独立集合（knowledge_base_bot_<id>），
// 写入与检索都以 botID 为第一参数，不同机器人的知识库互不可见。

// VectorUpsertItem 向量写入所需的标准字段
type VectorUpsertItem struct {
	ID         string
	Vector     []float32
	DocumentID int64
	Filename   string
	ChunkIndex int
	ChunkCount int
	Content    string
}

// VectorSearchHit 向量检索命中结果，Distance 为 L2 距离（越小越相似）
type VectorSearchHit struct {
	ID         string
	Distance   float32
	DocumentID int64
	Filename   string
	ChunkIndex int
	Content    string
}

// VectorStore 向量数据库接口，按机器人隔离
type VectorStore interface {
	// EnsureCollection 确保机器人的集合存在（首次写入时惰性创建）
	EnsureCollection(ctx context.Context, botID int64) error
	// HasCollection 检查机器人是否已有知识库集合
	HasCollection(ctx context.Context, botID int64) (bool, error)
	Upsert(ctx context.Context, botID int64, items []VectorUpsertItem) ([]string, error)
	Search(ctx context.Context, botID int64, vector []float32, topK int) ([]VectorSearchHit, error)
	// CountVectors 统计机器人集合中的向量数量（用于知识库统计）
	CountVectors(ctx context.Context, botID int64) (int64, error)
}
