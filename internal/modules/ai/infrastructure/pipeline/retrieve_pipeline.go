package pipeline

import (
	"context"
	"fmt"

	"github.com/warrior-ram/demo-ai-chatbot/internal/modules/ai/domain/repository"

	"github.com/cloudwego/eino/components/embedding"
	"github.com/cloudwego/eino/compose"
)

// RetrieveRequest 知识库召回 Pipeline 的输入
type RetrieveRequest struct {
	BotID int64  // 机器人 ID（必填，决定检索哪个集合）
	Query string // 用户问题（必填）
	TopK  int    // 返回 Top-K 个 chunks（默认 5，范围 1-50）
}

// RetrievedChunk 召回的单个知识片段
type RetrievedChunk struct {
	Content    string  `json:"content"`
	Filename   string  `json:"filename"`
	DocumentID int64   `json:"document_id"`
	ChunkIndex int     `json:"chunk_index"`
	Distance   float32 `json:"distance"`
	// Relevance 相关度 = exp(-distance) 加关键词加成，范围 [0,1]
	Relevance float64 `json:"relevance"`
}

// RetrieveResult 知识库召回 Pipeline 的输出
type RetrieveResult struct {
	Query       string           // 原始用户问题
	Chunks      []RetrievedChunk // 按加成后相关度降序排列
	Confidence  float64          // 整体置信度（首位结果的相关度）
	TotalHits   int              // 向量库原始命中数
	EmbeddingMs int64            // 向量化耗时（毫秒）
	SearchMs    int64            // 检索耗时（毫秒）
	DurationMs  int64            // 总耗时（毫秒）
}

// RetrievePipeline 知识库召回 Pipeline（基于 Eino compose.Graph）
//
// 设计原则：
// 1. 与 IngestPipeline 保持一致的架构风格（Eino Graph + Lambda 节点）
// 2. 只依赖 domain 层接口（VectorStore）与 Eino Embedder，不直接依赖 Milvus SDK
// 3. 机器人隔离内建：检索始终限定在 BotID 对应的集合
type RetrievePipeline struct {
	vs        repository.VectorStore
	embedder  embedding.Embedder
	vectorDim int
	r         compose.Runnable[*RetrieveRequest, *RetrieveResult]
}

func NewRetrievePipeline(vs repository.VectorStore, embedder embedding.Embedder, vectorDim int) (*RetrievePipeline, error) {
	if vs == nil {
		return nil, fmt.Errorf("vector store is nil")
	}
	if embedder == nil {
		return nil, fmt.Errorf("embedder is nil")
	}
	if vectorDim <= 0 {
		return nil, fmt.Errorf("invalid vectorDim: %d", vectorDim)
	}
	p := &RetrievePipeline{vs: vs, embedder: embedder, vectorDim: vectorDim}
	r, err := p.buildGraph(context.Background())
	if err != nil {
		return nil, err
	}
	p.r = r
	return p, nil
}

// Retrieve 执行知识库召回（封装 Eino Runnable.Invoke）
func (p *RetrievePipeline) Retrieve(ctx context.Context, req *RetrieveRequest) (*RetrieveResult, error) {
	if req == nil {
		return nil, fmt.Errorf("retrieve request is nil")
	}
	if p.r == nil {
		return nil, fmt.Errorf("pipeline runnable is nil")
	}
	return p.r.Invoke(ctx, req)
}

// HasKnowledgeBase 检查机器人是否已有知识库集合
func (p *RetrievePipeline) HasKnowledgeBase(ctx context.Context, botID int64) (bool, error) {
	return p.vs.HasCollection(ctx, botID)
}

// normalizeTopK 规范化 TopK 参数（默认 5，范围 1-50）
func normalizeTopK(topK int) int {
	if topK <= 0 {
		return 5
	}
	if topK > 50 {
		return 50
	}
	return topK
}
