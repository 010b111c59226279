package pipeline

import (
	"context"
	"fmt"

	"github.com/warrior-ram/demo-ai-chatbot/internal/modules/ai/domain/repository"
	"github.com/warrior-ram/demo-ai-chatbot/internal/modules/ai/infrastructure/chunking"

	"github.com/cloudwego/eino/components/embedding"
	"github.com/cloudwego/eino/compose"
)

// IngestRequest 文档入库 Pipeline 的输入
type IngestRequest struct {
	BotID      int64
	DocumentID int64
	Filename   string
	Content    string
}

// IngestResult 文档入库 Pipeline 的输出
type IngestResult struct {
	BotID      int64  `json:"bot_id"`
	DocumentID int64  `json:"document_id"`
	ChunkCount int    `json:"chunk_count"`
	VectorsOK  int    `json:"vectors_ok"`
	Collection string `json:"collection"`
	DurationMs int64  `json:"duration_ms"`
}

// IngestPipeline 文档入库 Pipeline：切分 → 向量化 → 写入向量库
type IngestPipeline struct {
	vs        repository.VectorStore
	embedder  embedding.Embedder
	chunker   *chunking.RecursiveChunker
	vectorDim int
	r         compose.Runnable[*IngestRequest, *IngestResult]
}

func NewIngestPipeline(vs repository.VectorStore, embedder embedding.Embedder, chunker *chunking.RecursiveChunker, vectorDim int) (*IngestPipeline, error) {
	if vs == nil {
		return nil, fmt.Errorf("vector store is nil")
	}
	if embedder == nil {
		return nil, fmt.Errorf("embedder is nil")
	}
	if chunker == nil {
		return nil, fmt.Errorf("chunker is nil")
	}
	if vectorDim <= 0 {
		return nil, fmt.Errorf("invalid vectorDim: %d", vectorDim)
	}
	p := &IngestPipeline{vs: vs, embedder: embedder, chunker: chunker, vectorDim: vectorDim}
	r, err := p.buildGraph(context.Background())
	if err != nil {
		return nil, err
	}
	p.r = r
	return p, nil
}

// Ingest 执行文档入库（封装 Eino Runnable.Invoke）
func (p *IngestPipeline) Ingest(ctx context.Context, req *IngestRequest) (*IngestResult, error) {
	if req == nil {
		return nil, fmt.Errorf("ingest request is nil")
	}
	if p.r == nil {
		return nil, fmt.Errorf("pipeline runnable is nil")
	}
	return p.r.Invoke(ctx, req)
}
