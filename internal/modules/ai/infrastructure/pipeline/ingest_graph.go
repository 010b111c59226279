package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/warrior-ram/demo-ai-chatbot/internal/modules/ai/domain/repository"
	"github.com/warrior-ram/demo-ai-chatbot/internal/modules/ai/infrastructure/vectordb"
	"github.com/warrior-ram/demo-ai-chatbot/pkg/zlog"

	"github.com/cloudwego/eino/compose"
	"go.uber.org/zap"
)

// ingestState 入库 Pipeline 的中间状态
type ingestState struct {
	Req    *IngestRequest
	Chunks []string
	Items  []repository.VectorUpsertItem
	Start  time.Time
	Err    error
}

// buildGraph 构建入库 Pipeline 的 Eino Graph
//
// 节点顺序：Validate → ChunkText → EmbedChunks → UpsertVectors → BuildResult
func (p *IngestPipeline) buildGraph(ctx context.Context) (compose.Runnable[*IngestRequest, *IngestResult], error) {
	const (
		Validate      = "Validate"
		ChunkText     = "ChunkText"
		EmbedChunks   = "EmbedChunks"
		UpsertVectors = "UpsertVectors"
		BuildResult   = "BuildResult"
	)
	g := compose.NewGraph[*IngestRequest, *IngestResult]()
	_ = g.AddLambdaNode(Validate, compose.InvokableLambdaWithOption(p.validateNode), compose.WithNodeName(Validate))
	_ = g.AddLambdaNode(ChunkText, compose.InvokableLambdaWithOption(p.chunkTextNode), compose.WithNodeName(ChunkText))
	_ = g.AddLambdaNode(EmbedChunks, compose.InvokableLambdaWithOption(p.embedChunksNode), compose.WithNodeName(EmbedChunks))
	_ = g.AddLambdaNode(UpsertVectors, compose.InvokableLambdaWithOption(p.upsertVectorsNode), compose.WithNodeName(UpsertVectors))
	_ = g.AddLambdaNode(BuildResult, compose.InvokableLambdaWithOption(p.buildResultNode), compose.WithNodeName(BuildResult))
	_ = g.AddEdge(compose.START, Validate)
	_ = g.AddEdge(Validate, ChunkText)
	_ = g.AddEdge(ChunkText, EmbedChunks)
	_ = g.AddEdge(EmbedChunks, UpsertVectors)
	_ = g.AddEdge(UpsertVectors, BuildResult)
	_ = g.AddEdge(BuildResult, compose.END)
	return g.Compile(ctx, compose.WithGraphName("KBIngestPipeline"), compose.WithNodeTriggerMode(compose.AllPredecessor))
}

// validateNode 节点 1：校验请求参数
func (p *IngestPipeline) validateNode(ctx context.Context, req *IngestRequest, _ ...any) (*ingestState, error) {
	st := &ingestState{Req: req, Start: time.Now()}
	if req == nil {
		st.Err = fmt.Errorf("ingest request is nil")
		return st, nil
	}
	if req.BotID <= 0 {
		st.Err = fmt.Errorf("invalid bot_id: %d", req.BotID)
		return st, nil
	}
	if strings.TrimSpace(req.Content) == "" {
		st.Err = fmt.Errorf("document content is empty")
		return st, nil
	}
	return st, nil
}

// chunkTextNode 节点 2：递归切分文档
func (p *IngestPipeline) chunkTextNode(ctx context.Context, st *ingestState, _ ...any) (*ingestState, error) {
	_ = ctx
	if st == nil {
		return &ingestState{Err: fmt.Errorf("nil state"), Start: time.Now()}, nil
	}
	if st.Err != nil {
		return st, nil
	}
	chunks := p.chunker.Chunk(st.Req.Content)
	if len(chunks) == 0 {
		st.Err = fmt.Errorf("no chunks generated from document")
		return st, nil
	}
	st.Chunks = chunks
	return st, nil
}

// embedChunksNode 节点 3：批量向量化并组装写入项
func (p *IngestPipeline) embedChunksNode(ctx context.Context, st *ingestState, _ ...any) (*ingestState, error) {
	if st == nil {
		return &ingestState{Err: fmt.Errorf("nil state"), Start: time.Now()}, nil
	}
	if st.Err != nil {
		return st, nil
	}
	vecs, err := p.embedder.EmbedStrings(ctx, st.Chunks)
	if err != nil {
		st.Err = err
		return st, nil
	}
	if len(vecs) != len(st.Chunks) {
		st.Err = fmt.Errorf("embedding count mismatch: got=%d want=%d", len(vecs), len(st.Chunks))
		return st, nil
	}

	items := make([]repository.VectorUpsertItem, 0, len(st.Chunks))
	for i, chunk := range st.Chunks {
		vec64 := vecs[i]
		if len(vec64) != p.vectorDim {
			st.Err = fmt.Errorf("embedding dim mismatch: got=%d want=%d", len(vec64), p.vectorDim)
			return st, nil
		}
		vec32 := make([]float32, len(vec64))
		for j := range vec64 {
			vec32[j] = float32(vec64[j])
		}
		items = append(items, repository.VectorUpsertItem{
			ID:         fmt.Sprintf("doc_%d_chunk_%d", st.Req.DocumentID, i),
			Vector:     vec32,
			DocumentID: st.Req.DocumentID,
			Filename:   st.Req.Filename,
			ChunkIndex: i,
			ChunkCount: len(st.Chunks),
			Content:    truncate4096(chunk),
		})
	}
	st.Items = items
	return st, nil
}

// upsertVectorsNode 节点 4：写入向量库（集合不存在时惰性创建）
func (p *IngestPipeline) upsertVectorsNode(ctx context.Context, st *ingestState, _ ...any) (*ingestState, error) {
	if st == nil {
		return &ingestState{Err: fmt.Errorf("nil state"), Start: time.Now()}, nil
	}
	if st.Err != nil {
		return st, nil
	}
	if _, err := p.vs.Upsert(ctx, st.Req.BotID, st.Items); err != nil {
		st.Err = err
		return st, nil
	}
	return st, nil
}

// buildResultNode 节点 5：组装最终响应
func (p *IngestPipeline) buildResultNode(ctx context.Context, st *ingestState, _ ...any) (*IngestResult, error) {
	_ = ctx
	if st == nil {
		return nil, fmt.Errorf("nil state")
	}
	res := &IngestResult{
		ChunkCount: len(st.Chunks),
		VectorsOK:  len(st.Items),
		DurationMs: time.Since(st.Start).Milliseconds(),
	}
	if st.Req != nil {
		res.BotID = st.Req.BotID
		res.DocumentID = st.Req.DocumentID
		res.Collection = vectordb.CollectionName(st.Req.BotID)
	}
	if st.Err != nil {
		res.VectorsOK = 0
	}
	zlog.Info(
		"kb ingest done",
		zap.Int64("bot_id", res.BotID),
		zap.Int64("document_id", res.DocumentID),
		zap.Int("chunks", res.ChunkCount),
		zap.Int("vectors_ok", res.VectorsOK),
		zap.Int64("duration_ms", res.DurationMs),
	)
	return res, st.Err
}

func truncate4096(s string) string {
	r := []rune(s)
	if len(r) <= 4096 {
		return s
	}
	return string(r[:4096])
}
