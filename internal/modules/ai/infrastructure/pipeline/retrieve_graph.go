package pipeline

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/warrior-ram/demo-ai-chatbot/internal/modules/ai/domain/repository"
	"github.com/warrior-ram/demo-ai-chatbot/pkg/zlog"

	"github.com/cloudwego/eino/compose"
	"go.uber.org/zap"
)

// retrieveState 召回 Pipeline 的中间状态（在节点间传递）
type retrieveState struct {
	Req         *RetrieveRequest
	QueryVec    []float32                    // Query 向量
	Hits        []repository.VectorSearchHit // 向量库原始命中
	Chunks      []RetrievedChunk             // 加成重排后的结果
	Confidence  float64                      // 首位结果的相关度
	Start       time.Time
	EmbeddingMs int64
	SearchMs    int64
	Err         error
}

// buildGraph 构建召回 Pipeline 的 Eino Graph
//
// 节点顺序：Validate → EmbedQuery → SearchVector → Rerank → BuildResult
func (p *RetrievePipeline) buildGraph(ctx context.Context) (compose.Runnable[*RetrieveRequest, *RetrieveResult], error) {
	const (
		Validate     = "Validate"
		EmbedQuery   = "EmbedQuery"
		SearchVector = "SearchVector"
		Rerank       = "Rerank"
		BuildResult  = "BuildResult"
	)
	g := compose.NewGraph[*RetrieveRequest, *RetrieveResult]()
	_ = g.AddLambdaNode(Validate, compose.InvokableLambdaWithOption(p.validateNode), compose.WithNodeName(Validate))
	_ = g.AddLambdaNode(EmbedQuery, compose.InvokableLambdaWithOption(p.embedQueryNode), compose.WithNodeName(EmbedQuery))
	_ = g.AddLambdaNode(SearchVector, compose.InvokableLambdaWithOption(p.searchVectorNode), compose.WithNodeName(SearchVector))
	_ = g.AddLambdaNode(Rerank, compose.InvokableLambdaWithOption(p.rerankNode), compose.WithNodeName(Rerank))
	_ = g.AddLambdaNode(BuildResult, compose.InvokableLambdaWithOption(p.buildResultNode), compose.WithNodeName(BuildResult))
	_ = g.AddEdge(compose.START, Validate)
	_ = g.AddEdge(Validate, EmbedQuery)
	_ = g.AddEdge(EmbedQuery, SearchVector)
	_ = g.AddEdge(SearchVector, Rerank)
	_ = g.AddEdge(Rerank, BuildResult)
	_ = g.AddEdge(BuildResult, compose.END)
	return g.Compile(ctx, compose.WithGraphName("KBRetrievePipeline"), compose.WithNodeTriggerMode(compose.AllPredecessor))
}

// validateNode 节点 1：校验请求参数
func (p *RetrievePipeline) validateNode(ctx context.Context, req *RetrieveRequest, _ ...any) (*retrieveState, error) {
	st := &retrieveState{Req: req, Start: time.Now()}
	if req == nil {
		st.Err = fmt.Errorf("retrieve request is nil")
		return st, nil
	}
	if req.BotID <= 0 {
		st.Err = fmt.Errorf("invalid bot_id: %d", req.BotID)
		return st, nil
	}
	req.Query = strings.TrimSpace(req.Query)
	if req.Query == "" {
		st.Err = fmt.Errorf("missing query")
		return st, nil
	}
	req.TopK = normalizeTopK(req.TopK)
	return st, nil
}

// embedQueryNode 节点 2：将用户问题向量化
func (p *RetrievePipeline) embedQueryNode(ctx context.Context, st *retrieveState, _ ...any) (*retrieveState, error) {
	if st == nil {
		return &retrieveState{Err: fmt.Errorf("nil state"), Start: time.Now()}, nil
	}
	if st.Err != nil {
		return st, nil
	}
	embStart := time.Now()
	vecs, err := p.embedder.EmbedStrings(ctx, []string{st.Req.Query})
	if err != nil {
		st.Err = err
		return st, nil
	}
	if len(vecs) == 0 {
		st.Err = fmt.Errorf("embedding result is empty")
		return st, nil
	}
	vec64 := vecs[0]
	if len(vec64) != p.vectorDim {
		st.Err = fmt.Errorf("embedding dim mismatch: got=%d want=%d", len(vec64), p.vectorDim)
		return st, nil
	}
	vec32 := make([]float32, len(vec64))
	for i := range vec64 {
		vec32[i] = float32(vec64[i])
	}
	st.QueryVec = vec32
	st.EmbeddingMs = time.Since(embStart).Milliseconds()
	return st, nil
}

// searchVectorNode 节点 3：执行向量检索
func (p *RetrievePipeline) searchVectorNode(ctx context.Context, st *retrieveState, _ ...any) (*retrieveState, error) {
	if st == nil {
		return &retrieveState{Err: fmt.Errorf("nil state"), Start: time.Now()}, nil
	}
	if st.Err != nil {
		return st, nil
	}
	searchStart := time.Now()
	hits, err := p.vs.Search(ctx, st.Req.BotID, st.QueryVec, st.Req.TopK)
	if err != nil {
		st.Err = err
		return st, nil
	}
	st.Hits = hits
	st.SearchMs = time.Since(searchStart).Milliseconds()
	return st, nil
}

// rerankNode 节点 4：距离转相关度并做关键词加成重排
//
// 相关度 = clamp(exp(-distance), 0, 1)；
// 命中的查询词每个加 0.05，加成上限 0.2，加成后上限 1.0；
// 最终按相关度降序，整体置信度取首位。
func (p *RetrievePipeline) rerankNode(ctx context.Context, st *retrieveState, _ ...any) (*retrieveState, error) {
	_ = ctx
	if st == nil {
		return &retrieveState{Err: fmt.Errorf("nil state"), Start: time.Now()}, nil
	}
	if st.Err != nil {
		return st, nil
	}
	if len(st.Hits) == 0 {
		st.Chunks = []RetrievedChunk{}
		st.Confidence = 0.0
		return st, nil
	}

	queryKeywords := uniqueLowerFields(st.Req.Query)

	chunks := make([]RetrievedChunk, 0, len(st.Hits))
	for _, h := range st.Hits {
		relevance := math.Exp(-float64(h.Distance))
		if relevance > 1.0 {
			relevance = 1.0
		}
		if relevance < 0.0 {
			relevance = 0.0
		}

		contentLower := strings.ToLower(h.Content)
		matches := 0
		for _, kw := range queryKeywords {
			if strings.Contains(contentLower, kw) {
				matches++
			}
		}
		if matches > 0 {
			boost := float64(matches) * 0.05
			if boost > 0.2 {
				boost = 0.2
			}
			relevance += boost
			if relevance > 1.0 {
				relevance = 1.0
			}
		}

		chunks = append(chunks, RetrievedChunk{
			Content:    h.Content,
			Filename:   h.Filename,
			DocumentID: h.DocumentID,
			ChunkIndex: h.ChunkIndex,
			Distance:   h.Distance,
			Relevance:  relevance,
		})
	}

	sort.SliceStable(chunks, func(i, j int) bool {
		return chunks[i].Relevance > chunks[j].Relevance
	})

	st.Chunks = chunks
	st.Confidence = chunks[0].Relevance
	return st, nil
}

// buildResultNode 节点 5：组装最终响应
func (p *RetrievePipeline) buildResultNode(ctx context.Context, st *retrieveState, _ ...any) (*RetrieveResult, error) {
	_ = ctx
	if st == nil {
		return nil, fmt.Errorf("nil state")
	}
	res := &RetrieveResult{
		Chunks:      st.Chunks,
		Confidence:  st.Confidence,
		TotalHits:   len(st.Hits),
		EmbeddingMs: st.EmbeddingMs,
		SearchMs:    st.SearchMs,
		DurationMs:  time.Since(st.Start).Milliseconds(),
	}
	if st.Req != nil {
		res.Query = st.Req.Query
	}
	botID := int64(0)
	if st.Req != nil {
		botID = st.Req.BotID
	}
	zlog.Info(
		"kb retrieve done",
		zap.Int64("bot_id", botID),
		zap.String("query", res.Query),
		zap.Int("total_hits", res.TotalHits),
		zap.Float64("confidence", res.Confidence),
		zap.Int64("embedding_ms", res.EmbeddingMs),
		zap.Int64("search_ms", res.SearchMs),
		zap.Int64("duration_ms", res.DurationMs),
	)
	return res, st.Err
}

// uniqueLowerFields 小写化并去重的空白分词
func uniqueLowerFields(s string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0, 8)
	for _, w := range strings.Fields(strings.ToLower(s)) {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}
