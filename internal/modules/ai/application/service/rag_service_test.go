package service

import (
	"context"
	"math/rand"
	"testing"

	"github.com/warrior-ram/demo-ai-chatbot/internal/modules/ai/infrastructure/chunking"
	"github.com/warrior-ram/demo-ai-chatbot/internal/modules/ai/infrastructure/embedding"
	"github.com/warrior-ram/demo-ai-chatbot/internal/modules/ai/infrastructure/llm"
	"github.com/warrior-ram/demo-ai-chatbot/internal/modules/ai/infrastructure/pipeline"
	"github.com/warrior-ram/demo-ai-chatbot/internal/modules/ai/infrastructure/state"
	"github.com/warrior-ram/demo-ai-chatbot/internal/modules/ai/infrastructure/vectordb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDim = 64

type ragFixture struct {
	ingest *pipeline.IngestPipeline
	svc    RAGService
}

func newRagFixture(t *testing.T) *ragFixture {
	t.Helper()
	vs := vectordb.NewMemoryStore(testDim)
	emb := embedding.NewMockEmbedder(testDim)

	ip, err := pipeline.NewIngestPipeline(vs, emb, chunking.NewRecursiveChunker(800, 100), testDim)
	require.NoError(t, err)
	rp, err := pipeline.NewRetrievePipeline(vs, emb, testDim)
	require.NoError(t, err)

	engine := llm.NewDemoEngine(state.NewMemoryStore(), rand.New(rand.NewSource(1)), 3, 20)
	return &ragFixture{
		ingest: ip,
		svc:    NewRAGService(rp, engine, 5, 0.7),
	}
}

func TestGenerateResponseWithoutKnowledgeBase(t *testing.T) {
	f := newRagFixture(t)

	res, err := f.svc.GenerateResponse(context.Background(), "how much does it cost", 1, 1, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Response)
	// 无知识库时置信度保持满分，不附带来源
	assert.InDelta(t, 1.0, res.Confidence, 1e-9)
	assert.Empty(t, res.Sources)
	assert.Zero(t, res.RetrievedChunks)
}

func TestGenerateResponseUsesKnowledgeBaseWhenConfident(t *testing.T) {
	f := newRagFixture(t)
	ctx := context.Background()

	_, err := f.ingest.Ingest(ctx, &pipeline.IngestRequest{
		BotID:      1,
		DocumentID: 1,
		Filename:   "pricing.txt",
		Content:    "how much does the starter plan cost",
	})
	require.NoError(t, err)

	// 问题与文档几乎一致，距离接近 0，置信度达标
	res, err := f.svc.GenerateResponse(ctx, "how much does the starter plan cost", 1, 1, nil)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, res.Confidence, 0.7)
	require.NotEmpty(t, res.Sources)
	assert.Equal(t, "pricing.txt", res.Sources[0])
	assert.Equal(t, 1, res.RetrievedChunks)
}

func TestGenerateResponseSkipsLowConfidenceContext(t *testing.T) {
	f := newRagFixture(t)
	ctx := context.Background()

	_, err := f.ingest.Ingest(ctx, &pipeline.IngestRequest{
		BotID:      1,
		DocumentID: 1,
		Filename:   "pricing.txt",
		Content:    "starter subscriptions include five chatbots",
	})
	require.NoError(t, err)

	// 问题与文档毫无重叠，置信度不达标时不注入上下文
	res, err := f.svc.GenerateResponse(ctx, "zebra quantum walrus", 1, 1, nil)
	require.NoError(t, err)
	assert.Less(t, res.Confidence, 0.7)
	assert.Empty(t, res.Sources)
	assert.Zero(t, res.RetrievedChunks)
}

func TestGenerateResponseBotIsolation(t *testing.T) {
	f := newRagFixture(t)
	ctx := context.Background()

	_, err := f.ingest.Ingest(ctx, &pipeline.IngestRequest{
		BotID:      1,
		DocumentID: 1,
		Filename:   "pricing.txt",
		Content:    "how much does the starter plan cost",
	})
	require.NoError(t, err)

	// 其他机器人没有知识库，不能看到别人的文档
	res, err := f.svc.GenerateResponse(ctx, "how much does the starter plan cost", 2, 1, nil)
	require.NoError(t, err)
	assert.Empty(t, res.Sources)
	assert.InDelta(t, 1.0, res.Confidence, 1e-9)
}

func TestTopSourcesDistinct(t *testing.T) {
	// 前 3 个片段来自同一文档时来源只列一次
	same := []pipeline.RetrievedChunk{
		{Filename: "pricing.txt"},
		{Filename: "pricing.txt"},
		{Filename: "pricing.txt"},
		{Filename: "faq.txt"},
	}
	assert.Equal(t, []string{"pricing.txt"}, topSources(same))

	// 不同文件保持召回顺序
	mixed := []pipeline.RetrievedChunk{
		{Filename: "pricing.txt"},
		{Filename: "faq.txt"},
		{Filename: "pricing.txt"},
	}
	assert.Equal(t, []string{"pricing.txt", "faq.txt"}, topSources(mixed))

	// 缺失文件名归并为 Unknown
	unnamed := []pipeline.RetrievedChunk{{Filename: ""}, {Filename: ""}}
	assert.Equal(t, []string{"Unknown"}, topSources(unnamed))
}

func TestEndSessionResetsState(t *testing.T) {
	f := newRagFixture(t)
	ctx := context.Background()

	_, err := f.svc.GenerateResponse(ctx, "hello", 1, 77, nil)
	require.NoError(t, err)
	assert.NoError(t, f.svc.EndSession(ctx, 77))
}
