package pipeline

import (
	"context"
	"testing"

	"github.com/warrior-ram/demo-ai-chatbot/internal/modules/ai/domain/repository"
	"github.com/warrior-ram/demo-ai-chatbot/internal/modules/ai/infrastructure/chunking"
	"github.com/warrior-ram/demo-ai-chatbot/internal/modules/ai/infrastructure/embedding"
	"github.com/warrior-ram/demo-ai-chatbot/internal/modules/ai/infrastructure/vectordb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDim = 64

func newTestPipelines(t *testing.T) (*IngestPipeline, *RetrievePipeline) {
	t.Helper()
	vs := vectordb.NewMemoryStore(testDim)
	emb := embedding.NewMockEmbedder(testDim)
	chunker := chunking.NewRecursiveChunker(80, 10)

	ip, err := NewIngestPipeline(vs, emb, chunker, testDim)
	require.NoError(t, err)
	rp, err := NewRetrievePipeline(vs, emb, testDim)
	require.NoError(t, err)
	return ip, rp
}

func TestIngestThenRetrieve(t *testing.T) {
	ctx := context.Background()
	ip, rp := newTestPipelines(t)

	res, err := ip.Ingest(ctx, &IngestRequest{
		BotID:      7,
		DocumentID: 3,
		Filename:   "pricing.txt",
		Content: "Our starter plan costs forty nine dollars monthly.\n\n" +
			"Professional subscriptions include priority assistance and five chatbots.\n\n" +
			"Enterprise customers receive unlimited conversations with dedicated assistance.",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), res.BotID)
	assert.Equal(t, int64(3), res.DocumentID)
	assert.Greater(t, res.ChunkCount, 1)
	assert.Equal(t, res.ChunkCount, res.VectorsOK)
	assert.Equal(t, "knowledge_base_bot_7", res.Collection)

	out, err := rp.Retrieve(ctx, &RetrieveRequest{
		BotID: 7,
		Query: "how much does the starter plan cost",
		TopK:  3,
	})
	require.NoError(t, err)
	require.NotEmpty(t, out.Chunks)
	assert.Contains(t, out.Chunks[0].Content, "starter plan")
	assert.Greater(t, out.Confidence, 0.0)
	assert.LessOrEqual(t, out.Confidence, 1.0)
	assert.Equal(t, out.Confidence, out.Chunks[0].Relevance)

	// 相关度降序
	for i := 1; i < len(out.Chunks); i++ {
		assert.GreaterOrEqual(t, out.Chunks[i-1].Relevance, out.Chunks[i].Relevance)
	}
}

func TestRetrieveEmptyKnowledgeBase(t *testing.T) {
	ctx := context.Background()
	_, rp := newTestPipelines(t)

	out, err := rp.Retrieve(ctx, &RetrieveRequest{BotID: 1, Query: "anything"})
	require.NoError(t, err)
	assert.Empty(t, out.Chunks)
	assert.Zero(t, out.Confidence)
	assert.Zero(t, out.TotalHits)
}

func TestRetrieveValidation(t *testing.T) {
	ctx := context.Background()
	_, rp := newTestPipelines(t)

	_, err := rp.Retrieve(ctx, &RetrieveRequest{BotID: 0, Query: "x"})
	assert.Error(t, err)

	_, err = rp.Retrieve(ctx, &RetrieveRequest{BotID: 1, Query: "   "})
	assert.Error(t, err)
}

func TestIngestValidation(t *testing.T) {
	ctx := context.Background()
	ip, _ := newTestPipelines(t)

	_, err := ip.Ingest(ctx, &IngestRequest{BotID: 0, DocumentID: 1, Content: "x"})
	assert.Error(t, err)

	_, err = ip.Ingest(ctx, &IngestRequest{BotID: 1, DocumentID: 1, Content: "  "})
	assert.Error(t, err)
}

func TestIngestBotIsolation(t *testing.T) {
	ctx := context.Background()
	ip, rp := newTestPipelines(t)

	_, err := ip.Ingest(ctx, &IngestRequest{
		BotID: 1, DocumentID: 1, Filename: "a.txt",
		Content: "alpha document about widgets",
	})
	require.NoError(t, err)

	has, err := rp.HasKnowledgeBase(ctx, 1)
	require.NoError(t, err)
	assert.True(t, has)

	has, err = rp.HasKnowledgeBase(ctx, 2)
	require.NoError(t, err)
	assert.False(t, has)

	out, err := rp.Retrieve(ctx, &RetrieveRequest{BotID: 2, Query: "widgets"})
	require.NoError(t, err)
	assert.Empty(t, out.Chunks)
}

func TestNormalizeTopK(t *testing.T) {
	assert.Equal(t, 5, normalizeTopK(0))
	assert.Equal(t, 5, normalizeTopK(-3))
	assert.Equal(t, 50, normalizeTopK(100))
	assert.Equal(t, 7, normalizeTopK(7))
}

func hitWithContent(content string, distance float32) repository.VectorSearchHit {
	return repository.VectorSearchHit{
		ID:       content,
		Distance: distance,
		Filename: "doc.txt",
		Content:  content,
	}
}

func TestRerankKeywordBoost(t *testing.T) {
	st := &retrieveState{
		Req: &RetrieveRequest{BotID: 1, Query: "starter plan price"},
	}
	st.Hits = append(st.Hits, hitWithContent("no overlap here at all", 0.5))
	st.Hits = append(st.Hits, hitWithContent("the starter plan price is low", 0.5))

	p := &RetrievePipeline{}
	out, err := p.rerankNode(context.Background(), st)
	require.NoError(t, err)
	require.Len(t, out.Chunks, 2)

	// 关键词重叠的片段加成后应排到前面
	assert.Contains(t, out.Chunks[0].Content, "starter plan")
	assert.InDelta(t, out.Chunks[0].Relevance-out.Chunks[1].Relevance, 0.15, 1e-9)
	assert.LessOrEqual(t, out.Chunks[0].Relevance, 1.0)
}
