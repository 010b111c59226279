package llm

import (
	"context"
	"math/rand"
	"strings"
	"testing"

	"github.com/warrior-ram/demo-ai-chatbot/internal/modules/ai/domain/intent"
	"github.com/warrior-ram/demo-ai-chatbot/internal/modules/ai/infrastructure/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(seed int64) *DemoEngine {
	return NewDemoEngine(state.NewMemoryStore(), rand.New(rand.NewSource(seed)), 3, 20)
}

func TestGenerateMatchesIntent(t *testing.T) {
	e := newTestEngine(1)
	res, err := e.Generate(context.Background(), &GenerateRequest{Query: "hello there", SessionID: 1})
	require.NoError(t, err)
	assert.Equal(t, intent.CategoryGreetings, res.Category)
	assert.GreaterOrEqual(t, res.Confidence, 0.5)
	assert.NotEmpty(t, res.Response)
}

func TestGenerateAvoidsRepeatingResponse(t *testing.T) {
	e := newTestEngine(42)
	ctx := context.Background()

	first, err := e.Generate(ctx, &GenerateRequest{Query: "how much does it cost", SessionID: 5})
	require.NoError(t, err)
	second, err := e.Generate(ctx, &GenerateRequest{Query: "how much does it cost", SessionID: 5})
	require.NoError(t, err)

	assert.NotEqual(t, first.Response, second.Response)
}

func TestGenerateFallbackEscalation(t *testing.T) {
	e := newTestEngine(7)
	ctx := context.Background()
	req := &GenerateRequest{Query: "xyzzy quux frobnicate", SessionID: 9}

	for i := 0; i < 2; i++ {
		res, err := e.Generate(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, intent.CategoryFallback, res.Category)
		assert.NotEqual(t, specialistHandoffMessage, res.Response)
	}

	// 第三次连续兜底改为固定的转接话术
	res, err := e.Generate(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, specialistHandoffMessage, res.Response)

	// 之后继续保持转接话术
	res, err = e.Generate(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, specialistHandoffMessage, res.Response)
}

func TestResetClearsFallbackCounter(t *testing.T) {
	e := newTestEngine(7)
	ctx := context.Background()
	req := &GenerateRequest{Query: "xyzzy quux frobnicate", SessionID: 9}

	for i := 0; i < 3; i++ {
		_, err := e.Generate(ctx, req)
		require.NoError(t, err)
	}
	require.NoError(t, e.Reset(ctx, 9))

	res, err := e.Generate(ctx, req)
	require.NoError(t, err)
	assert.NotEqual(t, specialistHandoffMessage, res.Response)
}

func TestGenerateLongConversationSuffix(t *testing.T) {
	e := newTestEngine(3)
	history := make([]intent.HistoryMessage, 21)
	for i := range history {
		history[i] = intent.HistoryMessage{Role: "user", Content: "question"}
	}

	res, err := e.Generate(context.Background(), &GenerateRequest{
		Query:     "how much does it cost",
		SessionID: 2,
		History:   history,
	})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(res.Response, longConversationSuffix))
}

func TestGenerateDocumentationPrefix(t *testing.T) {
	e := newTestEngine(11)
	ctx := context.Background()

	res, err := e.Generate(ctx, &GenerateRequest{
		Query:     "how much does it cost",
		SessionID: 3,
		Context:   "[Source 1]: pricing details",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.Response, "Based on our documentation: "))

	// 寒暄类不加文档前缀
	res, err = e.Generate(ctx, &GenerateRequest{
		Query:     "hello",
		SessionID: 3,
		Context:   "[Source 1]: pricing details",
	})
	require.NoError(t, err)
	assert.False(t, strings.HasPrefix(res.Response, "Based on our documentation: "))

	// 无知识库上下文不加前缀
	res, err = e.Generate(ctx, &GenerateRequest{
		Query:     "how much does it cost",
		SessionID: 4,
	})
	require.NoError(t, err)
	assert.False(t, strings.HasPrefix(res.Response, "Based on our documentation: "))
}

// fixedSource 固定输出的随机源，精确控制追问分支
type fixedSource struct{ v int64 }

func (s fixedSource) Int63() int64 { return s.v }
func (s fixedSource) Seed(int64)   {}

func TestGenerateFollowUpAppended(t *testing.T) {
	// Int63 恒为 0：Float64()=0 < 0.4，选中首条回复并附加首条追问
	e := NewDemoEngine(state.NewMemoryStore(), rand.New(fixedSource{v: 0}), 3, 20)
	cat := intent.CategoryByName(intent.CategoryPricing)
	require.NotEmpty(t, cat.FollowUps)

	res, err := e.Generate(context.Background(), &GenerateRequest{Query: "how much does it cost", SessionID: 1})
	require.NoError(t, err)
	assert.Equal(t, cat.Responses[0]+"\n\n"+cat.FollowUps[0], res.Response)
}

func TestGenerateFollowUpSkipped(t *testing.T) {
	// Int63 恒为 1<<62：Float64()=0.5 >= 0.4，回复保持原样不带追问
	e := NewDemoEngine(state.NewMemoryStore(), rand.New(fixedSource{v: 1 << 62}), 3, 20)
	cat := intent.CategoryByName(intent.CategoryPricing)

	res, err := e.Generate(context.Background(), &GenerateRequest{Query: "how much does it cost", SessionID: 1})
	require.NoError(t, err)
	assert.Contains(t, cat.Responses, res.Response)
}

func TestGenerateContextContinuation(t *testing.T) {
	e := newTestEngine(5)
	history := []intent.HistoryMessage{
		{Role: "user", Content: "what do your plans look like"},
		{Role: "assistant", Content: "Our Starter plan costs $49 per month."},
	}

	res, err := e.Generate(context.Background(), &GenerateRequest{
		Query:     "tell me more about that",
		SessionID: 6,
		History:   history,
	})
	require.NoError(t, err)
	assert.Equal(t, intent.CategoryPricing, res.Category)
	assert.InDelta(t, 0.85, res.Confidence, 1e-9)
}
