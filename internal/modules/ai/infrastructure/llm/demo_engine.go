package llm

import (
	"context"
	"math/rand"
	"sync"

	"github.com/warrior-ram/demo-ai-chatbot/internal/modules/ai/domain/intent"
	"github.com/warrior-ram/demo-ai-chatbot/internal/modules/ai/infrastructure/state"
)

// 连续兜底触发升级时的固定话术
const specialistHandoffMessage = "I want to make sure you get the best help possible. " +
	"It seems like your question might need a specialist. " +
	"Would you like me to connect you with our team? " +
	"I just need your email address to have someone reach out to you."

// 对话过长时附加的转人工提示
const longConversationSuffix = "\n\n_I've provided a lot of information! " +
	"Would you like me to connect you with a human agent for more personalized assistance?_"

const followUpProbability = 0.4

// GenerateRequest 一次回复生成的输入
type GenerateRequest struct {
	Query     string
	SessionID int64
	// Context 检索到的知识库上下文（可为空）
	Context string
	History []intent.HistoryMessage
}

// GenerateResult 生成结果，附带意图判定信息
type GenerateResult struct {
	Response   string
	Category   string
	Confidence float64
}

// DemoEngine 基于意图匹配与模板选择的回复引擎，无需外部模型调用。
// 随机源通过构造函数注入，测试时用固定种子保证可复现。
type DemoEngine struct {
	st                    state.Store
	maxFallbackCount      int
	maxConversationLength int

	mu  sync.Mutex
	rng *rand.Rand
}

func NewDemoEngine(st state.Store, rng *rand.Rand, maxFallbackCount, maxConversationLength int) *DemoEngine {
	if maxFallbackCount <= 0 {
		maxFallbackCount = intent.DefaultMaxFallbackCount
	}
	if maxConversationLength <= 0 {
		maxConversationLength = intent.DefaultMaxConversationLength
	}
	return &DemoEngine{
		st:                    st,
		rng:                   rng,
		maxFallbackCount:      maxFallbackCount,
		maxConversationLength: maxConversationLength,
	}
}

// Generate 生成一条回复。
//
// 流程：指代检测 → 意图匹配 → 模板选择（防复读/追问/升级）→ 知识库前缀。
func (e *DemoEngine) Generate(ctx context.Context, req *GenerateRequest) (*GenerateResult, error) {
	var category string
	var confidence float64

	if c := intent.DetectContextCategory(req.Query, req.History); c != "" {
		category = c
		confidence = 0.85
	} else {
		m := intent.MatchIntent(req.Query)
		category = m.Category
		confidence = m.Confidence
	}

	response, err := e.selectResponse(ctx, category, req.SessionID, req.History)
	if err != nil {
		return nil, err
	}

	// 命中知识库且属于求知类问题时，加上文档来源前缀
	if req.Context != "" && confidence > 0.6 && !isSmallTalk(category) {
		response = "Based on our documentation: " + response
	}

	return &GenerateResult{
		Response:   response,
		Category:   category,
		Confidence: confidence,
	}, nil
}

// Reset 清空会话的选择状态（会话结束时调用）
func (e *DemoEngine) Reset(ctx context.Context, sessionID int64) error {
	return e.st.Reset(ctx, sessionID)
}

// selectResponse 在类别模板中选一条回复：
// 避开该会话上一次用过的回复，按概率追加追问，过长对话附加转人工提示，
// 兜底类别累计计数并在达到阈值后改为固定的转接话术。
func (e *DemoEngine) selectResponse(ctx context.Context, category string, sessionID int64, history []intent.HistoryMessage) (string, error) {
	cat := intent.CategoryByName(category)
	responses := cat.Responses
	if len(responses) == 0 {
		cat = intent.CategoryByName(intent.CategoryFallback)
		responses = cat.Responses
	}

	if cat.Name == intent.CategoryFallback {
		count, err := e.st.IncrFallback(ctx, sessionID)
		if err != nil {
			return "", err
		}
		if count >= e.maxFallbackCount {
			return specialistHandoffMessage, nil
		}
	}

	lastResponse, err := e.st.GetLastResponse(ctx, sessionID, cat.Name)
	if err != nil {
		return "", err
	}

	available := make([]string, 0, len(responses))
	for _, r := range responses {
		if r != lastResponse {
			available = append(available, r)
		}
	}
	if len(available) == 0 {
		available = responses
	}

	e.mu.Lock()
	response := available[e.rng.Intn(len(available))]
	addFollowUp := len(cat.FollowUps) > 0 && e.rng.Float64() < followUpProbability
	var followUp string
	if addFollowUp {
		followUp = cat.FollowUps[e.rng.Intn(len(cat.FollowUps))]
	}
	e.mu.Unlock()

	if err := e.st.SetLastResponse(ctx, sessionID, cat.Name, response); err != nil {
		return "", err
	}

	if addFollowUp {
		response += "\n\n" + followUp
	}

	if len(history) > e.maxConversationLength {
		response += longConversationSuffix
	}

	return response, nil
}

func isSmallTalk(category string) bool {
	switch category {
	case intent.CategoryGreetings, intent.CategoryThanks, intent.CategoryGoodbye:
		return true
	}
	return false
}
