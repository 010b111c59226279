package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/warrior-ram/demo-ai-chatbot/internal/modules/ai/domain/intent"
	"github.com/warrior-ram/demo-ai-chatbot/internal/modules/ai/infrastructure/llm"
	"github.com/warrior-ram/demo-ai-chatbot/internal/modules/ai/infrastructure/pipeline"
	"github.com/warrior-ram/demo-ai-chatbot/pkg/zlog"

	"go.uber.org/zap"
)

// RagResponse 一次回复生成的完整结果
type RagResponse struct {
	Response        string   `json:"response"`
	Confidence      float64  `json:"confidence"`
	Sources         []string `json:"sources"`
	RetrievedChunks int      `json:"retrieved_chunks"`
	Category        string   `json:"category"`
}

// RAGService 编排检索与回复生成：
// 机器人有知识库时先召回，置信度达标才把知识片段注入回复引擎。
type RAGService interface {
	GenerateResponse(ctx context.Context, query string, botID, sessionID int64, history []intent.HistoryMessage) (*RagResponse, error)
	// EndSession 清理会话级生成状态
	EndSession(ctx context.Context, sessionID int64) error
}

type ragService struct {
	retrieve            *pipeline.RetrievePipeline
	engine              *llm.DemoEngine
	topK                int
	confidenceThreshold float64
}

func NewRAGService(retrieve *pipeline.RetrievePipeline, engine *llm.DemoEngine, topK int, confidenceThreshold float64) RAGService {
	if topK <= 0 {
		topK = 5
	}
	if confidenceThreshold <= 0 {
		confidenceThreshold = 0.7
	}
	return &ragService{
		retrieve:            retrieve,
		engine:              engine,
		topK:                topK,
		confidenceThreshold: confidenceThreshold,
	}
}

func (s *ragService) GenerateResponse(ctx context.Context, query string, botID, sessionID int64, history []intent.HistoryMessage) (*RagResponse, error) {
	ragContext := ""
	confidence := 1.0
	sources := []string{}
	retrievedChunks := 0

	hasKB, err := s.retrieve.HasKnowledgeBase(ctx, botID)
	if err != nil {
		zlog.Warn("kb existence check failed", zap.Int64("bot_id", botID), zap.Error(err))
		hasKB = false
	}

	if hasKB {
		res, err := s.retrieve.Retrieve(ctx, &pipeline.RetrieveRequest{
			BotID: botID,
			Query: query,
			TopK:  s.topK,
		})
		if err != nil {
			// 检索失败退化为纯模板回复，不中断对话
			zlog.Warn("kb retrieve failed", zap.Int64("bot_id", botID), zap.Error(err))
		} else {
			confidence = res.Confidence
			// 置信度达标才注入知识库上下文
			if len(res.Chunks) > 0 && res.Confidence >= s.confidenceThreshold {
				ragContext = buildContext(res.Chunks)
				sources = topSources(res.Chunks)
				retrievedChunks = len(res.Chunks)
			}
		}
	}

	gen, err := s.engine.Generate(ctx, &llm.GenerateRequest{
		Query:     query,
		SessionID: sessionID,
		Context:   ragContext,
		History:   history,
	})
	if err != nil {
		return nil, err
	}

	return &RagResponse{
		Response:        gen.Response,
		Confidence:      confidence,
		Sources:         sources,
		RetrievedChunks: retrievedChunks,
		Category:        gen.Category,
	}, nil
}

func (s *ragService) EndSession(ctx context.Context, sessionID int64) error {
	return s.engine.Reset(ctx, sessionID)
}

// buildContext 取前 3 个片段拼接上下文（"[Source i]: ..." 形式）
func buildContext(chunks []pipeline.RetrievedChunk) string {
	n := len(chunks)
	if n > 3 {
		n = 3
	}
	parts := make([]string, 0, n)
	for i := 0; i < n; i++ {
		parts = append(parts, fmt.Sprintf("[Source %d]: %s", i+1, chunks[i].Content))
	}
	return strings.Join(parts, "\n\n")
}

// topSources 取前 3 个片段的来源文件名，同一文件只出现一次
func topSources(chunks []pipeline.RetrievedChunk) []string {
	n := len(chunks)
	if n > 3 {
		n = 3
	}
	sources := make([]string, 0, n)
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		name := chunks[i].Filename
		if name == "" {
			name = "Unknown"
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		sources = append(sources, name)
	}
	return sources
}
