package service

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/warrior-ram/demo-ai-chatbot/internal/modules/ai/domain/repository"
	"github.com/warrior-ram/demo-ai-chatbot/internal/modules/ai/infrastructure/mq"
	"github.com/warrior-ram/demo-ai-chatbot/internal/modules/ai/infrastructure/pipeline"
	"github.com/warrior-ram/demo-ai-chatbot/internal/modules/ai/infrastructure/queue"
	botEntity "github.com/warrior-ram/demo-ai-chatbot/internal/modules/bot/domain/entity"
	botRepository "github.com/warrior-ram/demo-ai-chatbot/internal/modules/bot/domain/repository"
	"github.com/warrior-ram/demo-ai-chatbot/pkg/zlog"

	"go.uber.org/zap"
)

// IngestService 知识库入库服务。
// 配置了 Kafka 时上传接口只投递事件由 worker 异步处理；
// 未配置时同步跑入库 Pipeline。
type IngestService interface {
	// IngestDocument 同步入库，返回分块数
	IngestDocument(ctx context.Context, doc *botEntity.Document) (int, error)
	// EnqueueDocument 投递异步入库事件；无 Kafka 时退化为同步入库
	EnqueueDocument(ctx context.Context, doc *botEntity.Document) error
	// KnowledgeBaseStats 机器人知识库统计（是否存在/向量数）
	KnowledgeBaseStats(ctx context.Context, botID int64) (bool, int64, error)
}

type ingestService struct {
	pipeline  *pipeline.IngestPipeline
	vs        repository.VectorStore
	docRepo   botRepository.DocumentRepository
	publisher mq.Publisher
	topic     string
}

func NewIngestService(p *pipeline.IngestPipeline, vs repository.VectorStore, docRepo botRepository.DocumentRepository, publisher mq.Publisher, topic string) IngestService {
	return &ingestService{
		pipeline:  p,
		vs:        vs,
		docRepo:   docRepo,
		publisher: publisher,
		topic:     topic,
	}
}

func (s *ingestService) IngestDocument(ctx context.Context, doc *botEntity.Document) (int, error) {
	res, err := s.pipeline.Ingest(ctx, &pipeline.IngestRequest{
		BotID:      doc.BotId,
		DocumentID: doc.Id,
		Filename:   doc.Filename,
		Content:    doc.Content,
	})
	if err != nil {
		return 0, err
	}
	if err := s.docRepo.UpdateChunkCount(doc.Id, res.ChunkCount); err != nil {
		return res.ChunkCount, err
	}
	return res.ChunkCount, nil
}

func (s *ingestService) EnqueueDocument(ctx context.Context, doc *botEntity.Document) error {
	if s.publisher == nil || s.topic == "" {
		_, err := s.IngestDocument(ctx, doc)
		return err
	}

	payload, err := json.Marshal(queue.IngestEvent{DocumentID: doc.Id, BotID: doc.BotId})
	if err != nil {
		return err
	}
	// 以 bot_id 为 key，同一机器人的文档顺序入库
	_, err = s.publisher.Publish(ctx, mq.Message{
		Topic: s.topic,
		Key:   []byte(strconv.FormatInt(doc.BotId, 10)),
		Value: payload,
	})
	if err != nil {
		zlog.Warn("kb ingest enqueue failed, fallback to inline ingest", zap.Int64("document_id", doc.Id), zap.Error(err))
		_, err = s.IngestDocument(ctx, doc)
		return err
	}
	return nil
}

func (s *ingestService) KnowledgeBaseStats(ctx context.Context, botID int64) (bool, int64, error) {
	has, err := s.vs.HasCollection(ctx, botID)
	if err != nil {
		return false, 0, err
	}
	if !has {
		return false, 0, nil
	}
	count, err := s.vs.CountVectors(ctx, botID)
	if err != nil {
		return true, 0, err
	}
	return true, count, nil
}
