package queue

import (
	"context"
	"encoding/json"
	"errors"

	botRepository "github.com/warrior-ram/demo-ai-chatbot/internal/modules/bot/domain/repository"
	"github.com/warrior-ram/demo-ai-chatbot/internal/modules/ai/infrastructure/mq"
	"github.com/warrior-ram/demo-ai-chatbot/internal/modules/ai/infrastructure/pipeline"
	"github.com/warrior-ram/demo-ai-chatbot/pkg/zlog"

	"go.uber.org/zap"
)

// IngestEvent 文档入库事件（由文档上传接口投递到 Kafka）
type IngestEvent struct {
	DocumentID int64 `json:"document_id"`
	BotID      int64 `json:"bot_id"`
}

// IngestConsumerWorker 消费入库事件，执行切分向量化并回写分块数
type IngestConsumerWorker struct {
	consumer mq.Consumer
	docRepo  botRepository.DocumentRepository
	pipeline *pipeline.IngestPipeline
}

func NewIngestConsumerWorker(consumer mq.Consumer, docRepo botRepository.DocumentRepository, p *pipeline.IngestPipeline) *IngestConsumerWorker {
	return &IngestConsumerWorker{consumer: consumer, docRepo: docRepo, pipeline: p}
}

func (w *IngestConsumerWorker) Run(ctx context.Context) error {
	if w == nil || w.consumer == nil {
		return errors.New("consumer is nil")
	}
	if w.docRepo == nil {
		return errors.New("document repo is nil")
	}
	if w.pipeline == nil {
		return errors.New("pipeline is nil")
	}
	return w.consumer.Run(ctx, w)
}

func (w *IngestConsumerWorker) Handle(ctx context.Context, msg mq.Message) error {
	var ev IngestEvent
	if err := json.Unmarshal(msg.Value, &ev); err != nil || ev.DocumentID <= 0 {
		zlog.Warn("kb ingest consumer invalid event", zap.String("topic", msg.Topic))
		return nil
	}

	doc, err := w.docRepo.GetByID(ev.DocumentID)
	if err != nil {
		zlog.Warn("kb ingest consumer get document failed", zap.Int64("document_id", ev.DocumentID), zap.Error(err))
		return err
	}

	res, err := w.pipeline.Ingest(ctx, &pipeline.IngestRequest{
		BotID:      doc.BotId,
		DocumentID: doc.Id,
		Filename:   doc.Filename,
		Content:    doc.Content,
	})
	if err != nil {
		zlog.Warn("kb ingest consumer pipeline failed", zap.Int64("document_id", doc.Id), zap.Error(err))
		return err
	}

	if err := w.docRepo.UpdateChunkCount(doc.Id, res.ChunkCount); err != nil {
		zlog.Warn("kb ingest consumer update chunk count failed", zap.Int64("document_id", doc.Id), zap.Error(err))
		return err
	}
	return nil
}
