package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	aiService "github.com/warrior-ram/demo-ai-chatbot/internal/modules/ai/application/service"
	botRespond "github.com/warrior-ram/demo-ai-chatbot/internal/modules/bot/application/dto/respond"
	botEntity "github.com/warrior-ram/demo-ai-chatbot/internal/modules/bot/domain/entity"
	botRepository "github.com/warrior-ram/demo-ai-chatbot/internal/modules/bot/domain/repository"
	"github.com/warrior-ram/demo-ai-chatbot/pkg/xerr"
	"github.com/warrior-ram/demo-ai-chatbot/pkg/zlog"

	"gorm.io/gorm"
)

// 支持的纯文本文件后缀
var allowedExtensions = map[string]struct{}{
	"txt": {},
	"md":  {},
}

type DocumentService interface {
	// UploadDocument 上传文件到机器人知识库（入库后返回分块数）
	UploadDocument(ctx context.Context, botID int64, filename string, content []byte) (*botRespond.UploadResult, error)
	// AddTextDocument 直接添加文本内容到知识库
	AddTextDocument(ctx context.Context, botID int64, title, content string) (*botRespond.UploadResult, error)
	// ListDocuments 机器人的文档列表及集合统计
	ListDocuments(ctx context.Context, botID int64) ([]botRespond.DocumentItem, *botRespond.KnowledgeBaseStats, error)
	// DeleteDocument 删除文档记录。
	// 注意：向量库中已写入的向量不随之删除，与线上行为保持一致（重建集合才能清理）。
	DeleteDocument(ctx context.Context, documentID int64) error
}

type documentServiceImpl struct {
	botRepo   botRepository.BotRepository
	docRepo   botRepository.DocumentRepository
	ingestSvc aiService.IngestService
}

func NewDocumentService(botRepo botRepository.BotRepository, docRepo botRepository.DocumentRepository, ingestSvc aiService.IngestService) DocumentService {
	return &documentServiceImpl{
		botRepo:   botRepo,
		docRepo:   docRepo,
		ingestSvc: ingestSvc,
	}
}

func (s *documentServiceImpl) UploadDocument(ctx context.Context, botID int64, filename string, content []byte) (*botRespond.UploadResult, error) {
	if err := s.checkBot(botID); err != nil {
		return nil, err
	}

	parts := strings.Split(filename, ".")
	ext := strings.ToLower(parts[len(parts)-1])
	if _, ok := allowedExtensions[ext]; !ok {
		return nil, xerr.ErrFileType
	}

	text := strings.TrimSpace(string(content))
	if text == "" {
		return nil, xerr.ErrEmptyContent
	}

	return s.ingest(ctx, botID, filename, string(content))
}

func (s *documentServiceImpl) AddTextDocument(ctx context.Context, botID int64, title, content string) (*botRespond.UploadResult, error) {
	if err := s.checkBot(botID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(content) == "" {
		return nil, xerr.ErrEmptyContent
	}
	return s.ingest(ctx, botID, fmt.Sprintf("%s.txt", title), content)
}

func (s *documentServiceImpl) ingest(ctx context.Context, botID int64, filename, content string) (*botRespond.UploadResult, error) {
	doc := &botEntity.Document{
		BotId:     botID,
		Filename:  filename,
		Content:   content,
		CreatedAt: time.Now(),
	}
	if err := s.docRepo.Create(doc); err != nil {
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}

	if err := s.ingestSvc.EnqueueDocument(ctx, doc); err != nil {
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}

	// 同步入库时分块数已回写；异步路径由 worker 处理，此处读到 0 表示还在处理中
	status := "completed"
	chunkCount := 0
	if fresh, err := s.docRepo.GetByID(doc.Id); err == nil {
		chunkCount = fresh.ChunkCount
	}
	if chunkCount == 0 {
		status = "processing"
	}

	return &botRespond.UploadResult{
		DocumentId: doc.Id,
		Filename:   filename,
		ChunkCount: chunkCount,
		Status:     status,
	}, nil
}

func (s *documentServiceImpl) ListDocuments(ctx context.Context, botID int64) ([]botRespond.DocumentItem, *botRespond.KnowledgeBaseStats, error) {
	if err := s.checkBot(botID); err != nil {
		return nil, nil, err
	}

	docs, err := s.docRepo.ListByBotID(botID)
	if err != nil {
		zlog.Error(err.Error())
		return nil, nil, xerr.ErrServerError
	}

	items := make([]botRespond.DocumentItem, 0, len(docs))
	for _, d := range docs {
		items = append(items, botRespond.DocumentItem{
			Id:         d.Id,
			BotId:      d.BotId,
			Filename:   d.Filename,
			ChunkCount: d.ChunkCount,
			CreatedAt:  d.CreatedAt,
		})
	}

	exists, vectorCount, err := s.ingestSvc.KnowledgeBaseStats(ctx, botID)
	if err != nil {
		zlog.Error(err.Error())
		exists, vectorCount = false, 0
	}

	stats := &botRespond.KnowledgeBaseStats{
		BotId:       botID,
		Exists:      exists,
		VectorCount: vectorCount,
		Documents:   len(items),
	}
	return items, stats, nil
}

func (s *documentServiceImpl) DeleteDocument(ctx context.Context, documentID int64) error {
	if _, err := s.docRepo.GetByID(documentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return xerr.ErrDocumentNotFound
		}
		zlog.Error(err.Error())
		return xerr.ErrServerError
	}
	if err := s.docRepo.Delete(documentID); err != nil {
		zlog.Error(err.Error())
		return xerr.ErrServerError
	}
	return nil
}

func (s *documentServiceImpl) checkBot(botID int64) error {
	if _, err := s.botRepo.GetByID(botID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return xerr.ErrBotNotFound
		}
		zlog.Error(err.Error())
		return xerr.ErrServerError
	}
	return nil
}
