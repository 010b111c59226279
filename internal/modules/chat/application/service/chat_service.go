package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	aiService "github.com/warrior-ram/demo-ai-chatbot/internal/modules/ai/application/service"
	"github.com/warrior-ram/demo-ai-chatbot/internal/modules/ai/domain/intent"
	"github.com/warrior-ram/demo-ai-chatbot/internal/modules/chat/application/dto/respond"
	"github.com/warrior-ram/demo-ai-chatbot/internal/modules/chat/domain/entity"
	"github.com/warrior-ram/demo-ai-chatbot/internal/modules/chat/domain/repository"
	"github.com/warrior-ram/demo-ai-chatbot/pkg/xerr"
	"github.com/warrior-ram/demo-ai-chatbot/pkg/zlog"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	// 留资成功/追问联系方式时附加在回复后
	leadSavedSuffix      = "\n\nThank you! I've saved your contact information. Someone from our team will reach out to you soon."
	askForContactSuffix  = "\n\nI'd be happy to help! Could you please share your email address so our team can get in touch with you?"
	historyWindowForChat = 10
)

// ChatTurnResult 一轮对话的处理结果
type ChatTurnResult struct {
	Reply     respond.ChatReply
	Escalated bool
}

// ChatService 对话主流程：落库用户消息、意图识别、RAG 生成、留资检测、落库回复。
type ChatService interface {
	HandleMessage(ctx context.Context, sessionID int64, content string) (*ChatTurnResult, error)
	// EndSession 会话结束时清理生成状态
	EndSession(ctx context.Context, sessionID int64) error
}

type chatServiceImpl struct {
	sessionRepo repository.SessionRepository
	messageRepo repository.MessageRepository
	leadRepo    repository.LeadRepository
	ragService  aiService.RAGService

	// 同一会话的消息串行处理，避免历史读写交错
	mu       sync.Mutex
	sessions map[int64]*sync.Mutex
}

func NewChatService(
	sessionRepo repository.SessionRepository,
	messageRepo repository.MessageRepository,
	leadRepo repository.LeadRepository,
	ragService aiService.RAGService,
) ChatService {
	return &chatServiceImpl{
		sessionRepo: sessionRepo,
		messageRepo: messageRepo,
		leadRepo:    leadRepo,
		ragService:  ragService,
		sessions:    make(map[int64]*sync.Mutex),
	}
}

func (s *chatServiceImpl) sessionLock(sessionID int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.sessions[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		s.sessions[sessionID] = lock
	}
	return lock
}

func (s *chatServiceImpl) HandleMessage(ctx context.Context, sessionID int64, content string) (*ChatTurnResult, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, xerr.ErrParam
	}

	session, err := s.sessionRepo.GetByID(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, xerr.ErrSessionNotFound
		}
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}

	lock := s.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	userMsg := &entity.Message{
		SessionId: sessionID,
		Role:      entity.RoleUser,
		Content:   content,
		CreatedAt: time.Now(),
	}
	if err := s.messageRepo.Create(userMsg); err != nil {
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}

	history, err := s.messageRepo.ListRecentBySessionID(sessionID, historyWindowForChat)
	if err != nil {
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}
	conversation := make([]intent.HistoryMessage, 0, len(history))
	for _, m := range history {
		conversation = append(conversation, intent.HistoryMessage{Role: m.Role, Content: m.Content})
	}

	leadIntent := intent.DetectLeadIntent(content)

	rag, err := s.ragService.GenerateResponse(ctx, content, session.BotId, sessionID, conversation)
	if err != nil {
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}

	replyContent := rag.Response
	if leadIntent.ExtractedEmail != "" || leadIntent.ExtractedPhone != "" {
		if s.saveLead(sessionID, leadIntent.ExtractedEmail, leadIntent.ExtractedPhone) {
			replyContent += leadSavedSuffix
		}
	} else if leadIntent.ShouldAskForContact {
		replyContent += askForContactSuffix
	}

	escalated := intent.ShouldEscalate(content, rag.Confidence)
	if escalated {
		zlog.Info("conversation flagged for escalation",
			zap.Int64("session_id", sessionID),
			zap.Float64("confidence", rag.Confidence))
	}

	aiMsg := &entity.Message{
		SessionId: sessionID,
		Role:      entity.RoleAssistant,
		Content:   replyContent,
		CreatedAt: time.Now(),
	}
	if err := s.messageRepo.Create(aiMsg); err != nil {
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}

	return &ChatTurnResult{
		Reply: respond.ChatReply{
			Role:       entity.RoleAssistant,
			Content:    replyContent,
			SessionId:  sessionID,
			Timestamp:  aiMsg.CreatedAt,
			Confidence: rag.Confidence,
			Sources:    rag.Sources,
		},
		Escalated: escalated,
	}, nil
}

// saveLead 会话维度补全线索，失败只记日志不打断对话
func (s *chatServiceImpl) saveLead(sessionID int64, email, phone string) bool {
	existing, err := s.leadRepo.GetBySessionID(sessionID)
	if err == nil {
		if email != "" {
			existing.Email = email
		}
		if phone != "" {
			existing.Phone = phone
		}
		if err := s.leadRepo.Update(existing); err != nil {
			zlog.Warn("lead update failed", zap.Int64("session_id", sessionID), zap.Error(err))
			return false
		}
		return true
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		zlog.Warn("lead lookup failed", zap.Int64("session_id", sessionID), zap.Error(err))
		return false
	}

	lead := &entity.Lead{
		SessionId: sessionID,
		Email:     email,
		Phone:     phone,
		CreatedAt: time.Now(),
	}
	if err := s.leadRepo.Create(lead); err != nil {
		zlog.Warn("lead create failed", zap.Int64("session_id", sessionID), zap.Error(err))
		return false
	}
	return true
}

func (s *chatServiceImpl) EndSession(ctx context.Context, sessionID int64) error {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
	return s.ragService.EndSession(ctx, sessionID)
}
