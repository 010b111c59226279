package service

import (
	"errors"
	"time"

	botRepository "github.com/warrior-ram/demo-ai-chatbot/internal/modules/bot/domain/repository"
	"github.com/warrior-ram/demo-ai-chatbot/internal/modules/chat/application/dto/request"
	"github.com/warrior-ram/demo-ai-chatbot/internal/modules/chat/application/dto/respond"
	"github.com/warrior-ram/demo-ai-chatbot/internal/modules/chat/domain/entity"
	"github.com/warrior-ram/demo-ai-chatbot/internal/modules/chat/domain/repository"
	"github.com/warrior-ram/demo-ai-chatbot/pkg/util"
	"github.com/warrior-ram/demo-ai-chatbot/pkg/xerr"
	"github.com/warrior-ram/demo-ai-chatbot/pkg/zlog"

	"gorm.io/gorm"
)

type SessionService interface {
	// CreateOrGetSession 同一访客+机器人复用已有会话，页面刷新后对话可以续上
	CreateOrGetSession(req request.CreateSessionRequest) (*respond.SessionItem, error)
	GetSession(id int64) (*respond.SessionItem, error)
	// GetHistory 会话完整消息记录
	GetHistory(sessionID int64) (*respond.ChatHistoryResponse, error)
}

type sessionServiceImpl struct {
	sessionRepo repository.SessionRepository
	messageRepo repository.MessageRepository
	botRepo     botRepository.BotRepository
}

func NewSessionService(sessionRepo repository.SessionRepository, messageRepo repository.MessageRepository, botRepo botRepository.BotRepository) SessionService {
	return &sessionServiceImpl{
		sessionRepo: sessionRepo,
		messageRepo: messageRepo,
		botRepo:     botRepo,
	}
}

func (s *sessionServiceImpl) CreateOrGetSession(req request.CreateSessionRequest) (*respond.SessionItem, error) {
	if req.VisitorId == "" {
		req.VisitorId = util.GenerateUUID()
	}

	existing, err := s.sessionRepo.GetByVisitorAndBot(req.VisitorId, req.BotId)
	if err == nil {
		return toSessionItem(existing), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}

	if _, err := s.botRepo.GetByID(req.BotId); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, xerr.ErrBotNotFound
		}
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}

	session := &entity.ChatSession{
		BotId:     req.BotId,
		VisitorId: req.VisitorId,
		CreatedAt: time.Now(),
	}
	if err := s.sessionRepo.Create(session); err != nil {
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}
	return toSessionItem(session), nil
}

func (s *sessionServiceImpl) GetSession(id int64) (*respond.SessionItem, error) {
	session, err := s.sessionRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, xerr.ErrSessionNotFound
		}
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}
	return toSessionItem(session), nil
}

func (s *sessionServiceImpl) GetHistory(sessionID int64) (*respond.ChatHistoryResponse, error) {
	if _, err := s.sessionRepo.GetByID(sessionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, xerr.ErrSessionNotFound
		}
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}

	messages, err := s.messageRepo.ListBySessionID(sessionID)
	if err != nil {
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}

	items := make([]respond.MessageItem, 0, len(messages))
	for _, m := range messages {
		items = append(items, respond.MessageItem{
			Id:        m.Id,
			Role:      m.Role,
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
		})
	}

	return &respond.ChatHistoryResponse{
		SessionId:     sessionID,
		Messages:      items,
		TotalMessages: len(items),
	}, nil
}

func toSessionItem(session *entity.ChatSession) *respond.SessionItem {
	return &respond.SessionItem{
		Id:        session.Id,
		BotId:     session.BotId,
		VisitorId: session.VisitorId,
		CreatedAt: session.CreatedAt,
	}
}
