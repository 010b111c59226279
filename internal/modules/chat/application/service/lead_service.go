package service

import (
	"errors"
	"time"

	"github.com/warrior-ram/demo-ai-chatbot/internal/modules/chat/application/dto/request"
	"github.com/warrior-ram/demo-ai-chatbot/internal/modules/chat/application/dto/respond"
	"github.com/warrior-ram/demo-ai-chatbot/internal/modules/chat/domain/entity"
	"github.com/warrior-ram/demo-ai-chatbot/internal/modules/chat/domain/repository"
	"github.com/warrior-ram/demo-ai-chatbot/pkg/xerr"
	"github.com/warrior-ram/demo-ai-chatbot/pkg/zlog"

	"gorm.io/gorm"
)

type LeadService interface {
	// CaptureLead 登记线索。一个会话只保留一条记录，后到的非空字段做补全。
	CaptureLead(req request.LeadCreateRequest) (*respond.LeadItem, error)
	ListLeads() ([]respond.LeadItem, error)
	GetLeadBySession(sessionID int64) (*respond.LeadItem, error)
}

type leadServiceImpl struct {
	leadRepo    repository.LeadRepository
	sessionRepo repository.SessionRepository
}

func NewLeadService(leadRepo repository.LeadRepository, sessionRepo repository.SessionRepository) LeadService {
	return &leadServiceImpl{
		leadRepo:    leadRepo,
		sessionRepo: sessionRepo,
	}
}

func (s *leadServiceImpl) CaptureLead(req request.LeadCreateRequest) (*respond.LeadItem, error) {
	if _, err := s.sessionRepo.GetByID(req.SessionId); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, xerr.ErrSessionNotFound
		}
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}

	existing, err := s.leadRepo.GetBySessionID(req.SessionId)
	if err == nil {
		if req.Email != "" {
			existing.Email = req.Email
		}
		if req.Name != "" {
			existing.Name = req.Name
		}
		if req.Phone != "" {
			existing.Phone = req.Phone
		}
		if err := s.leadRepo.Update(existing); err != nil {
			zlog.Error(err.Error())
			return nil, xerr.ErrServerError
		}
		return toLeadItem(existing), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}

	lead := &entity.Lead{
		SessionId: req.SessionId,
		Email:     req.Email,
		Name:      req.Name,
		Phone:     req.Phone,
		CreatedAt: time.Now(),
	}
	if err := s.leadRepo.Create(lead); err != nil {
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}
	return toLeadItem(lead), nil
}

func (s *leadServiceImpl) ListLeads() ([]respond.LeadItem, error) {
	leads, err := s.leadRepo.List()
	if err != nil {
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}
	items := make([]respond.LeadItem, 0, len(leads))
	for i := range leads {
		items = append(items, *toLeadItem(&leads[i]))
	}
	return items, nil
}

func (s *leadServiceImpl) GetLeadBySession(sessionID int64) (*respond.LeadItem, error) {
	lead, err := s.leadRepo.GetBySessionID(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, xerr.ErrLeadNotFound
		}
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}
	return toLeadItem(lead), nil
}

func toLeadItem(lead *entity.Lead) *respond.LeadItem {
	return &respond.LeadItem{
		Id:        lead.Id,
		SessionId: lead.SessionId,
		Email:     lead.Email,
		Name:      lead.Name,
		Phone:     lead.Phone,
		CreatedAt: lead.CreatedAt,
	}
}
