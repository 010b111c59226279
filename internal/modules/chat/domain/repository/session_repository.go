package repository

import (
	"github.com/warrior-ram/demo-ai-chatbot/internal/modules/chat/domain/entity"
)

type SessionRepository interface {
	Create(session *entity.ChatSession) error
	GetByID(id int64) (*entity.ChatSession, error)
	GetByVisitorAndBot(visitorID string, botID int64) (*entity.ChatSession, error)
	Count() (int64, error)
}
