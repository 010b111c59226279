package repository

import (
	"github.com/warrior-ram/demo-ai-chatbot/internal/modules/chat/domain/entity"
)

type MessageRepository interface {
	Create(message *entity.Message) error
	ListBySessionID(sessionID int64) ([]entity.Message, error)
	ListRecentBySessionID(sessionID int64, limit int) ([]entity.Message, error)
	CountBySessionID(sessionID int64) (int64, error)
}
