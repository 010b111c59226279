package repository

import (
	"github.com/warrior-ram/demo-ai-chatbot/internal/modules/chat/domain/entity"
)

type LeadRepository interface {
	Create(lead *entity.Lead) error
	GetBySessionID(sessionID int64) (*entity.Lead, error)
	Update(lead *entity.Lead) error
	List() ([]entity.Lead, error)
	Count() (int64, error)
}
