package repository

import (
	"github.com/warrior-ram/demo-ai-chatbot/internal/modules/bot/domain/entity"
)

type DocumentRepository interface {
	Create(doc *entity.Document) error
	GetByID(id int64) (*entity.Document, error)
	ListByBotID(botID int64) ([]entity.Document, error)
	UpdateChunkCount(id int64, chunkCount int) error
	Delete(id int64) error
	Count() (int64, error)
}
