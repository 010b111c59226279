package repository

import (
	"github.com/warrior-ram/demo-ai-chatbot/internal/modules/bot/domain/entity"
)

type BotRepository interface {
	Create(bot *entity.Bot) error
	GetByID(id int64) (*entity.Bot, error)
	List() ([]entity.Bot, error)
	Update(bot *entity.Bot) error
	Delete(id int64) error
	CountActive() (int64, error)
}
