package persistence

import (
	botEntity "github.com/warrior-ram/demo-ai-chatbot/internal/modules/bot/domain/entity"
	botRepository "github.com/warrior-ram/demo-ai-chatbot/internal/modules/bot/domain/repository"

	"gorm.io/gorm"
)

type botRepositoryImpl struct {
	db *gorm.DB
}

func NewBotRepository(db *gorm.DB) botRepository.BotRepository {
	return &botRepositoryImpl{db: db}
}

func (r *botRepositoryImpl) Create(bot *botEntity.Bot) error {
	return r.db.Create(bot).Error
}

func (r *botRepositoryImpl) GetByID(id int64) (*botEntity.Bot, error) {
	var bot botEntity.Bot
	if err := r.db.Where("id = ?", id).First(&bot).Error; err != nil {
		return nil, err
	}
	return &bot, nil
}

func (r *botRepositoryImpl) List() ([]botEntity.Bot, error) {
	var bots []botEntity.Bot
	if err := r.db.Order("created_at DESC").Find(&bots).Error; err != nil {
		return nil, err
	}
	return bots, nil
}

func (r *botRepositoryImpl) Update(bot *botEntity.Bot) error {
	return r.db.Save(bot).Error
}

func (r *botRepositoryImpl) Delete(id int64) error {
	return r.db.Where("id = ?", id).Delete(&botEntity.Bot{}).Error
}

func (r *botRepositoryImpl) CountActive() (int64, error) {
	var count int64
	if err := r.db.Model(&botEntity.Bot{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
