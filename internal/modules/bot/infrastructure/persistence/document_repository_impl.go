package persistence

import (
	botEntity "github.com/warrior-ram/demo-ai-chatbot/internal/modules/bot/domain/entity"
	botRepository "github.com/warrior-ram/demo-ai-chatbot/internal/modules/bot/domain/repository"

	"gorm.io/gorm"
)

type documentRepositoryImpl struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) botRepository.DocumentRepository {
	return &documentRepositoryImpl{db: db}
}

func (r *documentRepositoryImpl) Create(doc *botEntity.Document) error {
	return r.db.Create(doc).Error
}

func (r *documentRepositoryImpl) GetByID(id int64) (*botEntity.Document, error) {
	var doc botEntity.Document
	if err := r.db.Where("id = ?", id).First(&doc).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepositoryImpl) ListByBotID(botID int64) ([]botEntity.Document, error) {
	var docs []botEntity.Document
	if err := r.db.Where("bot_id = ?", botID).Order("created_at DESC").Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *documentRepositoryImpl) UpdateChunkCount(id int64, chunkCount int) error {
	return r.db.Model(&botEntity.Document{}).Where("id = ?", id).Update("chunk_count", chunkCount).Error
}

func (r *documentRepositoryImpl) Delete(id int64) error {
	return r.db.Where("id = ?", id).Delete(&botEntity.Document{}).Error
}

func (r *documentRepositoryImpl) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&botEntity.Document{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
