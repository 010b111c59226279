package persistence

import (
	chatEntity "github.com/warrior-ram/demo-ai-chatbot/internal/modules/chat/domain/entity"
	chatRepository "github.com/warrior-ram/demo-ai-chatbot/internal/modules/chat/domain/repository"

	"gorm.io/gorm"
)

type leadRepositoryImpl struct {
	db *gorm.DB
}

func NewLeadRepository(db *gorm.DB) chatRepository.LeadRepository {
	return &leadRepositoryImpl{db: db}
}

func (r *leadRepositoryImpl) Create(lead *chatEntity.Lead) error {
	return r.db.Create(lead).Error
}

func (r *leadRepositoryImpl) GetBySessionID(sessionID int64) (*chatEntity.Lead, error) {
	var lead chatEntity.Lead
	if err := r.db.Where("session_id = ?", sessionID).First(&lead).Error; err != nil {
		return nil, err
	}
	return &lead, nil
}

func (r *leadRepositoryImpl) Update(lead *chatEntity.Lead) error {
	return r.db.Save(lead).Error
}

func (r *leadRepositoryImpl) List() ([]chatEntity.Lead, error) {
	var leads []chatEntity.Lead
	if err := r.db.Order("created_at DESC").Find(&leads).Error; err != nil {
		return nil, err
	}
	return leads, nil
}

func (r *leadRepositoryImpl) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&chatEntity.Lead{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
