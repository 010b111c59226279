package persistence

import (
	chatEntity "github.com/warrior-ram/demo-ai-chatbot/internal/modules/chat/domain/entity"
	chatRepository "github.com/warrior-ram/demo-ai-chatbot/internal/modules/chat/domain/repository"

	"gorm.io/gorm"
)

type sessionRepositoryImpl struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) chatRepository.SessionRepository {
	return &sessionRepositoryImpl{db: db}
}

func (r *sessionRepositoryImpl) Create(session *chatEntity.ChatSession) error {
	return r.db.Create(session).Error
}

func (r *sessionRepositoryImpl) GetByID(id int64) (*chatEntity.ChatSession, error) {
	var sess chatEntity.ChatSession
	if err := r.db.Where("id = ?", id).First(&sess).Error; err != nil {
		return nil, err
	}
	return &sess, nil
}

func (r *sessionRepositoryImpl) GetByVisitorAndBot(visitorID string, botID int64) (*chatEntity.ChatSession, error) {
	var sess chatEntity.ChatSession
	if err := r.db.Where("visitor_id = ? AND bot_id = ?", visitorID, botID).
		Order("created_at DESC").First(&sess).Error; err != nil {
		return nil, err
	}
	return &sess, nil
}

func (r *sessionRepositoryImpl) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&chatEntity.ChatSession{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
