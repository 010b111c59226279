package persistence

import (
	chatEntity "github.com/warrior-ram/demo-ai-chatbot/internal/modules/chat/domain/entity"
	chatRepository "github.com/warrior-ram/demo-ai-chatbot/internal/modules/chat/domain/repository"

	"gorm.io/gorm"
)

type messageRepositoryImpl struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) chatRepository.MessageRepository {
	return &messageRepositoryImpl{db: db}
}

func (r *messageRepositoryImpl) Create(message *chatEntity.Message) error {
	return r.db.Create(message).Error
}

func (r *messageRepositoryImpl) ListBySessionID(sessionID int64) ([]chatEntity.Message, error) {
	var messages []chatEntity.Message
	err := r.db.Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// ListRecentBySessionID 取最近 limit 条消息，按时间正序返回
func (r *messageRepositoryImpl) ListRecentBySessionID(sessionID int64, limit int) ([]chatEntity.Message, error) {
	var messages []chatEntity.Message
	err := r.db.Where("session_id = ?", sessionID).
		Order("created_at DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

func (r *messageRepositoryImpl) CountBySessionID(sessionID int64) (int64, error) {
	var count int64
	err := r.db.Model(&chatEntity.Message{}).
		Where("session_id = ?", sessionID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
