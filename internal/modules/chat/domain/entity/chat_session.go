package entity

import (
	"time"
)

// ChatSession 访客会话表
type ChatSession struct {
	Id        int64     `gorm:"column:id;primaryKey;autoIncrement;comment:自增id" json:"id"`
	BotId     int64     `gorm:"column:bot_id;index;not null;comment:机器人id" json:"bot_id"`
	VisitorId string    `gorm:"column:visitor_id;index;type:varchar(255);not null;comment:访客标识" json:"visitor_id"`
	CreatedAt time.Time `gorm:"column:created_at;not null;comment:创建时间" json:"created_at"`
}

func (ChatSession) TableName() string {
	return "chat_sessions"
}
