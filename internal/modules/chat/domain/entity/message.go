package entity

import (
	"time"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message 会话消息表
type Message struct {
	Id        int64     `gorm:"column:id;primaryKey;autoIncrement;comment:自增id" json:"id"`
	SessionId int64     `gorm:"column:session_id;index;not null;comment:会话id" json:"session_id"`
	Role      string    `gorm:"column:role;type:varchar(50);not null;comment:角色：user/assistant" json:"role"`
	Content   string    `gorm:"column:content;type:text;not null;comment:消息内容" json:"content"`
	CreatedAt time.Time `gorm:"column:created_at;not null;comment:创建时间" json:"created_at"`
}

func (Message) TableName() string {
	return "messages"
}
