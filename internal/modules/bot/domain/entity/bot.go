package entity

import (
	"time"
)

// Bot 机器人配置表
type Bot struct {
	Id             int64     `gorm:"column:id;primaryKey;autoIncrement;comment:自增id" json:"id"`
	Name           string    `gorm:"column:name;type:varchar(255);not null;comment:机器人名称" json:"name"`
	SystemPrompt   string    `gorm:"column:system_prompt;type:text;not null;comment:系统提示词" json:"system_prompt"`
	WelcomeMessage string    `gorm:"column:welcome_message;type:text;not null;comment:欢迎语" json:"welcome_message"`
	CreatedAt      time.Time `gorm:"column:created_at;not null;comment:创建时间" json:"created_at"`
}

func (Bot) TableName() string {
	return "bots"
}
