package entity

import (
	"time"
)

// Document 知识库文档表，content 保留原文，分块后的向量写入向量库
type Document struct {
	Id         int64     `gorm:"column:id;primaryKey;autoIncrement;comment:自增id" json:"id"`
	BotId      int64     `gorm:"column:bot_id;index;not null;comment:所属机器人id" json:"bot_id"`
	Filename   string    `gorm:"column:filename;type:varchar(255);not null;comment:文件名" json:"filename"`
	Content    string    `gorm:"column:content;type:longtext;not null;comment:文档原文" json:"-"`
	ChunkCount int       `gorm:"column:chunk_count;not null;default:0;comment:分块数量" json:"chunk_count"`
	CreatedAt  time.Time `gorm:"column:created_at;not null;comment:创建时间" json:"created_at"`
}

func (Document) TableName() string {
	return "documents"
}
