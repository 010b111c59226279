package respond

import "time"

// BotItem 机器人信息
type BotItem struct {
	Id             int64     `json:"id"`
	Name           string    `json:"name"`
	SystemPrompt   string    `json:"system_prompt"`
	WelcomeMessage string    `json:"welcome_message"`
	CreatedAt      time.Time `json:"created_at"`
}

// DocumentItem 知识库文档信息（不含原文）
type DocumentItem struct {
	Id         int64     `json:"id"`
	BotId      int64     `json:"bot_id"`
	Filename   string    `json:"filename"`
	ChunkCount int       `json:"chunk_count"`
	CreatedAt  time.Time `json:"created_at"`
}

// UploadResult 文档上传结果
type UploadResult struct {
	DocumentId int64  `json:"document_id"`
	Filename   string `json:"filename"`
	ChunkCount int    `json:"chunk_count"`
	Status     string `json:"status"`
}

// KnowledgeBaseStats 机器人知识库统计
type KnowledgeBaseStats struct {
	BotId       int64 `json:"bot_id"`
	Exists      bool  `json:"exists"`
	VectorCount int64 `json:"vector_count"`
	Documents   int   `json:"documents"`
}
