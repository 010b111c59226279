package respond

import "time"

// SessionItem 会话信息
type SessionItem struct {
	Id        int64     `json:"id"`
	BotId     int64     `json:"bot_id"`
	VisitorId string    `json:"visitor_id"`
	CreatedAt time.Time `json:"created_at"`
}

// MessageItem 单条消息
type MessageItem struct {
	Id        int64     `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ChatHistoryResponse 会话历史
type ChatHistoryResponse struct {
	SessionId     int64         `json:"session_id"`
	Messages      []MessageItem `json:"messages"`
	TotalMessages int           `json:"total_messages"`
}

// ChatReply 机器人应答
type ChatReply struct {
	Role       string    `json:"role"`
	Content    string    `json:"content"`
	SessionId  int64     `json:"session_id"`
	Timestamp  time.Time `json:"timestamp"`
	Confidence float64   `json:"confidence"`
	Sources    []string  `json:"sources,omitempty"`
}

// LeadItem 线索信息
type LeadItem struct {
	Id        int64     `json:"id"`
	SessionId int64     `json:"session_id"`
	Email     string    `json:"email,omitempty"`
	Name      string    `json:"name,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// DashboardStats 管理端总览统计
type DashboardStats struct {
	TotalSessions  int64 `json:"total_sessions"`
	TotalLeads     int64 `json:"total_leads"`
	ActiveBots     int64 `json:"active_bots"`
	TotalDocuments int64 `json:"total_documents"`
}

// LoginRespond 登录结果
type LoginRespond struct {
	Token string `json:"token"`
}
