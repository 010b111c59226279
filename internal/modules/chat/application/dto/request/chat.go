package request

// CreateSessionRequest 创建（或复用）访客会话，visitor_id 缺省时服务端生成
type CreateSessionRequest struct {
	VisitorId string `json:"visitor_id" binding:"omitempty,max=255"`
	BotId     int64  `json:"bot_id" binding:"required"`
}

// ChatMessageRequest 访客发送消息
type ChatMessageRequest struct {
	SessionId int64  `json:"session_id" binding:"required"`
	Content   string `json:"content" binding:"required,min=1"`
}

// LeadCreateRequest 手动登记线索
type LeadCreateRequest struct {
	SessionId int64  `json:"session_id" binding:"required"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Name      string `json:"name"`
}

// LoginRequest 管理端登录
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}
