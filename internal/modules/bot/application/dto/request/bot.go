package request

// CreateBotRequest 创建机器人
type CreateBotRequest struct {
	Name           string `json:"name" binding:"required,min=1,max=255"`
	SystemPrompt   string `json:"system_prompt" binding:"required,min=1"`
	WelcomeMessage string `json:"welcome_message" binding:"required,min=1"`
}

// UpdateBotRequest 更新机器人配置，字段为空指针表示不修改
type UpdateBotRequest struct {
	Name           *string `json:"name"`
	SystemPrompt   *string `json:"system_prompt"`
	WelcomeMessage *string `json:"welcome_message"`
}
