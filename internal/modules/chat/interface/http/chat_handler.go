package http

import (
	"github.com/warrior-ram/demo-ai-chatbot/internal/modules/chat/application/dto/request"
	"github.com/warrior-ram/demo-ai-chatbot/internal/modules/chat/application/service"
	"github.com/warrior-ram/demo-ai-chatbot/pkg/back"
	"github.com/warrior-ram/demo-ai-chatbot/pkg/xerr"
	"github.com/warrior-ram/demo-ai-chatbot/pkg/zlog"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	chatService service.ChatService
}

func NewChatHandler(chatService service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// SendMessage REST 方式发消息，适合不方便建 WebSocket 的调用方
func (h *ChatHandler) SendMessage(ctx *gin.Context) {
	var req request.ChatMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		zlog.Error(err.Error())
		back.Error(ctx, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}

	result, err := h.chatService.HandleMessage(ctx.Request.Context(), req.SessionId, req.Content)
	if err != nil {
		back.Result(ctx, nil, err)
		return
	}
	back.Success(ctx, result.Reply)
}
