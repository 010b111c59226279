package http

import (
	"strconv"

	"github.com/warrior-ram/demo-ai-chatbot/internal/modules/chat/application/dto/request"
	"github.com/warrior-ram/demo-ai-chatbot/internal/modules/chat/application/service"
	"github.com/warrior-ram/demo-ai-chatbot/pkg/back"
	"github.com/warrior-ram/demo-ai-chatbot/pkg/xerr"
	"github.com/warrior-ram/demo-ai-chatbot/pkg/zlog"

	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	sessionService service.SessionService
}

func NewSessionHandler(sessionService service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// CreateOrGet 创建会话，同一访客+机器人返回已有会话
func (h *SessionHandler) CreateOrGet(ctx *gin.Context) {
	var req request.CreateSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		zlog.Error(err.Error())
		back.Error(ctx, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}

	session, err := h.sessionService.CreateOrGetSession(req)
	back.Result(ctx, session, err)
}

// History 会话完整消息记录
func (h *SessionHandler) History(ctx *gin.Context) {
	sessionID, err := strconv.ParseInt(ctx.Param("session_id"), 10, 64)
	if err != nil {
		back.Error(ctx, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}

	history, err := h.sessionService.GetHistory(sessionID)
	back.Result(ctx, history, err)
}
