package http

import (
	"github.com/warrior-ram/demo-ai-chatbot/internal/modules/chat/application/dto/request"
	"github.com/warrior-ram/demo-ai-chatbot/internal/modules/chat/application/service"
	"github.com/warrior-ram/demo-ai-chatbot/pkg/back"
	"github.com/warrior-ram/demo-ai-chatbot/pkg/xerr"
	"github.com/warrior-ram/demo-ai-chatbot/pkg/zlog"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	authService  service.AuthService
	statsService service.StatsService
}

func NewAdminHandler(authService service.AuthService, statsService service.StatsService) *AdminHandler {
	return &AdminHandler{
		authService:  authService,
		statsService: statsService,
	}
}

// Login 管理端登录
func (h *AdminHandler) Login(ctx *gin.Context) {
	var req request.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		zlog.Error(err.Error())
		back.Error(ctx, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}

	token, err := h.authService.Login(req)
	back.Result(ctx, token, err)
}

// Stats 管理端总览统计
func (h *AdminHandler) Stats(ctx *gin.Context) {
	stats, err := h.statsService.DashboardStats()
	back.Result(ctx, stats, err)
}
