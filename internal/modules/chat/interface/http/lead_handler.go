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

type LeadHandler struct {
	leadService service.LeadService
}

func NewLeadHandler(leadService service.LeadService) *LeadHandler {
	return &LeadHandler{leadService: leadService}
}

// Capture 登记线索（同一会话补全字段）
func (h *LeadHandler) Capture(ctx *gin.Context) {
	var req request.LeadCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		zlog.Error(err.Error())
		back.Error(ctx, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}

	lead, err := h.leadService.CaptureLead(req)
	back.Result(ctx, lead, err)
}

// List 全部线索
func (h *LeadHandler) List(ctx *gin.Context) {
	leads, err := h.leadService.ListLeads()
	back.Result(ctx, leads, err)
}

// GetBySession 会话对应的线索
func (h *LeadHandler) GetBySession(ctx *gin.Context) {
	sessionID, err := strconv.ParseInt(ctx.Param("session_id"), 10, 64)
	if err != nil {
		back.Error(ctx, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}

	lead, err := h.leadService.GetLeadBySession(sessionID)
	back.Result(ctx, lead, err)
}
