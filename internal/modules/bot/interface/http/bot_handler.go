package http

import (
	"strconv"

	"github.com/warrior-ram/demo-ai-chatbot/internal/modules/bot/application/dto/request"
	"github.com/warrior-ram/demo-ai-chatbot/internal/modules/bot/application/service"
	"github.com/warrior-ram/demo-ai-chatbot/pkg/back"
	"github.com/warrior-ram/demo-ai-chatbot/pkg/xerr"
	"github.com/warrior-ram/demo-ai-chatbot/pkg/zlog"

	"github.com/gin-gonic/gin"
)

type BotHandler struct {
	botService service.BotService
}

func NewBotHandler(botService service.BotService) *BotHandler {
	return &BotHandler{botService: botService}
}

// Create 创建机器人
func (h *BotHandler) Create(ctx *gin.Context) {
	var req request.CreateBotRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		zlog.Error(err.Error())
		back.Error(ctx, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}

	bot, err := h.botService.CreateBot(req)
	back.Result(ctx, bot, err)
}

// Get 查询机器人
func (h *BotHandler) Get(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		back.Error(ctx, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}

	bot, err := h.botService.GetBot(id)
	back.Result(ctx, bot, err)
}

// List 机器人列表
func (h *BotHandler) List(ctx *gin.Context) {
	bots, err := h.botService.ListBots()
	back.Result(ctx, bots, err)
}

// Update 更新机器人配置
func (h *BotHandler) Update(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		back.Error(ctx, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}

	var req request.UpdateBotRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		zlog.Error(err.Error())
		back.Error(ctx, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}

	bot, err := h.botService.UpdateBot(id, req)
	back.Result(ctx, bot, err)
}

// Delete 删除机器人
func (h *BotHandler) Delete(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		back.Error(ctx, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}

	err = h.botService.DeleteBot(id)
	back.Result(ctx, gin.H{"deleted": id}, err)
}
