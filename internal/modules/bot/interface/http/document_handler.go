package http

import (
	"io"
	"strconv"

	"github.com/warrior-ram/demo-ai-chatbot/internal/modules/bot/application/service"
	"github.com/warrior-ram/demo-ai-chatbot/pkg/back"
	"github.com/warrior-ram/demo-ai-chatbot/pkg/xerr"
	"github.com/warrior-ram/demo-ai-chatbot/pkg/zlog"

	"github.com/gin-gonic/gin"
)

// 上传文件大小上限 10MB
const maxUploadSize = 10 << 20

type DocumentHandler struct {
	documentService service.DocumentService
}

func NewDocumentHandler(documentService service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// Upload 上传文档到机器人知识库（multipart 表单，字段 file + bot_id）
func (h *DocumentHandler) Upload(ctx *gin.Context) {
	botID, err := strconv.ParseInt(ctx.PostForm("bot_id"), 10, 64)
	if err != nil {
		back.Error(ctx, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		zlog.Error(err.Error())
		back.Error(ctx, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}
	if fileHeader.Size > maxUploadSize {
		back.Error(ctx, xerr.BadRequest, "文件过大")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		zlog.Error(err.Error())
		back.Error(ctx, xerr.InternalServerError, xerr.ErrServerError.Message)
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		zlog.Error(err.Error())
		back.Error(ctx, xerr.InternalServerError, xerr.ErrServerError.Message)
		return
	}

	result, err := h.documentService.UploadDocument(ctx.Request.Context(), botID, fileHeader.Filename, content)
	back.Result(ctx, result, err)
}

type addTextRequest struct {
	BotId   int64  `json:"bot_id" binding:"required"`
	Title   string `json:"title" binding:"required,min=1,max=200"`
	Content string `json:"content" binding:"required"`
}

// AddText 直接添加文本内容到知识库
func (h *DocumentHandler) AddText(ctx *gin.Context) {
	var req addTextRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		zlog.Error(err.Error())
		back.Error(ctx, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}

	result, err := h.documentService.AddTextDocument(ctx.Request.Context(), req.BotId, req.Title, req.Content)
	back.Result(ctx, result, err)
}

// ListByBot 机器人的文档列表及集合统计
func (h *DocumentHandler) ListByBot(ctx *gin.Context) {
	botID, err := strconv.ParseInt(ctx.Param("bot_id"), 10, 64)
	if err != nil {
		back.Error(ctx, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}

	items, stats, err := h.documentService.ListDocuments(ctx.Request.Context(), botID)
	if err != nil {
		back.Result(ctx, nil, err)
		return
	}
	back.Success(ctx, gin.H{
		"documents": items,
		"total":     len(items),
		"stats":     stats,
	})
}

// Delete 删除文档记录
func (h *DocumentHandler) Delete(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		back.Error(ctx, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}

	err = h.documentService.DeleteDocument(ctx.Request.Context(), id)
	back.Result(ctx, gin.H{"deleted": id}, err)
}
