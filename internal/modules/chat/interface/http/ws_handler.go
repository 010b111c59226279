package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	botService "github.com/warrior-ram/demo-ai-chatbot/internal/modules/bot/application/service"
	"github.com/warrior-ram/demo-ai-chatbot/internal/modules/chat/application/dto/respond"
	"github.com/warrior-ram/demo-ai-chatbot/internal/modules/chat/application/service"
	"github.com/warrior-ram/demo-ai-chatbot/internal/modules/chat/domain/entity"
	"github.com/warrior-ram/demo-ai-chatbot/pkg/ws"
	"github.com/warrior-ram/demo-ai-chatbot/pkg/zlog"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// 小组件会嵌到客户站点，跨域由网关层把关
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsInbound 客户端上行消息
type wsInbound struct {
	Message string `json:"message"`
}

type WsHandler struct {
	hub            *ws.Hub
	sessionService service.SessionService
	chatService    service.ChatService
	botService     botService.BotService
}

func NewWsHandler(hub *ws.Hub, sessionService service.SessionService, chatService service.ChatService, botService botService.BotService) *WsHandler {
	return &WsHandler{
		hub:            hub,
		sessionService: sessionService,
		chatService:    chatService,
		botService:     botService,
	}
}

// Chat 实时对话入口：/ws/chat/:session_id
func (h *WsHandler) Chat(ctx *gin.Context) {
	sessionID, err := strconv.ParseInt(ctx.Param("session_id"), 10, 64)
	if err != nil {
		ctx.Status(http.StatusBadRequest)
		return
	}

	session, err := h.sessionService.GetSession(sessionID)
	if err != nil {
		ctx.Status(http.StatusNotFound)
		return
	}
	bot, err := h.botService.GetBot(session.BotId)
	if err != nil {
		ctx.Status(http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		zlog.Error(err.Error())
		return
	}

	key := strconv.FormatInt(sessionID, 10)
	client := ws.NewClient(key, conn)
	h.hub.Register(client)
	go client.WritePump()

	// 欢迎语
	_ = h.hub.SendJSON(key, respond.ChatReply{
		Role:      entity.RoleAssistant,
		Content:   bot.WelcomeMessage,
		SessionId: sessionID,
		Timestamp: time.Now(),
	})

	defer func() {
		h.hub.Unregister(client)
		// 最后一个连接断开时清理会话生成状态
		if h.hub.SessionOnline(key) == 0 {
			if err := h.chatService.EndSession(context.Background(), sessionID); err != nil {
				zlog.Warn("end session failed", zap.Int64("session_id", sessionID), zap.Error(err))
			}
		}
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				zlog.Warn("ws read error", zap.Int64("session_id", sessionID), zap.Error(err))
			}
			return
		}

		var in wsInbound
		if err := json.Unmarshal(raw, &in); err != nil || in.Message == "" {
			continue
		}

		// 回显用户消息
		_ = h.hub.SendJSON(key, respond.ChatReply{
			Role:      entity.RoleUser,
			Content:   in.Message,
			SessionId: sessionID,
			Timestamp: time.Now(),
		})
		// 输入中提示
		_ = h.hub.SendJSON(key, gin.H{
			"role":       "system",
			"content":    "typing",
			"session_id": sessionID,
		})

		result, err := h.chatService.HandleMessage(ctx.Request.Context(), sessionID, in.Message)
		if err != nil {
			zlog.Error(err.Error())
			_ = h.hub.SendJSON(key, gin.H{
				"role":       "system",
				"content":    "error",
				"session_id": sessionID,
			})
			continue
		}

		_ = h.hub.SendJSON(key, result.Reply)
	}
}
