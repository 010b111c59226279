package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/warrior-ram/demo-ai-chatbot/pkg/zlog"

	"github.com/gorilla/websocket"
)

// Hub 按会话 ID 管理在线连接，同一会话允许多个标签页同时在线
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]map[*Client]struct{}),
	}
}

func (h *Hub) Register(c *Client) {
	if c == nil || c.sessionID == "" {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	set := h.clients[c.sessionID]
	if set == nil {
		set = make(map[*Client]struct{})
		h.clients[c.sessionID] = set
	}
	set[c] = struct{}{}
}

func (h *Hub) Unregister(c *Client) {
	if c == nil || c.sessionID == "" {
		return
	}
	h.mu.Lock()
	set := h.clients[c.sessionID]
	if set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.sessionID)
		}
	}
	h.mu.Unlock()
	c.Close()
}

// Send 向指定会话的全部连接推送消息，发送缓冲满则踢掉该连接
func (h *Hub) Send(sessionID string, payload []byte) bool {
	if sessionID == "" || len(payload) == 0 {
		return false
	}

	// 持锁期间拷贝连接列表，注册/注销不能与遍历并发碰同一个 map
	h.mu.RLock()
	set := h.clients[sessionID]
	targets := make([]*Client, 0, len(set))
	for c := range set {
		if c != nil {
			targets = append(targets, c)
		}
	}
	h.mu.RUnlock()
	if len(targets) == 0 {
		return false
	}

	ok := false
	var stale []*Client
	for _, c := range targets {
		select {
		case c.send <- payload:
			ok = true
		case <-c.done:
			// 连接已关闭，消息丢弃
		default:
			stale = append(stale, c)
		}
	}
	for _, c := range stale {
		h.Unregister(c)
	}
	return ok
}

func (h *Hub) SendJSON(sessionID string, v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	h.Send(sessionID, b)
	return nil
}

// Online 当前在线会话数
func (h *Hub) Online() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// SessionOnline 指定会话的在线连接数
func (h *Hub) SessionOnline(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[sessionID])
}

type Client struct {
	sessionID string
	conn      *websocket.Conn
	send      chan []byte
	done      chan struct{}

	closeOnce sync.Once
}

func NewClient(sessionID string, conn *websocket.Conn) *Client {
	return &Client{
		sessionID: sessionID,
		conn:      conn,
		send:      make(chan []byte, 64),
		done:      make(chan struct{}),
	}
}

func (c *Client) SessionID() string {
	return c.sessionID
}

// Close 通过 done 通知写协程退出；send 不关闭，并发投递方不会写到已关闭的通道
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		if c.conn != nil {
			_ = c.conn.Close()
		}
	})
}

func (c *Client) WritePump() {
	if c.conn == nil {
		return
	}
	for {
		select {
		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				zlog.Error(err.Error())
				return
			}
		case <-c.done:
			return
		}
	}
}
