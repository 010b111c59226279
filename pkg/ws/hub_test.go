package ws

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHubRegisterAndSend(t *testing.T) {
	h := NewHub()
	c := NewClient("1", nil)
	h.Register(c)

	assert.Equal(t, 1, h.Online())
	assert.Equal(t, 1, h.SessionOnline("1"))
	assert.Equal(t, 0, h.SessionOnline("2"))

	ok := h.Send("1", []byte("hello"))
	assert.True(t, ok)
	assert.Equal(t, []byte("hello"), <-c.send)

	// 未知会话没有可投递的连接
	assert.False(t, h.Send("2", []byte("x")))
}

func TestHubSendJSON(t *testing.T) {
	h := NewHub()
	c := NewClient("1", nil)
	h.Register(c)

	err := h.SendJSON("1", map[string]string{"role": "assistant"})
	assert.NoError(t, err)
	assert.JSONEq(t, `{"role":"assistant"}`, string(<-c.send))
}

func TestHubUnregister(t *testing.T) {
	h := NewHub()
	c1 := NewClient("1", nil)
	c2 := NewClient("1", nil)
	h.Register(c1)
	h.Register(c2)
	assert.Equal(t, 2, h.SessionOnline("1"))

	h.Unregister(c1)
	assert.Equal(t, 1, h.SessionOnline("1"))
	h.Unregister(c2)
	assert.Equal(t, 0, h.SessionOnline("1"))
	assert.Equal(t, 0, h.Online())

	assert.False(t, h.Send("1", []byte("x")))
}

func TestClientCloseIdempotent(t *testing.T) {
	c := NewClient("1", nil)
	c.Close()
	c.Close()
}

func TestHubSendEvictsFullClient(t *testing.T) {
	h := NewHub()
	full := NewClient("1", nil)
	h.Register(full)

	// 填满发送缓冲，之后的广播应把该连接踢下线
	for i := 0; i < cap(full.send); i++ {
		full.send <- []byte("x")
	}
	assert.False(t, h.Send("1", []byte("overflow")))
	assert.Equal(t, 0, h.SessionOnline("1"))
}

func TestHubSendToClosedClientNoPanic(t *testing.T) {
	h := NewHub()
	c := NewClient("1", nil)
	h.Register(c)

	c.Close()
	assert.NotPanics(t, func() {
		h.Send("1", []byte("late"))
	})
}

// 广播与同会话的上下线并发交错不能触碰同一个 map
func TestHubSendConcurrentWithRegister(t *testing.T) {
	h := NewHub()
	stable := NewClient("1", nil)
	h.Register(stable)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 500; i++ {
			c := NewClient("1", nil)
			h.Register(c)
			h.Unregister(c)
		}
	}()

	for i := 0; i < 500; i++ {
		h.Send("1", []byte("ping"))
		// 排空常驻连接的缓冲，避免它被当作积压连接踢掉
		for {
			select {
			case <-stable.send:
				continue
			default:
			}
			break
		}
	}
	<-done

	assert.Equal(t, 1, h.SessionOnline("1"))
}
