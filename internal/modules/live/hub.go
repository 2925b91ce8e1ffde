// Package live pushes booking changes to open calendar and warehouse views
// over WebSocket.
package live

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"eventhire/internal/notification"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 4 * 1024
	sendBuffer = 64
)

// connection is one browser tab. With no months it receives everything.
type connection struct {
	conn   *websocket.Conn
	send   chan []byte
	months map[string]bool
}

func (c *connection) wants(msg notification.Message) bool {
	if len(c.months) == 0 || msg.Date == "" {
		return true
	}
	first := monthOf(msg.Date)
	last := first
	if msg.DateTo != "" {
		last = monthOf(msg.DateTo)
	}
	for m := range c.months {
		if m >= first && m <= last {
			return true
		}
	}
	return false
}

func monthOf(day string) string {
	if len(day) < 7 {
		return day
	}
	return day[:7]
}

// Hub fans booking notifications out to connected clients. It implements
// notification.Publisher.
type Hub struct {
	mu          sync.RWMutex
	connections map[*connection]struct{}
	log         *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{connections: make(map[*connection]struct{}), log: log}
}

func (h *Hub) register(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.connections[c] = struct{}{}
}

func (h *Hub) unregister(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.connections[c]; ok {
		delete(h.connections, c)
		close(c.send)
	}
}

// Count returns the number of connected clients.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

// Publish queues msg for every interested client. Clients whose buffer is
// full miss the message.
func (h *Hub) Publish(_ context.Context, msg notification.Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.connections {
		if !c.wants(msg) {
			continue
		}
		select {
		case c.send <- data:
		default:
			h.log.Debug("live client too slow, message dropped", zap.Int64("evento_id", msg.EventID))
		}
	}
	return nil
}

// ServeWS runs a client until it disconnects or the hub closes.
func (h *Hub) ServeWS(conn *websocket.Conn, months []string) {
	c := &connection{
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		months: make(map[string]bool, len(months)),
	}
	for _, m := range months {
		c.months[m] = true
	}

	h.register(c)
	go h.writePump(c)
	h.readPump(c)
}

func (h *Hub) readPump(c *connection) {
	defer func() {
		h.unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMsgSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debug("live client read failed", zap.Error(err))
			}
			return
		}

		var req struct {
			Type  string `json:"type"`
			Month string `json:"month"`
		}
		if err := json.Unmarshal(raw, &req); err != nil || req.Month == "" {
			continue
		}
		switch req.Type {
		case "subscribe":
			h.mu.Lock()
			c.months[req.Month] = true
			h.mu.Unlock()
		case "unsubscribe":
			h.mu.Lock()
			delete(c.months, req.Month)
			h.mu.Unlock()
		}
	}
}

func (h *Hub) writePump(c *connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.connections {
		delete(h.connections, c)
		close(c.send)
	}
}
