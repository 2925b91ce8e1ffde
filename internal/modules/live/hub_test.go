package live

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"eventhire/internal/notification"
)

func newServer(t *testing.T, hub *Hub) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(hub, []string{"http://localhost:5173"}, zap.NewNop()).RegisterRoutes(r)
	return httptest.NewServer(r)
}

func dial(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/calendario" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) notification.Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg notification.Message
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func (h *Hub) subscribed(month string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.connections {
		if c.months[month] {
			return true
		}
	}
	return false
}

func TestHub_StreamsByMonth(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	hub := NewHub(zap.NewNop())
	srv := newServer(t, hub)
	defer srv.Close()

	all := dial(t, srv, "")
	june := dial(t, srv, "?months=2025-06")
	require.Eventually(t, func() bool { return hub.Count() == 2 }, 2*time.Second, 10*time.Millisecond)

	ctx := context.Background()
	require.NoError(t, hub.Publish(ctx, notification.Message{Type: notification.TypeEventChanged, EventID: 1, Date: "2025-07-01"}))
	require.NoError(t, hub.Publish(ctx, notification.Message{Type: notification.TypeEventChanged, EventID: 2, Date: "2025-05-30", DateTo: "2025-06-02"}))
	require.NoError(t, hub.Publish(ctx, notification.Message{Type: notification.TypeEventDeleted, EventID: 3}))

	assert.Equal(t, int64(1), readMessage(t, all).EventID)
	assert.Equal(t, int64(2), readMessage(t, all).EventID)
	assert.Equal(t, int64(3), readMessage(t, all).EventID)

	assert.Equal(t, int64(2), readMessage(t, june).EventID)
	deleted := readMessage(t, june)
	assert.Equal(t, notification.TypeEventDeleted, deleted.Type)

	require.NoError(t, all.Close())
	require.NoError(t, june.Close())
	require.Eventually(t, func() bool { return hub.Count() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_Subscribe(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	hub := NewHub(nil)
	srv := newServer(t, hub)
	defer srv.Close()

	conn := dial(t, srv, "?months=2025-01")
	defer conn.Close()
	require.Eventually(t, func() bool { return hub.Count() == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "subscribe", "month": "2025-09"}))
	require.Eventually(t, func() bool { return hub.subscribed("2025-09") }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, hub.Publish(context.Background(), notification.Message{Type: notification.TypeEventChanged, EventID: 8, Date: "2025-03-01"}))
	require.NoError(t, hub.Publish(context.Background(), notification.Message{Type: notification.TypeEventChanged, EventID: 9, Date: "2025-09-12"}))
	assert.Equal(t, int64(9), readMessage(t, conn).EventID)

	hub.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	assert.Zero(t, hub.Count())
}

func TestHandler_RejectsForeignOrigin(t *testing.T) {
	hub := NewHub(nil)
	srv := newServer(t, hub)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/calendario"
	_, resp, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": {"http://evil.example"}})
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	conn, _, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": {"http://localhost:5173"}})
	require.NoError(t, err)
	require.NoError(t, conn.Close())
}

func TestConnection_Wants(t *testing.T) {
	c := &connection{months: map[string]bool{"2025-06": true}}
	tests := []struct {
		name string
		msg  notification.Message
		want bool
	}{
		{"same month", notification.Message{Date: "2025-06-30"}, true},
		{"other month", notification.Message{Date: "2025-07-01"}, false},
		{"spans into month", notification.Message{Date: "2025-05-28", DateTo: "2025-06-01"}, true},
		{"spans over month", notification.Message{Date: "2025-05-28", DateTo: "2025-07-01"}, true},
		{"no date", notification.Message{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.wants(tt.msg))
		})
	}
	assert.True(t, (&connection{}).wants(notification.Message{Date: "2030-01-01"}))
}
