package live

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"eventhire/internal/pkg/dates"
)

type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
	log      *zap.Logger
}

// NewHandler accepts connections from allowedOrigins. Requests without an
// Origin header, such as non-browser clients, are always accepted.
func NewHandler(hub *Hub, allowedOrigins []string, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[strings.TrimRight(o, "/")] = true
	}
	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowed[strings.TrimRight(origin, "/")]
			},
		},
		log: log,
	}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/ws/calendario", h.Calendar)
}

// Calendar handles GET /ws/calendario?months=2025-06,2025-07. Without months
// every change is streamed.
func (h *Handler) Calendar(c *gin.Context) {
	var months []string
	for _, raw := range strings.Split(c.Query("months"), ",") {
		if y, m, err := dates.ParseMonth(raw); err == nil {
			months = append(months, dates.New(y, m, 1).String()[:7])
		}
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// the upgrader has already answered the request
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	h.log.Debug("live client connected", zap.Strings("months", months))
	h.hub.ServeWS(conn, months)
	h.log.Debug("live client disconnected")
}
