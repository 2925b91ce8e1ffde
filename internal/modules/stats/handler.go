package stats

import (
	"github.com/gin-gonic/gin"

	"eventhire/internal/pkg/dates"
	"eventhire/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/stats/mese", h.Month)
}

// Month handles GET /stats/mese?m=YYYY-MM
func (h *Handler) Month(c *gin.Context) {
	year, month, err := dates.ParseMonth(c.Query("m"))
	if err != nil {
		response.BadRequest(c, "Parameter 'm' is missing or invalid (YYYY-MM)")
		return
	}
	out, err := h.service.Month(c.Request.Context(), year, month)
	if err != nil {
		response.Internal(c, err, "Failed to compute statistics")
		return
	}
	response.OK(c, out)
}
