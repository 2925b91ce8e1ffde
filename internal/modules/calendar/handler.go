package calendar

import (
	"time"

	"github.com/gin-gonic/gin"

	"eventhire/internal/pkg/params"
	"eventhire/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/calendario")
	g.GET("/availability", h.Availability)
	g.GET("/location-calendar", h.LocationCalendar)
}

// Availability handles GET /calendario/availability?data=YYYY-MM-DD
func (h *Handler) Availability(c *gin.Context) {
	day, err := params.Date(c, "data")
	if err != nil || day == nil {
		response.BadRequest(c, "Parameter 'data' is missing or invalid (YYYY-MM-DD)")
		return
	}
	out, err := h.service.Availability(c.Request.Context(), *day)
	if err != nil {
		response.Internal(c, err, "Failed to load slot availability")
		return
	}
	response.OK(c, out)
}

// LocationCalendar handles GET /calendario/location-calendar?year=YYYY. A
// malformed year falls back to the current one.
func (h *Handler) LocationCalendar(c *gin.Context) {
	year, err := params.Int(c, "year", time.Now().Year())
	if err != nil || year < 1 || year > 9999 {
		year = time.Now().Year()
	}
	out, err := h.service.LocationCalendar(c.Request.Context(), year)
	if err != nil {
		response.Internal(c, err, "Failed to load the location calendar")
		return
	}
	response.OK(c, out)
}
