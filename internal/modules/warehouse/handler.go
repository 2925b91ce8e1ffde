package warehouse

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"eventhire/internal/pkg/dates"
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
	g := rg.Group("/magazzino")
	g.GET("/status", h.Status)
	g.GET("/bookings", h.Bookings)
	g.GET("/calendar", h.Calendar)
	g.GET("/day-detail", h.DayDetail)
}

// Status handles GET /magazzino/status?from=&to=&materials=1,2,3
func (h *Handler) Status(c *gin.Context) {
	from, to, ok := h.window(c)
	if !ok {
		return
	}
	out, err := h.service.Status(c.Request.Context(), from, to, params.IDList(c, "materials"))
	if err != nil {
		response.Internal(c, err, "Failed to compute warehouse status")
		return
	}
	response.OK(c, out)
}

// Bookings handles GET /magazzino/bookings?material=&from=&to=&on=
func (h *Handler) Bookings(c *gin.Context) {
	id, ok := h.materialID(c)
	if !ok {
		return
	}
	from, to, ok := h.window(c)
	if !ok {
		return
	}
	on, err := params.Date(c, "on")
	if err != nil {
		response.Invalid(c, err)
		return
	}
	out, err := h.service.Bookings(c.Request.Context(), id, from, to, on)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, out)
}

// Calendar handles GET /magazzino/calendar?year=YYYY. A malformed year falls
// back to the current one.
func (h *Handler) Calendar(c *gin.Context) {
	year, err := params.Int(c, "year", time.Now().Year())
	if err != nil || year < 1 || year > 9999 {
		year = time.Now().Year()
	}
	out, err := h.service.YearCalendar(c.Request.Context(), year)
	if err != nil {
		response.Internal(c, err, "Failed to load the warehouse calendar")
		return
	}
	response.OK(c, out)
}

// DayDetail handles GET /magazzino/day-detail?material=&date=
func (h *Handler) DayDetail(c *gin.Context) {
	id, ok := h.materialID(c)
	if !ok {
		return
	}
	day, err := params.Date(c, "date")
	if err != nil || day == nil {
		response.BadRequest(c, "Parameter 'date' is missing or invalid (YYYY-MM-DD)")
		return
	}
	out, err := h.service.DayDetail(c.Request.Context(), id, *day)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, out)
}

// window reads from and to. from defaults to today and to to from.
func (h *Handler) window(c *gin.Context) (dates.Date, dates.Date, bool) {
	from, err := params.Date(c, "from")
	if err != nil {
		response.Invalid(c, err)
		return dates.Date{}, dates.Date{}, false
	}
	to, err := params.Date(c, "to")
	if err != nil {
		response.Invalid(c, err)
		return dates.Date{}, dates.Date{}, false
	}
	if from == nil {
		from = dates.Today().Ptr()
	}
	if to == nil {
		to = from
	}
	return *from, *to, true
}

func (h *Handler) materialID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Query("material"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "Parameter 'material' is missing or invalid")
		return 0, false
	}
	return id, true
}

func (h *Handler) fail(c *gin.Context, err error) {
	if errors.Is(err, ErrMaterialNotFound) {
		response.NotFound(c, "Material not found")
		return
	}
	response.Internal(c, err, "Failed to load material bookings")
}
