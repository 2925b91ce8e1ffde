package booking

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"eventhire/internal/pkg/dates"
	"eventhire/internal/pkg/params"
	"eventhire/internal/pkg/response"
	"eventhire/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/eventi")
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/next-slot", h.NextSlot)
	g.GET("/mese", h.Month)
	g.GET("/mensile", h.Monthly)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.PATCH("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	g.PUT("/:id/righe", h.ReplaceLines)
	g.GET("/:id/revisions", h.Revisions)
	g.POST("/:id/revisions", h.SaveRevision)
	g.GET("/:id/history", h.Revisions)
	g.GET("/:id/diff", h.Diff)
	g.POST("/:id/versiona", h.NewVersion)
}

// List handles GET /eventi?month=YYYY-MM. A malformed month lists everything.
func (h *Handler) List(c *gin.Context) {
	var month *time.Time
	if y, m, err := dates.ParseMonth(c.Query("month")); err == nil {
		t := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
		month = &t
	}
	out, err := h.service.List(c.Request.Context(), month)
	if err != nil {
		response.Internal(c, err, "Failed to load events")
		return
	}
	response.OK(c, out)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := h.id(c)
	if !ok {
		return
	}
	out, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, out)
}

func (h *Handler) Create(c *gin.Context) {
	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	out, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Created(c, out)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := h.id(c)
	if !ok {
		return
	}
	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	out, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, out)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := h.id(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ReplaceLines(c *gin.Context) {
	id, ok := h.id(c)
	if !ok {
		return
	}
	var req ReplaceLinesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	out, err := h.service.ReplaceLines(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, out)
}

func (h *Handler) Revisions(c *gin.Context) {
	id, ok := h.id(c)
	if !ok {
		return
	}
	out, err := h.service.Revisions(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, out)
}

// SaveRevision answers 201 with a new revision, or 200 with the latest one
// when nothing changed.
func (h *Handler) SaveRevision(c *gin.Context) {
	id, ok := h.id(c)
	if !ok {
		return
	}
	var req RevisionRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(c, "Invalid request body")
		return
	}
	rev, created, err := h.service.SaveRevision(c.Request.Context(), id, req.Note)
	switch {
	case errors.Is(err, ErrNoChanges):
		response.OK(c, gin.H{"detail": "Nessuna modifica da salvare."})
	case err != nil:
		h.fail(c, err)
	case created:
		response.Created(c, rev)
	default:
		response.OK(c, rev)
	}
}

// Diff handles GET /eventi/:id/diff?from=0&to=2
func (h *Handler) Diff(c *gin.Context) {
	id, ok := h.id(c)
	if !ok {
		return
	}
	from, errFrom := strconv.Atoi(c.Query("from"))
	to, errTo := strconv.Atoi(c.Query("to"))
	if errFrom != nil || errTo != nil {
		response.BadRequest(c, "Parameters 'from' and 'to' are required")
		return
	}
	out, err := h.service.Diff(c.Request.Context(), id, from, to)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, out)
}

func (h *Handler) NewVersion(c *gin.Context) {
	id, ok := h.id(c)
	if !ok {
		return
	}
	out, err := h.service.NewVersion(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Created(c, out)
}

// Month handles GET /eventi/mese?year=YYYY&month=M, defaulting to the
// current month.
func (h *Handler) Month(c *gin.Context) {
	now := time.Now()
	year, err := params.Int(c, "year", now.Year())
	if err != nil {
		response.Invalid(c, err)
		return
	}
	month, err := params.Int(c, "month", int(now.Month()))
	if err != nil || month < 1 || month > 12 {
		response.BadRequest(c, "month must be between 1 and 12")
		return
	}
	h.monthList(c, year, time.Month(month))
}

// Monthly handles GET /eventi/mensile?month=YYYY-MM. A missing or malformed
// month yields an empty list.
func (h *Handler) Monthly(c *gin.Context) {
	year, month, err := dates.ParseMonth(c.Query("month"))
	if err != nil {
		response.OK(c, []MonthItem{})
		return
	}
	h.monthList(c, year, month)
}

func (h *Handler) monthList(c *gin.Context, year int, month time.Month) {
	out, err := h.service.MonthList(c.Request.Context(), year, month)
	if err != nil {
		response.Internal(c, err, "Failed to load events")
		return
	}
	response.OK(c, out)
}

// NextSlot handles GET /eventi/next-slot?date=YYYY-MM-DD
func (h *Handler) NextSlot(c *gin.Context) {
	day, _ := params.Date(c, "date")
	slot, err := h.service.NextSlot(c.Request.Context(), day)
	if err != nil {
		response.Internal(c, err, "Failed to compute the next slot")
		return
	}
	response.OK(c, gin.H{"slot": slot})
}

func (h *Handler) id(c *gin.Context) (int64, bool) {
	id, err := params.ID(c, "id")
	if err != nil {
		response.Invalid(c, err)
		return 0, false
	}
	return id, true
}

func (h *Handler) fail(c *gin.Context, err error) {
	var fe validator.FieldErrors
	switch {
	case errors.As(err, &fe), errors.Is(err, ErrValidation):
		response.Invalid(c, err)
	case errors.Is(err, ErrNotFound):
		response.NotFound(c, "Event not found")
	case errors.Is(err, ErrNoRevision):
		response.NotFound(c, "Revision not found")
	case errors.Is(err, ErrSlotTaken):
		response.ErrorWithDetails(c, http.StatusConflict, "SLOT_TAKEN",
			"This location is already taken on this date",
			map[string]string{"location_index": "taken"})
	default:
		response.Internal(c, err, "Failed to process event")
	}
}
