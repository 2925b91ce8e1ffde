package catalog

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"eventhire/internal/pkg/params"
	"eventhire/internal/pkg/response"
	"eventhire/internal/pkg/validator"
	"eventhire/internal/repository"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	h.registerKind(rg.Group("/materiali"), repository.KindAny)
	h.registerKind(rg.Group("/tecnici"), repository.KindTechnician)
	h.registerKind(rg.Group("/mezzi"), repository.KindVehicle)

	rg.POST("/materiali/:id/suggeriti", h.LinkSuggestion)
	rg.POST("/regole-suggerimento", h.CreateRule)

	rg.GET("/catalogo/search", h.Search)
	rg.GET("/catalogo/categorie", h.Categories)
	rg.GET("/suggest", h.Suggest)
	rg.GET("/suggestions", h.SuggestByGuests)
}

func (h *Handler) registerKind(g *gin.RouterGroup, kind repository.MaterialKind) {
	g.GET("", h.list(kind))
	g.POST("", h.create(kind))
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.update(kind))
	g.DELETE("/:id", h.Delete)
}

func (h *Handler) list(kind repository.MaterialKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		archived := c.Query("archived") == "1" || c.Query("archived") == "true"
		out, err := h.service.List(c.Request.Context(), kind, c.Query("q"), archived)
		if err != nil {
			response.Internal(c, err, "Failed to load materials")
			return
		}
		response.OK(c, out)
	}
}

func (h *Handler) create(kind repository.MaterialKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req MaterialRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "Invalid request body")
			return
		}
		out, err := h.service.Create(c.Request.Context(), kind, req)
		if err != nil {
			h.fail(c, err)
			return
		}
		response.Created(c, out)
	}
}

func (h *Handler) update(kind repository.MaterialKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := params.ID(c, "id")
		if err != nil {
			response.Invalid(c, err)
			return
		}
		var req MaterialRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "Invalid request body")
			return
		}
		out, err := h.service.Update(c.Request.Context(), kind, id, req)
		if err != nil {
			h.fail(c, err)
			return
		}
		response.OK(c, out)
	}
}

func (h *Handler) Get(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		response.Invalid(c, err)
		return
	}
	out, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, out)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		response.Invalid(c, err)
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) LinkSuggestion(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		response.Invalid(c, err)
		return
	}
	var req SuggestionLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	out, err := h.service.LinkSuggestion(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Created(c, out)
}

func (h *Handler) CreateRule(c *gin.Context) {
	var req RuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	out, err := h.service.CreateRule(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Created(c, out)
}

// Search handles GET /catalogo/search?term=&categoria=&sottocategoria=&luogo=&data=&data_a=
func (h *Handler) Search(c *gin.Context) {
	from, err := params.Date(c, "data")
	if err != nil {
		response.Invalid(c, err)
		return
	}
	to, err := params.Date(c, "data_a")
	if err != nil {
		response.Invalid(c, err)
		return
	}
	venueID, _ := strconv.ParseInt(c.Query("luogo"), 10, 64)

	items, err := h.service.Search(c.Request.Context(), SearchParams{
		Term:        strings.TrimSpace(c.Query("term")),
		Category:    c.Query("categoria"),
		Subcategory: c.Query("sottocategoria"),
		VenueID:     venueID,
		From:        from,
		To:          to,
	})
	if err != nil {
		response.Internal(c, err, "Catalog search failed")
		return
	}
	response.OK(c, gin.H{"results": items})
}

func (h *Handler) Categories(c *gin.Context) {
	out, err := h.service.Categories(c.Request.Context())
	if err != nil {
		response.Internal(c, err, "Failed to load categories")
		return
	}
	response.OK(c, out)
}

// Suggest handles GET /suggest?materiale=<id>&date=YYYY-MM-DD
func (h *Handler) Suggest(c *gin.Context) {
	id, err := strconv.ParseInt(c.Query("materiale"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "materiale is required")
		return
	}
	on, err := params.Date(c, "date")
	if err != nil {
		response.Invalid(c, err)
		return
	}
	items, err := h.service.Suggest(c.Request.Context(), id, on)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, gin.H{"items": items})
}

// SuggestByGuests handles GET /suggestions?guests=&km=&ore=&allestimenti=
func (h *Handler) SuggestByGuests(c *gin.Context) {
	var p GuestParams
	var err error
	if p.Guests, err = params.Int(c, "guests", 0); err != nil {
		response.Invalid(c, err)
		return
	}
	if p.Km, err = params.Int(c, "km", 0); err != nil {
		response.Invalid(c, err)
		return
	}
	if p.Setups, err = params.Int(c, "allestimenti", 0); err != nil {
		response.Invalid(c, err)
		return
	}
	if raw := c.Query("ore"); raw != "" {
		if p.Hours, err = strconv.ParseFloat(raw, 64); err != nil {
			response.BadRequest(c, "invalid ore")
			return
		}
	}

	out, err := h.service.SuggestByGuests(c.Request.Context(), p)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, out)
}

func (h *Handler) fail(c *gin.Context, err error) {
	var fe validator.FieldErrors
	switch {
	case errors.As(err, &fe), errors.Is(err, ErrValidation):
		response.Invalid(c, err)
	case errors.Is(err, ErrNotFound):
		response.NotFound(c, "Material not found")
	case errors.Is(err, ErrInUse):
		response.Error(c, http.StatusConflict, "IN_USE", "The material is used by existing events")
	default:
		response.Internal(c, err, "Failed to process material")
	}
}
