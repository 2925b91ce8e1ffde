package directory

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

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
	clients := rg.Group("/clienti")
	{
		clients.GET("", h.ListClients)
		clients.POST("", h.CreateClient)
		clients.GET("/:id", h.GetClient)
		clients.PUT("/:id", h.UpdateClient)
		clients.DELETE("/:id", h.DeleteClient)
	}

	venues := rg.Group("/luoghi")
	{
		venues.GET("", h.ListVenues)
		venues.POST("", h.CreateVenue)
		venues.GET("/:id", h.GetVenue)
		venues.PUT("/:id", h.UpdateVenue)
		venues.DELETE("/:id", h.DeleteVenue)
	}
}

func (h *Handler) ListClients(c *gin.Context) {
	out, err := h.service.ListClients(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.Internal(c, err, "Failed to load clients")
		return
	}
	response.OK(c, out)
}

func (h *Handler) GetClient(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		response.Invalid(c, err)
		return
	}
	out, err := h.service.GetClient(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "client")
		return
	}
	response.OK(c, out)
}

func (h *Handler) CreateClient(c *gin.Context) {
	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	out, err := h.service.CreateClient(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err, "client")
		return
	}
	response.Created(c, out)
}

func (h *Handler) UpdateClient(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		response.Invalid(c, err)
		return
	}
	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	out, err := h.service.UpdateClient(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err, "client")
		return
	}
	response.OK(c, out)
}

func (h *Handler) DeleteClient(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		response.Invalid(c, err)
		return
	}
	if err := h.service.DeleteClient(c.Request.Context(), id); err != nil {
		h.fail(c, err, "client")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ListVenues(c *gin.Context) {
	out, err := h.service.ListVenues(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.Internal(c, err, "Failed to load venues")
		return
	}
	response.OK(c, out)
}

func (h *Handler) GetVenue(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		response.Invalid(c, err)
		return
	}
	out, err := h.service.GetVenue(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "venue")
		return
	}
	response.OK(c, out)
}

func (h *Handler) CreateVenue(c *gin.Context) {
	var req VenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	out, err := h.service.CreateVenue(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err, "venue")
		return
	}
	response.Created(c, out)
}

func (h *Handler) UpdateVenue(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		response.Invalid(c, err)
		return
	}
	var req VenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	out, err := h.service.UpdateVenue(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err, "venue")
		return
	}
	response.OK(c, out)
}

func (h *Handler) DeleteVenue(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		response.Invalid(c, err)
		return
	}
	if err := h.service.DeleteVenue(c.Request.Context(), id); err != nil {
		h.fail(c, err, "venue")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) fail(c *gin.Context, err error, what string) {
	var fe validator.FieldErrors
	switch {
	case errors.As(err, &fe):
		response.Invalid(c, err)
	case errors.Is(err, ErrNotFound):
		response.NotFound(c, "Unknown "+what)
	case errors.Is(err, ErrInUse):
		response.Error(c, http.StatusConflict, "IN_USE", "The "+what+" is used by existing events")
	default:
		response.Internal(c, err, "Failed to process "+what)
	}
}
