package pricing

import (
	"errors"

	"github.com/gin-gonic/gin"

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
	rg.POST("/pricing", h.Simple)
	rg.POST("/pricing/quote", h.Quote)
}

func (h *Handler) Quote(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	out, err := h.service.Quote(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, out)
}

func (h *Handler) Simple(c *gin.Context) {
	var req SimpleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	out, err := h.service.Simple(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, out)
}

func (h *Handler) fail(c *gin.Context, err error) {
	var fe validator.FieldErrors
	switch {
	case errors.As(err, &fe):
		response.Invalid(c, err)
	case errors.Is(err, ErrUnknownReference):
		response.BadRequest(c, "Unknown material or venue")
	default:
		response.Internal(c, err, "Failed to compute the price")
	}
}
