package logistics

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

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
	g := rg.Group("/logistica")

	vehicles := g.Group("/mezzi")
	{
		vehicles.GET("", h.ListVehicles)
		vehicles.POST("", h.CreateVehicle)
		vehicles.GET("/:id", h.GetVehicle)
		vehicles.PUT("/:id", h.UpdateVehicle)
		vehicles.DELETE("/:id", h.DeleteVehicle)
	}

	techs := g.Group("/tecnici")
	{
		techs.GET("", h.ListTechnicians)
		techs.POST("", h.CreateTechnician)
		techs.GET("/:id", h.GetTechnician)
		techs.PUT("/:id", h.UpdateTechnician)
		techs.DELETE("/:id", h.DeleteTechnician)
	}

	g.GET("/preview", h.Preview)
}

// ListVehicles handles GET /logistica/mezzi?attivi=1
func (h *Handler) ListVehicles(c *gin.Context) {
	activeOnly, _ := strconv.ParseBool(c.Query("attivi"))
	out, err := h.service.ListVehicles(c.Request.Context(), activeOnly)
	if err != nil {
		response.Internal(c, err, "Failed to load vehicles")
		return
	}
	response.OK(c, out)
}

func (h *Handler) GetVehicle(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		response.Invalid(c, err)
		return
	}
	out, err := h.service.GetVehicle(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "vehicle")
		return
	}
	response.OK(c, out)
}

func (h *Handler) CreateVehicle(c *gin.Context) {
	var req VehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	out, err := h.service.CreateVehicle(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err, "vehicle")
		return
	}
	response.Created(c, out)
}

func (h *Handler) UpdateVehicle(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		response.Invalid(c, err)
		return
	}
	var req VehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	out, err := h.service.UpdateVehicle(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err, "vehicle")
		return
	}
	response.OK(c, out)
}

func (h *Handler) DeleteVehicle(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		response.Invalid(c, err)
		return
	}
	if err := h.service.DeleteVehicle(c.Request.Context(), id); err != nil {
		h.fail(c, err, "vehicle")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ListTechnicians(c *gin.Context) {
	out, err := h.service.ListTechnicians(c.Request.Context())
	if err != nil {
		response.Internal(c, err, "Failed to load technicians")
		return
	}
	response.OK(c, out)
}

func (h *Handler) GetTechnician(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		response.Invalid(c, err)
		return
	}
	out, err := h.service.GetTechnician(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "technician")
		return
	}
	response.OK(c, out)
}

func (h *Handler) CreateTechnician(c *gin.Context) {
	var req TechnicianRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	out, err := h.service.CreateTechnician(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err, "technician")
		return
	}
	response.Created(c, out)
}

func (h *Handler) UpdateTechnician(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		response.Invalid(c, err)
		return
	}
	var req TechnicianRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	out, err := h.service.UpdateTechnician(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err, "technician")
		return
	}
	response.OK(c, out)
}

func (h *Handler) DeleteTechnician(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		response.Invalid(c, err)
		return
	}
	if err := h.service.DeleteTechnician(c.Request.Context(), id); err != nil {
		h.fail(c, err, "technician")
		return
	}
	c.Status(http.StatusNoContent)
}

// Preview handles GET /logistica/preview?evento=<id>&km_override=NN.nn. An
// unparsable override is ignored.
func (h *Handler) Preview(c *gin.Context) {
	id, err := strconv.ParseInt(c.Query("evento"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "Parameter 'evento' is missing or invalid")
		return
	}
	var override *decimal.Decimal
	if raw := strings.TrimSpace(c.Query("km_override")); raw != "" {
		if km, err := decimal.NewFromString(strings.Replace(raw, ",", ".", 1)); err == nil {
			override = &km
		}
	}
	out, err := h.service.Preview(c.Request.Context(), id, override)
	if err != nil {
		h.fail(c, err, "event")
		return
	}
	response.OK(c, out)
}

func (h *Handler) fail(c *gin.Context, err error, what string) {
	var fe validator.FieldErrors
	switch {
	case errors.As(err, &fe):
		response.Invalid(c, err)
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrEventNotFound):
		response.NotFound(c, "Unknown "+what)
	case errors.Is(err, ErrDuplicatePlate):
		response.Error(c, http.StatusConflict, "DUPLICATE", "A vehicle with this plate already exists")
	default:
		response.Internal(c, err, "Failed to process "+what)
	}
}
