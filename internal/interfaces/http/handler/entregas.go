package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appentregas "github.com/vialsa/backend/internal/application/entregas"
	"github.com/vialsa/backend/internal/interfaces/http/middleware"
)

// EntregaHandler handles delivery reconciliation endpoints
type EntregaHandler struct {
	BaseHandler
	service *appentregas.EntregaService
}

// NewEntregaHandler creates a new EntregaHandler
func NewEntregaHandler(service *appentregas.EntregaService) *EntregaHandler {
	return &EntregaHandler{service: service}
}

// RegisterRoutes registers delivery routes
func (h *EntregaHandler) RegisterRoutes(rg *gin.RouterGroup) {
	entregas := rg.Group("/entregas")
	{
		entregas.GET("/movimientos", h.GetMovimientosDisponibles)
		entregas.POST("/preview", h.PreviewEntrega)
		entregas.POST("", h.CrearEntrega)
		entregas.GET("", h.ListEntregas)
		entregas.GET("/:id", h.GetEntrega)
		entregas.POST("/:id/anular", h.AnularEntrega)
	}
}

// GetMovimientosDisponibles returns the catalog of movements eligible for a
// delivery on a sede and date
func (h *EntregaHandler) GetMovimientosDisponibles(c *gin.Context) {
	var query MovimientosQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	sedeID, err := uuid.Parse(query.SedeID)
	if err != nil {
		h.BadRequest(c, "Invalid sede_id")
		return
	}
	fecha, err := parseFecha(query.Fecha)
	if err != nil {
		h.BadRequest(c, "Invalid fecha, expected YYYY-MM-DD")
		return
	}

	resp, err := h.service.MovimientosDisponibles(c.Request.Context(), sedeID, fecha)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// PreviewEntrega computes the reconciliation of a selection without persisting
func (h *EntregaHandler) PreviewEntrega(c *gin.Context) {
	var payload PreviewEntregaPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	fecha, err := parseFecha(payload.Fecha)
	if err != nil {
		h.BadRequest(c, "Invalid fecha, expected YYYY-MM-DD")
		return
	}

	resp, err := h.service.PreviewEntrega(c.Request.Context(), appentregas.PreviewEntregaRequest{
		SedeID:    payload.SedeID,
		Fecha:     fecha,
		Seleccion: payload.Seleccion.toApplication(),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// CrearEntrega registers a delivery from the selected movements
func (h *EntregaHandler) CrearEntrega(c *gin.Context) {
	var payload CrearEntregaPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	empleadoID, err := getEmpleadoID(c)
	if err != nil {
		h.BadRequest(c, "Missing or invalid X-Empleado-ID header")
		return
	}
	fecha, err := parseFecha(payload.Fecha)
	if err != nil {
		h.BadRequest(c, "Invalid fecha, expected YYYY-MM-DD")
		return
	}

	resp, err := h.service.CrearEntrega(c.Request.Context(), appentregas.CrearEntregaRequest{
		SedeID:        payload.SedeID,
		EmpleadoID:    empleadoID,
		Fecha:         fecha,
		Seleccion:     payload.Seleccion.toApplication(),
		Observaciones: payload.Observaciones,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// ListEntregas returns a paginated list of deliveries
func (h *EntregaHandler) ListEntregas(c *gin.Context) {
	var query ListEntregasQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	filter := appentregas.ListEntregasFilter{
		Estado:   query.Estado,
		Page:     query.Page,
		PageSize: query.PageSize,
	}
	if query.SedeID != "" {
		sedeID, err := uuid.Parse(query.SedeID)
		if err != nil {
			h.BadRequest(c, "Invalid sede_id")
			return
		}
		filter.SedeID = &sedeID
	}
	if query.FechaFrom != "" {
		from, err := parseFecha(query.FechaFrom)
		if err != nil {
			h.BadRequest(c, "Invalid fecha_from, expected YYYY-MM-DD")
			return
		}
		filter.FechaFrom = &from
	}
	if query.FechaTo != "" {
		to, err := parseFecha(query.FechaTo)
		if err != nil {
			h.BadRequest(c, "Invalid fecha_to, expected YYYY-MM-DD")
			return
		}
		filter.FechaTo = &to
	}

	result, err := h.service.ListEntregas(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetEntrega returns a single delivery by ID
func (h *EntregaHandler) GetEntrega(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid entrega ID")
		return
	}

	resp, err := h.service.GetEntrega(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// AnularEntrega voids a registered delivery and releases its movements
func (h *EntregaHandler) AnularEntrega(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid entrega ID")
		return
	}

	var payload AnularEntregaPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.service.AnularEntrega(c.Request.Context(), id, payload.Motivo)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
