package handler

import (
	"time"

	"github.com/google/uuid"
	appentregas "github.com/vialsa/backend/internal/application/entregas"
)

const fechaLayout = "2006-01-02"

// MovimientosQuery holds the query parameters for the eligible-movements catalog
type MovimientosQuery struct {
	SedeID string `form:"sede_id" binding:"required,uuid"`
	Fecha  string `form:"fecha" binding:"required"`
}

// SeleccionPayload carries the movement IDs picked for a delivery
type SeleccionPayload struct {
	OrdenesIDs    []uuid.UUID `json:"ordenes_ids"`
	AbonosIDs     []uuid.UUID `json:"abonos_ids"`
	ReembolsosIDs []uuid.UUID `json:"reembolsos_ids"`
}

func (p SeleccionPayload) toApplication() appentregas.SeleccionRequest {
	return appentregas.SeleccionRequest{
		OrdenesIDs:    p.OrdenesIDs,
		AbonosIDs:     p.AbonosIDs,
		ReembolsosIDs: p.ReembolsosIDs,
	}
}

// PreviewEntregaPayload asks for a reconciliation preview of a selection
type PreviewEntregaPayload struct {
	SedeID    uuid.UUID        `json:"sede_id" binding:"required"`
	Fecha     string           `json:"fecha" binding:"required"`
	Seleccion SeleccionPayload `json:"seleccion" binding:"required"`
}

// CrearEntregaPayload submits a delivery for registration
type CrearEntregaPayload struct {
	SedeID        uuid.UUID        `json:"sede_id" binding:"required"`
	Fecha         string           `json:"fecha" binding:"required"`
	Seleccion     SeleccionPayload `json:"seleccion" binding:"required"`
	Observaciones string           `json:"observaciones" binding:"omitempty,max=500"`
}

// AnularEntregaPayload carries the void reason for a delivery
type AnularEntregaPayload struct {
	Motivo string `json:"motivo" binding:"required,min=3,max=500"`
}

// ListEntregasQuery holds the query parameters for the delivery list
type ListEntregasQuery struct {
	SedeID    string `form:"sede_id" binding:"omitempty,uuid"`
	Estado    string `form:"estado" binding:"omitempty,oneof=REGISTRADA ANULADA"`
	FechaFrom string `form:"fecha_from"`
	FechaTo   string `form:"fecha_to"`
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

func parseFecha(value string) (time.Time, error) {
	return time.Parse(fechaLayout, value)
}
