package entregas

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vialsa/backend/internal/domain/entregas"
)

// OrdenDisponibleResponse represents an eligible cash-sale order
type OrdenDisponibleResponse struct {
	ID            uuid.UUID       `json:"id"`
	Numero        string          `json:"numero"`
	Fecha         time.Time       `json:"fecha"`
	Total         decimal.Decimal `json:"total"`
	ClienteNombre string          `json:"cliente_nombre"`
	Descripcion   string          `json:"descripcion,omitempty"`
}

// AbonoDisponibleResponse represents an eligible credit installment
type AbonoDisponibleResponse struct {
	ID         uuid.UUID       `json:"id"`
	OrdenID    uuid.UUID       `json:"orden_id"`
	Fecha      time.Time       `json:"fecha"`
	MontoAbono decimal.Decimal `json:"monto_abono"`
	MetodoPago string          `json:"metodo_pago,omitempty"`
}

// ReembolsoDisponibleResponse represents a same-day cash-affecting refund
type ReembolsoDisponibleResponse struct {
	ID             uuid.UUID       `json:"id"`
	OrdenOriginal  uuid.UUID       `json:"orden_original"`
	TotalReembolso decimal.Decimal `json:"total_reembolso"`
	FormaReembolso string          `json:"forma_reembolso"`
	Fecha          time.Time       `json:"fecha"`
}

// MovimientosDisponiblesResponse is the catalog of movements eligible for a
// delivery on a sede and date
type MovimientosDisponiblesResponse struct {
	SedeID     uuid.UUID                     `json:"sede_id"`
	Fecha      time.Time                     `json:"fecha"`
	Ordenes    []OrdenDisponibleResponse     `json:"ordenes"`
	Abonos     []AbonoDisponibleResponse     `json:"abonos"`
	Reembolsos []ReembolsoDisponibleResponse `json:"reembolsos"`
}

// SeleccionRequest carries the movement IDs picked for a delivery
type SeleccionRequest struct {
	OrdenesIDs    []uuid.UUID `json:"ordenes_ids"`
	AbonosIDs     []uuid.UUID `json:"abonos_ids"`
	ReembolsosIDs []uuid.UUID `json:"reembolsos_ids"`
}

func (r SeleccionRequest) toDomain() entregas.Seleccion {
	return entregas.Seleccion{
		OrdenesIDs:    r.OrdenesIDs,
		AbonosIDs:     r.AbonosIDs,
		ReembolsosIDs: r.ReembolsosIDs,
	}
}

// PreviewEntregaRequest asks for the reconciliation of a selection without
// persisting anything
type PreviewEntregaRequest struct {
	SedeID    uuid.UUID        `json:"sede_id"`
	Fecha     time.Time        `json:"fecha"`
	Seleccion SeleccionRequest `json:"seleccion"`
}

// CrearEntregaRequest submits a delivery for a sede and date
type CrearEntregaRequest struct {
	SedeID        uuid.UUID        `json:"sede_id"`
	EmpleadoID    uuid.UUID        `json:"empleado_id"`
	Fecha         time.Time        `json:"fecha"`
	Seleccion     SeleccionRequest `json:"seleccion"`
	Observaciones string           `json:"observaciones"`
}

// ReconciliationResponse mirrors the computed reconciliation for API consumers
type ReconciliationResponse struct {
	MontoOrdenes       decimal.Decimal `json:"monto_ordenes"`
	MontoAbonos        decimal.Decimal `json:"monto_abonos"`
	MontoReembolsos    decimal.Decimal `json:"monto_reembolsos"`
	MontoNeto          decimal.Decimal `json:"monto_neto"`
	MontoEfectivo      decimal.Decimal `json:"monto_efectivo"`
	MontoTransferencia decimal.Decimal `json:"monto_transferencia"`
	MontoCheque        decimal.Decimal `json:"monto_cheque"`
	MontoDeposito      decimal.Decimal `json:"monto_deposito"`
	MontoRetencion     decimal.Decimal `json:"monto_retencion"`
	Warnings           []string        `json:"warnings,omitempty"`
}

// EntregaResponse represents a persisted delivery in API responses
type EntregaResponse struct {
	ID                 uuid.UUID       `json:"id"`
	NumeroEntrega      string          `json:"numero_entrega"`
	SedeID             uuid.UUID       `json:"sede_id"`
	EmpleadoID         uuid.UUID       `json:"empleado_id"`
	FechaEntrega       time.Time       `json:"fecha_entrega"`
	OrdenesIDs         []uuid.UUID     `json:"ordenes_ids"`
	AbonosIDs          []uuid.UUID     `json:"abonos_ids"`
	ReembolsosIDs      []uuid.UUID     `json:"reembolsos_ids"`
	Monto              decimal.Decimal `json:"monto"`
	MontoOrdenes       decimal.Decimal `json:"monto_ordenes"`
	MontoAbonos        decimal.Decimal `json:"monto_abonos"`
	MontoReembolsos    decimal.Decimal `json:"monto_reembolsos"`
	MontoEfectivo      decimal.Decimal `json:"monto_efectivo"`
	MontoTransferencia decimal.Decimal `json:"monto_transferencia"`
	MontoCheque        decimal.Decimal `json:"monto_cheque"`
	MontoDeposito      decimal.Decimal `json:"monto_deposito"`
	MontoRetencion     decimal.Decimal `json:"monto_retencion"`
	Estado             string          `json:"estado"`
	Observaciones      string          `json:"observaciones,omitempty"`
	AnuladaAt          *time.Time      `json:"anulada_at,omitempty"`
	MotivoAnulacion    string          `json:"motivo_anulacion,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
	Version            int             `json:"version"`
}

// ListEntregasFilter defines filtering options for delivery list queries
type ListEntregasFilter struct {
	SedeID    *uuid.UUID
	Estado    string
	FechaFrom *time.Time
	FechaTo   *time.Time
	Page      int
	PageSize  int
}

func toReconciliationResponse(r entregas.ReconciliationResult) *ReconciliationResponse {
	return &ReconciliationResponse{
		MontoOrdenes:       r.MontoOrdenes,
		MontoAbonos:        r.MontoAbonos,
		MontoReembolsos:    r.MontoReembolsos,
		MontoNeto:          r.MontoNeto,
		MontoEfectivo:      r.MontoEfectivo,
		MontoTransferencia: r.MontoTransferencia,
		MontoCheque:        r.MontoCheque,
		MontoDeposito:      r.MontoDeposito,
		MontoRetencion:     r.MontoRetencion,
		Warnings:           r.Warnings,
	}
}

func toEntregaResponse(e *entregas.Entrega) *EntregaResponse {
	return &EntregaResponse{
		ID:                 e.ID,
		NumeroEntrega:      e.NumeroEntrega,
		SedeID:             e.SedeID,
		EmpleadoID:         e.EmpleadoID,
		FechaEntrega:       e.FechaEntrega,
		OrdenesIDs:         e.OrdenesIDs,
		AbonosIDs:          e.AbonosIDs,
		ReembolsosIDs:      e.ReembolsosIDs,
		Monto:              e.Monto,
		MontoOrdenes:       e.MontoOrdenes,
		MontoAbonos:        e.MontoAbonos,
		MontoReembolsos:    e.MontoReembolsos,
		MontoEfectivo:      e.MontoEfectivo,
		MontoTransferencia: e.MontoTransferencia,
		MontoCheque:        e.MontoCheque,
		MontoDeposito:      e.MontoDeposito,
		MontoRetencion:     e.MontoRetencion,
		Estado:             e.Estado.String(),
		Observaciones:      e.Observaciones,
		AnuladaAt:          e.AnuladaAt,
		MotivoAnulacion:    e.MotivoAnulacion,
		CreatedAt:          e.CreatedAt,
		UpdatedAt:          e.UpdatedAt,
		Version:            e.Version,
	}
}

func toMovimientosResponse(sedeID uuid.UUID, fecha time.Time, c entregas.MovimientosDisponibles) *MovimientosDisponiblesResponse {
	resp := &MovimientosDisponiblesResponse{
		SedeID:     sedeID,
		Fecha:      fecha,
		Ordenes:    make([]OrdenDisponibleResponse, 0, len(c.Ordenes)),
		Abonos:     make([]AbonoDisponibleResponse, 0, len(c.Abonos)),
		Reembolsos: make([]ReembolsoDisponibleResponse, 0, len(c.Reembolsos)),
	}
	for _, o := range c.Ordenes {
		resp.Ordenes = append(resp.Ordenes, OrdenDisponibleResponse{
			ID:            o.ID,
			Numero:        o.Numero,
			Fecha:         o.Fecha,
			Total:         o.Total,
			ClienteNombre: o.ClienteNombre,
			Descripcion:   o.Descripcion,
		})
	}
	for _, a := range c.Abonos {
		resp.Abonos = append(resp.Abonos, AbonoDisponibleResponse{
			ID:         a.ID,
			OrdenID:    a.OrdenID,
			Fecha:      a.Fecha,
			MontoAbono: a.MontoAbono,
			MetodoPago: a.MetodoPago,
		})
	}
	for _, r := range c.Reembolsos {
		resp.Reembolsos = append(resp.Reembolsos, ReembolsoDisponibleResponse{
			ID:             r.ID,
			OrdenOriginal:  r.OrdenOriginal,
			TotalReembolso: r.TotalReembolso,
			FormaReembolso: r.FormaReembolso.String(),
			Fecha:          r.Fecha,
		})
	}
	return resp
}
