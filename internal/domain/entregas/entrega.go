package entregas

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vialsa/backend/internal/domain/shared"
)

// EstadoEntrega represents the lifecycle state of a registered delivery
type EstadoEntrega string

const (
	// EstadoEntregaRegistrada indicates the delivery was confirmed and the
	// selected movements were consumed
	EstadoEntregaRegistrada EstadoEntrega = "REGISTRADA"
	// EstadoEntregaAnulada indicates the delivery was voided and its
	// movements released back to the available pool
	EstadoEntregaAnulada EstadoEntrega = "ANULADA"
)

// IsValid checks if the state is a valid EstadoEntrega
func (e EstadoEntrega) IsValid() bool {
	switch e {
	case EstadoEntregaRegistrada, EstadoEntregaAnulada:
		return true
	}
	return false
}

// String returns the string representation of EstadoEntrega
func (e EstadoEntrega) String() string {
	return string(e)
}

// Entrega is the cash-delivery aggregate root: the backend-confirmed record
// of one reconciliation for a sede and date. The in-memory reconciliation
// result is ephemeral; only a confirmed submission produces an Entrega.
type Entrega struct {
	shared.BaseAggregateRoot

	NumeroEntrega string    `json:"numero_entrega"`
	SedeID        uuid.UUID `json:"sede_id"`
	EmpleadoID    uuid.UUID `json:"empleado_id"`
	FechaEntrega  time.Time `json:"fecha_entrega"`

	OrdenesIDs    []uuid.UUID `json:"ordenes_ids"`
	AbonosIDs     []uuid.UUID `json:"abonos_ids"`
	ReembolsosIDs []uuid.UUID `json:"reembolsos_ids"`

	Monto              decimal.Decimal `json:"monto"`
	MontoOrdenes       decimal.Decimal `json:"monto_ordenes"`
	MontoAbonos        decimal.Decimal `json:"monto_abonos"`
	MontoReembolsos    decimal.Decimal `json:"monto_reembolsos"`
	MontoEfectivo      decimal.Decimal `json:"monto_efectivo"`
	MontoTransferencia decimal.Decimal `json:"monto_transferencia"`
	MontoCheque        decimal.Decimal `json:"monto_cheque"`
	MontoDeposito      decimal.Decimal `json:"monto_deposito"`
	MontoRetencion     decimal.Decimal `json:"monto_retencion"`

	Estado          EstadoEntrega `json:"estado"`
	Observaciones   string        `json:"observaciones,omitempty"`
	AnuladaAt       *time.Time    `json:"anulada_at,omitempty"`
	MotivoAnulacion string        `json:"motivo_anulacion,omitempty"`
}

// NewEntrega creates a delivery record from a validated selection and its
// computed reconciliation result.
func NewEntrega(
	numero string,
	sedeID, empleadoID uuid.UUID,
	fechaEntrega time.Time,
	seleccion Seleccion,
	resultado ReconciliationResult,
) (*Entrega, error) {
	if numero == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Delivery number cannot be empty")
	}
	if sedeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Sede is required")
	}
	if empleadoID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Empleado is required")
	}
	if seleccion.IsEmpty() {
		return nil, shared.NewDomainError("INVALID_INPUT", "At least one movement must be selected")
	}

	return &Entrega{
		BaseAggregateRoot:  shared.NewBaseAggregateRoot(),
		NumeroEntrega:      numero,
		SedeID:             sedeID,
		EmpleadoID:         empleadoID,
		FechaEntrega:       fechaEntrega,
		OrdenesIDs:         seleccion.OrdenesIDs,
		AbonosIDs:          seleccion.AbonosIDs,
		ReembolsosIDs:      seleccion.ReembolsosIDs,
		Monto:              resultado.MontoNeto,
		MontoOrdenes:       resultado.MontoOrdenes,
		MontoAbonos:        resultado.MontoAbonos,
		MontoReembolsos:    resultado.MontoReembolsos,
		MontoEfectivo:      resultado.MontoEfectivo,
		MontoTransferencia: resultado.MontoTransferencia,
		MontoCheque:        resultado.MontoCheque,
		MontoDeposito:      resultado.MontoDeposito,
		MontoRetencion:     resultado.MontoRetencion,
		Estado:             EstadoEntregaRegistrada,
	}, nil
}

// SetObservaciones attaches free-text notes to the delivery
func (e *Entrega) SetObservaciones(observaciones string) {
	e.Observaciones = observaciones
	e.UpdatedAt = time.Now()
}

// Anular voids a registered delivery so its movements can be delivered again
func (e *Entrega) Anular(motivo string) error {
	if e.Estado != EstadoEntregaRegistrada {
		return shared.NewDomainError("INVALID_STATE", "Only registered deliveries can be voided")
	}
	if motivo == "" {
		return shared.NewDomainError("INVALID_INPUT", "A reason is required to void a delivery")
	}
	now := time.Now()
	e.Estado = EstadoEntregaAnulada
	e.AnuladaAt = &now
	e.MotivoAnulacion = motivo
	e.UpdatedAt = now
	e.IncrementVersion()
	return nil
}

// EsAnulada reports whether the delivery was voided
func (e *Entrega) EsAnulada() bool {
	return e.Estado == EstadoEntregaAnulada
}
