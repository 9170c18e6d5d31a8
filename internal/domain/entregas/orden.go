package entregas

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Orden is a read model of a cash-sale order as exposed by the sales module.
// Orders are immutable inputs to the reconciliation; only orders flagged as
// completed sales (Venta) are eligible for a delivery.
type Orden struct {
	ID            uuid.UUID       `json:"id"`
	Numero        string          `json:"numero"`
	Fecha         time.Time       `json:"fecha"`
	Total         decimal.Decimal `json:"total"`
	ClienteNombre string          `json:"cliente_nombre"`

	// Structured payment breakdown. When any of these is present the
	// legacy Descripcion text is ignored entirely.
	MontoEfectivo      *decimal.Decimal `json:"monto_efectivo,omitempty"`
	MontoTransferencia *decimal.Decimal `json:"monto_transferencia,omitempty"`
	MontoCheque        *decimal.Decimal `json:"monto_cheque,omitempty"`

	// Descripcion is the legacy free-text payment description.
	Descripcion string `json:"descripcion,omitempty"`

	Venta bool `json:"venta"`
}

// TieneDesgloseEstructurado reports whether the order carries explicit
// per-method amounts.
func (o Orden) TieneDesgloseEstructurado() bool {
	return o.MontoEfectivo != nil || o.MontoTransferencia != nil || o.MontoCheque != nil
}

// DesgloseMetodos resolves the order's payment-method breakdown.
// Structured fields win over the legacy text; otherwise the description is
// parsed, falling back to all-cash when nothing is recognized.
func (o Orden) DesgloseMetodos() (Desglose, []string) {
	if o.TieneDesgloseEstructurado() {
		return Desglose{
			Efectivo:      derefOrZero(o.MontoEfectivo),
			Transferencia: derefOrZero(o.MontoTransferencia),
			Cheque:        derefOrZero(o.MontoCheque),
		}, nil
	}
	return ParseOrdenDescripcion(o.Descripcion, o.Total)
}

func derefOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
