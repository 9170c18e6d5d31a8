package entregas

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Abono is a read model of a partial payment against a credit-sale order.
// Abonos already handed over in a previous delivery (YaEntregado) are not
// eligible again.
type Abono struct {
	ID         uuid.UUID       `json:"id"`
	OrdenID    uuid.UUID       `json:"orden_id"`
	Fecha      time.Time       `json:"fecha"`
	MontoAbono decimal.Decimal `json:"monto_abono"`

	// Structured payment breakdown, preferred over the legacy MetodoPago text.
	MontoEfectivo      *decimal.Decimal `json:"monto_efectivo,omitempty"`
	MontoTransferencia *decimal.Decimal `json:"monto_transferencia,omitempty"`
	MontoCheque        *decimal.Decimal `json:"monto_cheque,omitempty"`
	MontoRetencion     *decimal.Decimal `json:"monto_retencion,omitempty"`

	// MetodoPago is the legacy pipe-separated payment description, e.g.
	// "EFECTIVO: 60.000 | TRANSFERENCIA: 40.000 (Bancolombia)".
	MetodoPago string `json:"metodo_pago,omitempty"`

	YaEntregado bool `json:"ya_entregado"`
}

// TieneDesgloseEstructurado reports whether the abono carries explicit
// per-method amounts.
func (a Abono) TieneDesgloseEstructurado() bool {
	return a.MontoEfectivo != nil || a.MontoTransferencia != nil ||
		a.MontoCheque != nil || a.MontoRetencion != nil
}

// DesgloseMetodos resolves the abono's payment-method breakdown.
// Structured fields win over the legacy text; otherwise MetodoPago is parsed
// with the corrupted-string guard applied.
func (a Abono) DesgloseMetodos() (Desglose, []string) {
	if a.TieneDesgloseEstructurado() {
		return Desglose{
			Efectivo:      derefOrZero(a.MontoEfectivo),
			Transferencia: derefOrZero(a.MontoTransferencia),
			Cheque:        derefOrZero(a.MontoCheque),
			Retencion:     derefOrZero(a.MontoRetencion),
		}, nil
	}
	return ParseAbonoMetodoPago(a.MetodoPago, a.MontoAbono)
}
