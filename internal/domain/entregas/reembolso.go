package entregas

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FormaReembolso is the method through which a refund left the till.
// Only cash-affecting forms take part in a delivery.
type FormaReembolso string

const (
	FormaReembolsoEfectivo      FormaReembolso = "EFECTIVO"
	FormaReembolsoTransferencia FormaReembolso = "TRANSFERENCIA"
)

// IsValid checks if the form is a recognized FormaReembolso
func (f FormaReembolso) IsValid() bool {
	switch f {
	case FormaReembolsoEfectivo, FormaReembolsoTransferencia:
		return true
	}
	return false
}

// String returns the string representation of FormaReembolso
func (f FormaReembolso) String() string {
	return string(f)
}

// Reembolso is a read model of a refund. Refunds always subtract from the
// delivery totals, never add.
type Reembolso struct {
	ID             uuid.UUID       `json:"id"`
	OrdenOriginal  uuid.UUID       `json:"orden_original"`
	TotalReembolso decimal.Decimal `json:"total_reembolso"`
	FormaReembolso FormaReembolso  `json:"forma_reembolso"`
	Fecha          time.Time       `json:"fecha"`
}

// MismaFecha reports whether the refund happened on the given calendar day.
func (r Reembolso) MismaFecha(fecha time.Time) bool {
	ry, rm, rd := r.Fecha.Date()
	fy, fm, fd := fecha.Date()
	return ry == fy && rm == fm && rd == fd
}
