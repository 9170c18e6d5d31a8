package entregas

import "github.com/shopspring/decimal"

// Desglose is the payment-method breakdown of one or more movements.
// Retencion (Colombian withholding tax) is tracked apart and never
// counts toward the method buckets.
type Desglose struct {
	Efectivo      decimal.Decimal
	Transferencia decimal.Decimal
	Cheque        decimal.Decimal
	Deposito      decimal.Decimal
	Retencion     decimal.Decimal
}

// SumaMetodos returns the sum of the cash-affecting method buckets.
func (d Desglose) SumaMetodos() decimal.Decimal {
	return d.Efectivo.Add(d.Transferencia).Add(d.Cheque).Add(d.Deposito)
}

// Add returns a new Desglose with both breakdowns accumulated.
func (d Desglose) Add(other Desglose) Desglose {
	return Desglose{
		Efectivo:      d.Efectivo.Add(other.Efectivo),
		Transferencia: d.Transferencia.Add(other.Transferencia),
		Cheque:        d.Cheque.Add(other.Cheque),
		Deposito:      d.Deposito.Add(other.Deposito),
		Retencion:     d.Retencion.Add(other.Retencion),
	}
}

// IsZero returns true when every bucket is zero.
func (d Desglose) IsZero() bool {
	return d.Efectivo.IsZero() && d.Transferencia.IsZero() &&
		d.Cheque.IsZero() && d.Deposito.IsZero() && d.Retencion.IsZero()
}
