package entregas

import (
	"github.com/shopspring/decimal"
)

// ReconciliationInput is the immutable set of movements selected for a
// delivery. Callers assemble it (usually via BuildInput) and pass it to
// ComputeReconciliation on every change to the selection; nothing here is
// persisted.
type ReconciliationInput struct {
	Ordenes    []Orden
	Abonos     []Abono
	Reembolsos []Reembolso
}

// ReconciliationResult is the ephemeral outcome of a reconciliation run.
// Invariant: MontoNeto == MontoOrdenes + MontoAbonos - MontoReembolsos, and
// after rescaling the method buckets sum to MontoNeto within
// ReconcileTolerance.
type ReconciliationResult struct {
	MontoOrdenes    decimal.Decimal `json:"monto_ordenes"`
	MontoAbonos     decimal.Decimal `json:"monto_abonos"`
	MontoReembolsos decimal.Decimal `json:"monto_reembolsos"`
	MontoNeto       decimal.Decimal `json:"monto_neto"`

	MontoEfectivo      decimal.Decimal `json:"monto_efectivo"`
	MontoTransferencia decimal.Decimal `json:"monto_transferencia"`
	MontoCheque        decimal.Decimal `json:"monto_cheque"`
	MontoDeposito      decimal.Decimal `json:"monto_deposito"`
	MontoRetencion     decimal.Decimal `json:"monto_retencion"`

	// Warnings surfaces degraded-parse and auto-correction conditions so
	// callers can show or assert on them instead of digging through logs.
	Warnings []string `json:"warnings,omitempty"`
}

// AggregateTotals sums the selected movements into gross totals per
// category plus the net total. Pure function; nil slices count as empty.
func AggregateTotals(input ReconciliationInput) (ordenes, abonos, reembolsos, neto decimal.Decimal) {
	for _, o := range input.Ordenes {
		ordenes = ordenes.Add(o.Total)
	}
	for _, a := range input.Abonos {
		abonos = abonos.Add(a.MontoAbono)
	}
	for _, r := range input.Reembolsos {
		reembolsos = reembolsos.Add(r.TotalReembolso)
	}
	neto = ordenes.Add(abonos).Sub(reembolsos)
	return ordenes, abonos, reembolsos, neto
}

// ComputeReconciliation turns the selected movements into a single
// payment-method-segmented delivery total.
//
// Each order and abono contributes its breakdown (structured fields first,
// legacy text otherwise); refunds subtract from the bucket matching their
// form. When the accumulated breakdown diverges from the net total beyond
// ReconcileTolerance, the buckets are rescaled proportionally so the net
// total stays authoritative. Never returns an error: numeric degradation
// surfaces as warnings and visibly adjusted totals.
func ComputeReconciliation(input ReconciliationInput) ReconciliationResult {
	montoOrdenes, montoAbonos, montoReembolsos, montoNeto := AggregateTotals(input)

	var desglose Desglose
	var warnings []string

	for _, o := range input.Ordenes {
		d, w := o.DesgloseMetodos()
		desglose = desglose.Add(d)
		warnings = append(warnings, w...)
	}
	for _, a := range input.Abonos {
		d, w := a.DesgloseMetodos()
		desglose = desglose.Add(d)
		warnings = append(warnings, w...)
	}
	for _, r := range input.Reembolsos {
		switch r.FormaReembolso {
		case FormaReembolsoEfectivo:
			desglose.Efectivo = desglose.Efectivo.Sub(r.TotalReembolso)
		case FormaReembolsoTransferencia:
			desglose.Transferencia = desglose.Transferencia.Sub(r.TotalReembolso)
		}
	}

	desglose, w := reconcileDesglose(desglose, montoNeto)
	warnings = append(warnings, w...)

	return ReconciliationResult{
		MontoOrdenes:       montoOrdenes,
		MontoAbonos:        montoAbonos,
		MontoReembolsos:    montoReembolsos,
		MontoNeto:          montoNeto,
		MontoEfectivo:      desglose.Efectivo,
		MontoTransferencia: desglose.Transferencia,
		MontoCheque:        desglose.Cheque,
		MontoDeposito:      decimal.Zero,
		MontoRetencion:     desglose.Retencion,
		Warnings:           warnings,
	}
}

// reconcileDesglose cross-checks the accumulated breakdown against the net
// total and rescales proportionally when they diverge beyond tolerance.
// With an empty breakdown and a non-zero net there is nothing to rescale;
// the whole net is attributed to cash.
func reconcileDesglose(d Desglose, montoNeto decimal.Decimal) (Desglose, []string) {
	suma := d.Efectivo.Add(d.Transferencia).Add(d.Cheque)
	diferencia := suma.Sub(montoNeto).Abs()
	tolerancia := montoNeto.Abs().Mul(ReconcileTolerance)

	if diferencia.LessThanOrEqual(tolerancia) {
		return d, nil
	}

	if suma.IsZero() {
		if montoNeto.IsZero() {
			return d, nil
		}
		d.Efectivo = montoNeto
		return d, []string{"desglose vacío con monto neto distinto de cero, se atribuye todo a efectivo"}
	}

	factor := montoNeto.Div(suma)
	d.Efectivo = d.Efectivo.Mul(factor)
	d.Transferencia = d.Transferencia.Mul(factor)
	d.Cheque = d.Cheque.Mul(factor)
	return d, []string{"desglose ajustado proporcionalmente al monto neto"}
}
