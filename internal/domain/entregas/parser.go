package entregas

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Tolerance constants for the reconciliation flow.
var (
	// ParseTolerance is the margin by which a parsed method breakdown may
	// exceed the declared abono amount before the string is considered
	// corrupted and discarded.
	ParseTolerance = decimal.NewFromFloat(0.02)

	// ReconcileTolerance is the margin by which the accumulated breakdown
	// may diverge from the net total before proportional rescaling kicks in.
	ReconcileTolerance = decimal.NewFromFloat(0.01)
)

// Legacy payment descriptions were typed by hand; keywords appear in any
// case, amounts in Latin-American format. A transfer segment may carry a
// parenthesized bank name after the amount.
var (
	reEfectivo      = regexp.MustCompile(`(?i)EFECTIVO\s*:\s*([\d.,]+)`)
	reTransferencia = regexp.MustCompile(`(?i)TRANSFERENCIA\s*:\s*([\d.,]+)`)
	reCheque        = regexp.MustCompile(`(?i)CHEQUE\s*:\s*([\d.,]+)`)
	reRetefuente    = regexp.MustCompile(`(?i)RETEFUENTE[^:|]*:\s*([\d.,]+)`)
)

// parseMonto normalizes a Latin-American formatted amount ("1.250.000,50")
// and parses it. Unparseable amounts degrade to zero, matching the
// original forgiving behavior.
func parseMonto(raw string) decimal.Decimal {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// sumMatches accumulates every amount the pattern captures in s.
// Multiple matches (e.g. transfers to different banks) are summed.
func sumMatches(re *regexp.Regexp, s string) (decimal.Decimal, bool) {
	total := decimal.Zero
	matched := false
	for _, m := range re.FindAllStringSubmatch(s, -1) {
		total = total.Add(parseMonto(m[1]))
		matched = true
	}
	return total, matched
}

// ParseOrdenDescripcion recovers the payment-method breakdown from an
// order's legacy free-text description. When no recognized keyword is
// found the entire order total is attributed to cash.
func ParseOrdenDescripcion(descripcion string, total decimal.Decimal) (Desglose, []string) {
	var warnings []string
	var d Desglose

	efectivo, okE := sumMatches(reEfectivo, descripcion)
	transferencia, okT := sumMatches(reTransferencia, descripcion)
	cheque, okC := sumMatches(reCheque, descripcion)

	if !okE && !okT && !okC {
		if strings.TrimSpace(descripcion) != "" {
			warnings = append(warnings,
				fmt.Sprintf("descripción de pago no reconocida %q, se asume efectivo", descripcion))
		}
		d.Efectivo = total
		return d, warnings
	}

	d.Efectivo = efectivo
	d.Transferencia = transferencia
	d.Cheque = cheque
	return d, warnings
}

// ParseAbonoMetodoPago recovers the payment-method breakdown from an
// abono's legacy pipe-separated payment string. RETEFUENTE segments
// accumulate into the withholding bucket and never count toward the
// method totals.
//
// Guard: when the parsed cash+transfer+check sum exceeds the declared
// abono amount beyond ParseTolerance, the string is treated as corrupted:
// the granular breakdown is discarded and the full amount attributed to
// transfer, so a malformed string can never overstate cash in hand.
// Already-parsed withholding is preserved.
func ParseAbonoMetodoPago(metodoPago string, montoAbono decimal.Decimal) (Desglose, []string) {
	var warnings []string
	var d Desglose

	for _, segmento := range strings.Split(metodoPago, "|") {
		segmento = strings.TrimSpace(segmento)
		if segmento == "" {
			continue
		}

		if m := reRetefuente.FindStringSubmatch(segmento); m != nil {
			d.Retencion = d.Retencion.Add(parseMonto(m[1]))
			continue
		}
		if m := reEfectivo.FindStringSubmatch(segmento); m != nil {
			d.Efectivo = d.Efectivo.Add(parseMonto(m[1]))
			continue
		}
		if m := reTransferencia.FindStringSubmatch(segmento); m != nil {
			d.Transferencia = d.Transferencia.Add(parseMonto(m[1]))
			continue
		}
		if m := reCheque.FindStringSubmatch(segmento); m != nil {
			d.Cheque = d.Cheque.Add(parseMonto(m[1]))
			continue
		}
		warnings = append(warnings,
			fmt.Sprintf("segmento de método de pago no reconocido: %q", segmento))
	}

	suma := d.Efectivo.Add(d.Transferencia).Add(d.Cheque)
	limite := montoAbono.Mul(decimal.NewFromInt(1).Add(ParseTolerance))
	if suma.GreaterThan(limite) {
		warnings = append(warnings, fmt.Sprintf(
			"desglose parseado (%s) excede el monto del abono (%s), se atribuye todo a transferencia",
			suma.String(), montoAbono.String()))
		d.Efectivo = decimal.Zero
		d.Cheque = decimal.Zero
		d.Transferencia = montoAbono
	}

	return d, warnings
}
