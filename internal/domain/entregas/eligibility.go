package entregas

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vialsa/backend/internal/domain/shared"
)

// Seleccion holds the movement IDs the user picked for a delivery.
type Seleccion struct {
	OrdenesIDs    []uuid.UUID
	AbonosIDs     []uuid.UUID
	ReembolsosIDs []uuid.UUID
}

// IsEmpty reports whether nothing was selected.
func (s Seleccion) IsEmpty() bool {
	return len(s.OrdenesIDs) == 0 && len(s.AbonosIDs) == 0 && len(s.ReembolsosIDs) == 0
}

// MovimientosDisponibles is the catalog of movements currently eligible for
// a sede and date. It is refetched right before submission so a selection
// consumed by a concurrent session is rejected instead of double-delivered.
type MovimientosDisponibles struct {
	Ordenes    []Orden
	Abonos     []Abono
	Reembolsos []Reembolso
}

// Elegibles filters the catalog down to the movements that may enter a
// delivery for the given date: completed sales, abonos not yet delivered,
// and same-day refunds in a cash-affecting form.
func (c MovimientosDisponibles) Elegibles(fecha time.Time) MovimientosDisponibles {
	out := MovimientosDisponibles{}
	for _, o := range c.Ordenes {
		if o.Venta {
			out.Ordenes = append(out.Ordenes, o)
		}
	}
	for _, a := range c.Abonos {
		if !a.YaEntregado {
			out.Abonos = append(out.Abonos, a)
		}
	}
	for _, r := range c.Reembolsos {
		if r.FormaReembolso.IsValid() && r.MismaFecha(fecha) {
			out.Reembolsos = append(out.Reembolsos, r)
		}
	}
	return out
}

// ValidateSeleccion re-confirms every selected ID against the catalog.
// Missing IDs produce a STALE_SELECTION domain error naming each one, so
// the user can correct the selection before resubmitting.
func ValidateSeleccion(catalogo MovimientosDisponibles, seleccion Seleccion) error {
	var faltantes []string

	ordenes := make(map[uuid.UUID]bool, len(catalogo.Ordenes))
	for _, o := range catalogo.Ordenes {
		ordenes[o.ID] = true
	}
	for _, id := range seleccion.OrdenesIDs {
		if !ordenes[id] {
			faltantes = append(faltantes, "orden "+id.String())
		}
	}

	abonos := make(map[uuid.UUID]bool, len(catalogo.Abonos))
	for _, a := range catalogo.Abonos {
		abonos[a.ID] = true
	}
	for _, id := range seleccion.AbonosIDs {
		if !abonos[id] {
			faltantes = append(faltantes, "abono "+id.String())
		}
	}

	reembolsos := make(map[uuid.UUID]bool, len(catalogo.Reembolsos))
	for _, r := range catalogo.Reembolsos {
		reembolsos[r.ID] = true
	}
	for _, id := range seleccion.ReembolsosIDs {
		if !reembolsos[id] {
			faltantes = append(faltantes, "reembolso "+id.String())
		}
	}

	if len(faltantes) > 0 {
		sort.Strings(faltantes)
		return shared.NewDomainError(shared.ErrStaleSelection.Code, fmt.Sprintf(
			"los siguientes movimientos ya no están disponibles: %s",
			strings.Join(faltantes, ", ")))
	}
	return nil
}

// BuildInput validates the selection against the catalog and assembles the
// reconciliation input from the matching movements.
func BuildInput(catalogo MovimientosDisponibles, seleccion Seleccion) (ReconciliationInput, error) {
	if err := ValidateSeleccion(catalogo, seleccion); err != nil {
		return ReconciliationInput{}, err
	}

	input := ReconciliationInput{}

	seleccionadas := make(map[uuid.UUID]bool, len(seleccion.OrdenesIDs))
	for _, id := range seleccion.OrdenesIDs {
		seleccionadas[id] = true
	}
	for _, o := range catalogo.Ordenes {
		if seleccionadas[o.ID] {
			input.Ordenes = append(input.Ordenes, o)
		}
	}

	seleccionados := make(map[uuid.UUID]bool, len(seleccion.AbonosIDs))
	for _, id := range seleccion.AbonosIDs {
		seleccionados[id] = true
	}
	for _, a := range catalogo.Abonos {
		if seleccionados[a.ID] {
			input.Abonos = append(input.Abonos, a)
		}
	}

	reembolsos := make(map[uuid.UUID]bool, len(seleccion.ReembolsosIDs))
	for _, id := range seleccion.ReembolsosIDs {
		reembolsos[id] = true
	}
	for _, r := range catalogo.Reembolsos {
		if reembolsos[r.ID] {
			input.Reembolsos = append(input.Reembolsos, r)
		}
	}

	return input, nil
}
