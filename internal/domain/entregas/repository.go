package entregas

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vialsa/backend/internal/domain/shared"
)

// OrdenRepository provides access to cash-sale orders for delivery queries
type OrdenRepository interface {
	// FindDisponibles returns the orders of a sede and day not yet consumed
	// by a registered delivery
	FindDisponibles(ctx context.Context, sedeID uuid.UUID, fecha time.Time) ([]Orden, error)
	// MarcarEntregadas links the orders to a registered delivery
	MarcarEntregadas(ctx context.Context, ids []uuid.UUID, entregaID uuid.UUID) error
	// LiberarEntrega releases the orders of a voided delivery
	LiberarEntrega(ctx context.Context, entregaID uuid.UUID) error
}

// AbonoRepository provides access to credit installments for delivery queries
type AbonoRepository interface {
	FindDisponibles(ctx context.Context, sedeID uuid.UUID, fecha time.Time) ([]Abono, error)
	MarcarEntregados(ctx context.Context, ids []uuid.UUID, entregaID uuid.UUID) error
	LiberarEntrega(ctx context.Context, entregaID uuid.UUID) error
}

// ReembolsoRepository provides access to refunds for delivery queries
type ReembolsoRepository interface {
	FindBySedeAndFecha(ctx context.Context, sedeID uuid.UUID, fecha time.Time) ([]Reembolso, error)
}

// EntregaFilter defines filtering options for delivery list queries
type EntregaFilter struct {
	SedeID    *uuid.UUID
	Estado    *EstadoEntrega
	FechaFrom *time.Time
	FechaTo   *time.Time
	Filter    shared.Filter
}

// EntregaRepository persists delivery records
type EntregaRepository interface {
	Save(ctx context.Context, entrega *Entrega) error
	FindByID(ctx context.Context, id uuid.UUID) (*Entrega, error)
	FindAll(ctx context.Context, filter EntregaFilter) ([]Entrega, int64, error)
	// GenerateNumeroEntrega issues the next ENT-YYYY-NNNNN sequence number
	GenerateNumeroEntrega(ctx context.Context) (string, error)
}

// TxRepositories bundles the repositories that participate in a delivery
// write, all bound to the same transaction.
type TxRepositories struct {
	Ordenes  OrdenRepository
	Abonos   AbonoRepository
	Entregas EntregaRepository
}

// UnitOfWork runs a function against transaction-bound repositories.
// Registering a delivery and consuming its movements must commit or roll
// back as one; a non-nil error from fn undoes every write.
type UnitOfWork interface {
	WithinTransaction(ctx context.Context, fn func(repos TxRepositories) error) error
}
