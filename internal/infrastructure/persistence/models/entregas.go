package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/vialsa/backend/internal/domain/entregas"
)

// OrdenTrabajoModel is the persistence model for work orders as seen by the
// delivery module. The orders themselves are written by the sales flow; this
// module only reads them and stamps entrega_id when they are consumed by a
// registered delivery.
type OrdenTrabajoModel struct {
	BaseModel
	Numero        string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	SedeID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Fecha         time.Time       `gorm:"not null;index"`
	Total         decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	ClienteNombre string          `gorm:"type:varchar(200)"`

	MontoEfectivo      *decimal.Decimal `gorm:"type:decimal(18,2)"`
	MontoTransferencia *decimal.Decimal `gorm:"type:decimal(18,2)"`
	MontoCheque        *decimal.Decimal `gorm:"type:decimal(18,2)"`

	Descripcion string `gorm:"type:text"`
	Venta       bool   `gorm:"not null;default:false"`

	EntregaID *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (OrdenTrabajoModel) TableName() string {
	return "ordenes_trabajo"
}

// ToDomain converts the model to a domain Orden
func (m *OrdenTrabajoModel) ToDomain() entregas.Orden {
	return entregas.Orden{
		ID:                 m.ID,
		Numero:             m.Numero,
		Fecha:              m.Fecha,
		Total:              m.Total,
		ClienteNombre:      m.ClienteNombre,
		MontoEfectivo:      m.MontoEfectivo,
		MontoTransferencia: m.MontoTransferencia,
		MontoCheque:        m.MontoCheque,
		Descripcion:        m.Descripcion,
		Venta:              m.Venta,
	}
}

// AbonoModel is the persistence model for credit installments
type AbonoModel struct {
	BaseModel
	OrdenID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	SedeID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Fecha      time.Time       `gorm:"not null;index"`
	MontoAbono decimal.Decimal `gorm:"type:decimal(18,2);not null"`

	MontoEfectivo      *decimal.Decimal `gorm:"type:decimal(18,2)"`
	MontoTransferencia *decimal.Decimal `gorm:"type:decimal(18,2)"`
	MontoCheque        *decimal.Decimal `gorm:"type:decimal(18,2)"`
	MontoRetencion     *decimal.Decimal `gorm:"type:decimal(18,2)"`

	MetodoPago string `gorm:"type:text"`

	EntregaID *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (AbonoModel) TableName() string {
	return "abonos"
}

// ToDomain converts the model to a domain Abono
func (m *AbonoModel) ToDomain() entregas.Abono {
	return entregas.Abono{
		ID:                 m.ID,
		OrdenID:            m.OrdenID,
		Fecha:              m.Fecha,
		MontoAbono:         m.MontoAbono,
		MontoEfectivo:      m.MontoEfectivo,
		MontoTransferencia: m.MontoTransferencia,
		MontoCheque:        m.MontoCheque,
		MontoRetencion:     m.MontoRetencion,
		MetodoPago:         m.MetodoPago,
		YaEntregado:        m.EntregaID != nil,
	}
}

// ReembolsoModel is the persistence model for refunds
type ReembolsoModel struct {
	BaseModel
	OrdenOriginal  uuid.UUID       `gorm:"type:uuid;not null;index"`
	SedeID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	TotalReembolso decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	FormaReembolso string          `gorm:"type:varchar(20);not null"`
	Fecha          time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (ReembolsoModel) TableName() string {
	return "reembolsos"
}

// ToDomain converts the model to a domain Reembolso
func (m *ReembolsoModel) ToDomain() entregas.Reembolso {
	return entregas.Reembolso{
		ID:             m.ID,
		OrdenOriginal:  m.OrdenOriginal,
		TotalReembolso: m.TotalReembolso,
		FormaReembolso: entregas.FormaReembolso(m.FormaReembolso),
		Fecha:          m.Fecha,
	}
}

// EntregaModel is the persistence model for the Entrega aggregate root
type EntregaModel struct {
	AggregateModel
	NumeroEntrega string    `gorm:"type:varchar(20);not null;uniqueIndex"`
	SedeID        uuid.UUID `gorm:"type:uuid;not null;index"`
	EmpleadoID    uuid.UUID `gorm:"type:uuid;not null;index"`
	FechaEntrega  time.Time `gorm:"not null;index"`

	OrdenesIDs    pq.StringArray `gorm:"type:text[]"`
	AbonosIDs     pq.StringArray `gorm:"type:text[]"`
	ReembolsosIDs pq.StringArray `gorm:"type:text[]"`

	Monto              decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	MontoOrdenes       decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	MontoAbonos        decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	MontoReembolsos    decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	MontoEfectivo      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	MontoTransferencia decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	MontoCheque        decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	MontoDeposito      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	MontoRetencion     decimal.Decimal `gorm:"type:decimal(18,2);not null"`

	Estado          string     `gorm:"type:varchar(20);not null;default:'REGISTRADA';index"`
	Observaciones   string     `gorm:"type:text"`
	AnuladaAt       *time.Time `gorm:""`
	MotivoAnulacion string     `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (EntregaModel) TableName() string {
	return "entregas"
}

// EntregaModelFromDomain creates a persistence model from a domain Entrega
func EntregaModelFromDomain(e *entregas.Entrega) *EntregaModel {
	m := &EntregaModel{}
	m.FromDomainAggregateRoot(e.BaseAggregateRoot)
	m.NumeroEntrega = e.NumeroEntrega
	m.SedeID = e.SedeID
	m.EmpleadoID = e.EmpleadoID
	m.FechaEntrega = e.FechaEntrega
	m.OrdenesIDs = uuidsToStrings(e.OrdenesIDs)
	m.AbonosIDs = uuidsToStrings(e.AbonosIDs)
	m.ReembolsosIDs = uuidsToStrings(e.ReembolsosIDs)
	m.Monto = e.Monto
	m.MontoOrdenes = e.MontoOrdenes
	m.MontoAbonos = e.MontoAbonos
	m.MontoReembolsos = e.MontoReembolsos
	m.MontoEfectivo = e.MontoEfectivo
	m.MontoTransferencia = e.MontoTransferencia
	m.MontoCheque = e.MontoCheque
	m.MontoDeposito = e.MontoDeposito
	m.MontoRetencion = e.MontoRetencion
	m.Estado = e.Estado.String()
	m.Observaciones = e.Observaciones
	m.AnuladaAt = e.AnuladaAt
	m.MotivoAnulacion = e.MotivoAnulacion
	return m
}

// ToDomain converts the model to a domain Entrega
func (m *EntregaModel) ToDomain() *entregas.Entrega {
	return &entregas.Entrega{
		BaseAggregateRoot:  m.ToDomainAggregateRoot(),
		NumeroEntrega:      m.NumeroEntrega,
		SedeID:             m.SedeID,
		EmpleadoID:         m.EmpleadoID,
		FechaEntrega:       m.FechaEntrega,
		OrdenesIDs:         stringsToUUIDs(m.OrdenesIDs),
		AbonosIDs:          stringsToUUIDs(m.AbonosIDs),
		ReembolsosIDs:      stringsToUUIDs(m.ReembolsosIDs),
		Monto:              m.Monto,
		MontoOrdenes:       m.MontoOrdenes,
		MontoAbonos:        m.MontoAbonos,
		MontoReembolsos:    m.MontoReembolsos,
		MontoEfectivo:      m.MontoEfectivo,
		MontoTransferencia: m.MontoTransferencia,
		MontoCheque:        m.MontoCheque,
		MontoDeposito:      m.MontoDeposito,
		MontoRetencion:     m.MontoRetencion,
		Estado:             entregas.EstadoEntrega(m.Estado),
		Observaciones:      m.Observaciones,
		AnuladaAt:          m.AnuladaAt,
		MotivoAnulacion:    m.MotivoAnulacion,
	}
}

func uuidsToStrings(ids []uuid.UUID) pq.StringArray {
	out := make(pq.StringArray, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

func stringsToUUIDs(values pq.StringArray) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(values))
	for _, v := range values {
		id, err := uuid.Parse(v)
		if err != nil {
			continue
		}
		out = append(out, id)
	}
	return out
}
