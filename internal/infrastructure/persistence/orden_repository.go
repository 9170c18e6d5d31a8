package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vialsa/backend/internal/domain/entregas"
	"github.com/vialsa/backend/internal/domain/shared"
	"github.com/vialsa/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormOrdenRepository implements entregas.OrdenRepository using GORM
type GormOrdenRepository struct {
	db *gorm.DB
}

// NewGormOrdenRepository creates a new GormOrdenRepository
func NewGormOrdenRepository(db *gorm.DB) *GormOrdenRepository {
	return &GormOrdenRepository{db: db}
}

// FindDisponibles returns the cash-sale orders of a sede and calendar day not
// yet consumed by a registered delivery
func (r *GormOrdenRepository) FindDisponibles(ctx context.Context, sedeID uuid.UUID, fecha time.Time) ([]entregas.Orden, error) {
	from, to := dayRange(fecha)

	var ordenModels []models.OrdenTrabajoModel
	if err := r.db.WithContext(ctx).
		Where("sede_id = ? AND fecha >= ? AND fecha < ? AND entrega_id IS NULL", sedeID, from, to).
		Order("fecha ASC").
		Find(&ordenModels).Error; err != nil {
		return nil, err
	}

	ordenes := make([]entregas.Orden, len(ordenModels))
	for i, model := range ordenModels {
		ordenes[i] = model.ToDomain()
	}
	return ordenes, nil
}

// MarcarEntregadas links the orders to a registered delivery. An order
// consumed by a concurrent delivery no longer matches the entrega_id IS NULL
// guard; a short row count means the selection went stale after the catalog
// re-validation and the write must not stand.
func (r *GormOrdenRepository) MarcarEntregadas(ctx context.Context, ids []uuid.UUID, entregaID uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	result := r.db.WithContext(ctx).
		Model(&models.OrdenTrabajoModel{}).
		Where("id IN ? AND entrega_id IS NULL", ids).
		Update("entrega_id", entregaID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected != int64(len(ids)) {
		return shared.ErrStaleSelection
	}
	return nil
}

// LiberarEntrega releases the orders of a voided delivery
func (r *GormOrdenRepository) LiberarEntrega(ctx context.Context, entregaID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.OrdenTrabajoModel{}).
		Where("entrega_id = ?", entregaID).
		Update("entrega_id", nil).Error
}

// dayRange returns the [start, end) bounds of the calendar day containing t
func dayRange(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}
