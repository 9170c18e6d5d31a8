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

// GormAbonoRepository implements entregas.AbonoRepository using GORM
type GormAbonoRepository struct {
	db *gorm.DB
}

// NewGormAbonoRepository creates a new GormAbonoRepository
func NewGormAbonoRepository(db *gorm.DB) *GormAbonoRepository {
	return &GormAbonoRepository{db: db}
}

// FindDisponibles returns the installments of a sede and calendar day not yet
// consumed by a registered delivery
func (r *GormAbonoRepository) FindDisponibles(ctx context.Context, sedeID uuid.UUID, fecha time.Time) ([]entregas.Abono, error) {
	from, to := dayRange(fecha)

	var abonoModels []models.AbonoModel
	if err := r.db.WithContext(ctx).
		Where("sede_id = ? AND fecha >= ? AND fecha < ? AND entrega_id IS NULL", sedeID, from, to).
		Order("fecha ASC").
		Find(&abonoModels).Error; err != nil {
		return nil, err
	}

	abonos := make([]entregas.Abono, len(abonoModels))
	for i, model := range abonoModels {
		abonos[i] = model.ToDomain()
	}
	return abonos, nil
}

// MarcarEntregados links the installments to a registered delivery. A short
// row count means an installment was consumed concurrently; the selection is
// stale and the write must not stand.
func (r *GormAbonoRepository) MarcarEntregados(ctx context.Context, ids []uuid.UUID, entregaID uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	result := r.db.WithContext(ctx).
		Model(&models.AbonoModel{}).
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

// LiberarEntrega releases the installments of a voided delivery
func (r *GormAbonoRepository) LiberarEntrega(ctx context.Context, entregaID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.AbonoModel{}).
		Where("entrega_id = ?", entregaID).
		Update("entrega_id", nil).Error
}
