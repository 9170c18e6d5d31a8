package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vialsa/backend/internal/domain/entregas"
	"github.com/vialsa/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormReembolsoRepository implements entregas.ReembolsoRepository using GORM
type GormReembolsoRepository struct {
	db *gorm.DB
}

// NewGormReembolsoRepository creates a new GormReembolsoRepository
func NewGormReembolsoRepository(db *gorm.DB) *GormReembolsoRepository {
	return &GormReembolsoRepository{db: db}
}

// FindBySedeAndFecha returns the refunds of a sede on a calendar day
func (r *GormReembolsoRepository) FindBySedeAndFecha(ctx context.Context, sedeID uuid.UUID, fecha time.Time) ([]entregas.Reembolso, error) {
	from, to := dayRange(fecha)

	var reembolsoModels []models.ReembolsoModel
	if err := r.db.WithContext(ctx).
		Where("sede_id = ? AND fecha >= ? AND fecha < ?", sedeID, from, to).
		Order("fecha ASC").
		Find(&reembolsoModels).Error; err != nil {
		return nil, err
	}

	reembolsos := make([]entregas.Reembolso, len(reembolsoModels))
	for i, model := range reembolsoModels {
		reembolsos[i] = model.ToDomain()
	}
	return reembolsos, nil
}
