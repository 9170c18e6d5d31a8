package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vialsa/backend/internal/domain/entregas"
	"github.com/vialsa/backend/internal/domain/shared"
	"github.com/vialsa/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormEntregaRepository implements entregas.EntregaRepository using GORM
type GormEntregaRepository struct {
	db *gorm.DB
}

// NewGormEntregaRepository creates a new GormEntregaRepository
func NewGormEntregaRepository(db *gorm.DB) *GormEntregaRepository {
	return &GormEntregaRepository{db: db}
}

// Save creates or updates a delivery with optimistic locking. Version 1 is an
// insert; anything above is an update guarded by the previous version.
func (r *GormEntregaRepository) Save(ctx context.Context, entrega *entregas.Entrega) error {
	model := models.EntregaModelFromDomain(entrega)

	if entrega.Version <= 1 {
		return r.db.WithContext(ctx).Create(model).Error
	}

	result := r.db.WithContext(ctx).
		Model(model).
		Where("id = ? AND version = ?", entrega.ID, entrega.Version-1).
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_ERROR", "La entrega fue modificada por otra transacción")
	}
	return nil
}

// FindByID finds a delivery by ID
func (r *GormEntregaRepository) FindByID(ctx context.Context, id uuid.UUID) (*entregas.Entrega, error) {
	var model models.EntregaModel
	if err := r.db.WithContext(ctx).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds deliveries matching the filter, newest first by default
func (r *GormEntregaRepository) FindAll(ctx context.Context, filter entregas.EntregaFilter) ([]entregas.Entrega, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.EntregaModel{})

	if filter.SedeID != nil {
		query = query.Where("sede_id = ?", *filter.SedeID)
	}
	if filter.Estado != nil {
		query = query.Where("estado = ?", filter.Estado.String())
	}
	if filter.FechaFrom != nil {
		query = query.Where("fecha_entrega >= ?", *filter.FechaFrom)
	}
	if filter.FechaTo != nil {
		query = query.Where("fecha_entrega <= ?", *filter.FechaTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orderBy := ValidateSortField(filter.Filter.OrderBy, EntregaSortFields, "fecha_entrega")
	orderDir := ValidateSortOrder(filter.Filter.OrderDir)

	var entregaModels []models.EntregaModel
	if err := query.
		Order(fmt.Sprintf("%s %s", orderBy, orderDir)).
		Offset(filter.Filter.Offset()).
		Limit(filter.Filter.Limit()).
		Find(&entregaModels).Error; err != nil {
		return nil, 0, err
	}

	result := make([]entregas.Entrega, len(entregaModels))
	for i, model := range entregaModels {
		result[i] = *model.ToDomain()
	}
	return result, total, nil
}

// GenerateNumeroEntrega issues the next ENT-YYYY-NNNNN sequence number. The
// sequence restarts each year; the unique index on numero_entrega backs the
// race window between read and insert.
func (r *GormEntregaRepository) GenerateNumeroEntrega(ctx context.Context) (string, error) {
	year := time.Now().Year()
	prefix := fmt.Sprintf("ENT-%d-", year)

	var last string
	err := r.db.WithContext(ctx).
		Model(&models.EntregaModel{}).
		Select("numero_entrega").
		Where("numero_entrega LIKE ?", prefix+"%").
		Order("numero_entrega DESC").
		Limit(1).
		Scan(&last).Error
	if err != nil {
		return "", err
	}

	next := 1
	if last != "" {
		var seq int
		if _, err := fmt.Sscanf(last, prefix+"%05d", &seq); err == nil {
			next = seq + 1
		}
	}
	return fmt.Sprintf("%s%05d", prefix, next), nil
}
