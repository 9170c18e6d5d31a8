package persistence

import (
	"context"

	"github.com/vialsa/backend/internal/domain/entregas"
	"gorm.io/gorm"
)

// GormUnitOfWork implements entregas.UnitOfWork over a GORM transaction
type GormUnitOfWork struct {
	db *gorm.DB
}

// NewGormUnitOfWork creates a new GormUnitOfWork
func NewGormUnitOfWork(db *gorm.DB) *GormUnitOfWork {
	return &GormUnitOfWork{db: db}
}

// WithinTransaction opens a transaction and hands fn repositories bound to
// it. An error from fn rolls the transaction back; otherwise it commits.
func (u *GormUnitOfWork) WithinTransaction(ctx context.Context, fn func(repos entregas.TxRepositories) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(entregas.TxRepositories{
			Ordenes:  NewGormOrdenRepository(tx),
			Abonos:   NewGormAbonoRepository(tx),
			Entregas: NewGormEntregaRepository(tx),
		})
	})
}
