package repository

import (
	"context"
	"time"

	"github.com/Martin-1982/gestion-panol-eset-sub000/internal/dto"
	"github.com/Martin-1982/gestion-panol-eset-sub000/internal/model"

	"gorm.io/gorm"
)

// EntradaRepository is insert-only: entradas are immutable facts and stock is
// always a function of the full history.
type EntradaRepository interface {
	Create(ctx context.Context, e *model.Entrada) error
	List(ctx context.Context, filter dto.EntradaFilter) ([]model.Entrada, error)
}

type entradaRepo struct{ db *gorm.DB }

func NewEntradaRepository(db *gorm.DB) EntradaRepository { return &entradaRepo{db: db} }

func (r *entradaRepo) Create(ctx context.Context, e *model.Entrada) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *entradaRepo) List(ctx context.Context, filter dto.EntradaFilter) ([]model.Entrada, error) {
	q := r.db.WithContext(ctx).Model(&model.Entrada{}).
		Preload("Producto").Preload("Proveedor")

	if filter.ProductoID != 0 {
		q = q.Where("producto_id = ?", filter.ProductoID)
	}
	if filter.ProveedorID != 0 {
		q = q.Where("proveedor_id = ?", filter.ProveedorID)
	}
	switch filter.Donacion {
	case "true":
		q = q.Where("donacion = true")
	case "false":
		q = q.Where("donacion = false")
	}
	if d, err := time.Parse("2006-01-02", filter.Desde); err == nil {
		q = q.Where("fecha >= ?", d)
	}
	if h, err := time.Parse("2006-01-02", filter.Hasta); err == nil {
		// Inclusive end of day
		q = q.Where("fecha < ?", h.AddDate(0, 0, 1))
	}

	var entradas []model.Entrada
	err := q.Order("fecha DESC, id DESC").Find(&entradas).Error
	return entradas, err
}
