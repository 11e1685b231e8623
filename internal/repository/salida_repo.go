package repository

import (
	"context"
	"time"

	"github.com/Martin-1982/gestion-panol-eset-sub000/internal/dto"
	"github.com/Martin-1982/gestion-panol-eset-sub000/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SalidaTx exposes the operations available inside a salida transaction.
// Everything executed through it sees the transaction's own view, including
// salidas inserted for earlier items of the same batch.
type SalidaTx interface {
	// ProductoForUpdate locks the producto row (SELECT … FOR UPDATE) so two
	// concurrent batches against the same producto serialize their stock
	// checks instead of both reading the same disponible value.
	ProductoForUpdate(id uint) (*model.Producto, error)
	// StockDisponible computes SUM(entradas) − SUM(salidas) for one producto,
	// one scalar subquery per movement table, COALESCEd to 0.
	StockDisponible(productoID uint) (int, error)
	InsertSalida(s *model.Salida) error
	InsertStockArea(sa *model.StockArea) error
}

// SalidaRepository wraps salida persistence. Transaction runs fn atomically:
// an error return rolls back every row inserted through the SalidaTx.
type SalidaRepository interface {
	Transaction(ctx context.Context, fn func(tx SalidaTx) error) error
	List(ctx context.Context, filter dto.SalidaFilter) ([]model.Salida, error)
	// ListAreas returns the distinct destinos seen across all salidas.
	ListAreas(ctx context.Context) ([]string, error)
	ListStockAreas(ctx context.Context, filter dto.StockAreaFilter) ([]model.StockArea, error)
	FindStockArea(ctx context.Context, id uint) (*model.StockArea, error)
	BajaStockArea(ctx context.Context, id uint, motivo string, fecha time.Time) error
}

type salidaRepo struct{ db *gorm.DB }

func NewSalidaRepository(db *gorm.DB) SalidaRepository { return &salidaRepo{db: db} }

type salidaTx struct{ tx *gorm.DB }

func (t *salidaTx) ProductoForUpdate(id uint) (*model.Producto, error) {
	var p model.Producto
	err := t.tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (t *salidaTx) StockDisponible(productoID uint) (int, error) {
	var disponible int
	err := t.tx.Raw(`
		SELECT COALESCE((SELECT SUM(cantidad) FROM entradas WHERE producto_id = ?), 0)
		     - COALESCE((SELECT SUM(cantidad) FROM salidas  WHERE producto_id = ?), 0)`,
		productoID, productoID).Scan(&disponible).Error
	return disponible, err
}

func (t *salidaTx) InsertSalida(s *model.Salida) error { return t.tx.Create(s).Error }

func (t *salidaTx) InsertStockArea(sa *model.StockArea) error { return t.tx.Create(sa).Error }

func (r *salidaRepo) Transaction(ctx context.Context, fn func(tx SalidaTx) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&salidaTx{tx: tx})
	})
}

func (r *salidaRepo) List(ctx context.Context, filter dto.SalidaFilter) ([]model.Salida, error) {
	q := r.db.WithContext(ctx).Model(&model.Salida{}).Preload("Producto")

	if filter.ProductoID != 0 {
		q = q.Where("producto_id = ?", filter.ProductoID)
	}
	if filter.Destino != "" {
		q = q.Where("destino = ?", filter.Destino)
	}
	if d, err := time.Parse("2006-01-02", filter.Desde); err == nil {
		q = q.Where("fecha >= ?", d)
	}
	if h, err := time.Parse("2006-01-02", filter.Hasta); err == nil {
		q = q.Where("fecha < ?", h.AddDate(0, 0, 1))
	}

	var salidas []model.Salida
	err := q.Order("fecha DESC, id DESC").Find(&salidas).Error
	return salidas, err
}

func (r *salidaRepo) ListAreas(ctx context.Context) ([]string, error) {
	var areas []string
	err := r.db.WithContext(ctx).Model(&model.Salida{}).
		Distinct("destino").Order("destino ASC").Pluck("destino", &areas).Error
	return areas, err
}

func (r *salidaRepo) ListStockAreas(ctx context.Context, filter dto.StockAreaFilter) ([]model.StockArea, error) {
	q := r.db.WithContext(ctx).Model(&model.StockArea{}).Preload("Producto")

	if filter.Area != "" {
		q = q.Where("area = ?", filter.Area)
	}
	if filter.Estado != "" {
		q = q.Where("estado = ?", filter.Estado)
	}

	var rows []model.StockArea
	err := q.Order("fecha_entrega DESC, id DESC").Find(&rows).Error
	return rows, err
}

func (r *salidaRepo) FindStockArea(ctx context.Context, id uint) (*model.StockArea, error) {
	var sa model.StockArea
	err := r.db.WithContext(ctx).First(&sa, id).Error
	if err != nil {
		return nil, err
	}
	return &sa, nil
}

func (r *salidaRepo) BajaStockArea(ctx context.Context, id uint, motivo string, fecha time.Time) error {
	return r.db.WithContext(ctx).Model(&model.StockArea{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"estado":      model.EstadoBaja,
			"motivo_baja": motivo,
			"fecha_baja":  fecha,
		}).Error
}
