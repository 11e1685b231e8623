package repository

import (
	"context"

	"github.com/Martin-1982/gestion-panol-eset-sub000/internal/dto"
	"github.com/Martin-1982/gestion-panol-eset-sub000/internal/model"

	"gorm.io/gorm"
)

// ProductoConStock is a catalog row with its derived stock totals.
type ProductoConStock struct {
	ID            uint
	Nombre        string
	Categoria     string
	Subcategoria  *string
	Presentacion  *string
	Unidad        string
	Minimo        int
	Tipo          string
	EntradasTotal int
	SalidasTotal  int
	Stock         int
}

// ProductoRepository defines the data access contract for products.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via in-memory stubs.
type ProductoRepository interface {
	Create(ctx context.Context, p *model.Producto) error
	FindByID(ctx context.Context, id uint) (*model.Producto, error)
	Update(ctx context.Context, p *model.Producto) error
	// Delete is a hard delete; a foreign-key violation from dependent
	// entradas/salidas surfaces as a pgconn.PgError (SQLSTATE 23503).
	Delete(ctx context.Context, id uint) error

	// ListarConStock computes stock as one grouped subquery per movement
	// table LEFT JOINed to productos — never a single join across both fact
	// tables, which would multiply rows and corrupt the SUMs.
	ListarConStock(ctx context.Context, filter dto.ProductoFilter) ([]ProductoConStock, error)
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) Create(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productoRepo) FindByID(ctx context.Context, id uint) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productoRepo) Update(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productoRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Producto{}, id).Error
}

const stockQuery = `
SELECT p.id, p.nombre, p.categoria, p.subcategoria, p.presentacion, p.unidad,
       p.minimo, p.tipo,
       COALESCE(e.total, 0) AS entradas_total,
       COALESCE(s.total, 0) AS salidas_total,
       COALESCE(e.total, 0) - COALESCE(s.total, 0) AS stock
FROM productos p
LEFT JOIN (SELECT producto_id, SUM(cantidad) AS total FROM entradas GROUP BY producto_id) e
       ON e.producto_id = p.id
LEFT JOIN (SELECT producto_id, SUM(cantidad) AS total FROM salidas GROUP BY producto_id) s
       ON s.producto_id = p.id
`

func (r *productoRepo) ListarConStock(ctx context.Context, filter dto.ProductoFilter) ([]ProductoConStock, error) {
	q := stockQuery + " WHERE 1=1"
	args := []interface{}{}

	if filter.Nombre != "" {
		q += " AND p.nombre ILIKE ?"
		args = append(args, "%"+filter.Nombre+"%")
	}
	if filter.Categoria != "" {
		q += " AND p.categoria = ?"
		args = append(args, filter.Categoria)
	}
	if filter.Tipo != "" {
		q += " AND p.tipo = ?"
		args = append(args, filter.Tipo)
	}
	if filter.BajoMinimo {
		q += " AND COALESCE(e.total, 0) - COALESCE(s.total, 0) <= p.minimo"
	}
	q += " ORDER BY p.nombre ASC"

	var rows []ProductoConStock
	err := r.db.WithContext(ctx).Raw(q, args...).Scan(&rows).Error
	return rows, err
}
