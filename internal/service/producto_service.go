package service

import (
	"context"
	"errors"

	"github.com/Martin-1982/gestion-panol-eset-sub000/internal/dto"
	"github.com/Martin-1982/gestion-panol-eset-sub000/internal/model"
	"github.com/Martin-1982/gestion-panol-eset-sub000/internal/repository"

	"gorm.io/gorm"
)

type ProductoService interface {
	Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	Listar(ctx context.Context, filter dto.ProductoFilter) ([]dto.ProductoResponse, error)
	Actualizar(ctx context.Context, id uint, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	Eliminar(ctx context.Context, id uint) error
}

type productoService struct {
	repo repository.ProductoRepository
}

func NewProductoService(repo repository.ProductoRepository) ProductoService {
	return &productoService{repo: repo}
}

func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	unidad := req.Unidad
	if unidad == "" {
		unidad = "unidad"
	}
	p := &model.Producto{
		Nombre:       req.Nombre,
		Categoria:    req.Categoria,
		Subcategoria: req.Subcategoria,
		Presentacion: req.Presentacion,
		Unidad:       unidad,
		Minimo:       req.Minimo,
		Tipo:         req.Tipo,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return productoToResponse(p, 0), nil
}

// Listar returns the catalog with derived stock per product.
func (s *productoService) Listar(ctx context.Context, filter dto.ProductoFilter) ([]dto.ProductoResponse, error) {
	rows, err := s.repo.ListarConStock(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ProductoResponse, 0, len(rows))
	for _, r := range rows {
		resp = append(resp, dto.ProductoResponse{
			ID:           r.ID,
			Nombre:       r.Nombre,
			Categoria:    r.Categoria,
			Subcategoria: r.Subcategoria,
			Presentacion: r.Presentacion,
			Unidad:       r.Unidad,
			Minimo:       r.Minimo,
			Tipo:         r.Tipo,
			Stock:        r.Stock,
		})
	}
	return resp, nil
}

func (s *productoService) Actualizar(ctx context.Context, id uint, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoEncontrado
	}
	if err != nil {
		return nil, err
	}

	if req.Nombre != nil {
		p.Nombre = *req.Nombre
	}
	if req.Categoria != nil {
		p.Categoria = *req.Categoria
	}
	if req.Subcategoria != nil {
		p.Subcategoria = req.Subcategoria
	}
	if req.Presentacion != nil {
		p.Presentacion = req.Presentacion
	}
	if req.Unidad != nil {
		p.Unidad = *req.Unidad
	}
	if req.Minimo != nil {
		p.Minimo = *req.Minimo
	}
	if req.Tipo != nil {
		p.Tipo = *req.Tipo
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return productoToResponse(p, 0), nil
}

func (s *productoService) Eliminar(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNoEncontrado
	} else if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if esViolacionFK(err) {
			return ErrRegistrosRelacionados
		}
		return err
	}
	return nil
}

func productoToResponse(p *model.Producto, stock int) *dto.ProductoResponse {
	return &dto.ProductoResponse{
		ID:           p.ID,
		Nombre:       p.Nombre,
		Categoria:    p.Categoria,
		Subcategoria: p.Subcategoria,
		Presentacion: p.Presentacion,
		Unidad:       p.Unidad,
		Minimo:       p.Minimo,
		Tipo:         p.Tipo,
		Stock:        stock,
	}
}
