package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Martin-1982/gestion-panol-eset-sub000/internal/dto"
	"github.com/Martin-1982/gestion-panol-eset-sub000/internal/model"
	"github.com/Martin-1982/gestion-panol-eset-sub000/internal/repository"

	"gorm.io/gorm"
)

type EntradaService interface {
	Registrar(ctx context.Context, usuarioID uint, req dto.CrearEntradaRequest) (*dto.EntradaResponse, error)
	Listar(ctx context.Context, filter dto.EntradaFilter) ([]dto.EntradaResponse, error)
}

type entradaService struct {
	repo         repository.EntradaRepository
	productoRepo repository.ProductoRepository
	cache        *StockCache
	now          func() time.Time
}

func NewEntradaService(repo repository.EntradaRepository, productoRepo repository.ProductoRepository, cache *StockCache) EntradaService {
	return &entradaService{repo: repo, productoRepo: productoRepo, cache: cache, now: time.Now}
}

// generarLote builds the batch code for an entrada: "DDMMYYYY-<proveedor_id>"
// for purchases, "DDMMYYYY-d" for donations.
func generarLote(fecha time.Time, donacion bool, proveedorID *uint) string {
	prefix := fecha.Format("02012006")
	if donacion {
		return prefix + "-d"
	}
	return fmt.Sprintf("%s-%d", prefix, *proveedorID)
}

func (s *entradaService) Registrar(ctx context.Context, usuarioID uint, req dto.CrearEntradaRequest) (*dto.EntradaResponse, error) {
	p, err := s.productoRepo.FindByID(ctx, req.ProductoID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &ProductoNoEncontradoError{ProductoID: req.ProductoID}
	}
	if err != nil {
		return nil, err
	}

	if !req.Donacion && req.ProveedorID == nil {
		return nil, validacion("proveedor_id es requerido para compras")
	}

	fecha := s.now()
	entrada := &model.Entrada{
		ProductoID:  req.ProductoID,
		UsuarioID:   usuarioID,
		ProveedorID: req.ProveedorID,
		Cantidad:    req.Cantidad,
		Costo:       req.Costo,
		Donacion:    req.Donacion,
		Lote:        generarLote(fecha, req.Donacion, req.ProveedorID),
		Fecha:       fecha,
	}
	if req.Vencimiento != nil {
		v, parseErr := time.Parse("2006-01-02", *req.Vencimiento)
		if parseErr != nil {
			return nil, validacion("vencimiento invalido, formato esperado AAAA-MM-DD")
		}
		entrada.Vencimiento = &v
	}

	if err := s.repo.Create(ctx, entrada); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx)

	resp := entradaToResponse(entrada)
	resp.Producto = p.Nombre
	return resp, nil
}

func (s *entradaService) Listar(ctx context.Context, filter dto.EntradaFilter) ([]dto.EntradaResponse, error) {
	entradas, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.EntradaResponse, 0, len(entradas))
	for i := range entradas {
		e := &entradas[i]
		item := entradaToResponse(e)
		if e.Producto != nil {
			item.Producto = e.Producto.Nombre
		}
		if e.Proveedor != nil {
			item.Proveedor = &e.Proveedor.Nombre
		}
		resp = append(resp, *item)
	}
	return resp, nil
}

func entradaToResponse(e *model.Entrada) *dto.EntradaResponse {
	resp := &dto.EntradaResponse{
		ID:          e.ID,
		ProductoID:  e.ProductoID,
		ProveedorID: e.ProveedorID,
		Cantidad:    e.Cantidad,
		Costo:       e.Costo,
		Donacion:    e.Donacion,
		Lote:        e.Lote,
		Fecha:       e.Fecha.Format(FechaRemito),
	}
	if e.Vencimiento != nil {
		v := e.Vencimiento.Format("2006-01-02")
		resp.Vencimiento = &v
	}
	return resp
}
