package service

import (
	"context"
	"errors"
	"time"

	"github.com/Martin-1982/gestion-panol-eset-sub000/internal/dto"
	"github.com/Martin-1982/gestion-panol-eset-sub000/internal/model"
	"github.com/Martin-1982/gestion-panol-eset-sub000/internal/repository"

	"gorm.io/gorm"
)

// FechaRemito is the date layout printed on remitos and returned by the bulk
// endpoint — always the server's clock, never the client's.
const FechaRemito = "02-01-2006"

type SalidaService interface {
	// RegistrarBulk applies one delivery atomically: every item passes its
	// stock check and is inserted, or nothing is.
	RegistrarBulk(ctx context.Context, usuarioID uint, req dto.BulkSalidaRequest) (*dto.BulkSalidaResponse, error)
	Registrar(ctx context.Context, usuarioID uint, req dto.CrearSalidaRequest) (*dto.BulkSalidaResponse, error)
	Listar(ctx context.Context, filter dto.SalidaFilter) ([]dto.SalidaResponse, error)
	ListarAreas(ctx context.Context) ([]string, error)
	ListarStockAreas(ctx context.Context, filter dto.StockAreaFilter) ([]dto.StockAreaResponse, error)
	BajaStockArea(ctx context.Context, id uint, motivo string) error
}

type salidaService struct {
	repo  repository.SalidaRepository
	cache *StockCache
	now   func() time.Time
}

func NewSalidaService(repo repository.SalidaRepository, cache *StockCache) SalidaService {
	return &salidaService{repo: repo, cache: cache, now: time.Now}
}

// ── RegistrarBulk ─────────────────────────────────────────────────────────────
// One database transaction per request. For each item in order:
//  1. Lock the producto row; a missing producto aborts the whole batch.
//  2. Compute disponible over the transaction's view (sees salidas inserted
//     for earlier items of this same batch).
//  3. cantidad > disponible aborts the whole batch — rows inserted for earlier
//     items roll back with it.
//  4. Insert the salida dated to the server clock.
//  5. Durable goods (tipo "uso") additionally get a stock_areas row.
// A partial application would corrupt the audit trail: the printed remito
// must list exactly the rows that were committed.

func (s *salidaService) RegistrarBulk(ctx context.Context, usuarioID uint, req dto.BulkSalidaRequest) (*dto.BulkSalidaResponse, error) {
	fecha := s.now()

	err := s.repo.Transaction(ctx, func(tx repository.SalidaTx) error {
		for _, item := range req.Items {
			p, err := tx.ProductoForUpdate(item.ProductoID)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &ProductoNoEncontradoError{ProductoID: item.ProductoID}
			}
			if err != nil {
				return err
			}

			disponible, err := tx.StockDisponible(item.ProductoID)
			if err != nil {
				return err
			}
			if item.Cantidad > disponible {
				return &StockInsuficienteError{
					ProductoID: item.ProductoID,
					Disponible: disponible,
					Solicitado: item.Cantidad,
				}
			}

			if err := tx.InsertSalida(&model.Salida{
				ProductoID:  item.ProductoID,
				Cantidad:    item.Cantidad,
				Fecha:       fecha,
				Destino:     req.Destino,
				Responsable: req.Responsable,
				UsuarioID:   usuarioID,
			}); err != nil {
				return err
			}

			if p.Tipo == model.TipoUso {
				if err := tx.InsertStockArea(&model.StockArea{
					ProductoID:   item.ProductoID,
					Area:         req.Destino,
					Cantidad:     item.Cantidad,
					FechaEntrega: fecha,
					Estado:       model.EstadoActivo,
				}); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx)

	return &dto.BulkSalidaResponse{
		OK:       true,
		Inserted: len(req.Items),
		Fecha:    fecha.Format(FechaRemito),
	}, nil
}

// Registrar handles the single stock-out route as a one-item batch so both
// paths share the same validation and atomicity guarantees.
func (s *salidaService) Registrar(ctx context.Context, usuarioID uint, req dto.CrearSalidaRequest) (*dto.BulkSalidaResponse, error) {
	return s.RegistrarBulk(ctx, usuarioID, dto.BulkSalidaRequest{
		Destino:     req.Destino,
		Responsable: req.Responsable,
		Items:       []dto.ItemSalida{{ProductoID: req.ProductoID, Cantidad: req.Cantidad}},
	})
}

func (s *salidaService) Listar(ctx context.Context, filter dto.SalidaFilter) ([]dto.SalidaResponse, error) {
	salidas, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.SalidaResponse, 0, len(salidas))
	for _, sal := range salidas {
		nombre := ""
		if sal.Producto != nil {
			nombre = sal.Producto.Nombre
		}
		resp = append(resp, dto.SalidaResponse{
			ID:          sal.ID,
			ProductoID:  sal.ProductoID,
			Producto:    nombre,
			Cantidad:    sal.Cantidad,
			Destino:     sal.Destino,
			Responsable: sal.Responsable,
			Fecha:       sal.Fecha.Format(FechaRemito),
		})
	}
	return resp, nil
}

func (s *salidaService) ListarAreas(ctx context.Context) ([]string, error) {
	return s.repo.ListAreas(ctx)
}

func (s *salidaService) ListarStockAreas(ctx context.Context, filter dto.StockAreaFilter) ([]dto.StockAreaResponse, error) {
	rows, err := s.repo.ListStockAreas(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.StockAreaResponse, 0, len(rows))
	for _, sa := range rows {
		nombre := ""
		if sa.Producto != nil {
			nombre = sa.Producto.Nombre
		}
		item := dto.StockAreaResponse{
			ID:           sa.ID,
			ProductoID:   sa.ProductoID,
			Producto:     nombre,
			Area:         sa.Area,
			Cantidad:     sa.Cantidad,
			FechaEntrega: sa.FechaEntrega.Format(FechaRemito),
			Estado:       sa.Estado,
			MotivoBaja:   sa.MotivoBaja,
		}
		if sa.FechaBaja != nil {
			f := sa.FechaBaja.Format(FechaRemito)
			item.FechaBaja = &f
		}
		resp = append(resp, item)
	}
	return resp, nil
}

func (s *salidaService) BajaStockArea(ctx context.Context, id uint, motivo string) error {
	sa, err := s.repo.FindStockArea(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNoEncontrado
	}
	if err != nil {
		return err
	}
	if sa.Estado == model.EstadoBaja {
		return validacion("el registro ya fue dado de baja")
	}
	return s.repo.BajaStockArea(ctx, id, motivo, s.now())
}
