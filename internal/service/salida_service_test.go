package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Martin-1982/gestion-panol-eset-sub000/internal/dto"
	"github.com/Martin-1982/gestion-panol-eset-sub000/internal/model"
	"github.com/Martin-1982/gestion-panol-eset-sub000/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// stubSalidaRepo is an in-memory SalidaRepository with real transaction
// semantics: rows inserted through the tx become visible only on commit, and
// an error from fn discards them all.
type stubSalidaRepo struct {
	productos  map[uint]*model.Producto
	entradas   map[uint]int // total cantidad ingresada por producto
	salidas    []model.Salida
	stockAreas []model.StockArea
}

func newStubSalidaRepo() *stubSalidaRepo {
	return &stubSalidaRepo{
		productos: make(map[uint]*model.Producto),
		entradas:  make(map[uint]int),
	}
}

type stubSalidaTx struct {
	repo        *stubSalidaRepo
	pendSalidas []model.Salida
	pendAreas   []model.StockArea
}

func (t *stubSalidaTx) ProductoForUpdate(id uint) (*model.Producto, error) {
	p, ok := t.repo.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

// StockDisponible sees the transaction's own pending inserts, like the real
// query does inside postgres.
func (t *stubSalidaTx) StockDisponible(productoID uint) (int, error) {
	disponible := t.repo.entradas[productoID]
	for _, s := range t.repo.salidas {
		if s.ProductoID == productoID {
			disponible -= s.Cantidad
		}
	}
	for _, s := range t.pendSalidas {
		if s.ProductoID == productoID {
			disponible -= s.Cantidad
		}
	}
	return disponible, nil
}

func (t *stubSalidaTx) InsertSalida(s *model.Salida) error {
	s.ID = uint(len(t.repo.salidas)+len(t.pendSalidas)) + 1
	t.pendSalidas = append(t.pendSalidas, *s)
	return nil
}

func (t *stubSalidaTx) InsertStockArea(sa *model.StockArea) error {
	sa.ID = uint(len(t.repo.stockAreas)+len(t.pendAreas)) + 1
	t.pendAreas = append(t.pendAreas, *sa)
	return nil
}

func (r *stubSalidaRepo) Transaction(_ context.Context, fn func(tx repository.SalidaTx) error) error {
	tx := &stubSalidaTx{repo: r}
	if err := fn(tx); err != nil {
		return err
	}
	r.salidas = append(r.salidas, tx.pendSalidas...)
	r.stockAreas = append(r.stockAreas, tx.pendAreas...)
	return nil
}

func (r *stubSalidaRepo) List(_ context.Context, _ dto.SalidaFilter) ([]model.Salida, error) {
	return r.salidas, nil
}

func (r *stubSalidaRepo) ListAreas(_ context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var areas []string
	for _, s := range r.salidas {
		if !seen[s.Destino] {
			seen[s.Destino] = true
			areas = append(areas, s.Destino)
		}
	}
	return areas, nil
}

func (r *stubSalidaRepo) ListStockAreas(_ context.Context, _ dto.StockAreaFilter) ([]model.StockArea, error) {
	return r.stockAreas, nil
}

func (r *stubSalidaRepo) FindStockArea(_ context.Context, id uint) (*model.StockArea, error) {
	for i := range r.stockAreas {
		if r.stockAreas[i].ID == id {
			return &r.stockAreas[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubSalidaRepo) BajaStockArea(_ context.Context, id uint, motivo string, fecha time.Time) error {
	for i := range r.stockAreas {
		if r.stockAreas[i].ID == id {
			r.stockAreas[i].Estado = model.EstadoBaja
			r.stockAreas[i].MotivoBaja = &motivo
			r.stockAreas[i].FechaBaja = &fecha
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

var _ repository.SalidaRepository = (*stubSalidaRepo)(nil)

func (r *stubSalidaRepo) disponible(productoID uint) int {
	d := r.entradas[productoID]
	for _, s := range r.salidas {
		if s.ProductoID == productoID {
			d -= s.Cantidad
		}
	}
	return d
}

func newTestSalidaService(repo *stubSalidaRepo, fecha time.Time) *salidaService {
	return &salidaService{
		repo:  repo,
		cache: NewStockCache(nil),
		now:   func() time.Time { return fecha },
	}
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestRegistrarBulkDescuentaStock(t *testing.T) {
	repo := newStubSalidaRepo()
	repo.productos[1] = &model.Producto{ID: 1, Nombre: "Tiza blanca", Tipo: model.TipoConsumo}
	repo.entradas[1] = 10

	svc := newTestSalidaService(repo, time.Date(2025, 3, 5, 10, 0, 0, 0, time.UTC))

	resp, err := svc.RegistrarBulk(context.Background(), 1, dto.BulkSalidaRequest{
		Destino:     "Aula 3",
		Responsable: "Juan",
		Items:       []dto.ItemSalida{{ProductoID: 1, Cantidad: 2}},
	})
	require.NoError(t, err)
	assert.True(t, resp.OK)
	assert.Equal(t, 1, resp.Inserted)
	assert.Equal(t, "05-03-2025", resp.Fecha)
	assert.Equal(t, 8, repo.disponible(1))
}

func TestRegistrarBulkInsuficienteRechazaTodo(t *testing.T) {
	repo := newStubSalidaRepo()
	repo.productos[1] = &model.Producto{ID: 1, Nombre: "Cinta", Tipo: model.TipoConsumo}
	repo.productos[2] = &model.Producto{ID: 2, Nombre: "Plasticola", Tipo: model.TipoConsumo}
	repo.entradas[1] = 5
	repo.entradas[2] = 2

	svc := newTestSalidaService(repo, time.Now())

	_, err := svc.RegistrarBulk(context.Background(), 1, dto.BulkSalidaRequest{
		Destino:     "Laboratorio",
		Responsable: "Ana",
		Items: []dto.ItemSalida{
			{ProductoID: 1, Cantidad: 3}, // alcanza
			{ProductoID: 2, Cantidad: 5}, // no alcanza
		},
	})

	var stockErr *StockInsuficienteError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, uint(2), stockErr.ProductoID)
	assert.Equal(t, 2, stockErr.Disponible)
	assert.Equal(t, 5, stockErr.Solicitado)

	// Nada quedó escrito: ni siquiera el item que sí tenía stock.
	assert.Empty(t, repo.salidas)
	assert.Equal(t, 5, repo.disponible(1))
}

func TestRegistrarBulkProductoInexistente(t *testing.T) {
	repo := newStubSalidaRepo()
	svc := newTestSalidaService(repo, time.Now())

	_, err := svc.RegistrarBulk(context.Background(), 1, dto.BulkSalidaRequest{
		Destino:     "Aula 1",
		Responsable: "Juan",
		Items:       []dto.ItemSalida{{ProductoID: 99, Cantidad: 1}},
	})

	var notFound *ProductoNoEncontradoError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, uint(99), notFound.ProductoID)
	assert.Empty(t, repo.salidas)
}

// Dos items del mismo producto dentro de un batch: el chequeo del segundo
// tiene que ver la salida pendiente del primero.
func TestRegistrarBulkMismoProductoAcumula(t *testing.T) {
	repo := newStubSalidaRepo()
	repo.productos[1] = &model.Producto{ID: 1, Nombre: "Fibron", Tipo: model.TipoConsumo}
	repo.entradas[1] = 5

	svc := newTestSalidaService(repo, time.Now())

	_, err := svc.RegistrarBulk(context.Background(), 1, dto.BulkSalidaRequest{
		Destino:     "Aula 2",
		Responsable: "Ana",
		Items: []dto.ItemSalida{
			{ProductoID: 1, Cantidad: 3},
			{ProductoID: 1, Cantidad: 3},
		},
	})

	var stockErr *StockInsuficienteError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 2, stockErr.Disponible)
	assert.Empty(t, repo.salidas)
}

func TestRegistrarBulkStockAreaSoloParaUso(t *testing.T) {
	repo := newStubSalidaRepo()
	repo.productos[1] = &model.Producto{ID: 1, Nombre: "Taladro", Tipo: model.TipoUso}
	repo.productos[2] = &model.Producto{ID: 2, Nombre: "Tiza", Tipo: model.TipoConsumo}
	repo.entradas[1] = 3
	repo.entradas[2] = 10

	fecha := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	svc := newTestSalidaService(repo, fecha)

	_, err := svc.RegistrarBulk(context.Background(), 1, dto.BulkSalidaRequest{
		Destino:     "Taller",
		Responsable: "Pedro",
		Items: []dto.ItemSalida{
			{ProductoID: 1, Cantidad: 1},
			{ProductoID: 2, Cantidad: 4},
		},
	})
	require.NoError(t, err)

	require.Len(t, repo.stockAreas, 1)
	sa := repo.stockAreas[0]
	assert.Equal(t, uint(1), sa.ProductoID)
	assert.Equal(t, "Taller", sa.Area)
	assert.Equal(t, 1, sa.Cantidad)
	assert.Equal(t, model.EstadoActivo, sa.Estado)
	assert.Equal(t, fecha, sa.FechaEntrega)
}

func TestRegistrarDelegaEnBulk(t *testing.T) {
	repo := newStubSalidaRepo()
	repo.productos[1] = &model.Producto{ID: 1, Nombre: "Tiza", Tipo: model.TipoConsumo}
	repo.entradas[1] = 10

	svc := newTestSalidaService(repo, time.Now())

	resp, err := svc.Registrar(context.Background(), 2, dto.CrearSalidaRequest{
		ProductoID: 1, Cantidad: 2, Destino: "Aula 5", Responsable: "Lucia",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Inserted)

	require.Len(t, repo.salidas, 1)
	assert.Equal(t, uint(2), repo.salidas[0].UsuarioID)
	assert.Equal(t, "Aula 5", repo.salidas[0].Destino)
}

func TestBajaStockArea(t *testing.T) {
	repo := newStubSalidaRepo()
	repo.stockAreas = append(repo.stockAreas, model.StockArea{
		ID: 1, ProductoID: 1, Area: "Taller", Cantidad: 1, Estado: model.EstadoActivo,
	})

	fecha := time.Date(2025, 7, 10, 12, 0, 0, 0, time.UTC)
	svc := newTestSalidaService(repo, fecha)

	require.NoError(t, svc.BajaStockArea(context.Background(), 1, "rotura"))
	assert.Equal(t, model.EstadoBaja, repo.stockAreas[0].Estado)
	require.NotNil(t, repo.stockAreas[0].MotivoBaja)
	assert.Equal(t, "rotura", *repo.stockAreas[0].MotivoBaja)

	// Una segunda baja del mismo registro es un error.
	err := svc.BajaStockArea(context.Background(), 1, "otra vez")
	require.Error(t, err)

	// Registro inexistente → not found.
	err = svc.BajaStockArea(context.Background(), 99, "rotura")
	assert.True(t, errors.Is(err, ErrNoEncontrado))
}
