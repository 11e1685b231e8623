package service

import (
	"context"
	"testing"

	"github.com/Martin-1982/gestion-panol-eset-sub000/internal/dto"
	"github.com/Martin-1982/gestion-panol-eset-sub000/internal/model"
	"github.com/Martin-1982/gestion-panol-eset-sub000/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubProveedorRepo struct {
	proveedores map[uint]*model.Proveedor
	deleteErr   error
	seq         uint
}

func newStubProveedorRepo() *stubProveedorRepo {
	return &stubProveedorRepo{proveedores: make(map[uint]*model.Proveedor)}
}

func (r *stubProveedorRepo) Create(_ context.Context, p *model.Proveedor) error {
	r.seq++
	p.ID = r.seq
	r.proveedores[p.ID] = p
	return nil
}

func (r *stubProveedorRepo) FindByID(_ context.Context, id uint) (*model.Proveedor, error) {
	p, ok := r.proveedores[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProveedorRepo) List(_ context.Context) ([]model.Proveedor, error) {
	var out []model.Proveedor
	for _, p := range r.proveedores {
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubProveedorRepo) Update(_ context.Context, p *model.Proveedor) error {
	r.proveedores[p.ID] = p
	return nil
}

func (r *stubProveedorRepo) Delete(_ context.Context, id uint) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	delete(r.proveedores, id)
	return nil
}

var _ repository.ProveedorRepository = (*stubProveedorRepo)(nil)

func TestProveedorCrearYActualizar(t *testing.T) {
	repo := newStubProveedorRepo()
	svc := NewProveedorService(repo)
	ctx := context.Background()

	cuit := "20123456789"
	resp, err := svc.Crear(ctx, dto.CrearProveedorRequest{Nombre: "Libreria Central", CUIT: &cuit})
	require.NoError(t, err)
	assert.True(t, resp.Activo)

	resp, err = svc.Actualizar(ctx, resp.ID, dto.CrearProveedorRequest{Nombre: "Libreria Central SRL"})
	require.NoError(t, err)
	assert.Equal(t, "Libreria Central SRL", resp.Nombre)

	_, err = svc.Actualizar(ctx, 99, dto.CrearProveedorRequest{Nombre: "x"})
	assert.ErrorIs(t, err, ErrNoEncontrado)
}

func TestProveedorEliminarConEntradas(t *testing.T) {
	repo := newStubProveedorRepo()
	repo.proveedores[1] = &model.Proveedor{ID: 1, Nombre: "Libreria Central"}
	repo.deleteErr = &pgconn.PgError{Code: "23503"}

	svc := NewProveedorService(repo)
	err := svc.Eliminar(context.Background(), 1)
	assert.ErrorIs(t, err, ErrRegistrosRelacionados)
}
