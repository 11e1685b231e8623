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
)

// fkProductoRepo simulates a postgres foreign-key rejection on delete.
type fkProductoRepo struct {
	*stubProductoRepo
}

func (r *fkProductoRepo) Delete(_ context.Context, _ uint) error {
	return &pgconn.PgError{Code: "23503", Message: "update or delete violates foreign key constraint"}
}

func TestProductoCrearDefaults(t *testing.T) {
	repo := newStubProductoRepo()
	svc := NewProductoService(repo)

	resp, err := svc.Crear(context.Background(), dto.CrearProductoRequest{
		Nombre: "Tiza blanca", Categoria: "Libreria", Tipo: model.TipoConsumo,
	})
	require.NoError(t, err)
	assert.Equal(t, "unidad", resp.Unidad)
	assert.Equal(t, 0, resp.Stock)
}

func TestProductoListarConStock(t *testing.T) {
	repo := newStubProductoRepo()
	repo.rows = []repository.ProductoConStock{
		{ID: 1, Nombre: "Tiza", EntradasTotal: 10, SalidasTotal: 2, Stock: 8},
		// Producto sin movimientos: los COALESCE dejan todo en cero.
		{ID: 2, Nombre: "Taladro", EntradasTotal: 0, SalidasTotal: 0, Stock: 0},
	}
	svc := NewProductoService(repo)

	resp, err := svc.Listar(context.Background(), dto.ProductoFilter{})
	require.NoError(t, err)
	require.Len(t, resp, 2)
	assert.Equal(t, 8, resp[0].Stock)
	assert.Equal(t, 0, resp[1].Stock)
}

func TestProductoActualizarParcial(t *testing.T) {
	repo := newStubProductoRepo()
	repo.productos[1] = &model.Producto{ID: 1, Nombre: "Tiza", Categoria: "Libreria", Minimo: 5}
	svc := NewProductoService(repo)

	nuevoMinimo := 10
	resp, err := svc.Actualizar(context.Background(), 1, dto.ActualizarProductoRequest{
		Minimo: &nuevoMinimo,
	})
	require.NoError(t, err)
	assert.Equal(t, 10, resp.Minimo)
	assert.Equal(t, "Tiza", resp.Nombre) // campos no enviados quedan intactos

	_, err = svc.Actualizar(context.Background(), 99, dto.ActualizarProductoRequest{})
	assert.ErrorIs(t, err, ErrNoEncontrado)
}

// El borrado con movimientos asociados se rechaza mirando el SQLSTATE del
// driver, nunca el texto del mensaje.
func TestProductoEliminarConMovimientos(t *testing.T) {
	base := newStubProductoRepo()
	base.productos[1] = &model.Producto{ID: 1, Nombre: "Tiza"}
	svc := NewProductoService(&fkProductoRepo{stubProductoRepo: base})

	err := svc.Eliminar(context.Background(), 1)
	assert.ErrorIs(t, err, ErrRegistrosRelacionados)
}

func TestProductoEliminarInexistente(t *testing.T) {
	svc := NewProductoService(newStubProductoRepo())
	err := svc.Eliminar(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNoEncontrado)
}
