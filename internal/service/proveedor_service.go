package service

import (
	"context"
	"errors"

	"github.com/Martin-1982/gestion-panol-eset-sub000/internal/dto"
	"github.com/Martin-1982/gestion-panol-eset-sub000/internal/model"
	"github.com/Martin-1982/gestion-panol-eset-sub000/internal/repository"

	"gorm.io/gorm"
)

type ProveedorService interface {
	Crear(ctx context.Context, req dto.CrearProveedorRequest) (*dto.ProveedorResponse, error)
	Listar(ctx context.Context) ([]dto.ProveedorResponse, error)
	Actualizar(ctx context.Context, id uint, req dto.CrearProveedorRequest) (*dto.ProveedorResponse, error)
	Eliminar(ctx context.Context, id uint) error
}

type proveedorService struct {
	repo repository.ProveedorRepository
}

func NewProveedorService(repo repository.ProveedorRepository) ProveedorService {
	return &proveedorService{repo: repo}
}

func (s *proveedorService) Crear(ctx context.Context, req dto.CrearProveedorRequest) (*dto.ProveedorResponse, error) {
	p := &model.Proveedor{
		Nombre:    req.Nombre,
		CUIT:      req.CUIT,
		Telefono:  req.Telefono,
		Email:     req.Email,
		Direccion: req.Direccion,
		Activo:    true,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return proveedorToResponse(p), nil
}

func (s *proveedorService) Listar(ctx context.Context) ([]dto.ProveedorResponse, error) {
	proveedores, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ProveedorResponse, 0, len(proveedores))
	for i := range proveedores {
		resp = append(resp, *proveedorToResponse(&proveedores[i]))
	}
	return resp, nil
}

func (s *proveedorService) Actualizar(ctx context.Context, id uint, req dto.CrearProveedorRequest) (*dto.ProveedorResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoEncontrado
	}
	if err != nil {
		return nil, err
	}

	p.Nombre = req.Nombre
	p.CUIT = req.CUIT
	p.Telefono = req.Telefono
	p.Email = req.Email
	p.Direccion = req.Direccion

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return proveedorToResponse(p), nil
}

func (s *proveedorService) Eliminar(ctx context.Context, id uint) error {
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

func proveedorToResponse(p *model.Proveedor) *dto.ProveedorResponse {
	return &dto.ProveedorResponse{
		ID:        p.ID,
		Nombre:    p.Nombre,
		CUIT:      p.CUIT,
		Telefono:  p.Telefono,
		Email:     p.Email,
		Direccion: p.Direccion,
		Activo:    p.Activo,
	}
}
