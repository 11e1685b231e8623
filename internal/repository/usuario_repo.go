package repository

import (
	"context"

	"github.com/Martin-1982/gestion-panol-eset-sub000/internal/model"

	"gorm.io/gorm"
)

type UsuarioRepository interface {
	Create(ctx context.Context, u *model.Usuario) error
	FindByEmail(ctx context.Context, email string) (*model.Usuario, error)
	FindByID(ctx context.Context, id uint) (*model.Usuario, error)
	Update(ctx context.Context, u *model.Usuario) error

	// Token operations — lookups go by SHA-256 hash, never by raw value.
	CreateToken(ctx context.Context, t *model.TokenVerificacion) error
	FindTokenByHash(ctx context.Context, hash string) (*model.TokenVerificacion, error)
	MarkTokenUsado(ctx context.Context, id uint) error
	// InvalidateTokens marks all outstanding tokens of one tipo as usado,
	// so a resend leaves exactly one live token.
	InvalidateTokens(ctx context.Context, usuarioID uint, tipo string) error
}

type usuarioRepo struct{ db *gorm.DB }

func NewUsuarioRepository(db *gorm.DB) UsuarioRepository { return &usuarioRepo{db: db} }

func (r *usuarioRepo) Create(ctx context.Context, u *model.Usuario) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *usuarioRepo) FindByEmail(ctx context.Context, email string) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = LOWER(?) AND activo = true", email).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *usuarioRepo) FindByID(ctx context.Context, id uint) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).First(&u, id).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *usuarioRepo) Update(ctx context.Context, u *model.Usuario) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *usuarioRepo) CreateToken(ctx context.Context, t *model.TokenVerificacion) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *usuarioRepo) FindTokenByHash(ctx context.Context, hash string) (*model.TokenVerificacion, error) {
	var t model.TokenVerificacion
	err := r.db.WithContext(ctx).Where("token_hash = ? AND usado = false", hash).First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *usuarioRepo) MarkTokenUsado(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&model.TokenVerificacion{}).
		Where("id = ?", id).Update("usado", true).Error
}

func (r *usuarioRepo) InvalidateTokens(ctx context.Context, usuarioID uint, tipo string) error {
	return r.db.WithContext(ctx).Model(&model.TokenVerificacion{}).
		Where("usuario_id = ? AND tipo = ? AND usado = false", usuarioID, tipo).
		Update("usado", true).Error
}
