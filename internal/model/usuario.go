package model

import "time"

// Usuario stores system users. Login requires a verified institutional email.
// Rol: "administrador" | "panolero" | "consulta"
type Usuario struct {
	ID           uint   `gorm:"primaryKey"`
	Nombre       string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Rol          string `gorm:"type:varchar(20);not null;default:'consulta'"`
	Verificado   bool   `gorm:"not null;default:false"`
	Activo       bool   `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Usuario) TableName() string { return "usuarios" }

// Tipos de token opaco.
const (
	TokenVerificacionEmail = "verificacion"
	TokenResetPassword     = "reset"
)

// TokenVerificacion stores the SHA-256 hash of an opaque token emailed to the
// user. The raw token value is never persisted; lookups go by hash only.
type TokenVerificacion struct {
	ID        uint      `gorm:"primaryKey"`
	UsuarioID uint      `gorm:"index;not null"`
	Tipo      string    `gorm:"type:varchar(20);not null"`
	TokenHash string    `gorm:"uniqueIndex;not null"`
	ExpiraEn  time.Time `gorm:"not null"`
	Usado     bool      `gorm:"not null;default:false"`
	CreatedAt time.Time

	Usuario *Usuario `gorm:"foreignKey:UsuarioID"`
}

func (TokenVerificacion) TableName() string { return "tokens_verificacion" }
