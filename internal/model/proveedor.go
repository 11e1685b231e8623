package model

import "time"

// Proveedor represents a supplier used to source entradas.
type Proveedor struct {
	ID        uint   `gorm:"primaryKey"`
	Nombre    string `gorm:"not null"`
	CUIT      *string `gorm:"column:cuit;uniqueIndex"`
	Telefono  *string
	Email     *string
	Direccion *string
	Activo    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Proveedor) TableName() string { return "proveedores" }
