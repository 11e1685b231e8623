package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entrada is an immutable stock-in record (purchase or donation).
// Rows are insert-only: there are no update or delete routes, and stock is
// always recomputed from the full history.
type Entrada struct {
	ID          uint `gorm:"primaryKey"`
	ProductoID  uint `gorm:"index;not null"`
	UsuarioID   uint `gorm:"not null"`
	ProveedorID *uint
	Cantidad    int              `gorm:"not null"`
	Costo       *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Donacion    bool             `gorm:"not null;default:false"`
	Vencimiento *time.Time       `gorm:"type:date"`
	// Lote is the auto-generated batch code: "DDMMYYYY-<proveedor_id>" for
	// purchases, "DDMMYYYY-d" for donations.
	Lote  string    `gorm:"not null"`
	Fecha time.Time `gorm:"index;not null"`

	Producto  *Producto  `gorm:"foreignKey:ProductoID"`
	Proveedor *Proveedor `gorm:"foreignKey:ProveedorID"`
}

func (Entrada) TableName() string { return "entradas" }
