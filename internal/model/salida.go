package model

import "time"

// Salida is an immutable stock-out record: cantidad units of a producto
// dispensed to a destino under a responsable. Insert-only, like Entrada.
type Salida struct {
	ID          uint      `gorm:"primaryKey"`
	ProductoID  uint      `gorm:"index;not null"`
	Cantidad    int       `gorm:"not null"`
	Fecha       time.Time `gorm:"index;not null"`
	Destino     string    `gorm:"index;not null"`
	Responsable string    `gorm:"not null"`
	UsuarioID   uint      `gorm:"not null"`

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (Salida) TableName() string { return "salidas" }

// Estados de StockArea.
const (
	EstadoActivo = "activo"
	EstadoBaja   = "baja"
)

// StockArea tracks a durable good (producto.tipo = "uso") handed out to an
// area. Created as a side effect of a salida; the baja operation retires it
// with a motivo instead of deleting the row.
type StockArea struct {
	ID           uint      `gorm:"primaryKey"`
	ProductoID   uint      `gorm:"index;not null"`
	Area         string    `gorm:"index;not null"`
	Cantidad     int       `gorm:"not null"`
	FechaEntrega time.Time `gorm:"not null"`
	Estado       string    `gorm:"type:varchar(10);not null;default:'activo'"`
	MotivoBaja   *string
	FechaBaja    *time.Time

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (StockArea) TableName() string { return "stock_areas" }
