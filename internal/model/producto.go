package model

import "time"

// Tipos de producto. "uso" marks durable goods that get tracked per area
// after a salida; "consumo" is plain consumable stock.
const (
	TipoUso     = "uso"
	TipoConsumo = "consumo"
)

// Producto represents a supply item in the pañol catalog.
// Stock is NOT a stored column — it is always derived from the full
// entradas/salidas history (see repository.ProductoRepository.ListarConStock).
type Producto struct {
	ID           uint   `gorm:"primaryKey"`
	Nombre       string `gorm:"index;not null"`
	Categoria    string `gorm:"index;not null"`
	Subcategoria *string
	Presentacion *string
	Unidad       string `gorm:"not null;default:'unidad'"`
	// Minimo is the reorder threshold used by the bajo_minimo report filter.
	Minimo    int    `gorm:"not null;default:0"`
	Tipo      string `gorm:"type:varchar(10);not null;default:'consumo'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Producto) TableName() string { return "productos" }
