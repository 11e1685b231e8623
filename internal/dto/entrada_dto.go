package dto

import "github.com/shopspring/decimal"

type CrearEntradaRequest struct {
	ProductoID  uint             `json:"producto_id" validate:"required"`
	Cantidad    int              `json:"cantidad"    validate:"required,gt=0"`
	ProveedorID *uint            `json:"proveedor_id"`
	Costo       *decimal.Decimal `json:"costo"`
	Donacion    bool             `json:"donacion"`
	// Vencimiento in "2006-01-02" format, optional.
	Vencimiento *string `json:"vencimiento" validate:"omitempty,datetime=2006-01-02"`
}

type EntradaFilter struct {
	ProductoID  uint   `form:"producto_id"`
	ProveedorID uint   `form:"proveedor_id"`
	Donacion    string `form:"donacion"` // "true" | "false" | "" (all)
	Desde       string `form:"desde"`
	Hasta       string `form:"hasta"`
}

type EntradaResponse struct {
	ID          uint             `json:"id"`
	ProductoID  uint             `json:"producto_id"`
	Producto    string           `json:"producto"`
	ProveedorID *uint            `json:"proveedor_id"`
	Proveedor   *string          `json:"proveedor"`
	Cantidad    int              `json:"cantidad"`
	Costo       *decimal.Decimal `json:"costo"`
	Donacion    bool             `json:"donacion"`
	Vencimiento *string          `json:"vencimiento"`
	Lote        string           `json:"lote"`
	Fecha       string           `json:"fecha"`
}
