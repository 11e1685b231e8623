package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearProductoRequest struct {
	Nombre       string  `json:"nombre"       validate:"required,min=2,max=120"`
	Categoria    string  `json:"categoria"    validate:"required"`
	Subcategoria *string `json:"subcategoria"`
	Presentacion *string `json:"presentacion"`
	Unidad       string  `json:"unidad"`
	Minimo       int     `json:"minimo"       validate:"min=0"`
	Tipo         string  `json:"tipo"         validate:"required,oneof=uso consumo"`
}

type ActualizarProductoRequest struct {
	Nombre       *string `json:"nombre"       validate:"omitempty,min=2,max=120"`
	Categoria    *string `json:"categoria"`
	Subcategoria *string `json:"subcategoria"`
	Presentacion *string `json:"presentacion"`
	Unidad       *string `json:"unidad"`
	Minimo       *int    `json:"minimo"       validate:"omitempty,min=0"`
	Tipo         *string `json:"tipo"         validate:"omitempty,oneof=uso consumo"`
}

// ─── Filter ──────────────────────────────────────────────────────────────────

type ProductoFilter struct {
	Nombre     string `form:"nombre"`
	Categoria  string `form:"categoria"`
	Tipo       string `form:"tipo"`
	BajoMinimo bool   `form:"bajo_minimo"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// ProductoResponse carries the derived stock alongside the catalog fields.
type ProductoResponse struct {
	ID           uint    `json:"id"`
	Nombre       string  `json:"nombre"`
	Categoria    string  `json:"categoria"`
	Subcategoria *string `json:"subcategoria"`
	Presentacion *string `json:"presentacion"`
	Unidad       string  `json:"unidad"`
	Minimo       int     `json:"minimo"`
	Tipo         string  `json:"tipo"`
	Stock        int     `json:"stock"`
}
