package dto

// ItemSalida is one (producto, cantidad) line of a stock-out.
type ItemSalida struct {
	ProductoID uint `json:"producto_id" validate:"required"`
	Cantidad   int  `json:"cantidad"    validate:"required,gt=0"`
}

type CrearSalidaRequest struct {
	ProductoID  uint   `json:"producto_id" validate:"required"`
	Cantidad    int    `json:"cantidad"    validate:"required,gt=0"`
	Destino     string `json:"destino"     validate:"required"`
	Responsable string `json:"responsable" validate:"required"`
}

// BulkSalidaRequest carries one delivery: all items are applied atomically or
// not at all.
type BulkSalidaRequest struct {
	Destino     string       `json:"destino"     validate:"required"`
	Responsable string       `json:"responsable" validate:"required"`
	Items       []ItemSalida `json:"items"       validate:"required,min=1,dive"`
}

// BulkSalidaResponse reports the authoritative server date (DD-MM-YYYY) so the
// printed remito never shows a skewed client clock.
type BulkSalidaResponse struct {
	OK       bool   `json:"ok"`
	Inserted int    `json:"inserted"`
	Fecha    string `json:"fecha"`
}

type SalidaFilter struct {
	ProductoID uint   `form:"producto_id"`
	Destino    string `form:"destino"`
	Desde      string `form:"desde"`
	Hasta      string `form:"hasta"`
}

type SalidaResponse struct {
	ID          uint   `json:"id"`
	ProductoID  uint   `json:"producto_id"`
	Producto    string `json:"producto"`
	Cantidad    int    `json:"cantidad"`
	Destino     string `json:"destino"`
	Responsable string `json:"responsable"`
	Fecha       string `json:"fecha"`
}

type StockAreaFilter struct {
	Area   string `form:"area"`
	Estado string `form:"estado"`
}

type StockAreaResponse struct {
	ID           uint    `json:"id"`
	ProductoID   uint    `json:"producto_id"`
	Producto     string  `json:"producto"`
	Area         string  `json:"area"`
	Cantidad     int     `json:"cantidad"`
	FechaEntrega string  `json:"fecha_entrega"`
	Estado       string  `json:"estado"`
	MotivoBaja   *string `json:"motivo_baja"`
	FechaBaja    *string `json:"fecha_baja"`
}

type BajaStockAreaRequest struct {
	Motivo string `json:"motivo" validate:"required,min=3"`
}
