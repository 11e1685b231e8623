package dto

// StockReportRow mirrors the aggregation query: one grouped subquery per
// movement table, COALESCEd to 0, then subtracted.
type StockReportRow struct {
	ProductoID    uint    `json:"producto_id"`
	Nombre        string  `json:"nombre"`
	Categoria     string  `json:"categoria"`
	Subcategoria  *string `json:"subcategoria"`
	Unidad        string  `json:"unidad"`
	Tipo          string  `json:"tipo"`
	Minimo        int     `json:"minimo"`
	EntradasTotal int     `json:"entradas_total"`
	SalidasTotal  int     `json:"salidas_total"`
	Stock         int     `json:"stock"`
}

// EnviarInformeRequest is bound from multipart form fields; the optional file
// part ("archivo") is handled by the handler.
type EnviarInformeRequest struct {
	Para    string `form:"para"    validate:"required,email"`
	Asunto  string `form:"asunto"  validate:"required"`
	Mensaje string `form:"mensaje"`
}

type EnviarInformeResponse struct {
	OK      bool   `json:"ok"`
	Estado  string `json:"estado"`
	Adjunto string `json:"adjunto,omitempty"`
}

type MailLogResponse struct {
	ID           uint    `json:"id"`
	Destinatario string  `json:"destinatario"`
	Asunto       string  `json:"asunto"`
	Estado       string  `json:"estado"`
	Respuesta    string  `json:"respuesta"`
	Adjunto      *string `json:"adjunto"`
	CreatedAt    string  `json:"created_at"`
}
