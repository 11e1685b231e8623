package dto

type CrearProveedorRequest struct {
	Nombre    string  `json:"nombre"    validate:"required,min=2,max=120"`
	CUIT      *string `json:"cuit"      validate:"omitempty,min=11,max=13"`
	Telefono  *string `json:"telefono"`
	Email     *string `json:"email"     validate:"omitempty,email"`
	Direccion *string `json:"direccion"`
}

type ProveedorResponse struct {
	ID        uint    `json:"id"`
	Nombre    string  `json:"nombre"`
	CUIT      *string `json:"cuit"`
	Telefono  *string `json:"telefono"`
	Email     *string `json:"email"`
	Direccion *string `json:"direccion"`
	Activo    bool    `json:"activo"`
}
