package service

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Sentinel errors mapped to HTTP statuses by the handlers.
var (
	ErrNoEncontrado          = errors.New("no encontrado")
	ErrRegistrosRelacionados = errors.New("no se puede eliminar: tiene registros relacionados")
	ErrTokenInvalido         = errors.New("token invalido")
	ErrTokenExpirado         = errors.New("token expirado")
	ErrCredenciales          = errors.New("credenciales invalidas")
	ErrNoVerificado          = errors.New("email no verificado")
)

// ValidacionError marks a business-rule violation the caller can correct.
// Handlers map it to 400 keeping the message intact.
type ValidacionError struct {
	Detalle string
}

func (e *ValidacionError) Error() string { return e.Detalle }

func validacion(format string, args ...interface{}) error {
	return &ValidacionError{Detalle: fmt.Sprintf(format, args...)}
}

// ProductoNoEncontradoError aborts a salida batch naming the offending item.
type ProductoNoEncontradoError struct {
	ProductoID uint
}

func (e *ProductoNoEncontradoError) Error() string {
	return fmt.Sprintf("producto %d no existe", e.ProductoID)
}

// StockInsuficienteError aborts a salida batch reporting the available
// quantity so the client can show what CAN be dispensed.
type StockInsuficienteError struct {
	ProductoID uint
	Disponible int
	Solicitado int
}

func (e *StockInsuficienteError) Error() string {
	return fmt.Sprintf("stock insuficiente para producto %d: disponible %d, solicitado %d",
		e.ProductoID, e.Disponible, e.Solicitado)
}

// esViolacionFK discriminates foreign-key violations by the driver's
// structured error code (SQLSTATE 23503) instead of substring-matching the
// message text.
func esViolacionFK(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
