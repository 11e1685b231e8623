package handler

import (
	"errors"
	"net/http"
	"reflect"
	"strconv"

	"github.com/Martin-1982/gestion-panol-eset-sub000/internal/apierror"
	"github.com/Martin-1982/gestion-panol-eset-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// parseID extracts a numeric path parameter. On failure it writes the 400
// response and returns false.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return 0, false
	}
	return uint(id), true
}

// writeServiceError maps service-layer errors onto HTTP statuses. Anything
// not recognized becomes a 500 with a generic message so internals never leak.
func writeServiceError(c *gin.Context, err error) {
	var noEnc *service.ProductoNoEncontradoError
	var sinStock *service.StockInsuficienteError
	var val *service.ValidacionError

	switch {
	case errors.As(err, &val):
		c.JSON(http.StatusBadRequest, apierror.New(val.Detalle))
	case errors.As(err, &noEnc):
		c.JSON(http.StatusBadRequest, apierror.NewStock(noEnc.Error(), noEnc.ProductoID, nil))
	case errors.As(err, &sinStock):
		disp := sinStock.Disponible
		c.JSON(http.StatusBadRequest, apierror.NewStock(sinStock.Error(), sinStock.ProductoID, &disp))
	case errors.Is(err, service.ErrNoEncontrado):
		c.JSON(http.StatusNotFound, apierror.New("No encontrado"))
	case errors.Is(err, service.ErrRegistrosRelacionados):
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	case errors.Is(err, service.ErrTokenInvalido):
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	case errors.Is(err, service.ErrTokenExpirado):
		c.JSON(http.StatusGone, apierror.New(err.Error()))
	case errors.Is(err, service.ErrCredenciales):
		c.JSON(http.StatusUnauthorized, apierror.New(err.Error()))
	case errors.Is(err, service.ErrNoVerificado):
		c.JSON(http.StatusForbidden, apierror.New(err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno"))
	}
}
