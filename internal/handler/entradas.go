package handler

import (
	"net/http"

	"github.com/Martin-1982/gestion-panol-eset-sub000/internal/apierror"
	"github.com/Martin-1982/gestion-panol-eset-sub000/internal/dto"
	"github.com/Martin-1982/gestion-panol-eset-sub000/internal/middleware"
	"github.com/Martin-1982/gestion-panol-eset-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type EntradasHandler struct{ svc service.EntradaService }

func NewEntradasHandler(svc service.EntradaService) *EntradasHandler {
	return &EntradasHandler{svc: svc}
}

// Registrar records one stock-in. The lote code and the movement date are
// assigned server-side; the authenticated user is taken from the JWT claims.
func (h *EntradasHandler) Registrar(c *gin.Context) {
	var req dto.CrearEntradaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.Registrar(c.Request.Context(), claims.UserID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *EntradasHandler) Listar(c *gin.Context) {
	var filter dto.EntradaFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar entradas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
