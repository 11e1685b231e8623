package handler

import (
	"net/http"

	"github.com/Martin-1982/gestion-panol-eset-sub000/internal/apierror"
	"github.com/Martin-1982/gestion-panol-eset-sub000/internal/dto"
	"github.com/Martin-1982/gestion-panol-eset-sub000/internal/middleware"
	"github.com/Martin-1982/gestion-panol-eset-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type SalidasHandler struct{ svc service.SalidaService }

func NewSalidasHandler(svc service.SalidaService) *SalidasHandler {
	return &SalidasHandler{svc: svc}
}

func (h *SalidasHandler) Registrar(c *gin.Context) {
	var req dto.CrearSalidaRequest
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

// RegistrarBulk applies a whole delivery in one transaction: if any item
// fails its stock check the batch is rejected and no rows are written. The
// error response names the offending producto and the available quantity.
func (h *SalidasHandler) RegistrarBulk(c *gin.Context) {
	var req dto.BulkSalidaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.RegistrarBulk(c.Request.Context(), claims.UserID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *SalidasHandler) Listar(c *gin.Context) {
	var filter dto.SalidaFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar salidas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarAreas returns the distinct destinos ever used, for the client's
// autocomplete.
func (h *SalidasHandler) ListarAreas(c *gin.Context) {
	resp, err := h.svc.ListarAreas(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar areas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SalidasHandler) ListarStockAreas(c *gin.Context) {
	var filter dto.StockAreaFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListarStockAreas(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar stock por area"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// BajaStockArea marks a delivered "uso" item as retired from its area,
// recording the motivo. The underlying salida row is untouched: stock history
// never changes.
func (h *SalidasHandler) BajaStockArea(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.BajaStockAreaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.BajaStockArea(c.Request.Context(), id, req.Motivo); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
