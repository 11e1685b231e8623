package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Martin-1982/gestion-panol-eset-sub000/internal/apierror"
	"github.com/Martin-1982/gestion-panol-eset-sub000/internal/dto"
	"github.com/Martin-1982/gestion-panol-eset-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type InformesHandler struct{ svc service.InformeService }

func NewInformesHandler(svc service.InformeService) *InformesHandler {
	return &InformesHandler{svc: svc}
}

// Stock is the consolidated report: current stock per product, derived from
// the movement tables on every request (cached briefly in Redis).
func (h *InformesHandler) Stock(c *gin.Context) {
	var filter dto.ProductoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Stock(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al generar informe de stock"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InformesHandler) StockExcel(c *gin.Context) {
	var filter dto.ProductoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	data, err := h.svc.StockExcel(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al generar planilla"))
		return
	}
	nombre := "stock_" + time.Now().Format("2006-01-02") + ".xlsx"
	c.Header("Content-Disposition", `attachment; filename="`+nombre+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// Remito renders the two-copy delivery PDF from the payload of a registered
// salida. The date is always the server's; an optional numero query param
// puts a remito number on the header.
func (h *InformesHandler) Remito(c *gin.Context) {
	var req dto.BulkSalidaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	numero, _ := strconv.ParseUint(c.Query("numero"), 10, 64)
	fecha := time.Now().Format(service.FechaRemito)

	data, err := h.svc.Remito(c.Request.Context(), req, uint(numero), fecha)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="remito.pdf"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

// Enviar mails a report. The mail log row is written no matter what happens
// to the SMTP delivery, and the response is 200 either way; the estado field
// tells the client what actually happened.
func (h *InformesHandler) Enviar(c *gin.Context) {
	var req dto.EnviarInformeRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	if err := validate.Struct(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, apierror.New("Error de validacion: "+err.Error()))
		return
	}

	adjunto, _ := c.FormFile("archivo")
	resp, err := h.svc.Enviar(c.Request.Context(), req, adjunto)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InformesHandler) MailLogs(c *gin.Context) {
	resp, err := h.svc.MailLogs(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar mail logs"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
