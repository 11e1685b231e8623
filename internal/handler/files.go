package handler

import (
	"net/http"
	"time"

	"github.com/Martin-1982/gestion-panol-eset-sub000/internal/apierror"
	"github.com/Martin-1982/gestion-panol-eset-sub000/internal/infra"

	"github.com/gin-gonic/gin"
)

type FilesHandler struct{ storage *infra.Storage }

func NewFilesHandler(storage *infra.Storage) *FilesHandler {
	return &FilesHandler{storage: storage}
}

// Upload stores an arbitrary attachment under
// uploads/<year>/<month>/<timestamp>_<sanitized-name> and returns the
// relative path.
func (h *FilesHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile("archivo")
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Falta el archivo"))
		return
	}
	rel, err := h.storage.Save(fh, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al guardar el archivo"))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "path": rel})
}

func (h *FilesHandler) List(c *gin.Context) {
	files, err := h.storage.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar archivos"))
		return
	}
	c.JSON(http.StatusOK, files)
}
