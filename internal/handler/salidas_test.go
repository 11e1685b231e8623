package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Martin-1982/gestion-panol-eset-sub000/internal/dto"
	"github.com/Martin-1982/gestion-panol-eset-sub000/internal/middleware"
	"github.com/Martin-1982/gestion-panol-eset-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSalidaService returns canned responses so the handler's binding and
// error mapping can be exercised without a database.
type stubSalidaService struct {
	bulkResp *dto.BulkSalidaResponse
	bulkErr  error
}

func (s *stubSalidaService) RegistrarBulk(_ context.Context, _ uint, _ dto.BulkSalidaRequest) (*dto.BulkSalidaResponse, error) {
	return s.bulkResp, s.bulkErr
}

func (s *stubSalidaService) Registrar(_ context.Context, _ uint, _ dto.CrearSalidaRequest) (*dto.BulkSalidaResponse, error) {
	return s.bulkResp, s.bulkErr
}

func (s *stubSalidaService) Listar(_ context.Context, _ dto.SalidaFilter) ([]dto.SalidaResponse, error) {
	return nil, nil
}

func (s *stubSalidaService) ListarAreas(_ context.Context) ([]string, error) { return nil, nil }

func (s *stubSalidaService) ListarStockAreas(_ context.Context, _ dto.StockAreaFilter) ([]dto.StockAreaResponse, error) {
	return nil, nil
}

func (s *stubSalidaService) BajaStockArea(_ context.Context, _ uint, _ string) error { return nil }

var _ service.SalidaService = (*stubSalidaService)(nil)

func bulkRouter(svc service.SalidaService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewSalidasHandler(svc)
	// Inyecta claims como lo haría JWTAuth.
	r.POST("/api/salidas/bulk", func(c *gin.Context) {
		c.Set(middleware.ClaimsKey, &middleware.JWTClaims{UserID: 1, Rol: "panolero"})
	}, h.RegistrarBulk)
	return r
}

func postBulk(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/api/salidas/bulk", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegistrarBulkOK(t *testing.T) {
	r := bulkRouter(&stubSalidaService{
		bulkResp: &dto.BulkSalidaResponse{OK: true, Inserted: 1, Fecha: "05-03-2025"},
	})

	w := postBulk(r, `{"destino":"Aula 3","responsable":"Juan","items":[{"producto_id":1,"cantidad":2}]}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp dto.BulkSalidaResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	assert.Equal(t, "05-03-2025", resp.Fecha)
}

func TestRegistrarBulkSinItems(t *testing.T) {
	r := bulkRouter(&stubSalidaService{})
	w := postBulk(r, `{"destino":"Aula 3","responsable":"Juan","items":[]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestRegistrarBulkStockInsuficiente(t *testing.T) {
	r := bulkRouter(&stubSalidaService{
		bulkErr: &service.StockInsuficienteError{ProductoID: 2, Disponible: 2, Solicitado: 5},
	})

	w := postBulk(r, `{"destino":"Lab","responsable":"Ana","items":[{"producto_id":2,"cantidad":5}]}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Detail     string `json:"detail"`
		ProductoID uint   `json:"producto_id"`
		Disponible *int   `json:"disponible"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, uint(2), resp.ProductoID)
	require.NotNil(t, resp.Disponible)
	assert.Equal(t, 2, *resp.Disponible)
	assert.Contains(t, resp.Detail, "stock insuficiente")
}

func TestRegistrarBulkProductoInexistente(t *testing.T) {
	r := bulkRouter(&stubSalidaService{
		bulkErr: &service.ProductoNoEncontradoError{ProductoID: 99},
	})

	w := postBulk(r, `{"destino":"Lab","responsable":"Ana","items":[{"producto_id":99,"cantidad":1}]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
