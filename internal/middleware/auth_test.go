package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, rol string, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 1,
		"email":   "juan@eset.edu.ar",
		"rol":     rol,
		"exp":     exp.Unix(),
		"iat":     time.Now().Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func protectedRouter(roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := []gin.HandlerFunc{JWTAuth(testSecret)}
	if len(roles) > 0 {
		handlers = append(handlers, RequireRole(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		claims := GetClaims(c)
		c.JSON(http.StatusOK, gin.H{"rol": claims.Rol})
	})
	r.GET("/protegido", handlers...)
	return r
}

func doGet(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/protegido", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuth(t *testing.T) {
	r := protectedRouter()

	assert.Equal(t, http.StatusUnauthorized, doGet(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, doGet(r, "Bearer basura").Code)

	vencido := signToken(t, "consulta", time.Now().Add(-time.Hour))
	assert.Equal(t, http.StatusUnauthorized, doGet(r, "Bearer "+vencido).Code)

	valido := signToken(t, "consulta", time.Now().Add(time.Hour))
	assert.Equal(t, http.StatusOK, doGet(r, "Bearer "+valido).Code)
}

func TestRequireRole(t *testing.T) {
	r := protectedRouter("administrador", "panolero")

	consulta := signToken(t, "consulta", time.Now().Add(time.Hour))
	assert.Equal(t, http.StatusForbidden, doGet(r, "Bearer "+consulta).Code)

	panolero := signToken(t, "panolero", time.Now().Add(time.Hour))
	assert.Equal(t, http.StatusOK, doGet(r, "Bearer "+panolero).Code)
}
