package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiterAllowHastaElLimite(t *testing.T) {
	l := newLimiter("test", 3, time.Minute)
	defer l.stopPurge()

	for i := 0; i < 3; i++ {
		ok, _ := l.allow("10.0.0.1")
		assert.True(t, ok, "request %d", i+1)
	}
	ok, _ := l.allow("10.0.0.1")
	assert.False(t, ok)

	// Otra IP tiene su propia ventana.
	ok, _ = l.allow("10.0.0.2")
	assert.True(t, ok)
}

func TestLimiterPurgeEliminaVentanasVencidas(t *testing.T) {
	l := newLimiter("test", 5, time.Minute)
	defer l.stopPurge()

	l.allow("10.0.0.1")
	l.allow("10.0.0.2")

	l.mu.Lock()
	require.Len(t, l.entries, 2)
	l.entries["10.0.0.1"].windowEnd = time.Now().Add(-time.Second)
	l.mu.Unlock()

	l.purge(time.Now())

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.Len(t, l.entries, 1)
	assert.Contains(t, l.entries, "10.0.0.2")
}

func TestLimiterStopPurgeTerminaElLoop(t *testing.T) {
	l := newLimiter("test", 1, time.Minute)
	l.stopPurge()

	// El loop ya salió; allow sigue funcionando sobre el mapa local.
	ok, _ := l.allow("10.0.0.1")
	assert.True(t, ok)
}

func TestRateLimiterResponde429(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimiter(2, time.Minute))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("GET", "/ping", nil)
		last = httptest.NewRecorder()
		r.ServeHTTP(last, req)
	}
	assert.Equal(t, http.StatusTooManyRequests, last.Code)
	assert.NotEmpty(t, last.Header().Get("Retry-After"))
}
