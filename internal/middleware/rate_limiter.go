package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/Martin-1982/gestion-panol-eset-sub000/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// windowEntry tracks request counts per key within a sliding window.
type windowEntry struct {
	count     int
	windowEnd time.Time
	mu        sync.Mutex
}

// limiter is a sliding-window rate limiter keyed by client IP. Each named
// scope ("auth", "api") keeps its own map so the login counter does not get
// diluted by regular traffic from the same address. Every limiter owns its
// purge ticker; stopPurge ends it when the limiter is discarded.
type limiter struct {
	scope   string
	limit   int
	window  time.Duration
	entries map[string]*windowEntry
	mu      sync.Mutex
	stop    chan struct{}
}

const purgeInterval = 5 * time.Minute

func newLimiter(scope string, limit int, window time.Duration) *limiter {
	l := &limiter{
		scope:   scope,
		limit:   limit,
		window:  window,
		entries: make(map[string]*windowEntry),
		stop:    make(chan struct{}),
	}
	go l.purgeLoop()
	return l
}

func (l *limiter) allow(key string) (bool, time.Time) {
	l.mu.Lock()
	entry, ok := l.entries[key]
	if !ok {
		entry = &windowEntry{}
		l.entries[key] = entry
	}
	l.mu.Unlock()

	entry.mu.Lock()
	defer entry.mu.Unlock()

	now := time.Now()
	if now.After(entry.windowEnd) {
		entry.count = 0
		entry.windowEnd = now.Add(l.window)
	}
	entry.count++
	return entry.count <= l.limit, entry.windowEnd
}

func (l *limiter) stopPurge() { close(l.stop) }

func (l *limiter) purgeLoop() {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
			l.purge(time.Now())
		}
	}
}

// purge removes stale windows so IPs that never return do not accumulate
// in memory.
func (l *limiter) purge(now time.Time) {
	purged := 0
	l.mu.Lock()
	for key, entry := range l.entries {
		entry.mu.Lock()
		if now.After(entry.windowEnd) {
			delete(l.entries, key)
			purged++
		}
		entry.mu.Unlock()
	}
	remaining := len(l.entries)
	l.mu.Unlock()

	if purged > 0 {
		log.Debug().
			Str("scope", l.scope).
			Int("purged", purged).
			Int("remaining", remaining).
			Msg("rate limiter entries purged")
	}
}

// AuthRateLimiter limits credential-sensitive endpoints (login, reenvío de
// verificación, pedido de reset) to 20 requests per minute per IP.
func AuthRateLimiter() gin.HandlerFunc {
	l := newLimiter("auth", 20, time.Minute)
	return func(c *gin.Context) {
		if ok, _ := l.allow(c.ClientIP()); !ok {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("Demasiados intentos. Intente en 1 minuto."))
			return
		}
		c.Next()
	}
}

// RateLimiter returns a general-purpose sliding-window limiter for the API.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	l := newLimiter("api", limit, window)
	return func(c *gin.Context) {
		ok, windowEnd := l.allow(c.ClientIP())
		if !ok {
			c.Header("Retry-After", windowEnd.Format(time.RFC1123))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("Demasiadas solicitudes. Intente nuevamente en un momento."))
			return
		}
		c.Next()
	}
}
