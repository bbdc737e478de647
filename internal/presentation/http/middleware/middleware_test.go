package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/sangkips/bebidas-pos/internal/config"
	"github.com/sangkips/bebidas-pos/internal/pkg/logging"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestClientRateLimiter(t *testing.T) {
	rl := NewClientRateLimiter(RateLimiterConfig{
		RequestsPerSecond: 0.001,
		BurstSize:         2,
		CleanupInterval:   time.Minute,
		EntryTTL:          time.Minute,
	})
	defer rl.Stop()

	r := gin.New()
	r.Use(rl.Middleware())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	till1 := map[string]string{ClientIDHeader: "till-1"}
	assert.Equal(t, http.StatusNoContent, serve(r, http.MethodGet, "/ping", till1).Code)
	assert.Equal(t, http.StatusNoContent, serve(r, http.MethodGet, "/ping", till1).Code)

	w := serve(r, http.MethodGet, "/ping", till1)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), `"success":false`)

	// limits are per client
	assert.Equal(t, http.StatusNoContent, serve(r, http.MethodGet, "/ping", map[string]string{ClientIDHeader: "till-2"}).Code)
	assert.Equal(t, 2, rl.Stats()["active_clients"])
}

func TestRateLimiterConfigFor(t *testing.T) {
	cfg := RateLimiterConfigFor(120, time.Minute)
	assert.InDelta(t, 2.0, cfg.RequestsPerSecond, 1e-9)
	assert.Equal(t, 120, cfg.BurstSize)

	assert.Equal(t, DefaultRateLimiterConfig(), RateLimiterConfigFor(0, time.Minute))
}

func TestLoggerMiddlewareSetsRequestID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	r := gin.New()
	r.Use(LoggerMiddleware(zap.New(core)))
	var seen string
	r.GET("/orders/:id", func(c *gin.Context) {
		seen = logging.RequestID(c.Request.Context())
		logging.FromContext(c.Request.Context(), nil).Info("inside handler")
		c.Status(http.StatusOK)
	})

	w := serve(r, http.MethodGet, "/orders/1?x=1", map[string]string{RequestIDHeader: "abc-123"})
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
	assert.Equal(t, "abc-123", seen)

	entries := logs.All()
	if assert.Len(t, entries, 2) {
		assert.Equal(t, "inside handler", entries[0].Message)
		assert.Equal(t, "abc-123", entries[0].ContextMap()["request_id"])

		fields := entries[1].ContextMap()
		assert.Equal(t, "request", entries[1].Message)
		assert.Equal(t, "/orders/1?x=1", fields["path"])
		assert.EqualValues(t, http.StatusOK, fields["status"])
	}
}

func TestLoggerMiddlewareGeneratesRequestID(t *testing.T) {
	r := gin.New()
	r.Use(LoggerMiddleware(zap.NewNop()))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, http.MethodGet, "/", nil)
	assert.Len(t, w.Header().Get(RequestIDHeader), 36)
}

func TestCORSAllowsTillHeaders(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware(&config.CORSConfig{
		AllowedOrigins: []string{"http://till.local"},
		AllowedHeaders: []string{"Content-Type"},
	}))
	r.POST("/orders", func(c *gin.Context) { c.Status(http.StatusCreated) })

	w := serve(r, http.MethodOptions, "/orders", map[string]string{
		"Origin":                         "http://till.local",
		"Access-Control-Request-Method":  http.MethodPost,
		"Access-Control-Request-Headers": "Idempotency-Key, X-Client-ID",
	})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://till.local", w.Header().Get("Access-Control-Allow-Origin"))
}
