package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sangkips/bebidas-pos/internal/presentation/http/dto/response"
)

// Pinger reports whether a backing service answers
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger
type PingFunc func(ctx context.Context) error

// Ping calls f
func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// HealthHandler reports the service and its dependencies
type HealthHandler struct {
	storage string
	checks  map[string]Pinger
}

// NewHealthHandler creates a health handler; checks maps names to pingers
func NewHealthHandler(storage string, checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{storage: storage, checks: checks}
}

// Check pings every dependency and answers 503 when one is down
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	deps := make(map[string]string, len(h.checks))
	for name, p := range h.checks {
		if p == nil {
			continue
		}
		if err := p.Ping(ctx); err != nil {
			deps[name] = "down: " + err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		deps[name] = "up"
	}

	data := gin.H{
		"status":       "healthy",
		"storage":      h.storage,
		"dependencies": deps,
	}
	if status != http.StatusOK {
		data["status"] = "degraded"
		response.Success(c, status, "Service is degraded", data)
		return
	}
	response.OK(c, "Service is healthy", data)
}
