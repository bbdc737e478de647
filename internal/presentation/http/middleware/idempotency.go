package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sangkips/bebidas-pos/internal/domain/entity"
	"github.com/sangkips/bebidas-pos/internal/domain/repository"
	"github.com/sangkips/bebidas-pos/internal/presentation/http/dto/response"
)

const (
	// IdempotencyKeyHeader is the HTTP header for idempotency keys
	IdempotencyKeyHeader = "Idempotency-Key"
	// ClientIDHeader identifies the till sending the request
	ClientIDHeader = "X-Client-ID"
	// IdempotencyKeyTTL is how long keys are valid
	IdempotencyKeyTTL = 24 * time.Hour
	// IdempotencyPendingTTL bounds how long a request may hold a key before
	// another request can take it over
	IdempotencyPendingTTL = 2 * time.Minute
)

// IdempotencyConfig holds configuration for the idempotency middleware
type IdempotencyConfig struct {
	Repo repository.IdempotencyRepository
	Log  *zap.Logger
}

// responseWriter wraps gin.ResponseWriter to capture the response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// idempotencyScope is the client a key belongs to
func idempotencyScope(c *gin.Context) string {
	if id := c.GetHeader(ClientIDHeader); id != "" {
		return "client:" + id
	}
	return "ip:" + c.ClientIP()
}

// Idempotency replays the stored response when a POST, PUT or PATCH repeats an
// Idempotency-Key already processed for the same client. A repeat that arrives
// while the first request is still running gets 409.
func Idempotency(config IdempotencyConfig) gin.HandlerFunc {
	log := config.Log
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *gin.Context) {
		method := c.Request.Method
		if method != http.MethodPost && method != http.MethodPut && method != http.MethodPatch {
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			response.Abort(c, http.StatusBadRequest, "Could not read request body")
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))
		sum := sha256.Sum256(body)
		hash := hex.EncodeToString(sum[:])
		scope := idempotencyScope(c)
		endpoint := method + " " + c.FullPath()

		ctx := c.Request.Context()
		reserved, err := config.Repo.Reserve(ctx, &entity.IdempotencyKey{
			Key:         key,
			Scope:       scope,
			Endpoint:    endpoint,
			RequestHash: hash,
			ExpiresAt:   time.Now().Add(IdempotencyPendingTTL),
		})
		if err != nil {
			log.Warn("idempotency reservation failed", zap.String("key", key), zap.Error(err))
			c.Next()
			return
		}

		if !reserved {
			existing, err := config.Repo.GetByKey(ctx, key, scope)
			if err != nil || existing == nil {
				response.Abort(c, http.StatusConflict, "Idempotency-Key is being processed, retry later")
				return
			}
			if existing.Endpoint != endpoint || (existing.RequestHash != "" && existing.RequestHash != hash) {
				response.Abort(c, http.StatusUnprocessableEntity, "Idempotency-Key was already used for a different request")
				return
			}
			if existing.IsPending() {
				response.Abort(c, http.StatusConflict, "Idempotency-Key is being processed, retry later")
				return
			}
			c.Header("X-Idempotency-Replayed", "true")
			c.Data(existing.ResponseCode, "application/json; charset=utf-8", []byte(existing.ResponseBody))
			c.Abort()
			return
		}

		// server failures and panics may succeed on retry, so they free the key
		completed := false
		defer func() {
			if completed {
				return
			}
			if err := config.Repo.Release(context.WithoutCancel(ctx), key, scope); err != nil {
				log.Warn("idempotency key not released", zap.String("key", key), zap.Error(err))
			}
		}()

		blw := &responseWriter{body: bytes.NewBufferString(""), ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		status := c.Writer.Status()
		if status >= http.StatusInternalServerError {
			return
		}
		completed = true
		if err := config.Repo.Complete(context.WithoutCancel(ctx), key, scope, status, blw.body.String(), time.Now().Add(IdempotencyKeyTTL)); err != nil {
			log.Warn("idempotency response not stored", zap.String("key", key), zap.Error(err))
		}
	}
}

// PurgeIdempotencyKeys deletes expired keys every interval until ctx is done
func PurgeIdempotencyKeys(ctx context.Context, repo repository.IdempotencyRepository, interval time.Duration, log *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := repo.DeleteExpired(ctx); err != nil && ctx.Err() == nil {
				log.Warn("purge idempotency keys", zap.Error(err))
			}
		}
	}
}
