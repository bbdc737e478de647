package logging

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

func TestNewLoggerWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "api.log")
	logger, err := NewLogger("bebidas-pos", "test", "debug", path)
	require.NoError(t, err)
	logger.Info("hello")
	_ = logger.Sync()
	assert.FileExists(t, path)
}

func TestNewLoggerRejectsBadLevel(t *testing.T) {
	_, err := NewLogger("bebidas-pos", "test", "loud", "")
	assert.Error(t, err)
}

func TestFromContext(t *testing.T) {
	base := zaptest.NewLogger(t)
	scoped := base.With(zap.String("request_id", "r1"))

	assert.Same(t, base, FromContext(context.Background(), base))
	assert.Same(t, scoped, FromContext(ContextWithLogger(context.Background(), scoped), base))
}
