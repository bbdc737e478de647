package events

import (
	"context"

	"go.uber.org/zap"

	"github.com/sangkips/bebidas-pos/internal/pkg/logging"
)

// LogPublisher writes events to the logger. Used when no broker is configured.
type LogPublisher struct {
	log *zap.Logger
}

func NewLogPublisher(log *zap.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) Publish(ctx context.Context, eventType, key string, payload any) {
	logging.FromContext(ctx, p.log).Debug("event",
		zap.String("event_type", eventType),
		zap.String("key", key),
		zap.Any("payload", payload),
	)
}
