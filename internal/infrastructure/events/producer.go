package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/sangkips/bebidas-pos/internal/config"
	"github.com/sangkips/bebidas-pos/internal/pkg/logging"
)

// Producer publishes envelopes to Kafka from a single background goroutine.
// Publish never blocks: when the buffer is full the event is dropped and logged.
type Producer struct {
	w        *kafka.Writer
	inbox    chan kafka.Message
	closeCh  chan struct{}
	mu       sync.RWMutex
	closed   bool
	log      *zap.Logger
	producer string
}

func NewProducer(cfg *config.KafkaConfig, producer string, log *zap.Logger) *Producer {
	buf := cfg.Buffer
	if buf <= 0 {
		buf = 256
	}
	return &Producer{
		w: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        cfg.Topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			Async:        true,
			Completion: func(messages []kafka.Message, err error) {
				if err != nil {
					log.Warn("kafka delivery failed", zap.Int("messages", len(messages)), zap.Error(err))
				}
			},
		},
		inbox:    make(chan kafka.Message, buf),
		closeCh:  make(chan struct{}),
		log:      log,
		producer: producer,
	}
}

// Start runs the writer loop until ctx is done or Close is called,
// flushing whatever is still buffered.
func (p *Producer) Start(ctx context.Context) {
	go func() {
		defer close(p.closeCh)
		for {
			select {
			case <-ctx.Done():
				p.Close()
				p.drain()
				return
			case m, ok := <-p.inbox:
				if !ok {
					p.flush()
					return
				}
				p.write(m)
			}
		}
	}()
}

func (p *Producer) drain() {
	for m := range p.inbox {
		p.write(m)
	}
	p.flush()
}

func (p *Producer) write(m kafka.Message) {
	if err := p.w.WriteMessages(context.Background(), m); err != nil {
		p.log.Warn("kafka write failed", zap.ByteString("key", m.Key), zap.Error(err))
	}
}

func (p *Producer) flush() {
	if err := p.w.Close(); err != nil {
		p.log.Warn("kafka writer close failed", zap.Error(err))
	}
}

// Publish implements event.Publisher
func (p *Producer) Publish(ctx context.Context, eventType, key string, payload any) {
	env, err := NewEnvelope(p.producer, eventType, logging.RequestID(ctx), payload, time.Now())
	if err != nil {
		p.log.Error("encode event", zap.String("event_type", eventType), zap.Error(err))
		return
	}
	value, err := json.Marshal(env)
	if err != nil {
		p.log.Error("encode envelope", zap.String("event_type", eventType), zap.Error(err))
		return
	}
	msg := kafka.Message{
		Key:   []byte(key),
		Value: value,
		Time:  env.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(eventType)},
		},
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		p.log.Warn("event dropped, producer closed", zap.String("event_type", eventType))
		return
	}
	select {
	case p.inbox <- msg:
	default:
		p.log.Warn("event dropped, buffer full", zap.String("event_type", eventType), zap.String("key", key))
	}
}

// Close stops accepting events; the loop flushes the buffer and exits.
func (p *Producer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.closed {
		p.closed = true
		close(p.inbox)
	}
}

// WaitClosed blocks until the writer loop has finished.
func (p *Producer) WaitClosed() { <-p.closeCh }
