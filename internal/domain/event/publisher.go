package event

import "context"

// Publisher delivers domain events after the change that raised them is
// committed. Delivery is best effort; publishers never fail the caller.
type Publisher interface {
	Publish(ctx context.Context, eventType, key string, payload any)
}

// Nop discards every event
type Nop struct{}

func (Nop) Publish(context.Context, string, string, any) {}
