package events

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

type Handler func(ctx context.Context, event ClockEvent)

// Bus delivers clock events to subscribers synchronously, in subscription
// order. A panicking subscriber is logged and does not stop delivery.
type Bus struct {
	mu     sync.RWMutex
	nextID int
	subs   []subscription
	logger *zap.Logger
}

type subscription struct {
	id int
	fn Handler
}

func NewBus(logger ...*zap.Logger) *Bus {
	l := zap.L().Named("events.bus")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("events.bus")
	}
	return &Bus{logger: l}
}

// Subscribe registers fn and returns a function that removes it.
func (b *Bus) Subscribe(fn Handler) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			for i, s := range b.subs {
				if s.id == id {
					b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
					return
				}
			}
		})
	}
}

func (b *Bus) Publish(ctx context.Context, event ClockEvent) {
	b.mu.RLock()
	subs := make([]subscription, len(b.subs))
	copy(subs, b.subs)
	b.mu.RUnlock()

	for _, s := range subs {
		b.deliver(ctx, s, event)
	}
}

func (b *Bus) deliver(ctx context.Context, s subscription, event ClockEvent) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event subscriber panicked",
				zap.String("event_type", string(event.EventType)),
				zap.Any("panic", r),
			)
		}
	}()
	s.fn(ctx, event)
}

// Publisher is the narrow view producers depend on.
type Publisher interface {
	Publish(ctx context.Context, event ClockEvent)
}
