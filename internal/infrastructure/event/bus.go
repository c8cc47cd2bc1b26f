package event

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/possuite/backend/internal/domain/shared"
)

// InMemoryEventBus delivers domain events to in-process subscribers
// synchronously on the publishing goroutine. A failing or panicking
// handler is logged and skipped; delivery is best-effort and the
// database stays the source of truth.
type InMemoryEventBus struct {
	log *zap.Logger

	mu     sync.RWMutex
	byType map[string][]shared.EventHandler
	all    []shared.EventHandler
}

var _ shared.EventBus = (*InMemoryEventBus)(nil)

// NewInMemoryEventBus builds a bus with no subscribers.
func NewInMemoryEventBus(log *zap.Logger) *InMemoryEventBus {
	return &InMemoryEventBus{
		log:    log,
		byType: make(map[string][]shared.EventHandler),
	}
}

// Publish fans each event out to its typed subscribers first, then to
// the wildcard subscribers.
func (b *InMemoryEventBus) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	for _, evt := range events {
		b.mu.RLock()
		targets := make([]shared.EventHandler, 0, len(b.byType[evt.EventType()])+len(b.all))
		targets = append(targets, b.byType[evt.EventType()]...)
		targets = append(targets, b.all...)
		b.mu.RUnlock()

		for _, h := range targets {
			b.deliver(ctx, h, evt)
		}
	}
	return nil
}

func (b *InMemoryEventBus) deliver(ctx context.Context, h shared.EventHandler, evt shared.DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("event handler panicked",
				zap.String("event_type", evt.EventType()),
				zap.Any("panic", r))
		}
	}()
	if err := h.Handle(ctx, evt); err != nil {
		b.log.Error("event handler failed",
			zap.String("event_type", evt.EventType()),
			zap.String("event_id", evt.EventID().String()),
			zap.Error(err))
	}
}

// Subscribe registers a handler. Without explicit types the handler's
// own EventTypes decide; a handler declaring no types at all receives
// every event.
func (b *InMemoryEventBus) Subscribe(handler shared.EventHandler, eventTypes ...string) {
	if len(eventTypes) == 0 {
		eventTypes = handler.EventTypes()
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if len(eventTypes) == 0 {
		b.all = append(b.all, handler)
	} else {
		for _, et := range eventTypes {
			b.byType[et] = append(b.byType[et], handler)
		}
	}
	b.log.Debug("event handler subscribed", zap.Strings("event_types", eventTypes))
}

// Unsubscribe removes a handler from every list it appears on.
func (b *InMemoryEventBus) Unsubscribe(handler shared.EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.all = without(b.all, handler)
	for et, handlers := range b.byType {
		if trimmed := without(handlers, handler); len(trimmed) > 0 {
			b.byType[et] = trimmed
		} else {
			delete(b.byType, et)
		}
	}
}

// Start and Stop satisfy shared.EventBus; a synchronous bus has no
// background work to manage.
func (b *InMemoryEventBus) Start(context.Context) error {
	b.log.Info("event bus started")
	return nil
}

// Stop is the shutdown counterpart of Start.
func (b *InMemoryEventBus) Stop(context.Context) error {
	b.log.Info("event bus stopped")
	return nil
}

func without(handlers []shared.EventHandler, target shared.EventHandler) []shared.EventHandler {
	var kept []shared.EventHandler
	for _, h := range handlers {
		if h != target {
			kept = append(kept, h)
		}
	}
	return kept
}
