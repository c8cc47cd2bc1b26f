package event

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/possuite/backend/internal/domain/kds"
	"github.com/possuite/backend/internal/domain/shared"
)

type recordingHandler struct {
	types    []string
	received []shared.DomainEvent
	err      error
	panics   bool
}

func (h *recordingHandler) Handle(_ context.Context, evt shared.DomainEvent) error {
	if h.panics {
		panic("handler exploded")
	}
	h.received = append(h.received, evt)
	return h.err
}

func (h *recordingHandler) EventTypes() []string { return h.types }

func newBumpEvent() shared.DomainEvent {
	return kds.NewTicketBumpedEvent(uuid.New(), uuid.New(), uuid.New(), uuid.New())
}

func TestInMemoryEventBus_PublishSubscribe(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	ctx := context.Background()
	require.NoError(t, bus.Start(ctx))
	defer bus.Stop(ctx)

	typed := &recordingHandler{types: []string{kds.EventTicketBumped}}
	other := &recordingHandler{types: []string{kds.EventTicketRecalled}}
	wildcard := &recordingHandler{}

	bus.Subscribe(typed)
	bus.Subscribe(other)
	bus.Subscribe(wildcard)

	require.NoError(t, bus.Publish(ctx, newBumpEvent()))

	assert.Len(t, typed.received, 1)
	assert.Empty(t, other.received)
	assert.Len(t, wildcard.received, 1, "wildcard handlers receive all events")
}

func TestInMemoryEventBus_HandlerErrorDoesNotBlockOthers(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	ctx := context.Background()

	failing := &recordingHandler{types: []string{kds.EventTicketBumped}, err: errors.New("boom")}
	healthy := &recordingHandler{types: []string{kds.EventTicketBumped}}
	bus.Subscribe(failing)
	bus.Subscribe(healthy)

	require.NoError(t, bus.Publish(ctx, newBumpEvent()))
	assert.Len(t, healthy.received, 1)
}

func TestInMemoryEventBus_PanickingHandlerIsContained(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	ctx := context.Background()

	panicking := &recordingHandler{types: []string{kds.EventTicketBumped}, panics: true}
	healthy := &recordingHandler{types: []string{kds.EventTicketBumped}}
	bus.Subscribe(panicking)
	bus.Subscribe(healthy)

	require.NotPanics(t, func() {
		_ = bus.Publish(ctx, newBumpEvent())
	})
	assert.Len(t, healthy.received, 1)
}

func TestInMemoryEventBus_Unsubscribe(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	ctx := context.Background()

	handler := &recordingHandler{types: []string{kds.EventTicketBumped}}
	bus.Subscribe(handler)
	bus.Unsubscribe(handler)

	require.NoError(t, bus.Publish(ctx, newBumpEvent()))
	assert.Empty(t, handler.received)
}
