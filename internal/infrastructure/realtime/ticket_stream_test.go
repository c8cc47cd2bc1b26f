package realtime

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/possuite/backend/internal/domain/hardware"
	"github.com/possuite/backend/internal/domain/kds"
	"github.com/possuite/backend/internal/domain/printing"
)

type capturePublisher struct {
	channels []string
	payloads [][]byte
}

func (c *capturePublisher) Publish(_ context.Context, channel string, payload []byte) error {
	c.channels = append(c.channels, channel)
	c.payloads = append(c.payloads, payload)
	return nil
}

func TestTicketStream_RoutesTicketEventsToDisplayChannel(t *testing.T) {
	pub := &capturePublisher{}
	stream := NewTicketStream(pub, zap.NewNop())

	displayID := uuid.New()
	evt := kds.NewTicketBumpedEvent(uuid.New(), uuid.New(), displayID, uuid.New())
	require.NoError(t, stream.Handle(context.Background(), evt))

	require.Len(t, pub.channels, 1)
	assert.Equal(t, DisplayChannel(displayID), pub.channels[0])

	var envelope map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(pub.payloads[0], &envelope))
	var eventType string
	require.NoError(t, json.Unmarshal(envelope["event"], &eventType))
	assert.Equal(t, kds.EventTicketBumped, eventType)
}

func TestTicketStream_RoutesOpsEventsToPropertyChannel(t *testing.T) {
	pub := &capturePublisher{}
	stream := NewTicketStream(pub, zap.NewNop())

	propertyID := uuid.New()
	offline := hardware.NewPrinterOfflineEvent(uuid.New(), propertyID, "Grill")
	failed := printing.NewPrintJobFailedEvent(uuid.New(), propertyID, uuid.New(), "i/o timeout")

	require.NoError(t, stream.Handle(context.Background(), offline))
	require.NoError(t, stream.Handle(context.Background(), failed))

	require.Len(t, pub.channels, 2)
	assert.Equal(t, PropertyOpsChannel(propertyID), pub.channels[0])
	assert.Equal(t, PropertyOpsChannel(propertyID), pub.channels[1])
}

func TestTicketStream_IgnoresUnrelatedEvents(t *testing.T) {
	pub := &capturePublisher{}
	stream := NewTicketStream(pub, zap.NewNop())

	queued := printing.NewPrintJobQueuedEvent(uuid.New(), uuid.New(), uuid.New(), printing.JobTypeReceipt)
	require.NoError(t, stream.Handle(context.Background(), queued))
	assert.Empty(t, pub.channels)
}

func TestFanoutPublisher(t *testing.T) {
	a := &capturePublisher{}
	b := &capturePublisher{}
	fanout := NewFanoutPublisher(a, b)

	require.NoError(t, fanout.Publish(context.Background(), "ch", []byte("x")))
	assert.Len(t, a.payloads, 1)
	assert.Len(t, b.payloads, 1)
}
