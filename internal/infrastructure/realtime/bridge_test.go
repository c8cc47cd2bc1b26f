package realtime

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRedisBridge_Handle(t *testing.T) {
	hub := NewHub(zap.NewNop())
	ctx := context.Background()
	channel := DisplayChannel(uuid.New())

	sub := &subscriber{send: make(chan []byte, 4), conn: serverConn(t), done: make(chan struct{})}
	hub.mu.Lock()
	hub.subscribers[channel] = map[*subscriber]struct{}{sub: {}}
	hub.mu.Unlock()

	bridge := NewRedisBridge(nil, hub, "instance-a", zap.NewNop())

	frame := func(origin string, payload []byte) []byte {
		raw, err := json.Marshal(redisEnvelope{Origin: origin, Payload: payload})
		require.NoError(t, err)
		return raw
	}

	t.Run("foreign frames reach the hub", func(t *testing.T) {
		bridge.handle(ctx, channel, frame("instance-b", []byte(`{"type":"ticket_bumped"}`)))
		select {
		case got := <-sub.send:
			assert.JSONEq(t, `{"type":"ticket_bumped"}`, string(got))
		default:
			t.Fatal("payload not delivered to the hub subscriber")
		}
	})

	t.Run("own frames are skipped", func(t *testing.T) {
		bridge.handle(ctx, channel, frame("instance-a", []byte(`{"type":"echo"}`)))
		assert.Empty(t, sub.send)
	})

	t.Run("malformed frames are dropped", func(t *testing.T) {
		bridge.handle(ctx, channel, []byte("not-json"))
		assert.Empty(t, sub.send)
	})
}
