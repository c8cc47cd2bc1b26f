package realtime

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisBridge subscribes to the realtime channels on Redis and replays
// frames published by other server instances into the local hub, so a
// display connected to this instance sees events raised anywhere.
type RedisBridge struct {
	client *redis.Client
	hub    *Hub
	origin string
	logger *zap.Logger

	cancel context.CancelFunc
	done   chan struct{}
}

// NewRedisBridge creates a bridge for this instance. origin must match
// the RedisPublisher's origin so the bridge can skip its own frames.
func NewRedisBridge(client *redis.Client, hub *Hub, origin string, logger *zap.Logger) *RedisBridge {
	return &RedisBridge{client: client, hub: hub, origin: origin, logger: logger}
}

// Start confirms the pattern subscription and begins forwarding in the
// background.
func (b *RedisBridge) Start(ctx context.Context) error {
	sub := b.client.PSubscribe(ctx, DisplayChannelPattern, PropertyOpsChannelPattern)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return err
	}

	runCtx, cancel := context.WithCancel(context.Background())
	b.cancel = cancel
	b.done = make(chan struct{})
	go b.forward(runCtx, sub)

	b.logger.Info("realtime bridge started")
	return nil
}

// Stop ends the forwarding loop and waits for it to drain.
func (b *RedisBridge) Stop(ctx context.Context) error {
	if b.cancel == nil {
		return nil
	}
	b.cancel()
	select {
	case <-b.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (b *RedisBridge) forward(ctx context.Context, sub *redis.PubSub) {
	defer close(b.done)
	defer sub.Close()

	msgs := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				return
			}
			b.handle(ctx, msg.Channel, []byte(msg.Payload))
		}
	}
}

// handle unwraps one Redis frame and hands it to the local hub. Frames
// this instance published are skipped; the hub already delivered them.
func (b *RedisBridge) handle(ctx context.Context, channel string, frame []byte) {
	var env redisEnvelope
	if err := json.Unmarshal(frame, &env); err != nil {
		b.logger.Warn("dropping malformed realtime frame",
			zap.String("channel", channel),
			zap.Error(err))
		return
	}
	if env.Origin == b.origin {
		return
	}
	_ = b.hub.Publish(ctx, channel, env.Payload)
}
