package realtime

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Publisher pushes a payload to a named channel. Delivery is best-effort;
// clients resync from the database on reconnect.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

const (
	displayChannelPrefix     = "kds:display:"
	propertyOpsChannelPrefix = "ops:property:"

	// Patterns the Redis bridge subscribes to.
	DisplayChannelPattern     = displayChannelPrefix + "*"
	PropertyOpsChannelPattern = propertyOpsChannelPrefix + "*"
)

// DisplayChannel names the pub/sub channel for one kitchen display
func DisplayChannel(displayID uuid.UUID) string {
	return displayChannelPrefix + displayID.String()
}

// PropertyOpsChannel names the operator channel for one property
// (printer liveness, failed jobs).
func PropertyOpsChannel(propertyID uuid.UUID) string {
	return propertyOpsChannelPrefix + propertyID.String()
}

// redisEnvelope wraps a payload on the Redis wire with the publishing
// instance, so the bridge on the originating instance can skip frames
// its own hub already delivered.
type redisEnvelope struct {
	Origin  string `json:"origin"`
	Payload []byte `json:"payload"`
}

// RedisPublisher fans payloads out through Redis pub/sub so every server
// instance can feed its own websocket subscribers.
type RedisPublisher struct {
	client *redis.Client
	origin string
	logger *zap.Logger
}

var _ Publisher = (*RedisPublisher)(nil)

// NewRedisPublisher creates a Redis-backed publisher. origin identifies
// this server instance on the wire.
func NewRedisPublisher(client *redis.Client, origin string, logger *zap.Logger) *RedisPublisher {
	return &RedisPublisher{client: client, origin: origin, logger: logger}
}

// Publish sends the payload to the Redis channel
func (p *RedisPublisher) Publish(ctx context.Context, channel string, payload []byte) error {
	frame, err := json.Marshal(redisEnvelope{Origin: p.origin, Payload: payload})
	if err != nil {
		return err
	}
	if err := p.client.Publish(ctx, channel, frame).Err(); err != nil {
		p.logger.Warn("redis publish failed",
			zap.String("channel", channel),
			zap.Error(err))
		return err
	}
	return nil
}

// FanoutPublisher publishes to several sinks, tolerating individual
// failures.
type FanoutPublisher struct {
	targets []Publisher
}

var _ Publisher = (*FanoutPublisher)(nil)

// NewFanoutPublisher combines publishers
func NewFanoutPublisher(targets ...Publisher) *FanoutPublisher {
	return &FanoutPublisher{targets: targets}
}

// Publish forwards to every target; the first error is returned after
// all targets have been attempted.
func (p *FanoutPublisher) Publish(ctx context.Context, channel string, payload []byte) error {
	var firstErr error
	for _, target := range p.targets {
		if err := target.Publish(ctx, channel, payload); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
