// Package notify fans committed ticks out to Redis subscribers.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	DefaultChannel = "airport:ticks"
	lastTickKey    = "airport:last_tick"
	lastTickTTL    = 24 * time.Hour
)

// TickEvent describes one committed tick.
type TickEvent struct {
	Tick           int       `json:"tick"`
	Resampled      int       `json:"resampled"`
	Changed        int       `json:"changed"`
	Flights        int       `json:"flights"`
	PunctualityPct float64   `json:"punctuality_pct"`
	CommittedAt    time.Time `json:"committed_at"`
}

type Notifier interface {
	Publish(ctx context.Context, ev TickEvent) error
	Close() error
}

// Nop discards every event; it is used when no Redis address is configured.
type Nop struct{}

func (Nop) Publish(context.Context, TickEvent) error { return nil }
func (Nop) Close() error                             { return nil }

// RedisPublisher publishes tick events on a pub/sub channel and keeps the
// latest one under a key for late subscribers.
type RedisPublisher struct {
	client  *redis.Client
	channel string
}

func NewRedisPublisher(client *redis.Client, channel string) *RedisPublisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisPublisher{client: client, channel: channel}
}

// Dial connects to addr and verifies the connection with a ping.
func Dial(ctx context.Context, addr, channel string) (*RedisPublisher, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return NewRedisPublisher(client, channel), nil
}

func (p *RedisPublisher) Channel() string { return p.channel }

func (p *RedisPublisher) Publish(ctx context.Context, ev TickEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal tick event: %w", err)
	}
	pipe := p.client.Pipeline()
	pipe.Set(ctx, lastTickKey, data, lastTickTTL)
	pipe.Publish(ctx, p.channel, data)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to publish tick %d: %w", ev.Tick, err)
	}
	return nil
}

// Last returns the most recently published event.
func (p *RedisPublisher) Last(ctx context.Context) (TickEvent, bool, error) {
	data, err := p.client.Get(ctx, lastTickKey).Bytes()
	if err == redis.Nil {
		return TickEvent{}, false, nil
	} else if err != nil {
		return TickEvent{}, false, err
	}
	var ev TickEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return TickEvent{}, false, fmt.Errorf("failed to unmarshal tick event: %w", err)
	}
	return ev, true, nil
}

func (p *RedisPublisher) Close() error {
	return p.client.Close()
}
