package notify

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	require.NoError(t, client.Ping(context.Background()).Err())
	return client, mr
}

func TestPublishReachesSubscriber(t *testing.T) {
	client, _ := setupTestRedis(t)
	ctx := context.Background()

	sub := client.Subscribe(ctx, "test:ticks")
	defer sub.Close()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	p := NewRedisPublisher(client, "test:ticks")
	ev := TickEvent{Tick: 4, Resampled: 20, Changed: 7, Flights: 200, PunctualityPct: 61.5,
		CommittedAt: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	require.NoError(t, p.Publish(ctx, ev))

	select {
	case msg := <-sub.Channel():
		var got TickEvent
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &got))
		assert.Equal(t, ev, got)
	case <-time.After(2 * time.Second):
		t.Fatal("no message received")
	}
}

func TestLastTick(t *testing.T) {
	client, mr := setupTestRedis(t)
	ctx := context.Background()
	p := NewRedisPublisher(client, "")
	assert.Equal(t, DefaultChannel, p.Channel())

	_, ok, err := p.Last(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, p.Publish(ctx, TickEvent{Tick: 1}))
	require.NoError(t, p.Publish(ctx, TickEvent{Tick: 2, Changed: 3}))

	last, ok, err := p.Last(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 2, last.Tick)
	assert.Equal(t, 3, last.Changed)
	assert.True(t, mr.TTL(lastTickKey) > 0)
}

func TestDialFailure(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err = Dial(ctx, addr, "")
	assert.Error(t, err)
}

func TestNop(t *testing.T) {
	var n Notifier = Nop{}
	assert.NoError(t, n.Publish(context.Background(), TickEvent{}))
	assert.NoError(t, n.Close())
}
