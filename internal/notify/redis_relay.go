package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/Tushar07778/expert-session-booking/internal/model"
)

// RedisRelay carries events between server instances. Publish sends to a
// Redis pub/sub channel and Run forwards everything received on that
// channel into the local hub, so each instance fans out to its own viewers
// exactly once. When a relay is in use, publish to it instead of the hub.
type RedisRelay struct {
	rdb     *redis.Client
	channel string
	hub     *Hub
}

// NewRedisRelay returns a relay on channel feeding hub.
func NewRedisRelay(rdb *redis.Client, channel string, hub *Hub) *RedisRelay {
	if channel == "" {
		channel = model.TopicSlotBooked
	}
	return &RedisRelay{rdb: rdb, channel: channel, hub: hub}
}

// Publish implements Publisher.
func (r *RedisRelay) Publish(ctx context.Context, ev model.SlotBookedEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := r.rdb.Publish(ctx, r.channel, body).Err(); err != nil {
		return fmt.Errorf("redis publish %s: %w", r.channel, err)
	}
	return nil
}

// Subscribe opens the Redis subscription and waits for the server to
// confirm it, so events published afterwards are not missed.
func (r *RedisRelay) Subscribe(ctx context.Context) (*redis.PubSub, error) {
	ps := r.rdb.Subscribe(ctx, r.channel)
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("redis subscribe %s: %w", r.channel, err)
	}
	return ps, nil
}

// Run forwards messages from ps into the hub until ctx is done or the
// subscription is closed. It owns ps and closes it on return.
func (r *RedisRelay) Run(ctx context.Context, ps *redis.PubSub) error {
	defer func() { _ = ps.Close() }()
	ch := ps.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			ev, err := decodeEvent(msg.Payload)
			if err != nil {
				log.Printf("notify: relay dropped malformed message: %v", err)
				continue
			}
			_ = r.hub.Publish(ctx, ev)
		}
	}
}

func decodeEvent(payload string) (model.SlotBookedEvent, error) {
	var ev model.SlotBookedEvent
	if err := json.Unmarshal([]byte(payload), &ev); err != nil {
		return ev, err
	}
	if ev.ExpertID == "" || ev.ReservationID == "" {
		return ev, fmt.Errorf("event missing expert_id or reservation_id")
	}
	return ev, nil
}
