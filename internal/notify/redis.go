package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
)

func userChannel(userID uint) string {
	return fmt.Sprintf("sessions:user:%d", userID)
}

func NewRedisClient(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return redis.NewClient(opts), nil
}

// RedisPublisher pushes session events onto per-user pub/sub channels so
// connected clients see changes without polling.
type RedisPublisher struct {
	client *redis.Client
}

func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

type wireEvent struct {
	Action   string `json:"action"`
	Entity   string `json:"entity"`
	EntityID *uint  `json:"entity_id,omitempty"`
	ActorID  *uint  `json:"actor_id,omitempty"`
	Metadata any    `json:"metadata,omitempty"`
}

func (p *RedisPublisher) Deliver(ctx context.Context, ev Event) error {
	payload, err := json.Marshal(wireEvent{
		Action:   ev.Action,
		Entity:   ev.Entity,
		EntityID: ev.EntityID,
		ActorID:  ev.ActorID,
		Metadata: ev.Metadata,
	})
	if err != nil {
		return err
	}

	return p.client.Publish(ctx, userChannel(ev.UserID), payload).Err()
}

// Subscribe opens the realtime channel for one user. The caller owns the
// returned PubSub and must Close it.
func (p *RedisPublisher) Subscribe(ctx context.Context, userID uint) *redis.PubSub {
	return p.client.Subscribe(ctx, userChannel(userID))
}

var _ Sink = (*RedisPublisher)(nil)
