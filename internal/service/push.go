package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"stridehq.app/backend/internal/model"
	"stridehq.app/backend/internal/queue"
)

// Pusher delivers real-time updates to a user's live sessions.
type Pusher interface {
	PushNotification(ctx context.Context, userID int64, n *model.Notification) error
	PushUnreadCount(ctx context.Context, userID int64, count int64) error
}

type redisPusher struct {
	client *redis.Client
}

// NewRedisPusher pushes updates onto per-user Redis streams, which dashboard
// sessions tail for live delivery.
func NewRedisPusher(client *redis.Client) Pusher {
	return &redisPusher{client: client}
}

func (p *redisPusher) PushNotification(ctx context.Context, userID int64, n *model.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("encoding notification: %w", err)
	}

	if err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: queue.UserStreamName(userID),
		Values: map[string]any{
			"kind":    "notification",
			"payload": string(payload),
		},
	}).Err(); err != nil {
		return fmt.Errorf("pushing notification: %w", err)
	}
	return nil
}

func (p *redisPusher) PushUnreadCount(ctx context.Context, userID int64, count int64) error {
	if err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: queue.UserStreamName(userID),
		Values: map[string]any{
			"kind":  "unread_count",
			"count": count,
		},
	}).Err(); err != nil {
		return fmt.Errorf("pushing unread count: %w", err)
	}
	return nil
}
