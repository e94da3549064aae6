package store

import (
	"context"
	"encoding/json"
	"fmt"

	"stridehq.app/backend/internal/model"
)

type notificationStore struct {
	q Querier
}

func (s *notificationStore) Create(ctx context.Context, n *model.Notification) error {
	data, err := json.Marshal(n.Data)
	if err != nil {
		return fmt.Errorf("encoding notification data: %w", err)
	}

	_, err = s.q.Exec(ctx,
		`INSERT INTO notifications (id, user_id, title, message, type, entity_id, data, read, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		n.ID, n.UserID, n.Title, n.Message, n.Type, n.EntityID, data, n.Read, n.CreatedAt)
	return err
}

func (s *notificationStore) CountUnread(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := s.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND read = FALSE`,
		userID).Scan(&count)
	return count, err
}
