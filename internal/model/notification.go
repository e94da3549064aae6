package model

import "time"

type NotificationType string

const (
	NotificationTypeMeetingReminder NotificationType = "meeting_reminder"
	NotificationTypeProjectDeadline NotificationType = "project_deadline"
)

type Notification struct {
	ID        int64             `json:"id"`
	UserID    int64             `json:"user_id"`
	Title     string            `json:"title"`
	Message   string            `json:"message"`
	Type      NotificationType  `json:"type"`
	EntityID  *int64            `json:"entity_id,omitempty"`
	Data      map[string]string `json:"data,omitempty"`
	Read      bool              `json:"read"`
	CreatedAt time.Time         `json:"created_at"`
}
