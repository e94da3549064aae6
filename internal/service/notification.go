package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"

	"stridehq.app/backend/common/id"
	"stridehq.app/backend/common/logger"
	"stridehq.app/backend/internal/model"
	"stridehq.app/backend/internal/queue"
	"stridehq.app/backend/internal/store"
)

// CreateNotificationRequest is the payload for one in-app notification.
type CreateNotificationRequest struct {
	UserID   int64
	Title    string
	Message  string
	Type     model.NotificationType
	EntityID *int64
	Data     map[string]string
}

// NotificationService is the dispatch gateway the reconciliation jobs fan
// out through. CreateInAppNotification persists and pushes; SendEmail only
// enqueues — delivery is the mail worker's job.
type NotificationService interface {
	CreateInAppNotification(ctx context.Context, req CreateNotificationRequest) (*model.Notification, error)
	SendEmail(ctx context.Context, to, subject, body string) error
}

type notificationService struct {
	notifications store.NotificationStore
	pusher        Pusher
	producer      queue.Producer
}

func NewNotificationService(notifications store.NotificationStore, pusher Pusher, producer queue.Producer) NotificationService {
	return &notificationService{
		notifications: notifications,
		pusher:        pusher,
		producer:      producer,
	}
}

func (s *notificationService) CreateInAppNotification(ctx context.Context, req CreateNotificationRequest) (*model.Notification, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		UserID:    logger.Ptr(req.UserID),
		Component: "stride.service.notification",
	})

	n := &model.Notification{
		ID:        id.New(),
		UserID:    req.UserID,
		Title:     req.Title,
		Message:   req.Message,
		Type:      req.Type,
		EntityID:  req.EntityID,
		Data:      req.Data,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.notifications.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("persisting notification: %w", err)
	}

	// The notification is committed at this point. Push failures degrade
	// live delivery only; the row is already there for the next fetch.
	if err := s.pusher.PushNotification(ctx, req.UserID, n); err != nil {
		slog.WarnContext(ctx, "failed to push notification", "error", err, "notification_id", n.ID)
		return n, nil
	}

	count, err := s.notifications.CountUnread(ctx, req.UserID)
	if err != nil {
		slog.WarnContext(ctx, "failed to count unread notifications", "error", err)
		return n, nil
	}
	if err := s.pusher.PushUnreadCount(ctx, req.UserID, count); err != nil {
		slog.WarnContext(ctx, "failed to push unread count", "error", err)
	}

	return n, nil
}

func (s *notificationService) SendEmail(ctx context.Context, to, subject, body string) error {
	task := queue.EmailTask{
		To:      to,
		Subject: subject,
		Body:    body,
	}

	// Propagate the trace so the worker's send shows up on the same trace.
	if sc := trace.SpanFromContext(ctx).SpanContext(); sc.IsValid() {
		traceID := sc.TraceID().String()
		task.TraceID = &traceID
	}

	if err := s.producer.Enqueue(ctx, task); err != nil {
		return fmt.Errorf("enqueueing email: %w", err)
	}
	return nil
}
