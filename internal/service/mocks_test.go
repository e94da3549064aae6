package service

import (
	"context"
	"time"

	"stridehq.app/backend/internal/model"
	"stridehq.app/backend/internal/queue"
	"stridehq.app/backend/internal/store"
)

type mockNotificationStore struct {
	CreateFunc      func(ctx context.Context, n *model.Notification) error
	CountUnreadFunc func(ctx context.Context, userID int64) (int64, error)

	created []model.Notification
}

func (m *mockNotificationStore) Create(ctx context.Context, n *model.Notification) error {
	if m.CreateFunc != nil {
		if err := m.CreateFunc(ctx, n); err != nil {
			return err
		}
	}
	m.created = append(m.created, *n)
	return nil
}

func (m *mockNotificationStore) CountUnread(ctx context.Context, userID int64) (int64, error) {
	if m.CountUnreadFunc != nil {
		return m.CountUnreadFunc(ctx, userID)
	}
	return int64(len(m.created)), nil
}

type pushedCount struct {
	userID int64
	count  int64
}

type mockPusher struct {
	PushNotificationFunc func(ctx context.Context, userID int64, n *model.Notification) error
	PushUnreadCountFunc  func(ctx context.Context, userID int64, count int64) error

	notifications []model.Notification
	counts        []pushedCount
}

func (m *mockPusher) PushNotification(ctx context.Context, userID int64, n *model.Notification) error {
	if m.PushNotificationFunc != nil {
		if err := m.PushNotificationFunc(ctx, userID, n); err != nil {
			return err
		}
	}
	m.notifications = append(m.notifications, *n)
	return nil
}

func (m *mockPusher) PushUnreadCount(ctx context.Context, userID int64, count int64) error {
	if m.PushUnreadCountFunc != nil {
		if err := m.PushUnreadCountFunc(ctx, userID, count); err != nil {
			return err
		}
	}
	m.counts = append(m.counts, pushedCount{userID: userID, count: count})
	return nil
}

type mockProducer struct {
	EnqueueFunc func(ctx context.Context, task queue.EmailTask) error

	enqueued []queue.EmailTask
}

func (m *mockProducer) Enqueue(ctx context.Context, task queue.EmailTask) error {
	if m.EnqueueFunc != nil {
		if err := m.EnqueueFunc(ctx, task); err != nil {
			return err
		}
	}
	m.enqueued = append(m.enqueued, task)
	return nil
}

func (m *mockProducer) Close() error { return nil }

type mockTaskStore struct {
	store.TaskStore

	tasks   map[int64]*model.ProjectTask
	updates []model.ProjectTask
}

func (m *mockTaskStore) GetByID(ctx context.Context, id int64) (*model.ProjectTask, error) {
	t, ok := m.tasks[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *mockTaskStore) Update(ctx context.Context, task *model.ProjectTask) error {
	if _, ok := m.tasks[task.ID]; !ok {
		return store.ErrNotFound
	}
	cp := *task
	m.tasks[task.ID] = &cp
	m.updates = append(m.updates, cp)
	return nil
}

type mockProjectStore struct {
	store.ProjectStore

	projects map[int64]*model.Project
}

func (m *mockProjectStore) GetByID(ctx context.Context, id int64) (*model.Project, error) {
	p, ok := m.projects[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

// mockProvider embeds nothing real; only the stores a test wires in are
// reachable, so an unexpected store call fails loudly with a nil panic.
type mockProvider struct {
	tasks    *mockTaskStore
	projects *mockProjectStore
}

func (m *mockProvider) Meetings() store.MeetingStore           { return nil }
func (m *mockProvider) Tasks() store.TaskStore                 { return m.tasks }
func (m *mockProvider) Projects() store.ProjectStore           { return m.projects }
func (m *mockProvider) Users() store.UserStore                 { return nil }
func (m *mockProvider) Invitations() store.InvitationStore     { return nil }
func (m *mockProvider) Notifications() store.NotificationStore { return nil }

type passthroughTxRunner struct {
	provider StoreProvider
}

func (r *passthroughTxRunner) WithTx(ctx context.Context, fn func(stores StoreProvider) error) error {
	return fn(r.provider)
}

func timePtr(t time.Time) *time.Time { return &t }

func int64Ptr(v int64) *int64 { return &v }
