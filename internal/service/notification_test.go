package service

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"stridehq.app/backend/common/id"
	"stridehq.app/backend/internal/model"
	"stridehq.app/backend/internal/queue"
)

var _ = Describe("NotificationService", func() {
	var (
		notifications *mockNotificationStore
		pusher        *mockPusher
		producer      *mockProducer
		svc           NotificationService
	)

	BeforeEach(func() {
		id.Init(1)
		notifications = &mockNotificationStore{}
		pusher = &mockPusher{}
		producer = &mockProducer{}
		svc = NewNotificationService(notifications, pusher, producer)
	})

	Describe("CreateInAppNotification", func() {
		req := CreateNotificationRequest{
			UserID:  42,
			Title:   "Upcoming meeting",
			Message: "Standup starts soon",
			Type:    model.NotificationTypeMeetingReminder,
			Data:    map[string]string{"meeting_id": "7"},
		}

		It("persists, pushes, and pushes the unread count", func() {
			n, err := svc.CreateInAppNotification(context.Background(), req)

			Expect(err).NotTo(HaveOccurred())
			Expect(n.ID).NotTo(BeZero())
			Expect(n.UserID).To(Equal(int64(42)))

			Expect(notifications.created).To(HaveLen(1))
			Expect(notifications.created[0].Title).To(Equal("Upcoming meeting"))

			Expect(pusher.notifications).To(HaveLen(1))
			Expect(pusher.counts).To(HaveLen(1))
			Expect(pusher.counts[0].userID).To(Equal(int64(42)))
			Expect(pusher.counts[0].count).To(Equal(int64(1)))
		})

		It("fails when persistence fails", func() {
			notifications.CreateFunc = func(ctx context.Context, n *model.Notification) error {
				return errors.New("deadlock detected")
			}

			_, err := svc.CreateInAppNotification(context.Background(), req)

			Expect(err).To(MatchError(ContainSubstring("deadlock detected")))
			Expect(pusher.notifications).To(BeEmpty())
		})

		It("succeeds when only the push fails", func() {
			pusher.PushNotificationFunc = func(ctx context.Context, userID int64, n *model.Notification) error {
				return errors.New("stream gone")
			}

			n, err := svc.CreateInAppNotification(context.Background(), req)

			Expect(err).NotTo(HaveOccurred())
			Expect(n).NotTo(BeNil())
			Expect(notifications.created).To(HaveLen(1))
			Expect(pusher.counts).To(BeEmpty())
		})

		It("succeeds when the unread count cannot be fetched", func() {
			notifications.CountUnreadFunc = func(ctx context.Context, userID int64) (int64, error) {
				return 0, errors.New("query timeout")
			}

			_, err := svc.CreateInAppNotification(context.Background(), req)

			Expect(err).NotTo(HaveOccurred())
			Expect(pusher.notifications).To(HaveLen(1))
			Expect(pusher.counts).To(BeEmpty())
		})
	})

	Describe("SendEmail", func() {
		It("enqueues the email for the worker", func() {
			err := svc.SendEmail(context.Background(), "ada@stride.app", "Reminder", "<p>hi</p>")

			Expect(err).NotTo(HaveOccurred())
			Expect(producer.enqueued).To(HaveLen(1))
			Expect(producer.enqueued[0].To).To(Equal("ada@stride.app"))
			Expect(producer.enqueued[0].Subject).To(Equal("Reminder"))
		})

		It("surfaces enqueue failures to the caller", func() {
			producer.EnqueueFunc = func(ctx context.Context, task queue.EmailTask) error {
				return errors.New("redis down")
			}

			err := svc.SendEmail(context.Background(), "ada@stride.app", "Reminder", "<p>hi</p>")
			Expect(err).To(MatchError(ContainSubstring("redis down")))
		})
	})
})
