package jobs

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"stridehq.app/backend/internal/model"
)

var _ = Describe("MeetingStatusJob", func() {
	var (
		stores *mockStores
		tx     *mockTxRunner
		job    *MeetingStatusJob
		now    time.Time
	)

	BeforeEach(func() {
		now = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
		stores = newMockStores()
		tx = &mockTxRunner{stores: stores}
		job = NewMeetingStatusJob(tx, "*/2 * * * *")
		job.now = func() time.Time { return now }
	})

	It("moves scheduled meetings past their start time to ongoing", func() {
		stores.meetings.meetings = []model.Meeting{
			{ID: 1, Status: model.MeetingStatusScheduled, StartTime: now.Add(-10 * time.Minute)},
			{ID: 2, Status: model.MeetingStatusScheduled, StartTime: now.Add(30 * time.Minute)},
		}

		Expect(job.Run(context.Background())).To(Succeed())

		Expect(stores.meetings.get(1).Status).To(Equal(model.MeetingStatusOngoing))
		Expect(stores.meetings.get(1).UpdatedAt).To(Equal(now))
		Expect(stores.meetings.get(2).Status).To(Equal(model.MeetingStatusScheduled))
	})

	It("finishes ongoing meetings with no end time after an hour", func() {
		stores.meetings.meetings = []model.Meeting{
			{ID: 1, Status: model.MeetingStatusOngoing, StartTime: now.Add(-2 * time.Hour)},
			{ID: 2, Status: model.MeetingStatusOngoing, StartTime: now.Add(-30 * time.Minute)},
		}

		Expect(job.Run(context.Background())).To(Succeed())

		finished := stores.meetings.get(1)
		Expect(finished.Status).To(Equal(model.MeetingStatusFinished))
		Expect(finished.EndTime).NotTo(BeNil())
		Expect(*finished.EndTime).To(Equal(now))
		Expect(stores.meetings.get(2).Status).To(Equal(model.MeetingStatusOngoing))
	})

	It("leaves meetings with an explicit end time alone", func() {
		end := now.Add(3 * time.Hour)
		stores.meetings.meetings = []model.Meeting{
			{ID: 1, Status: model.MeetingStatusOngoing, StartTime: now.Add(-2 * time.Hour), EndTime: &end},
		}

		Expect(job.Run(context.Background())).To(Succeed())

		Expect(stores.meetings.get(1).Status).To(Equal(model.MeetingStatusOngoing))
	})

	It("ignores cancelled and deleted meetings", func() {
		stores.meetings.meetings = []model.Meeting{
			{ID: 1, Status: model.MeetingStatusCancelled, StartTime: now.Add(-2 * time.Hour)},
			{ID: 2, Status: model.MeetingStatusScheduled, StartTime: now.Add(-2 * time.Hour), Deleted: true},
		}

		Expect(job.Run(context.Background())).To(Succeed())

		Expect(stores.meetings.updates).To(BeZero())
	})

	It("carries a long-overdue scheduled meeting through both transitions in one run", func() {
		stores.meetings.meetings = []model.Meeting{
			{ID: 1, Status: model.MeetingStatusScheduled, StartTime: now.Add(-3 * time.Hour)},
		}

		Expect(job.Run(context.Background())).To(Succeed())

		// Phase 2 queries after phase 1 committed, so the freshly started
		// meeting is already visible as elapsed.
		Expect(stores.meetings.get(1).Status).To(Equal(model.MeetingStatusFinished))
	})

	It("does nothing on a second run over reconciled state", func() {
		stores.meetings.meetings = []model.Meeting{
			{ID: 1, Status: model.MeetingStatusScheduled, StartTime: now.Add(-10 * time.Minute)},
			{ID: 2, Status: model.MeetingStatusOngoing, StartTime: now.Add(-2 * time.Hour)},
		}

		Expect(job.Run(context.Background())).To(Succeed())
		after := stores.meetings.updates

		Expect(job.Run(context.Background())).To(Succeed())
		Expect(stores.meetings.updates).To(Equal(after))
	})

	It("propagates transaction failures", func() {
		tx.err = errors.New("connection refused")

		err := job.Run(context.Background())
		Expect(err).To(MatchError(ContainSubstring("connection refused")))
	})
})
