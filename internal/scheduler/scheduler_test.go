package scheduler

import (
	"context"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type stubJob struct {
	name     string
	schedule string
	runs     atomic.Int64
	runErr   error
}

func (j *stubJob) Name() string     { return j.name }
func (j *stubJob) Schedule() string { return j.schedule }

func (j *stubJob) Run(ctx context.Context) error {
	j.runs.Add(1)
	return j.runErr
}

var _ = Describe("Scheduler", func() {
	var sched *Scheduler

	BeforeEach(func() {
		sched = New(time.UTC)
	})

	It("registers a job under its name", func() {
		job := &stubJob{name: "meeting-status", schedule: "*/2 * * * *"}

		Expect(sched.Register(context.Background(), job)).To(Succeed())

		Expect(sched.Registered("meeting-status")).To(BeTrue())
		Expect(sched.Entries()).To(Equal(1))
	})

	It("replaces the entry when the same name is registered twice", func() {
		Expect(sched.Register(context.Background(), &stubJob{name: "meeting-status", schedule: "*/2 * * * *"})).To(Succeed())
		Expect(sched.Register(context.Background(), &stubJob{name: "meeting-status", schedule: "*/5 * * * *"})).To(Succeed())

		Expect(sched.Entries()).To(Equal(1))
	})

	It("keeps entries for distinct names apart", func() {
		Expect(sched.Register(context.Background(), &stubJob{name: "meeting-status", schedule: "*/2 * * * *"})).To(Succeed())
		Expect(sched.Register(context.Background(), &stubJob{name: "task-overdue", schedule: "0 0 * * *"})).To(Succeed())

		Expect(sched.Entries()).To(Equal(2))
		Expect(sched.Registered("meeting-status")).To(BeTrue())
		Expect(sched.Registered("task-overdue")).To(BeTrue())
	})

	It("rejects an invalid cron expression", func() {
		err := sched.Register(context.Background(), &stubJob{name: "broken", schedule: "not a schedule"})

		Expect(err).To(HaveOccurred())
		Expect(sched.Registered("broken")).To(BeFalse())
	})

	It("runs a registered job and contains its failure", func() {
		job := &stubJob{name: "noisy", schedule: "*/2 * * * *", runErr: context.DeadlineExceeded}
		Expect(sched.Register(context.Background(), job)).To(Succeed())

		// Drive the wrapper directly; waiting out a real cron tick would
		// make the suite minutes long.
		sched.runJob(context.Background(), job)
		sched.runJob(context.Background(), job)

		Expect(job.runs.Load()).To(Equal(int64(2)))
	})

	It("stops cleanly while idle", func() {
		sched.Start()

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		Expect(sched.Stop(ctx)).To(Succeed())
	})
})
